package models

import (
	"errors"
	"fmt"
)

// ErrNotFound общий признак отсутствующей записи, проверяется через errors.Is.
var ErrNotFound = errors.New("not found")

var (
	ErrCourseNotFound  = fmt.Errorf("course %w", ErrNotFound)
	ErrBalanceNotFound = fmt.Errorf("balance %w", ErrNotFound)
	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
	ErrLessonNotFound  = fmt.Errorf("lesson %w", ErrNotFound)
	ErrGroupNotFound   = fmt.Errorf("group %w", ErrNotFound)
)

var (
	// баланса не хватает на покупку курса
	ErrInsufficientFunds = errors.New("insufficient funds")
	// попытка сохранить отрицательный баланс
	ErrInvalidBalance = errors.New("balance must not be negative")
	// у пользователя нет нужной роли
	ErrPermissionDenied = errors.New("permission denied")
	// не создано ни одной группы для распределения
	ErrNoGroupsAvailable = errors.New("no groups available")
	// курс уже куплен этим пользователем
	ErrAlreadySubscribed = errors.New("already subscribed to course")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
