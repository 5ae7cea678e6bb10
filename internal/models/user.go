// Package models содержит доменные структуры маркетплейса курсов:
// пользователей, курсы, уроки, группы, балансы и подписки,
// а также DTO для приёма данных из JSON-запросов.
package models

// Роли пользователя. Преподаватель определяется отдельным флагом IsTeacher.
const (
	RoleUser  = "user"
	RoleStaff = "staff"
	RoleAdmin = "admin"
)

// User представляет зарегистрированного пользователя системы.
type User struct {
	UUID         string `json:"uid"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	IsTeacher    bool   `json:"is_teacher"`
	GroupID      *int64 `json:"group_id,omitempty"`
}

// DummyUserUpdate — тело запроса администратора на смену роли пользователя.
type DummyUserUpdate struct {
	Role      *string `json:"role,omitempty" validate:"omitempty,oneof=user staff admin"`
	IsTeacher *bool   `json:"is_teacher,omitempty"`
}
