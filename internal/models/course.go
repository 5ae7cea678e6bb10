package models

import "time"

// Course — курс, который можно купить за баллы.
type Course struct {
	ID          int64     `json:"id"`
	AuthorUID   string    `json:"author_uid"`
	Title       string    `json:"title"`
	StartDate   time.Time `json:"start_date"`
	Price       Points    `json:"price"`
	IsAvailable bool      `json:"is_available"`
}

// DummyCourse используется для приёма данных курса из JSON-запроса.
// Если AuthorUID не указан, автором становится текущий пользователь.
type DummyCourse struct {
	AuthorUID   string    `json:"author_uid,omitempty" validate:"omitempty,uuid"`
	Title       string    `json:"title" validate:"required,max=250"`
	StartDate   time.Time `json:"start_date" validate:"required"`
	Price       Points    `json:"price"`
	IsAvailable *bool     `json:"is_available,omitempty"`
}

// CourseFilter задает параметры выборки курсов.
type CourseFilter struct {
	OnlyAvailable bool
	Limit         int
	Offset        int
}
