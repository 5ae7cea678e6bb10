package models

// Lesson — урок, принадлежащий ровно одному курсу.
type Lesson struct {
	ID       int64  `json:"id"`
	CourseID int64  `json:"course_id"`
	Title    string `json:"title"`
	Link     string `json:"link"`
}

// DummyLesson — тело запроса на создание или изменение урока.
type DummyLesson struct {
	Title string `json:"title" validate:"required,max=250"`
	Link  string `json:"link" validate:"required,url,max=250"`
}
