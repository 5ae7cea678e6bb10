package models

// Group — учебная группа, в которую распределяются купившие курс студенты.
type Group struct {
	ID       int64  `json:"id"`
	CourseID int64  `json:"course_id"`
	Name     string `json:"name"`
}

// GroupLoad это группа вместе с текущим числом участников.
type GroupLoad struct {
	Group
	Members int `json:"members"`
}

// DummyGroup — тело запроса на создание группы.
type DummyGroup struct {
	Name string `json:"name" validate:"required,max=100"`
}
