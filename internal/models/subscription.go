package models

import "time"

// Subscription — факт покупки пользователем доступа к курсу.
// Пара (UserUID, CourseID) уникальна.
type Subscription struct {
	ID        int64     `json:"id"`
	UserUID   string    `json:"user_uid"`
	CourseID  int64     `json:"course_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Purchase возвращается после успешной покупки курса.
type Purchase struct {
	SubscriptionID int64  `json:"subscription_id"`
	CourseID       int64  `json:"course_id"`
	GroupID        int64  `json:"group_id"`
	GroupName      string `json:"group_name"`
	Balance        Points `json:"balance"`
}
