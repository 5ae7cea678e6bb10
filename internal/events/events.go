// Package events описывает события, которые сервис публикует в брокер сообщений.
package events

import (
	"context"
	"time"

	"github.com/magabrotheeeer/course-marketplace/internal/models"
)

// Топология RabbitMQ для событий покупки.
const (
	Exchange                  = "marketplace"
	RoutingKeyCoursePurchased = "course.purchased"
	QueueEnrollmentPurchased  = "enrollment.purchased"
)

// CoursePurchased публикуется после фиксации транзакции покупки.
type CoursePurchased struct {
	EventID     string        `json:"event_id"`
	UserUID     string        `json:"user_uid"`
	CourseID    int64         `json:"course_id"`
	GroupID     int64         `json:"group_id"`
	Price       models.Points `json:"price"`
	PurchasedAt time.Time     `json:"purchased_at"`
}

// Nop ничего не публикует. Используется, когда брокер не настроен.
type Nop struct{}

// PublishCoursePurchased реализует enrollment.Publisher.
func (Nop) PublishCoursePurchased(context.Context, CoursePurchased) error { return nil }
