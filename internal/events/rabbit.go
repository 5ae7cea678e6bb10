package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/magabrotheeeer/course-marketplace/internal/lib/rabbitmq"
)

// Queues возвращает очереди, которые объявляются при старте сервиса.
func Queues() []rabbitmq.QueueConfig {
	return []rabbitmq.QueueConfig{
		{QueueName: QueueEnrollmentPurchased, RoutingKey: RoutingKeyCoursePurchased},
	}
}

// RabbitPublisher публикует события в exchange маркетплейса.
type RabbitPublisher struct {
	mu sync.Mutex
	ch rabbitmq.Channel
}

// NewRabbitPublisher создает издателя поверх открытого канала.
func NewRabbitPublisher(ch rabbitmq.Channel) *RabbitPublisher {
	return &RabbitPublisher{ch: ch}
}

// PublishCoursePurchased реализует enrollment.Publisher.
func (p *RabbitPublisher) PublishCoursePurchased(ctx context.Context, event CoursePurchased) error {
	const op = "events.PublishCoursePurchased"
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := rabbitmq.PublishMessage(p.ch, Exchange, RoutingKeyCoursePurchased, event); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
