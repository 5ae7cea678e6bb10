package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/course-marketplace/internal/models"
)

// ListSubscriptions возвращает подписки пользователя, новые первыми.
func (s *Storage) ListSubscriptions(ctx context.Context, userUID string) ([]*models.Subscription, error) {
	const op = "storage.ListSubscriptions"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, user_uid, course_id, created_at FROM subscriptions
		 WHERE user_uid = $1 ORDER BY id DESC`, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Subscription, 0)
	for rows.Next() {
		var sub models.Subscription
		if err = rows.Scan(&sub.ID, &sub.UserUID, &sub.CourseID, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &sub)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
