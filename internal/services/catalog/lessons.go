package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/course-marketplace/internal/models"
)

// CreateLesson добавляет урок в курс.
func (s *Service) CreateLesson(ctx context.Context, courseID int64, in models.DummyLesson) (*models.Lesson, error) {
	const op = "services.catalog.CreateLesson"
	lesson, err := s.repo.CreateLesson(ctx, courseID, in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("lesson created", slog.Int64("course_id", courseID), slog.Int64("id", lesson.ID))
	return lesson, nil
}

// GetLesson возвращает урок курса.
func (s *Service) GetLesson(ctx context.Context, courseID, id int64) (*models.Lesson, error) {
	const op = "services.catalog.GetLesson"
	lesson, err := s.repo.GetLesson(ctx, courseID, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return lesson, nil
}

// ListLessons возвращает уроки существующего курса в порядке создания.
func (s *Service) ListLessons(ctx context.Context, courseID int64) ([]*models.Lesson, error) {
	const op = "services.catalog.ListLessons"
	if _, err := s.repo.GetCourse(ctx, courseID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	lessons, err := s.repo.ListLessons(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return lessons, nil
}

// UpdateLesson меняет урок курса.
func (s *Service) UpdateLesson(ctx context.Context, courseID, id int64, in models.DummyLesson) (*models.Lesson, error) {
	const op = "services.catalog.UpdateLesson"
	lesson, err := s.repo.UpdateLesson(ctx, courseID, id, in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return lesson, nil
}

// DeleteLesson удаляет урок курса.
func (s *Service) DeleteLesson(ctx context.Context, courseID, id int64) error {
	const op = "services.catalog.DeleteLesson"
	if err := s.repo.DeleteLesson(ctx, courseID, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
