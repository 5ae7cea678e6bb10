package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/course-marketplace/internal/models"
)

// CreateGroup создает группу в курсе. Распределение при покупке учитывает
// группы всех курсов.
func (s *Service) CreateGroup(ctx context.Context, courseID int64, in models.DummyGroup) (*models.Group, error) {
	const op = "services.catalog.CreateGroup"
	group, err := s.repo.CreateGroup(ctx, courseID, in.Name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("group created", slog.Int64("course_id", courseID), slog.Int64("id", group.ID))
	return group, nil
}

// GetGroup возвращает группу с числом участников.
func (s *Service) GetGroup(ctx context.Context, courseID, id int64) (*models.GroupLoad, error) {
	const op = "services.catalog.GetGroup"
	group, err := s.repo.GetGroup(ctx, courseID, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return group, nil
}

// ListGroups возвращает группы существующего курса.
func (s *Service) ListGroups(ctx context.Context, courseID int64) ([]*models.GroupLoad, error) {
	const op = "services.catalog.ListGroups"
	if _, err := s.repo.GetCourse(ctx, courseID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	groups, err := s.repo.ListGroups(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return groups, nil
}

// DeleteGroup удаляет группу, её участники остаются без группы.
func (s *Service) DeleteGroup(ctx context.Context, courseID, id int64) error {
	const op = "services.catalog.DeleteGroup"
	if err := s.repo.DeleteGroup(ctx, courseID, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("group deleted", slog.Int64("course_id", courseID), slog.Int64("id", id))
	return nil
}
