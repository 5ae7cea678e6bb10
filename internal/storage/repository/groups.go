package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/course-marketplace/internal/models"
)

// CreateGroup создаёт группу в курсе courseID.
func (s *Storage) CreateGroup(ctx context.Context, courseID int64, name string) (*models.Group, error) {
	const op = "storage.CreateGroup"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	g := &models.Group{CourseID: courseID, Name: name}
	err := s.DB.QueryRowContext(ctx,
		`INSERT INTO groups (course_id, name) VALUES ($1, $2) RETURNING id`,
		courseID, name).Scan(&g.ID)
	switch {
	case isForeignKeyViolation(err):
		return nil, fmt.Errorf("%s: %w", op, models.ErrCourseNotFound)
	case err != nil:
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return g, nil
}

// GetGroup возвращает группу вместе с числом участников.
func (s *Storage) GetGroup(ctx context.Context, courseID, id int64) (*models.GroupLoad, error) {
	const op = "storage.GetGroup"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT g.id, g.course_id, g.name, COUNT(u.uid)
			  FROM groups g
			  LEFT JOIN users u ON u.group_id = g.id
			  WHERE g.id = $1 AND g.course_id = $2
			  GROUP BY g.id`
	var gl models.GroupLoad
	err := s.DB.QueryRowContext(ctx, query, id, courseID).
		Scan(&gl.ID, &gl.CourseID, &gl.Name, &gl.Members)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("%s: %w", op, models.ErrGroupNotFound)
	case err != nil:
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &gl, nil
}

// ListGroups возвращает группы курса с числом участников, новые первыми.
func (s *Storage) ListGroups(ctx context.Context, courseID int64) ([]*models.GroupLoad, error) {
	const op = "storage.ListGroups"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT g.id, g.course_id, g.name, COUNT(u.uid)
			  FROM groups g
			  LEFT JOIN users u ON u.group_id = g.id
			  WHERE g.course_id = $1
			  GROUP BY g.id
			  ORDER BY g.id DESC`
	rows, err := s.DB.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.GroupLoad, 0)
	for rows.Next() {
		var gl models.GroupLoad
		if err = rows.Scan(&gl.ID, &gl.CourseID, &gl.Name, &gl.Members); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &gl)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// DeleteGroup удаляет группу. У её участников group_id сбрасывается в NULL.
func (s *Storage) DeleteGroup(ctx context.Context, courseID, id int64) error {
	const op = "storage.DeleteGroup"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM groups WHERE id = $1 AND course_id = $2`, id, courseID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrGroupNotFound)
	}
	return nil
}
