package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/course-marketplace/internal/models"
)

func scanLesson(row rowScanner) (*models.Lesson, error) {
	var l models.Lesson
	if err := row.Scan(&l.ID, &l.CourseID, &l.Title, &l.Link); err != nil {
		return nil, err
	}
	return &l, nil
}

// CreateLesson добавляет урок в курс courseID.
func (s *Storage) CreateLesson(ctx context.Context, courseID int64, in models.DummyLesson) (*models.Lesson, error) {
	const op = "storage.CreateLesson"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `INSERT INTO lessons (course_id, title, link)
			  VALUES ($1, $2, $3)
			  RETURNING id, course_id, title, link`
	l, err := scanLesson(s.DB.QueryRowContext(ctx, query, courseID, in.Title, in.Link))
	switch {
	case isForeignKeyViolation(err):
		return nil, fmt.Errorf("%s: %w", op, models.ErrCourseNotFound)
	case err != nil:
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return l, nil
}

// GetLesson возвращает урок id курса courseID.
func (s *Storage) GetLesson(ctx context.Context, courseID, id int64) (*models.Lesson, error) {
	const op = "storage.GetLesson"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT id, course_id, title, link FROM lessons WHERE id = $1 AND course_id = $2`
	l, err := scanLesson(s.DB.QueryRowContext(ctx, query, id, courseID))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("%s: %w", op, models.ErrLessonNotFound)
	case err != nil:
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return l, nil
}

// ListLessons возвращает уроки курса в порядке создания.
func (s *Storage) ListLessons(ctx context.Context, courseID int64) ([]*models.Lesson, error) {
	const op = "storage.ListLessons"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, course_id, title, link FROM lessons WHERE course_id = $1 ORDER BY id ASC`, courseID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Lesson, 0)
	for rows.Next() {
		l, err := scanLesson(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, l)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateLesson меняет название и ссылку урока.
func (s *Storage) UpdateLesson(ctx context.Context, courseID, id int64, in models.DummyLesson) (*models.Lesson, error) {
	const op = "storage.UpdateLesson"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `UPDATE lessons SET title = $1, link = $2
			  WHERE id = $3 AND course_id = $4
			  RETURNING id, course_id, title, link`
	l, err := scanLesson(s.DB.QueryRowContext(ctx, query, in.Title, in.Link, id, courseID))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("%s: %w", op, models.ErrLessonNotFound)
	case err != nil:
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return l, nil
}

// DeleteLesson удаляет урок.
func (s *Storage) DeleteLesson(ctx context.Context, courseID, id int64) error {
	const op = "storage.DeleteLesson"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM lessons WHERE id = $1 AND course_id = $2`, id, courseID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrLessonNotFound)
	}
	return nil
}
