package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/course-marketplace/internal/models"
)

const courseColumns = `id, author_uid, title, start_date, price, is_available`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourse(row rowScanner) (*models.Course, error) {
	var c models.Course
	var price int64
	if err := row.Scan(&c.ID, &c.AuthorUID, &c.Title, &c.StartDate, &price, &c.IsAvailable); err != nil {
		return nil, err
	}
	c.Price = models.Points(price)
	return &c, nil
}

func getCourse(ctx context.Context, q querier, id int64) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`
	c, err := scanCourse(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrCourseNotFound
	}
	return c, err
}

// CreateCourse сохраняет новый курс и возвращает его с присвоенным ID.
func (s *Storage) CreateCourse(ctx context.Context, c models.Course) (*models.Course, error) {
	const op = "storage.CreateCourse"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `INSERT INTO courses (author_uid, title, start_date, price, is_available)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING ` + courseColumns
	created, err := scanCourse(s.DB.QueryRowContext(ctx, query,
		c.AuthorUID, c.Title, c.StartDate, int64(c.Price), c.IsAvailable))
	switch {
	case isForeignKeyViolation(err):
		return nil, fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
	case isCheckViolation(err):
		return nil, fmt.Errorf("%s: %w", op, models.ErrInvalidPoints)
	case err != nil:
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// GetCourse возвращает курс по ID.
func (s *Storage) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	const op = "storage.GetCourse"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	c, err := getCourse(ctx, s.DB, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// UpdateCourse перезаписывает поля курса c.ID.
func (s *Storage) UpdateCourse(ctx context.Context, c models.Course) (*models.Course, error) {
	const op = "storage.UpdateCourse"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `UPDATE courses
			  SET author_uid = $1, title = $2, start_date = $3, price = $4, is_available = $5
			  WHERE id = $6
			  RETURNING ` + courseColumns
	updated, err := scanCourse(s.DB.QueryRowContext(ctx, query,
		c.AuthorUID, c.Title, c.StartDate, int64(c.Price), c.IsAvailable, c.ID))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("%s: %w", op, models.ErrCourseNotFound)
	case isForeignKeyViolation(err):
		return nil, fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
	case isCheckViolation(err):
		return nil, fmt.Errorf("%s: %w", op, models.ErrInvalidPoints)
	case err != nil:
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// DeleteCourse удаляет курс вместе с уроками, группами и подписками.
func (s *Storage) DeleteCourse(ctx context.Context, id int64) error {
	const op = "storage.DeleteCourse"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrCourseNotFound)
	}
	return nil
}

// ListCourses возвращает курсы, новые первыми.
func (s *Storage) ListCourses(ctx context.Context, filter models.CourseFilter) ([]*models.Course, error) {
	const op = "storage.ListCourses"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	limit, offset := pagination(filter.Limit, filter.Offset)
	query := `SELECT ` + courseColumns + ` FROM courses
			  WHERE ($1 = false OR is_available)
			  ORDER BY id DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, filter.OnlyAvailable, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	result, err := collectCourses(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListAvailableCourses возвращает курсы, которые пользователь ещё не купил.
func (s *Storage) ListAvailableCourses(ctx context.Context, userUID string,
	filter models.CourseFilter) ([]*models.Course, error) {
	const op = "storage.ListAvailableCourses"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	limit, offset := pagination(filter.Limit, filter.Offset)
	query := `SELECT c.id, c.author_uid, c.title, c.start_date, c.price, c.is_available
			  FROM courses c
			  WHERE ($2 = false OR c.is_available)
			    AND NOT EXISTS (
			        SELECT 1 FROM subscriptions s
			        WHERE s.course_id = c.id AND s.user_uid = $1
			    )
			  ORDER BY c.id DESC
			  LIMIT $3 OFFSET $4`
	rows, err := s.DB.QueryContext(ctx, query, userUID, filter.OnlyAvailable, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	result, err := collectCourses(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func collectCourses(rows *sql.Rows) ([]*models.Course, error) {
	defer func() {
		_ = rows.Close()
	}()
	result := make([]*models.Course, 0)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
