package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/course-marketplace/internal/models"
)

// Tx — транзакция покупки курса. Методы LockBalance и LockGroupLoads
// удерживают блокировки строк до Commit или Rollback.
type Tx struct {
	tx *sql.Tx
}

// RunInTx выполняет fn в транзакции READ COMMITTED. Ошибка или паника в fn
// откатывают транзакцию, иначе она фиксируется.
func (s *Storage) RunInTx(ctx context.Context, fn func(tx *Tx) error) (err error) {
	const op = "storage.RunInTx"
	if err = checkCtx(ctx, op); err != nil {
		return err
	}

	sqlTx, err := s.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = sqlTx.Rollback()
			panic(p)
		}
	}()

	if err = fn(&Tx{tx: sqlTx}); err != nil {
		_ = sqlTx.Rollback()
		return err
	}
	if err = sqlTx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetCourse читает курс внутри транзакции.
func (t *Tx) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	const op = "storage.Tx.GetCourse"
	c, err := getCourse(ctx, t.tx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// LockBalance читает баланс с блокировкой строки.
func (t *Tx) LockBalance(ctx context.Context, userUID string) (*models.Balance, error) {
	const op = "storage.Tx.LockBalance"
	b, err := getBalance(ctx, t.tx, userUID, true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return b, nil
}

// HasSubscription проверяет, куплен ли курс пользователем.
func (t *Tx) HasSubscription(ctx context.Context, userUID string, courseID int64) (bool, error) {
	const op = "storage.Tx.HasSubscription"
	var exists bool
	err := t.tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM subscriptions WHERE user_uid = $1 AND course_id = $2)`,
		userUID, courseID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// SaveBalance сохраняет сумму и время изменения баланса.
func (t *Tx) SaveBalance(ctx context.Context, b *models.Balance) error {
	const op = "storage.Tx.SaveBalance"
	res, err := t.tx.ExecContext(ctx,
		`UPDATE balances SET amount = $1, last_updated = $2 WHERE user_uid = $3`,
		int64(b.Amount), b.LastUpdated, b.UserUID)
	switch {
	case isCheckViolation(err):
		return fmt.Errorf("%s: %w", op, models.ErrInvalidBalance)
	case err != nil:
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrBalanceNotFound)
	}
	return nil
}

// CreateSubscription записывает покупку курса и возвращает ID подписки.
func (t *Tx) CreateSubscription(ctx context.Context, userUID string, courseID int64) (int64, error) {
	const op = "storage.Tx.CreateSubscription"
	var id int64
	err := t.tx.QueryRowContext(ctx,
		`INSERT INTO subscriptions (user_uid, course_id) VALUES ($1, $2) RETURNING id`,
		userUID, courseID).Scan(&id)
	switch {
	case isUniqueViolation(err):
		return 0, fmt.Errorf("%s: %w", op, models.ErrAlreadySubscribed)
	case isForeignKeyViolation(err):
		return 0, fmt.Errorf("%s: %w", op, models.ErrCourseNotFound)
	case err != nil:
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// LockGroupLoads блокирует все группы и возвращает их с числом участников.
// Блокировка берётся до подсчёта, чтобы параллельные покупки не видели
// устаревший минимум.
func (t *Tx) LockGroupLoads(ctx context.Context) ([]models.GroupLoad, error) {
	const op = "storage.Tx.LockGroupLoads"

	lockRows, err := t.tx.QueryContext(ctx, `SELECT id FROM groups ORDER BY id FOR UPDATE`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = drain(lockRows); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := t.tx.QueryContext(ctx,
		`SELECT g.id, g.course_id, g.name, COUNT(u.uid)
		 FROM groups g
		 LEFT JOIN users u ON u.group_id = g.id
		 GROUP BY g.id
		 ORDER BY g.id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var loads []models.GroupLoad
	for rows.Next() {
		var gl models.GroupLoad
		if err = rows.Scan(&gl.ID, &gl.CourseID, &gl.Name, &gl.Members); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		loads = append(loads, gl)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return loads, nil
}

// SetUserGroup записывает пользователя в группу.
func (t *Tx) SetUserGroup(ctx context.Context, userUID string, groupID int64) error {
	const op = "storage.Tx.SetUserGroup"
	res, err := t.tx.ExecContext(ctx, `UPDATE users SET group_id = $1 WHERE uid = $2`, groupID, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
	}
	return nil
}

// drain дочитывает результат SELECT ... FOR UPDATE, чтобы блокировки были взяты.
func drain(rows *sql.Rows) error {
	defer func() {
		_ = rows.Close()
	}()
	var id int64
	for rows.Next() {
		if err := rows.Scan(&id); err != nil {
			return err
		}
	}
	return rows.Err()
}
