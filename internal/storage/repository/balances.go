package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/course-marketplace/internal/models"
)

func scanBalance(row rowScanner) (*models.Balance, error) {
	var b models.Balance
	var amount int64
	if err := row.Scan(&b.UserUID, &amount, &b.LastUpdated); err != nil {
		return nil, err
	}
	b.Amount = models.Points(amount)
	return &b, nil
}

func getBalance(ctx context.Context, q querier, userUID string, forUpdate bool) (*models.Balance, error) {
	query := `SELECT user_uid, amount, last_updated FROM balances WHERE user_uid = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	b, err := scanBalance(q.QueryRowContext(ctx, query, userUID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrBalanceNotFound
	}
	return b, err
}

// GetBalance возвращает баланс пользователя.
func (s *Storage) GetBalance(ctx context.Context, userUID string) (*models.Balance, error) {
	const op = "storage.GetBalance"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	b, err := getBalance(ctx, s.DB, userUID, false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return b, nil
}

// ListBalances возвращает балансы всех пользователей.
func (s *Storage) ListBalances(ctx context.Context, limit, offset int) ([]*models.Balance, error) {
	const op = "storage.ListBalances"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	limit, offset = pagination(limit, offset)
	rows, err := s.DB.QueryContext(ctx,
		`SELECT user_uid, amount, last_updated FROM balances
		 ORDER BY last_updated DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Balance, 0)
	for rows.Next() {
		b, err := scanBalance(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpsertBalance создаёт или перезаписывает баланс пользователя.
// Отрицательная сумма отклоняется ограничением таблицы.
func (s *Storage) UpsertBalance(ctx context.Context, b models.Balance) (*models.Balance, error) {
	const op = "storage.UpsertBalance"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `INSERT INTO balances (user_uid, amount, last_updated)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (user_uid) DO UPDATE
			  SET amount = EXCLUDED.amount, last_updated = EXCLUDED.last_updated
			  RETURNING user_uid, amount, last_updated`
	saved, err := scanBalance(s.DB.QueryRowContext(ctx, query, b.UserUID, int64(b.Amount), b.LastUpdated))
	switch {
	case isCheckViolation(err):
		return nil, fmt.Errorf("%s: %w", op, models.ErrInvalidBalance)
	case isForeignKeyViolation(err):
		return nil, fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
	case err != nil:
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return saved, nil
}
