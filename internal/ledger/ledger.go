// Package ledger реализует правила внутреннего учёта баллов:
// баланс никогда не бывает отрицательным, списание возможно только при достатке средств.
package ledger

import (
	"fmt"
	"time"

	"github.com/magabrotheeeer/course-marketplace/internal/models"
)

// Validate проверяет, что сумму можно сохранить как баланс.
func Validate(amount models.Points) error {
	if amount < 0 {
		return fmt.Errorf("%w: %s", models.ErrInvalidBalance, amount)
	}
	return nil
}

// CanAfford сообщает, хватает ли баланса на покупку по цене price.
func CanAfford(b *models.Balance, price models.Points) bool {
	return b.Amount >= price
}

// Debit списывает price с баланса. При нехватке средств баланс не меняется.
func Debit(b *models.Balance, price models.Points, now time.Time) error {
	const op = "ledger.Debit"
	if price < 0 {
		return fmt.Errorf("%s: negative price %s", op, price)
	}
	if !CanAfford(b, price) {
		return models.ErrInsufficientFunds
	}
	next := b.Amount - price
	if err := Validate(next); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	b.Amount = next
	b.LastUpdated = now
	return nil
}

// Set выставляет баланс администратором.
func Set(b *models.Balance, amount models.Points, now time.Time) error {
	if err := Validate(amount); err != nil {
		return err
	}
	b.Amount = amount
	b.LastUpdated = now
	return nil
}
