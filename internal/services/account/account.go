// Package account содержит администрирование пользователей и балансов,
// а также список покупок текущего пользователя.
package account

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/course-marketplace/internal/access"
	"github.com/magabrotheeeer/course-marketplace/internal/ledger"
	"github.com/magabrotheeeer/course-marketplace/internal/models"
)

// Repository определяет методы хранилища для пользователей, балансов и подписок.
type Repository interface {
	ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error)
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	UpdateUser(ctx context.Context, userUID string, upd models.DummyUserUpdate) (*models.User, error)

	ListBalances(ctx context.Context, limit, offset int) ([]*models.Balance, error)
	GetBalance(ctx context.Context, userUID string) (*models.Balance, error)
	UpsertBalance(ctx context.Context, b models.Balance) (*models.Balance, error)

	ListSubscriptions(ctx context.Context, userUID string) ([]*models.Subscription, error)
}

// Service реализует операции над учетными записями.
type Service struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

// NewService создает новый экземпляр Service.
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

// ListUsers возвращает пользователей с пагинацией.
func (s *Service) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	const op = "services.account.ListUsers"
	users, err := s.repo.ListUsers(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

// GetUser возвращает пользователя по UID.
func (s *Service) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "services.account.GetUser"
	user, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// UpdateUser меняет роль и признак преподавателя. Новые права попадут
// в токен пользователя при следующем входе.
func (s *Service) UpdateUser(ctx context.Context, userUID string, upd models.DummyUserUpdate) (*models.User, error) {
	const op = "services.account.UpdateUser"
	user, err := s.repo.UpdateUser(ctx, userUID, upd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user updated", slog.String("uid", userUID),
		slog.String("role", user.Role), slog.Bool("is_teacher", user.IsTeacher))
	return user, nil
}

// ListBalances возвращает балансы пользователей.
func (s *Service) ListBalances(ctx context.Context, limit, offset int) ([]*models.Balance, error) {
	const op = "services.account.ListBalances"
	balances, err := s.repo.ListBalances(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return balances, nil
}

// GetBalance возвращает баланс пользователя.
func (s *Service) GetBalance(ctx context.Context, userUID string) (*models.Balance, error) {
	const op = "services.account.GetBalance"
	balance, err := s.repo.GetBalance(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return balance, nil
}

// SetBalance устанавливает баланс пользователя, создавая его при отсутствии.
// Отрицательная сумма отклоняется до обращения к хранилищу.
func (s *Service) SetBalance(ctx context.Context, userUID string, amount models.Points) (*models.Balance, error) {
	const op = "services.account.SetBalance"
	balance := &models.Balance{UserUID: userUID}
	if err := ledger.Set(balance, amount, s.now()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	saved, err := s.repo.UpsertBalance(ctx, *balance)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("balance set", slog.String("uid", userUID), slog.String("amount", saved.Amount.String()))
	return saved, nil
}

// Subscriptions возвращает курсы, купленные пользователем p.
func (s *Service) Subscriptions(ctx context.Context, p *access.Principal) ([]*models.Subscription, error) {
	const op = "services.account.Subscriptions"
	if !access.Authenticated(p) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrPermissionDenied)
	}
	subs, err := s.repo.ListSubscriptions(ctx, p.UserUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return subs, nil
}
