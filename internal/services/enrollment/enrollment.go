// Package enrollment реализует покупку доступа к курсу: проверку баланса,
// списание баллов, создание подписки и распределение студента в наименее
// заполненную группу. Все изменения выполняются в одной транзакции.
package enrollment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/course-marketplace/internal/access"
	"github.com/magabrotheeeer/course-marketplace/internal/events"
	"github.com/magabrotheeeer/course-marketplace/internal/grouping"
	"github.com/magabrotheeeer/course-marketplace/internal/ledger"
	"github.com/magabrotheeeer/course-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/course-marketplace/internal/models"
)

// Tx описывает операции хранилища внутри транзакции покупки.
// LockBalance и LockGroupLoads блокируют строки до конца транзакции.
type Tx interface {
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
	LockBalance(ctx context.Context, userUID string) (*models.Balance, error)
	HasSubscription(ctx context.Context, userUID string, courseID int64) (bool, error)
	SaveBalance(ctx context.Context, b *models.Balance) error
	CreateSubscription(ctx context.Context, userUID string, courseID int64) (int64, error)
	LockGroupLoads(ctx context.Context) ([]models.GroupLoad, error)
	SetUserGroup(ctx context.Context, userUID string, groupID int64) error
}

// Store открывает транзакцию. Если fn вернула ошибку, все изменения откатываются.
type Store interface {
	RunInTx(ctx context.Context, fn func(tx Tx) error) error
}

// Publisher отправляет событие о покупке во внешний брокер.
type Publisher interface {
	PublishCoursePurchased(ctx context.Context, event events.CoursePurchased) error
}

// Metrics учитывает результаты покупок и потерянные события.
type Metrics interface {
	ObservePurchase(outcome string, elapsed time.Duration)
	EventPublishFailed(event string)
}

// Результаты покупки для метрик.
const (
	OutcomeSuccess           = "success"
	OutcomeNotFound          = "not_found"
	OutcomeInsufficientFunds = "insufficient_funds"
	OutcomeAlreadySubscribed = "already_subscribed"
	OutcomeNoGroups          = "no_groups"
	OutcomeError             = "error"
)

// Service оркестрирует транзакцию покупки курса.
type Service struct {
	store     Store
	publisher Publisher
	metrics   Metrics
	log       *slog.Logger
	now       func() time.Time
}

// NewService создает новый экземпляр Service.
func NewService(store Store, publisher Publisher, metrics Metrics, log *slog.Logger) *Service {
	return &Service{
		store:     store,
		publisher: publisher,
		metrics:   metrics,
		log:       log,
		now:       time.Now,
	}
}

// Purchase покупает курс courseID для пользователя p.
//
// Проверки выполняются по порядку: курс существует, у пользователя есть баланс,
// баланса хватает, курс ещё не куплен. Затем в той же транзакции баланс
// уменьшается на цену курса, создаётся подписка и пользователь переводится
// в группу с наименьшим числом участников.
func (s *Service) Purchase(ctx context.Context, p *access.Principal, courseID int64) (*models.Purchase, error) {
	const op = "services.enrollment.Purchase"
	if !access.Authenticated(p) {
		return nil, models.ErrPermissionDenied
	}
	start := s.now()
	log := s.log.With(slog.String("op", op), slog.String("user_uid", p.UserUID), slog.Int64("course_id", courseID))

	var (
		result *models.Purchase
		price  models.Points
	)
	err := s.store.RunInTx(ctx, func(tx Tx) error {
		course, err := tx.GetCourse(ctx, courseID)
		if err != nil {
			return err
		}
		price = course.Price

		balance, err := tx.LockBalance(ctx, p.UserUID)
		if err != nil {
			return err
		}
		if err := ledger.Debit(balance, course.Price, s.now()); err != nil {
			return err
		}

		subscribed, err := tx.HasSubscription(ctx, p.UserUID, courseID)
		if err != nil {
			return err
		}
		if subscribed {
			return models.ErrAlreadySubscribed
		}

		if err := tx.SaveBalance(ctx, balance); err != nil {
			return err
		}
		subID, err := tx.CreateSubscription(ctx, p.UserUID, courseID)
		if err != nil {
			return err
		}

		loads, err := tx.LockGroupLoads(ctx)
		if err != nil {
			return err
		}
		group, err := grouping.LeastLoaded(loads)
		if err != nil {
			return err
		}
		if err := tx.SetUserGroup(ctx, p.UserUID, group.ID); err != nil {
			return err
		}

		result = &models.Purchase{
			SubscriptionID: subID,
			CourseID:       courseID,
			GroupID:        group.ID,
			GroupName:      group.Name,
			Balance:        balance.Amount,
		}
		return nil
	})

	s.metrics.ObservePurchase(Outcome(err), s.now().Sub(start))
	if err != nil {
		log.Warn("purchase rejected", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	log.Info("course purchased", slog.Int64("group_id", result.GroupID), slog.String("balance", result.Balance.String()))

	event := events.CoursePurchased{
		EventID:     uuid.NewString(),
		UserUID:     p.UserUID,
		CourseID:    courseID,
		GroupID:     result.GroupID,
		Price:       price,
		PurchasedAt: s.now().UTC(),
	}
	if err := s.publisher.PublishCoursePurchased(ctx, event); err != nil {
		s.metrics.EventPublishFailed(events.RoutingKeyCoursePurchased)
		log.Warn("failed to publish purchase event", slog.String("event_id", event.EventID), sl.Err(err))
	}

	return result, nil
}

// Outcome классифицирует ошибку покупки для метрик.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, models.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, models.ErrInsufficientFunds):
		return OutcomeInsufficientFunds
	case errors.Is(err, models.ErrAlreadySubscribed):
		return OutcomeAlreadySubscribed
	case errors.Is(err, models.ErrNoGroupsAvailable):
		return OutcomeNoGroups
	default:
		return OutcomeError
	}
}
