// Package marketplace собирает зависимости сервиса и запускает HTTP-сервер.
package marketplace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/course-marketplace/internal/config"
	"github.com/magabrotheeeer/course-marketplace/internal/events"
	"github.com/magabrotheeeer/course-marketplace/internal/lib/jwt"
	"github.com/magabrotheeeer/course-marketplace/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/course-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/course-marketplace/internal/metrics"
	"github.com/magabrotheeeer/course-marketplace/internal/migrations"
	"github.com/magabrotheeeer/course-marketplace/internal/services/account"
	"github.com/magabrotheeeer/course-marketplace/internal/services/auth"
	"github.com/magabrotheeeer/course-marketplace/internal/services/catalog"
	"github.com/magabrotheeeer/course-marketplace/internal/services/enrollment"
	"github.com/magabrotheeeer/course-marketplace/internal/storage/cache"
	"github.com/magabrotheeeer/course-marketplace/internal/storage/repository"
)

const shutdownTimeout = 15 * time.Second

// App хранит HTTP-сервер и ресурсы, которые нужно закрыть при остановке.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
	amqp   *amqp.Connection
}

// Services обслуживают маршруты API.
type Services struct {
	Auth       *auth.Service
	Catalog    *catalog.Service
	Account    *account.Service
	Enrollment *enrollment.Service
}

// New подключается к хранилищам, применяет миграции и собирает маршрутизатор.
// Redis и RabbitMQ необязательны: без них курсы не кешируются, а события не публикуются.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "marketplace.New"

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	app := &App{
		logger: logger,
		db:     db,
	}

	var courseCache catalog.Cache
	if cfg.AddressRedis != "" {
		app.cache, err = cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		courseCache = app.cache
	} else {
		logger.Warn("redis address is empty, course cache disabled")
	}

	var publisher enrollment.Publisher = events.Nop{}
	if cfg.RabbitMQ.URL != "" {
		app.amqp, err = rabbitmq.Connect(cfg.RabbitMQ.URL, cfg.Retries, cfg.RetryDelay)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ch, err := rabbitmq.SetupChannel(app.amqp, events.Exchange, events.Queues())
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		publisher = events.NewRabbitPublisher(ch)
	} else {
		logger.Warn("rabbitmq url is empty, purchase events disabled")
	}

	recorder := metrics.New(prometheus.DefaultRegisterer)
	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	services := Services{
		Auth:       auth.NewService(db, jwtMaker),
		Catalog:    catalog.NewService(db, courseCache, cfg.CourseTTL, logger),
		Account:    account.NewService(db, logger),
		Enrollment: enrollment.NewService(db.Enrollment(), publisher, recorder, logger),
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, services, RouteDeps{
		Health:  db,
		Metrics: recorder,
		Limiter: cfg.RateLimit,
	})

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return app, nil
}

// Run обслуживает запросы до отмены ctx, затем корректно останавливает сервер.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if a.amqp != nil {
		if err := a.amqp.Close(); err != nil {
			a.logger.Warn("failed to close rabbitmq connection", sl.Err(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("failed to close redis client", sl.Err(err))
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close database", sl.Err(err))
	}
}
