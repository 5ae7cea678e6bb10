package marketplace

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/course-marketplace/internal/access"
	"github.com/magabrotheeeer/course-marketplace/internal/config"
	_ "github.com/magabrotheeeer/course-marketplace/internal/docs"
	"github.com/magabrotheeeer/course-marketplace/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/course-marketplace/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/course-marketplace/internal/http/handlers/balance"
	"github.com/magabrotheeeer/course-marketplace/internal/http/handlers/course/available"
	"github.com/magabrotheeeer/course-marketplace/internal/http/handlers/course/create"
	"github.com/magabrotheeeer/course-marketplace/internal/http/handlers/course/list"
	"github.com/magabrotheeeer/course-marketplace/internal/http/handlers/course/read"
	"github.com/magabrotheeeer/course-marketplace/internal/http/handlers/course/remove"
	"github.com/magabrotheeeer/course-marketplace/internal/http/handlers/course/update"
	"github.com/magabrotheeeer/course-marketplace/internal/http/handlers/enrollment/pay"
	"github.com/magabrotheeeer/course-marketplace/internal/http/handlers/group"
	"github.com/magabrotheeeer/course-marketplace/internal/http/handlers/health"
	"github.com/magabrotheeeer/course-marketplace/internal/http/handlers/lesson"
	"github.com/magabrotheeeer/course-marketplace/internal/http/handlers/subscription"
	"github.com/magabrotheeeer/course-marketplace/internal/http/handlers/user"
	"github.com/magabrotheeeer/course-marketplace/internal/http/middlewarectx"
	"github.com/magabrotheeeer/course-marketplace/internal/metrics"
)

// RouteDeps содержит инфраструктуру, нужную маршрутизатору помимо сервисов.
type RouteDeps struct {
	Health  health.Pinger
	Metrics *metrics.Recorder
	Limiter config.RateLimit
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s Services, deps RouteDeps) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		deps.Metrics.Middleware,
	)

	limiter := middlewarectx.NewRateLimiter(deps.Limiter.RPS, deps.Limiter.Burst)
	requireCap := func(pred access.Predicate) func(chi.Router) {
		return func(r chi.Router) { r.Use(middlewarectx.RequireCapability(pred, logger)) }
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, s.Auth).ServeHTTP)
		r.Get("/health", health.New(logger, deps.Health).ServeHTTP)

		// Каталог читается без токена, но токен учитывается, если передан
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.OptionalJWTMiddleware(s.Auth, logger))
			requireCap(access.CanReadCourse)(r)
			r.Get("/courses", list.New(logger, s.Catalog).ServeHTTP)
			r.Get("/courses/{id}", read.New(logger, s.Catalog).ServeHTTP)
		})

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.Auth, logger))
			r.Use(limiter.Middleware(logger))

			r.Get("/courses/available", available.New(logger, s.Catalog).ServeHTTP)
			r.Get("/subscriptions", subscription.New(logger, s.Account).ServeHTTP)
			r.Post("/courses/{id}/pay", pay.New(logger, s.Enrollment, "id").ServeHTTP)
			r.Post("/pay/{course_id}", pay.New(logger, s.Enrollment, "course_id").ServeHTTP)

			r.Group(func(r chi.Router) {
				requireCap(access.CanWriteCourse)(r)
				r.Post("/courses", create.New(logger, s.Catalog).ServeHTTP)
				r.Put("/courses/{id}", update.New(logger, s.Catalog).ServeHTTP)
				r.Delete("/courses/{id}", remove.New(logger, s.Catalog).ServeHTTP)
			})

			lessons := lesson.New(logger, s.Catalog)
			r.Route("/courses/{course_id}/lessons", func(r chi.Router) {
				requireCap(access.CanManageLesson)(r)
				r.Get("/", lessons.List)
				r.Post("/", lessons.Create)
				r.Get("/{id}", lessons.Get)
				r.Put("/{id}", lessons.Update)
				r.Delete("/{id}", lessons.Delete)
			})

			groups := group.New(logger, s.Catalog)
			r.Route("/courses/{course_id}/groups", func(r chi.Router) {
				requireCap(access.CanManageGroup)(r)
				r.Get("/", groups.List)
				r.Post("/", groups.Create)
				r.Get("/{id}", groups.Get)
				r.Delete("/{id}", groups.Delete)
			})

			users := user.New(logger, s.Account)
			r.Route("/users", func(r chi.Router) {
				requireCap(access.CanAdministerUsers)(r)
				r.Get("/", users.List)
				r.Get("/{uid}", users.Get)
				r.Patch("/{uid}", users.Update)
			})

			balances := balance.New(logger, s.Account)
			r.Route("/balances", func(r chi.Router) {
				requireCap(access.CanAdministerBalance)(r)
				r.Get("/", balances.List)
				r.Get("/{uid}", balances.Get)
				r.Put("/{uid}", balances.Set)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
