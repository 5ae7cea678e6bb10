// Package middlewarectx содержит HTTP middleware аутентификации, проверки прав
// и ограничения частоты запросов.
//
// JWTMiddleware проверяет JWT в заголовке Authorization и кладет в контекст
// access.Principal. RequireCapability пропускает запрос, только если
// пользователь обладает нужной возможностью.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/course-marketplace/internal/access"
	"github.com/magabrotheeeer/course-marketplace/internal/http/response"
	"github.com/magabrotheeeer/course-marketplace/internal/lib/sl"
)

// TokenValidator описывает сервис проверки JWT.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*access.Principal, error)
}

// JWTMiddleware требует валидный токен. Без него возвращает 401.
func JWTMiddleware(auth TokenValidator, log *slog.Logger) func(http.Handler) http.Handler {
	return jwtMiddleware(auth, log, true)
}

// OptionalJWTMiddleware пропускает анонимные запросы, но отклоняет
// запросы с невалидным токеном.
func OptionalJWTMiddleware(auth TokenValidator, log *slog.Logger) func(http.Handler) http.Handler {
	return jwtMiddleware(auth, log, false)
}

func jwtMiddleware(auth TokenValidator, log *slog.Logger, required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" && !required {
				next.ServeHTTP(w, r)
				return
			}
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Warn("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			p, err := auth.ValidateToken(r.Context(), tokenStr)
			if err != nil || !access.Authenticated(p) {
				log.Warn("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

// RequireCapability возвращает 403, если пользователь не удовлетворяет pred.
func RequireCapability(pred access.Predicate, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := PrincipalFrom(r.Context())
			if !pred(p) {
				uid := ""
				if p != nil {
					uid = p.UserUID
				}
				log.Warn("permission denied",
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("user_uid", uid),
					slog.String("path", r.URL.Path),
				)
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("У вас недостаточно прав для выполнения данного действия."))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
