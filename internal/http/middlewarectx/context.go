package middlewarectx

import (
	"context"

	"github.com/magabrotheeeer/course-marketplace/internal/access"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// PrincipalKey хранит аутентифицированного пользователя в контексте.
const PrincipalKey Key = "principal"

// WithPrincipal кладет пользователя в контекст.
func WithPrincipal(ctx context.Context, p *access.Principal) context.Context {
	return context.WithValue(ctx, PrincipalKey, p)
}

// PrincipalFrom достает пользователя из контекста. Для анонимного запроса возвращает nil.
func PrincipalFrom(ctx context.Context) *access.Principal {
	p, _ := ctx.Value(PrincipalKey).(*access.Principal)
	return p
}
