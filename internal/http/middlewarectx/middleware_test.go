package middlewarectx_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/course-marketplace/internal/access"
	"github.com/magabrotheeeer/course-marketplace/internal/http/middlewarectx"
	"github.com/magabrotheeeer/course-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/course-marketplace/internal/models"
)

type AuthMock struct {
	mock.Mock
}

func (m *AuthMock) ValidateToken(ctx context.Context, token string) (*access.Principal, error) {
	args := m.Called(ctx, token)
	p, _ := args.Get(0).(*access.Principal)
	return p, args.Error(1)
}

func TestJWTMiddleware(t *testing.T) {
	alice := &access.Principal{UserUID: "u1", Username: "alice", Role: models.RoleUser}

	tests := []struct {
		name           string
		optional       bool
		authHeader     string
		mockResp       *access.Principal
		mockErr        error
		wantStatusCode int
		wantPrincipal  *access.Principal
		wantCalled     bool
	}{
		{
			name:           "missing header",
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "missing header on optional route",
			optional:       true,
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
		{
			name:           "wrong scheme",
			authHeader:     "Basic abc",
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "invalid token",
			authHeader:     "Bearer bad",
			mockErr:        errors.New("expired"),
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "invalid token on optional route",
			optional:       true,
			authHeader:     "Bearer bad",
			mockErr:        errors.New("expired"),
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "valid token",
			authHeader:     "Bearer good",
			mockResp:       alice,
			wantStatusCode: http.StatusOK,
			wantPrincipal:  alice,
			wantCalled:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthMock)
			if tt.mockResp != nil || tt.mockErr != nil {
				authMock.On("ValidateToken", mock.Anything, tt.authHeader[len("Bearer "):]).
					Return(tt.mockResp, tt.mockErr).Once()
			}

			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				assert.Equal(t, tt.wantPrincipal, middlewarectx.PrincipalFrom(r.Context()))
				w.WriteHeader(http.StatusOK)
			})
			mw := middlewarectx.JWTMiddleware(authMock, sl.NewDiscard())
			if tt.optional {
				mw = middlewarectx.OptionalJWTMiddleware(authMock, sl.NewDiscard())
			}

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			mw(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantCalled, called)
			authMock.AssertExpectations(t)
		})
	}
}

func TestRequireCapability(t *testing.T) {
	tests := []struct {
		name      string
		principal *access.Principal
		pred      access.Predicate
		want      int
	}{
		{"staff writes course", &access.Principal{UserUID: "u", Role: models.RoleStaff}, access.CanWriteCourse, http.StatusOK},
		{"user cannot write course", &access.Principal{UserUID: "u", Role: models.RoleUser}, access.CanWriteCourse, http.StatusForbidden},
		{"teacher manages lessons", &access.Principal{UserUID: "u", IsTeacher: true}, access.CanManageLesson, http.StatusOK},
		{"staff cannot manage groups", &access.Principal{UserUID: "u", Role: models.RoleStaff}, access.CanManageGroup, http.StatusForbidden},
		{"anonymous", nil, access.CanAdministerBalance, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.principal != nil {
				req = req.WithContext(middlewarectx.WithPrincipal(req.Context(), tt.principal))
			}
			rec := httptest.NewRecorder()
			middlewarectx.RequireCapability(tt.pred, sl.NewDiscard())(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusForbidden {
				assert.Contains(t, rec.Body.String(), `"detail"`)
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	limiter := middlewarectx.NewRateLimiter(0.001, 2)
	handler := limiter.Middleware(sl.NewDiscard())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(remote string, p *access.Principal) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = remote
		if p != nil {
			req = req.WithContext(middlewarectx.WithPrincipal(req.Context(), p))
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:1000", nil))
	assert.Equal(t, http.StatusOK, send("10.0.0.1:1001", nil))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:1002", nil))

	assert.Equal(t, http.StatusOK, send("10.0.0.2:1000", nil), "other clients keep their own budget")
	assert.Equal(t, http.StatusOK, send("10.0.0.1:1003", &access.Principal{UserUID: "u1"}),
		"authenticated users are limited per user")
}
