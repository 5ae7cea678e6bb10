package request

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestIDParam(t *testing.T) {
	tests := []struct {
		value   string
		want    int64
		wantErr bool
	}{
		{"42", 42, false},
		{"abc", 0, true},
		{"0", 0, true},
		{"-3", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			req := withParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", tt.value)
			got, err := IDParam(req, "id")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPagination(t *testing.T) {
	limit, offset := Pagination(httptest.NewRequest(http.MethodGet, "/?limit=10&offset=20", nil))
	assert.Equal(t, 10, limit)
	assert.Equal(t, 20, offset)

	limit, offset = Pagination(httptest.NewRequest(http.MethodGet, "/?limit=-1&offset=x", nil))
	assert.Equal(t, defaultLimit, limit)
	assert.Equal(t, 0, offset)

	limit, _ = Pagination(httptest.NewRequest(http.MethodGet, "/?limit=5000", nil))
	assert.Equal(t, maxLimit, limit)
}

func TestBoolQuery(t *testing.T) {
	assert.True(t, BoolQuery(httptest.NewRequest(http.MethodGet, "/?is_available=true", nil), "is_available"))
	assert.True(t, BoolQuery(httptest.NewRequest(http.MethodGet, "/?is_available=1", nil), "is_available"))
	assert.False(t, BoolQuery(httptest.NewRequest(http.MethodGet, "/?is_available=nope", nil), "is_available"))
	assert.False(t, BoolQuery(httptest.NewRequest(http.MethodGet, "/", nil), "is_available"))
}
