package available

import (
	"context"
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

type MockService struct {
	mock.Mock
}

func (m *MockService) AvailableCourses(ctx context.Context, p *access.Principal, filter models.CourseFilter) ([]*models.Course, error) {
	args := m.Called(ctx, p, filter)
	if res := args.Get(0); res != nil {
		return res.([]*models.Course), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestAvailableHandler(t *testing.T) {
	alice := &access.Principal{UserUID: "u1"}
	svc := new(MockService)
	svc.On("AvailableCourses", mock.Anything, alice, models.CourseFilter{OnlyAvailable: true, Limit: 100}).
		Return([]*models.Course{{ID: 4, Title: "Open"}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/courses/available?is_available=true", nil)
	req = req.WithContext(middlewarectx.WithPrincipal(req.Context(), alice))
	w := httptest.NewRecorder()
	New(sl.NewDiscard(), svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Open"`)
	svc.AssertExpectations(t)
}

func TestAvailableHandler_Anonymous(t *testing.T) {
	svc := new(MockService)
	svc.On("AvailableCourses", mock.Anything, (*access.Principal)(nil), mock.Anything).
		Return(nil, models.ErrPermissionDenied).Once()

	w := httptest.NewRecorder()
	New(sl.NewDiscard(), svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/courses/available", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
}
