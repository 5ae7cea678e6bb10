package create

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

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

func (m *MockService) CreateCourse(ctx context.Context, p *access.Principal, in models.DummyCourse) (*models.Course, error) {
	args := m.Called(ctx, p, in)
	if res := args.Get(0); res != nil {
		return res.(*models.Course), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	staff := &access.Principal{UserUID: "s1", Role: models.RoleStaff}
	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success",
			body: `{"author_uid":"0b6f5bb0-5a53-4a3e-8d8f-2f0c6b1f5e11","title":"Go","start_date":"2025-09-01T00:00:00Z","price":"300.50"}`,
			setupMock: func(m *MockService) {
				m.On("CreateCourse", mock.Anything, staff, models.DummyCourse{
					AuthorUID: "0b6f5bb0-5a53-4a3e-8d8f-2f0c6b1f5e11", Title: "Go", StartDate: start,
					Price: models.NewPoints(300, 50),
				}).Return(&models.Course{ID: 1, Title: "Go", Price: models.NewPoints(300, 50)}, nil).Once()
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"price":300.50`,
		},
		{
			name:           "missing title",
			body:           `{"start_date":"2025-09-01T00:00:00Z","price":1}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "field Title is a required field",
		},
		{
			name:           "too many decimals",
			body:           `{"title":"Go","start_date":"2025-09-01T00:00:00Z","price":1.001}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "author is not a teacher",
			body: `{"title":"Go","start_date":"2025-09-01T00:00:00Z","price":1}`,
			setupMock: func(m *MockService) {
				m.On("CreateCourse", mock.Anything, staff, mock.Anything).Return(nil, models.ErrPermissionDenied).Once()
			},
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPost, "/courses", strings.NewReader(tt.body))
			req = req.WithContext(middlewarectx.WithPrincipal(req.Context(), staff))
			w := httptest.NewRecorder()
			New(sl.NewDiscard(), svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
