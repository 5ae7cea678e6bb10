package lesson

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/course-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/course-marketplace/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) CreateLesson(ctx context.Context, courseID int64, in models.DummyLesson) (*models.Lesson, error) {
	args := m.Called(ctx, courseID, in)
	if res := args.Get(0); res != nil {
		return res.(*models.Lesson), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockService) GetLesson(ctx context.Context, courseID, id int64) (*models.Lesson, error) {
	args := m.Called(ctx, courseID, id)
	if res := args.Get(0); res != nil {
		return res.(*models.Lesson), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockService) ListLessons(ctx context.Context, courseID int64) ([]*models.Lesson, error) {
	args := m.Called(ctx, courseID)
	if res := args.Get(0); res != nil {
		return res.([]*models.Lesson), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockService) UpdateLesson(ctx context.Context, courseID, id int64, in models.DummyLesson) (*models.Lesson, error) {
	args := m.Called(ctx, courseID, id, in)
	if res := args.Get(0); res != nil {
		return res.(*models.Lesson), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockService) DeleteLesson(ctx context.Context, courseID, id int64) error {
	return m.Called(ctx, courseID, id).Error(0)
}

func withParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestLessonHandlers(t *testing.T) {
	intro := models.DummyLesson{Title: "Intro", Link: "https://example.com/intro"}

	tests := []struct {
		name           string
		method         string
		params         map[string]string
		body           string
		setupMock      func(*MockService)
		handle         func(*Handler) http.HandlerFunc
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "list",
			method: http.MethodGet,
			params: map[string]string{"course_id": "1"},
			setupMock: func(m *MockService) {
				m.On("ListLessons", mock.Anything, int64(1)).
					Return([]*models.Lesson{{ID: 1, CourseID: 1, Title: "Intro"}}, nil).Once()
			},
			handle:         func(h *Handler) http.HandlerFunc { return h.List },
			expectedStatus: http.StatusOK,
			expectedBody:   `"title":"Intro"`,
		},
		{
			name:   "list unknown course",
			method: http.MethodGet,
			params: map[string]string{"course_id": "9"},
			setupMock: func(m *MockService) {
				m.On("ListLessons", mock.Anything, int64(9)).Return(nil, models.ErrCourseNotFound).Once()
			},
			handle:         func(h *Handler) http.HandlerFunc { return h.List },
			expectedStatus: http.StatusNotFound,
			expectedBody:   "Курс не найден.",
		},
		{
			name:   "create",
			method: http.MethodPost,
			params: map[string]string{"course_id": "1"},
			body:   `{"title":"Intro","link":"https://example.com/intro"}`,
			setupMock: func(m *MockService) {
				m.On("CreateLesson", mock.Anything, int64(1), intro).
					Return(&models.Lesson{ID: 5, CourseID: 1, Title: "Intro", Link: intro.Link}, nil).Once()
			},
			handle:         func(h *Handler) http.HandlerFunc { return h.Create },
			expectedStatus: http.StatusCreated,
			expectedBody:   "Урок создан.",
		},
		{
			name:           "create with bad link",
			method:         http.MethodPost,
			params:         map[string]string{"course_id": "1"},
			body:           `{"title":"Intro","link":"not a url"}`,
			setupMock:      func(_ *MockService) {},
			handle:         func(h *Handler) http.HandlerFunc { return h.Create },
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "create with bad course id",
			method:         http.MethodPost,
			params:         map[string]string{"course_id": "abc"},
			body:           `{}`,
			setupMock:      func(_ *MockService) {},
			handle:         func(h *Handler) http.HandlerFunc { return h.Create },
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Некорректный ID курса.",
		},
		{
			name:   "get from other course",
			method: http.MethodGet,
			params: map[string]string{"course_id": "2", "id": "5"},
			setupMock: func(m *MockService) {
				m.On("GetLesson", mock.Anything, int64(2), int64(5)).Return(nil, models.ErrLessonNotFound).Once()
			},
			handle:         func(h *Handler) http.HandlerFunc { return h.Get },
			expectedStatus: http.StatusNotFound,
		},
		{
			name:   "update",
			method: http.MethodPut,
			params: map[string]string{"course_id": "1", "id": "5"},
			body:   `{"title":"Intro","link":"https://example.com/intro"}`,
			setupMock: func(m *MockService) {
				m.On("UpdateLesson", mock.Anything, int64(1), int64(5), intro).
					Return(&models.Lesson{ID: 5, CourseID: 1, Title: "Intro"}, nil).Once()
			},
			handle:         func(h *Handler) http.HandlerFunc { return h.Update },
			expectedStatus: http.StatusOK,
			expectedBody:   "Урок обновлен.",
		},
		{
			name:           "update with bad lesson id",
			method:         http.MethodPut,
			params:         map[string]string{"course_id": "1", "id": "0"},
			setupMock:      func(_ *MockService) {},
			handle:         func(h *Handler) http.HandlerFunc { return h.Update },
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Некорректный ID урока.",
		},
		{
			name:   "delete fails",
			method: http.MethodDelete,
			params: map[string]string{"course_id": "1", "id": "5"},
			setupMock: func(m *MockService) {
				m.On("DeleteLesson", mock.Anything, int64(1), int64(5)).Return(errors.New("db down")).Once()
			},
			handle:         func(h *Handler) http.HandlerFunc { return h.Delete },
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := withParams(httptest.NewRequest(tt.method, "/", strings.NewReader(tt.body)), tt.params)
			w := httptest.NewRecorder()
			tt.handle(New(sl.NewDiscard(), svc))(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
