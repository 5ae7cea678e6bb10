package user

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

const uid = "0b6f5bb0-5a53-4a3e-8d8f-2f0c6b1f5e11"

type MockService struct {
	mock.Mock
}

func (m *MockService) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	args := m.Called(ctx, limit, offset)
	if res := args.Get(0); res != nil {
		return res.([]*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockService) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockService) UpdateUser(ctx context.Context, userUID string, upd models.DummyUserUpdate) (*models.User, error) {
	args := m.Called(ctx, userUID, upd)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func withUID(req *http.Request, v string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("uid", v)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestList(t *testing.T) {
	svc := new(MockService)
	svc.On("ListUsers", mock.Anything, 20, 40).
		Return([]*models.User{{UUID: uid, Username: "alice", PasswordHash: "secret"}}, nil).Once()

	w := httptest.NewRecorder()
	New(sl.NewDiscard(), svc).List(w, httptest.NewRequest(http.MethodGet, "/users?limit=20&offset=40", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
	assert.NotContains(t, w.Body.String(), "secret")
	svc.AssertExpectations(t)
}

func TestGet(t *testing.T) {
	tests := []struct {
		name           string
		uid            string
		setupMock      func(*MockService)
		expectedStatus int
	}{
		{
			name: "found",
			uid:  uid,
			setupMock: func(m *MockService) {
				m.On("GetUser", mock.Anything, uid).Return(&models.User{UUID: uid}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "missing",
			uid:  uid,
			setupMock: func(m *MockService) {
				m.On("GetUser", mock.Anything, uid).Return(nil, models.ErrUserNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "not a uuid",
			uid:            "42",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			w := httptest.NewRecorder()
			New(sl.NewDiscard(), svc).Get(w, withUID(httptest.NewRequest(http.MethodGet, "/", nil), tt.uid))

			assert.Equal(t, tt.expectedStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestUpdate(t *testing.T) {
	staff := models.RoleStaff
	teacher := true

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
	}{
		{
			name: "promote",
			body: `{"role":"staff","is_teacher":true}`,
			setupMock: func(m *MockService) {
				m.On("UpdateUser", mock.Anything, uid, models.DummyUserUpdate{Role: &staff, IsTeacher: &teacher}).
					Return(&models.User{UUID: uid, Role: staff, IsTeacher: true}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown role",
			body:           `{"role":"root"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "storage failure",
			body: `{"is_teacher":true}`,
			setupMock: func(m *MockService) {
				m.On("UpdateUser", mock.Anything, uid, mock.Anything).Return(nil, errors.New("db")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := withUID(httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(tt.body)), uid)
			w := httptest.NewRecorder()
			New(sl.NewDiscard(), svc).Update(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}
