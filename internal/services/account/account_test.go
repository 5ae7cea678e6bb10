package account

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/course-marketplace/internal/access"
	"github.com/magabrotheeeer/course-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/course-marketplace/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}
func (m *RepoMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *RepoMock) UpdateUser(ctx context.Context, userUID string, upd models.DummyUserUpdate) (*models.User, error) {
	args := m.Called(ctx, userUID, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *RepoMock) ListBalances(ctx context.Context, limit, offset int) ([]*models.Balance, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Balance), args.Error(1)
}
func (m *RepoMock) GetBalance(ctx context.Context, userUID string) (*models.Balance, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Balance), args.Error(1)
}
func (m *RepoMock) UpsertBalance(ctx context.Context, b models.Balance) (*models.Balance, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Balance), args.Error(1)
}
func (m *RepoMock) ListSubscriptions(ctx context.Context, userUID string) ([]*models.Subscription, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subscription), args.Error(1)
}

func newTestService(repo Repository, now time.Time) *Service {
	svc := NewService(repo, sl.NewDiscard())
	svc.now = func() time.Time { return now }
	return svc
}

func TestService_SetBalance(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name       string
		amount     models.Points
		setupMocks func(r *RepoMock)
		wantErr    error
	}{
		{
			name:   "set balance",
			amount: models.NewPoints(1000, 0),
			setupMocks: func(r *RepoMock) {
				b := models.Balance{UserUID: "u1", Amount: 100000, LastUpdated: now}
				r.On("UpsertBalance", mock.Anything, b).Return(&b, nil).Once()
			},
		},
		{
			name:       "negative amount rejected before storage",
			amount:     -1,
			setupMocks: func(_ *RepoMock) {},
			wantErr:    models.ErrInvalidBalance,
		},
		{
			name:   "unknown user",
			amount: 10,
			setupMocks: func(r *RepoMock) {
				r.On("UpsertBalance", mock.Anything, mock.Anything).Return(nil, models.ErrUserNotFound).Once()
			},
			wantErr: models.ErrUserNotFound,
		},
		{
			name:   "storage constraint violation",
			amount: 10,
			setupMocks: func(r *RepoMock) {
				r.On("UpsertBalance", mock.Anything, mock.Anything).Return(nil, models.ErrInvalidBalance).Once()
			},
			wantErr: models.ErrInvalidBalance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMocks(repo)
			svc := newTestService(repo, now)

			got, err := svc.SetBalance(context.Background(), "u1", tt.amount)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.amount, got.Amount)
				assert.Equal(t, now, got.LastUpdated)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestService_UpdateUser(t *testing.T) {
	repo := new(RepoMock)
	role := models.RoleStaff
	upd := models.DummyUserUpdate{Role: &role}
	repo.On("UpdateUser", mock.Anything, "u1", upd).
		Return(&models.User{UUID: "u1", Role: models.RoleStaff}, nil).Once()
	repo.On("UpdateUser", mock.Anything, "u2", upd).Return(nil, models.ErrUserNotFound).Once()
	svc := newTestService(repo, time.Now())

	got, err := svc.UpdateUser(context.Background(), "u1", upd)
	require.NoError(t, err)
	assert.Equal(t, models.RoleStaff, got.Role)

	_, err = svc.UpdateUser(context.Background(), "u2", upd)
	require.ErrorIs(t, err, models.ErrUserNotFound)
	repo.AssertExpectations(t)
}

func TestService_Reads(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ListUsers", mock.Anything, 10, 0).Return([]*models.User{{UUID: "u1"}}, nil).Once()
	repo.On("GetUser", mock.Anything, "u1").Return(&models.User{UUID: "u1"}, nil).Once()
	repo.On("ListBalances", mock.Anything, 10, 0).Return([]*models.Balance{{UserUID: "u1"}}, nil).Once()
	repo.On("GetBalance", mock.Anything, "u2").Return(nil, models.ErrBalanceNotFound).Once()
	svc := newTestService(repo, time.Now())
	ctx := context.Background()

	users, err := svc.ListUsers(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	user, err := svc.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.UUID)

	balances, err := svc.ListBalances(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, balances, 1)

	_, err = svc.GetBalance(ctx, "u2")
	require.ErrorIs(t, err, models.ErrBalanceNotFound)
	repo.AssertExpectations(t)
}

func TestService_Subscriptions(t *testing.T) {
	repo := new(RepoMock)
	subs := []*models.Subscription{{ID: 1, UserUID: "u1", CourseID: 5}}
	repo.On("ListSubscriptions", mock.Anything, "u1").Return(subs, nil).Once()
	svc := newTestService(repo, time.Now())

	got, err := svc.Subscriptions(context.Background(), &access.Principal{UserUID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, subs, got)

	_, err = svc.Subscriptions(context.Background(), &access.Principal{})
	require.ErrorIs(t, err, models.ErrPermissionDenied)
	repo.AssertExpectations(t)
}
