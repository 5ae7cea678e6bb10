package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/course-marketplace/internal/migrations"
	"github.com/magabrotheeeer/course-marketplace/internal/models"
)

// TestDataFactory создает тестовые записи напрямую через SQL.
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает пользователя и возвращает его UID.
func (f *TestDataFactory) CreateUser(t *testing.T, username, role string, isTeacher bool) string {
	uid := uuid.NewString()
	_, err := f.storage.DB.Exec(`INSERT INTO users (uid, username, email, password_hash, role, is_teacher)
		VALUES ($1, $2, $3, 'hash', $4, $5)`,
		uid, username, username+"@example.com", role, isTeacher)
	require.NoError(t, err)
	return uid
}

// CreateCourse создает курс и возвращает его ID.
func (f *TestDataFactory) CreateCourse(t *testing.T, authorUID, title string, price models.Points) int64 {
	var id int64
	err := f.storage.DB.QueryRow(`INSERT INTO courses (author_uid, title, start_date, price)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		authorUID, title, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), int64(price)).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateGroup создает группу и возвращает её ID.
func (f *TestDataFactory) CreateGroup(t *testing.T, courseID int64, name string) int64 {
	var id int64
	err := f.storage.DB.QueryRow(`INSERT INTO groups (course_id, name) VALUES ($1, $2) RETURNING id`,
		courseID, name).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateBalance заводит баланс пользователю.
func (f *TestDataFactory) CreateBalance(t *testing.T, userUID string, amount models.Points) {
	_, err := f.storage.DB.Exec(`INSERT INTO balances (user_uid, amount) VALUES ($1, $2)`,
		userUID, int64(amount))
	require.NoError(t, err)
}

// CreateSubscription записывает покупку курса.
func (f *TestDataFactory) CreateSubscription(t *testing.T, userUID string, courseID int64) {
	_, err := f.storage.DB.Exec(`INSERT INTO subscriptions (user_uid, course_id) VALUES ($1, $2)`,
		userUID, courseID)
	require.NoError(t, err)
}

// TestVerification содержит проверки состояния базы после операции.
type TestVerification struct {
	storage *Storage
}

// NewTestVerification создает новый объект для проверки результатов
func NewTestVerification(storage *Storage) *TestVerification {
	return &TestVerification{storage: storage}
}

// BalanceAmount возвращает текущую сумму баланса.
func (v *TestVerification) BalanceAmount(t *testing.T, userUID string) models.Points {
	var amount int64
	err := v.storage.DB.QueryRow(`SELECT amount FROM balances WHERE user_uid = $1`, userUID).Scan(&amount)
	require.NoError(t, err)
	return models.Points(amount)
}

// SubscriptionCount возвращает число подписок пользователя.
func (v *TestVerification) SubscriptionCount(t *testing.T, userUID string) int {
	var n int
	err := v.storage.DB.QueryRow(`SELECT COUNT(*) FROM subscriptions WHERE user_uid = $1`, userUID).Scan(&n)
	require.NoError(t, err)
	return n
}

// GroupMembers возвращает число участников группы.
func (v *TestVerification) GroupMembers(t *testing.T, groupID int64) int {
	var n int
	err := v.storage.DB.QueryRow(`SELECT COUNT(*) FROM users WHERE group_id = $1`, groupID).Scan(&n)
	require.NoError(t, err)
	return n
}

// setupTestDatabase поднимает PostgreSQL в контейнере и накатывает миграции.
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	storage, err := New(dsn)
	require.NoError(t, err, "failed to create storage")

	migrationsPath, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, migrationsPath))

	cleanup := func() {
		_ = storage.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}
	return storage, cleanup
}
