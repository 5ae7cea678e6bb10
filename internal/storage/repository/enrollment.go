package repository

import (
	"context"

	"github.com/magabrotheeeer/course-marketplace/internal/services/enrollment"
)

type enrollmentStore struct {
	*Storage
}

// Enrollment возвращает хранилище для сервиса покупок.
func (s *Storage) Enrollment() enrollment.Store {
	return enrollmentStore{s}
}

func (s enrollmentStore) RunInTx(ctx context.Context, fn func(tx enrollment.Tx) error) error {
	return s.Storage.RunInTx(ctx, func(tx *Tx) error { return fn(tx) })
}
