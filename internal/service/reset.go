package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/stepquiz-bot/internal/infra/postgres/repository"
)

type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
}

type ResetService struct {
	tr      Transactor
	storage QuizStorage
}

func NewResetService(tr Transactor, storage QuizStorage) *ResetService {
	return &ResetService{
		tr:      tr,
		storage: storage,
	}
}

// ResetCourse forgets the user's progress in a course and drops the active session.
func (s *ResetService) ResetCourse(ctx context.Context, userID int64, courseCode string) error {
	s.storage.Delete(userID)

	return s.tr.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return repository.NewResetRepository(tx).ResetCourse(ctx, userID, courseCode)
	})
}
