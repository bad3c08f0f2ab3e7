package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/stepquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/stepquiz-bot/internal/infra/postgres"
)

var ErrProgressNotFound = errors.New("progress not found")

// ProgressRepository provides access to per-course step progress in the database.
type ProgressRepository struct {
	db         postgres.DBTX
	transactor *postgres.Transactor
}

// NewProgressRepository creates a new ProgressRepository.
func NewProgressRepository(db postgres.DBTX, transactor *postgres.Transactor) *ProgressRepository {
	return &ProgressRepository{db: db, transactor: transactor}
}

// Get retrieves the progress record of a user in a course.
func (r *ProgressRepository) Get(ctx context.Context, userID int64, courseCode string) (*entities.StepProgress, error) {
	query := `
		SELECT user_id, course_code, last_unit, last_step, updated_at
		FROM step_progress
		WHERE user_id = $1 AND course_code = $2
	`

	var p entities.StepProgress
	err := r.db.QueryRow(ctx, query, userID, courseCode).Scan(
		&p.UserID,
		&p.CourseCode,
		&p.LastCompleted.Unit,
		&p.LastCompleted.Step,
		&p.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProgressNotFound
		}
		return nil, fmt.Errorf("get progress: %w", err)
	}

	return &p, nil
}

// GetLastCompleted returns the last completed step, or nil if the user has not
// completed any step of the course.
func (r *ProgressRepository) GetLastCompleted(ctx context.Context, userID int64, courseCode string) (*entities.StepKey, error) {
	p, err := r.Get(ctx, userID, courseCode)
	if err != nil {
		if errors.Is(err, ErrProgressNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p.LastCompleted, nil
}

// SaveCompletion stores the quiz result and optionally moves the last completed step
// in a single transaction.
func (r *ProgressRepository) SaveCompletion(ctx context.Context, result *entities.QuizResult, lastCompleted *entities.StepKey) error {
	return r.transactor.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		id, err := NewQuizResultRepository(tx).Save(ctx, result)
		if err != nil {
			return err
		}
		result.ID = id

		if lastCompleted == nil {
			return nil
		}

		return upsertLastCompleted(ctx, tx, result.UserID, result.CourseCode, *lastCompleted)
	})
}

func upsertLastCompleted(ctx context.Context, db postgres.DBTX, userID int64, courseCode string, step entities.StepKey) error {
	query := `
		INSERT INTO step_progress (user_id, course_code, last_unit, last_step, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id, course_code) DO UPDATE SET
			last_unit = EXCLUDED.last_unit,
			last_step = EXCLUDED.last_step,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := db.Exec(ctx, query, userID, courseCode, step.Unit, step.Step); err != nil {
		return fmt.Errorf("upsert step progress: %w", err)
	}

	return nil
}
