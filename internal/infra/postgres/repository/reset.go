package repository

import (
	"context"
	"fmt"

	"github.com/aliskhannn/stepquiz-bot/internal/infra/postgres"
)

type ResetRepository struct {
	db postgres.DBTX
}

func NewResetRepository(db postgres.DBTX) *ResetRepository {
	return &ResetRepository{db: db}
}

// ResetCourse deletes the user's results and step progress in a course.
func (s *ResetRepository) ResetCourse(ctx context.Context, userID int64, courseCode string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM quiz_results WHERE user_id = $1 AND course_code = $2`, userID, courseCode); err != nil {
		return fmt.Errorf("delete quiz_results: %w", err)
	}
	if _, err := s.db.Exec(ctx, `DELETE FROM step_progress WHERE user_id = $1 AND course_code = $2`, userID, courseCode); err != nil {
		return fmt.Errorf("delete step_progress: %w", err)
	}

	return nil
}
