package repository

import (
	"context"
	"fmt"

	"github.com/aliskhannn/stepquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/stepquiz-bot/internal/infra/postgres"
)

// QuizResultRepository provides access to completed step tests in the database.
type QuizResultRepository struct {
	db postgres.DBTX
}

// NewQuizResultRepository creates a new QuizResultRepository.
func NewQuizResultRepository(db postgres.DBTX) *QuizResultRepository {
	return &QuizResultRepository{db: db}
}

// Save inserts a quiz result and returns its ID.
func (r *QuizResultRepository) Save(ctx context.Context, result *entities.QuizResult) (int64, error) {
	query := `
		INSERT INTO quiz_results (
			user_id, course_code, unit, step, correct_count, total_items, completed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(
		ctx,
		query,
		result.UserID,
		result.CourseCode,
		result.Step.Unit,
		result.Step.Step,
		result.CorrectCount,
		result.TotalItems,
		result.CompletedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("save quiz result: %w", err)
	}

	return id, nil
}

// ListRecent returns the latest results of a user in a course, newest first.
func (r *QuizResultRepository) ListRecent(ctx context.Context, userID int64, courseCode string, limit int) ([]*entities.QuizResult, error) {
	query := `
		SELECT id, user_id, course_code, unit, step, correct_count, total_items, completed_at
		FROM quiz_results
		WHERE user_id = $1 AND course_code = $2
		ORDER BY completed_at DESC
		LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, userID, courseCode, limit)
	if err != nil {
		return nil, fmt.Errorf("list quiz results: %w", err)
	}
	defer rows.Close()

	results := make([]*entities.QuizResult, 0, limit)
	for rows.Next() {
		res := new(entities.QuizResult)
		if err := rows.Scan(
			&res.ID, &res.UserID, &res.CourseCode, &res.Step.Unit, &res.Step.Step,
			&res.CorrectCount, &res.TotalItems, &res.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("scan quiz result: %w", err)
		}
		results = append(results, res)
	}

	return results, rows.Err()
}
