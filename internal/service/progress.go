package service

import (
	"context"

	"github.com/aliskhannn/stepquiz-bot/internal/domain/entities"
)

const recentResultsLimit = 5

// CourseSteps lists the ordered steps of a course.
type CourseSteps interface {
	Steps(ctx context.Context, code string) ([]entities.StepKey, error)
}

type QuizResultRepository interface {
	ListRecent(ctx context.Context, userID int64, courseCode string, limit int) ([]*entities.QuizResult, error)
}

type ProgressService struct {
	progressRepo ProgressRepository
	resultRepo   QuizResultRepository
	courses      CourseSteps
}

func NewProgressService(progressRepo ProgressRepository, resultRepo QuizResultRepository, courses CourseSteps) *ProgressService {
	return &ProgressService{
		progressRepo: progressRepo,
		resultRepo:   resultRepo,
		courses:      courses,
	}
}

type ProgressSummary struct {
	CourseCode     string
	LastCompleted  *entities.StepKey // nil when no step has been completed
	CompletedSteps int
	TotalSteps     int
	Recent         []*entities.QuizResult
}

// GetProgressSummary reports how far the user got in a course.
func (s *ProgressService) GetProgressSummary(ctx context.Context, userID int64, courseCode string) (*ProgressSummary, error) {
	steps, err := s.courses.Steps(ctx, courseCode)
	if err != nil {
		return nil, err
	}

	last, err := s.progressRepo.GetLastCompleted(ctx, userID, courseCode)
	if err != nil {
		return nil, err
	}

	recent, err := s.resultRepo.ListRecent(ctx, userID, courseCode, recentResultsLimit)
	if err != nil {
		return nil, err
	}

	completed := 0
	if last != nil {
		for i, k := range steps {
			if k == *last {
				completed = i + 1
				break
			}
		}
	}

	return &ProgressSummary{
		CourseCode:     courseCode,
		LastCompleted:  last,
		CompletedSteps: completed,
		TotalSteps:     len(steps),
		Recent:         recent,
	}, nil
}
