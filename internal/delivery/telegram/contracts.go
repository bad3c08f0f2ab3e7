package telegram

import (
	"context"

	"github.com/aliskhannn/stepquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/stepquiz-bot/internal/service"
)

type UserService interface {
	EnsureUser(ctx context.Context, userID, chatID int64, languageCode string) (bool, error)
}

type SettingsService interface {
	GetOrCreate(ctx context.Context, userID int64) (*entities.UserSettings, error)
	SetCurrentCourse(ctx context.Context, userID int64, courseCode string) error
}

type CourseService interface {
	Catalog(ctx context.Context) ([]entities.Course, error)
	Course(ctx context.Context, code string) (*entities.Course, error)
	Steps(ctx context.Context, code string) ([]entities.StepKey, error)
	StepAt(ctx context.Context, code string, idx int) (entities.StepKey, error)
	Lesson(ctx context.Context, code string, step entities.StepKey) (string, bool, error)
}

type QuizService interface {
	StartTest(ctx context.Context, userID int64, courseCode string, step entities.StepKey) (*service.Session, error)
	Active(userID int64, sessionID string) (*service.Session, error)
	Answer(userID int64, sessionID string, in entities.Input) (*service.Session, entities.GradeResult, error)
	SelectPiece(userID int64, sessionID string, piece int) (*service.Session, error)
	UndoPiece(userID int64, sessionID string) (*service.Session, error)
	Check(userID int64, sessionID string) (*service.Session, entities.GradeResult, error)
	Advance(ctx context.Context, userID int64, sessionID string) (*service.Session, *entities.QuizResult, error)
}

type ProgressService interface {
	GetProgressSummary(ctx context.Context, userID int64, courseCode string) (*service.ProgressSummary, error)
}

type ResetService interface {
	ResetCourse(ctx context.Context, userID int64, courseCode string) error
}
