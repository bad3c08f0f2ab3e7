package service

import (
	"context"

	"github.com/aliskhannn/stepquiz-bot/internal/domain/entities"
)

type UserRepository interface {
	Save(ctx context.Context, user *entities.User) (bool, error)
}

type SettingsRepository interface {
	Create(ctx context.Context, userID int64) error
	GetByUserID(ctx context.Context, userID int64) (*entities.UserSettings, error)
	UpdateCurrentCourse(ctx context.Context, userID int64, courseCode string) error
}

// ProgressRepository stores the last completed step per user and course.
type ProgressRepository interface {
	GetLastCompleted(ctx context.Context, userID int64, courseCode string) (*entities.StepKey, error)
	// SaveCompletion stores result and, when lastCompleted is non-nil, moves the
	// user's last completed step to it. Both happen atomically.
	SaveCompletion(ctx context.Context, result *entities.QuizResult, lastCompleted *entities.StepKey) error
}

// CourseSource fetches catalog and course rows from the remote spreadsheet.
type CourseSource interface {
	FetchCatalog(ctx context.Context) ([]entities.Course, error)
	FetchCourse(ctx context.Context, link string) ([]entities.CourseEntry, error)
}

// CourseCache keeps fetched catalog and course rows. A miss returns ok == false.
type CourseCache interface {
	GetCatalog(ctx context.Context) (courses []entities.Course, ok bool, err error)
	SetCatalog(ctx context.Context, courses []entities.Course) error
	GetEntries(ctx context.Context, courseCode string) (entries []entities.CourseEntry, ok bool, err error)
	SetEntries(ctx context.Context, courseCode string, entries []entities.CourseEntry) error
}

// QuizStorage keeps the active session of each user.
type QuizStorage interface {
	Store(userID int64, s *Session)
	Get(userID int64) (*Session, bool)
	Delete(userID int64)
}
