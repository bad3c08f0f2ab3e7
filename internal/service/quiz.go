package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/stepquiz-bot/internal/domain/entities"
)

// CourseProvider exposes course rows to the quiz service.
type CourseProvider interface {
	Entries(ctx context.Context, code string) ([]entities.CourseEntry, error)
}

// QuizService runs step tests: it builds sessions, keeps them in storage while they are
// active and records completion.
type QuizService struct {
	courses      CourseProvider
	progressRepo ProgressRepository
	storage      QuizStorage
	builder      *SessionBuilder
	generator    Generator
	grader       Grader
	logger       *zap.Logger
}

func NewQuizService(
	courses CourseProvider,
	progressRepo ProgressRepository,
	storage QuizStorage,
	builder *SessionBuilder,
	generator Generator,
	grader Grader,
	logger *zap.Logger,
) *QuizService {
	return &QuizService{
		courses:      courses,
		progressRepo: progressRepo,
		storage:      storage,
		builder:      builder,
		generator:    generator,
		grader:       grader,
		logger:       logger,
	}
}

// StartTest builds a new session for step and makes it the user's active one,
// discarding any previous session.
func (s *QuizService) StartTest(ctx context.Context, userID int64, courseCode string, step entities.StepKey) (*Session, error) {
	entries, err := s.courses.Entries(ctx, courseCode)
	if err != nil {
		return nil, err
	}

	lastCompleted, err := s.progressRepo.GetLastCompleted(ctx, userID, courseCode)
	if err != nil {
		return nil, fmt.Errorf("get last completed step: %w", err)
	}

	items := s.builder.Build(entries, step, lastCompleted)
	if len(items) == 0 {
		return nil, ErrEmptyStep
	}

	session, err := NewSession(uuid.NewString(), step, items, entries, s.generator, s.grader)
	if err != nil {
		return nil, err
	}
	session.CourseCode = courseCode

	s.storage.Delete(userID)
	s.storage.Store(userID, session)

	s.logger.Info("quiz session started",
		zap.Int64("user_id", userID),
		zap.String("course", courseCode),
		zap.String("step", step.String()),
		zap.String("session_id", session.ID),
		zap.Int("items", session.Total()),
		zap.Int("words", session.WordCount()),
	)

	return session, nil
}

// Active returns the user's active session. A non-empty sessionID must match it,
// which rejects buttons of older sessions.
func (s *QuizService) Active(userID int64, sessionID string) (*Session, error) {
	session, ok := s.storage.Get(userID)
	if !ok {
		return nil, ErrNoActiveSession
	}
	if sessionID != "" && session.ID != sessionID {
		return nil, ErrSessionMismatch
	}
	return session, nil
}

// Answer submits in to the current question and grades it.
func (s *QuizService) Answer(userID int64, sessionID string, in entities.Input) (*Session, entities.GradeResult, error) {
	session, err := s.Active(userID, sessionID)
	if err != nil {
		return nil, entities.GradeResult{}, err
	}

	if err := session.Submit(in); err != nil {
		return nil, entities.GradeResult{}, err
	}

	res, err := session.Check()
	if err != nil {
		return nil, entities.GradeResult{}, err
	}

	return session, res, nil
}

// SelectPiece appends a reassembly piece to the active session's selection.
func (s *QuizService) SelectPiece(userID int64, sessionID string, piece int) (*Session, error) {
	session, err := s.Active(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.SelectPiece(piece); err != nil {
		return nil, err
	}
	return session, nil
}

// UndoPiece removes the last selected reassembly piece.
func (s *QuizService) UndoPiece(userID int64, sessionID string) (*Session, error) {
	session, err := s.Active(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.UndoPiece(); err != nil {
		return nil, err
	}
	return session, nil
}

// Check grades the selection built so far.
func (s *QuizService) Check(userID int64, sessionID string) (*Session, entities.GradeResult, error) {
	session, err := s.Active(userID, sessionID)
	if err != nil {
		return nil, entities.GradeResult{}, err
	}

	res, err := session.Check()
	if err != nil {
		return nil, entities.GradeResult{}, err
	}

	return session, res, nil
}

// Advance moves the active session forward. When it completes, the result is
// persisted, the session is discarded and the stored result is returned.
func (s *QuizService) Advance(ctx context.Context, userID int64, sessionID string) (*Session, *entities.QuizResult, error) {
	session, err := s.Active(userID, sessionID)
	if err != nil {
		return nil, nil, err
	}

	if err := session.Advance(); err != nil {
		if errors.Is(err, ErrMalformedContent) {
			s.storage.Delete(userID)
		}
		return nil, nil, err
	}

	if session.Status() != StatusComplete {
		return session, nil, nil
	}

	result, err := s.complete(ctx, userID, session)
	if err != nil {
		return nil, nil, err
	}

	return session, result, nil
}

// Abandon discards the user's active session.
func (s *QuizService) Abandon(userID int64) {
	s.storage.Delete(userID)
}

func (s *QuizService) complete(ctx context.Context, userID int64, session *Session) (*entities.QuizResult, error) {
	defer s.storage.Delete(userID)

	res, err := session.Result()
	if err != nil {
		return nil, err
	}

	entries, err := s.courses.Entries(ctx, session.CourseCode)
	if err != nil {
		return nil, err
	}

	lastCompleted, err := s.progressRepo.GetLastCompleted(ctx, userID, session.CourseCode)
	if err != nil {
		return nil, fmt.Errorf("get last completed step: %w", err)
	}

	var advanceTo *entities.StepKey
	if isUnreviewed(entries, res.Step, lastCompleted) {
		step := res.Step
		advanceTo = &step
	}

	result := entities.NewQuizResult(userID, session.CourseCode, res.Step, res.CorrectCount, res.TotalItems)
	if err := s.progressRepo.SaveCompletion(ctx, result, advanceTo); err != nil {
		return nil, fmt.Errorf("save completion: %w", err)
	}

	s.logger.Info("quiz session completed",
		zap.Int64("user_id", userID),
		zap.String("course", session.CourseCode),
		zap.String("step", res.Step.String()),
		zap.Int("correct", res.CorrectCount),
		zap.Int("total", res.TotalItems),
		zap.Bool("step_advanced", advanceTo != nil),
	)

	return result, nil
}
