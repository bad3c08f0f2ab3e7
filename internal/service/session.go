package service

import (
	"fmt"

	"github.com/aliskhannn/stepquiz-bot/internal/domain/entities"
)

// SessionStatus is the interaction state of a quiz session.
type SessionStatus string

const (
	StatusAwaitingInput SessionStatus = "awaiting_input" // question shown, waiting for an answer
	StatusRevealed      SessionStatus = "revealed"       // answer graded, feedback shown
	StatusComplete      SessionStatus = "complete"       // last question acknowledged
)

// Generator produces the question for a session position.
type Generator interface {
	Generate(item entities.TestItem, course []entities.CourseEntry) (entities.Question, error)
}

// Grader grades a submission against a question.
type Grader interface {
	Grade(q entities.Question, in entities.Input) (entities.GradeResult, error)
}

// SessionResult is reported once a session is complete.
type SessionResult struct {
	Step         entities.StepKey
	CorrectCount int
	TotalItems   int
}

// Session is the state of one step test. It is owned by a single learner and is not
// safe for concurrent use.
//
// Questions are generated once when a position is entered and kept for the
// session's lifetime.
type Session struct {
	ID         string
	CourseCode string
	Step       entities.StepKey

	items     []entities.TestItem
	wordCount int
	course    []entities.CourseEntry
	questions []*entities.Question

	position     int
	status       SessionStatus
	selected     entities.Input
	correctCount int
	lastGrade    entities.GradeResult

	generator Generator
	grader    Grader
}

// NewSession creates a session over items and generates the first question.
// items must be non-empty and ordered words first.
func NewSession(
	id string,
	step entities.StepKey,
	items []entities.TestItem,
	course []entities.CourseEntry,
	generator Generator,
	grader Grader,
) (*Session, error) {
	if len(items) == 0 {
		return nil, ErrEmptyStep
	}

	s := &Session{
		ID:        id,
		Step:      step,
		items:     items,
		wordCount: wordCount(items),
		course:    course,
		questions: make([]*entities.Question, len(items)),
		status:    StatusAwaitingInput,
		generator: generator,
		grader:    grader,
	}

	if _, err := s.questionAt(0); err != nil {
		return nil, err
	}

	return s, nil
}

// Status returns the current state.
func (s *Session) Status() SessionStatus { return s.status }

// Position returns the 0-based index of the current item.
func (s *Session) Position() int { return s.position }

// Total returns the number of items in the session.
func (s *Session) Total() int { return len(s.items) }

// WordCount returns the number of leading flashcard items.
func (s *Session) WordCount() int { return s.wordCount }

// CorrectCount returns the number of correctly graded answers so far.
func (s *Session) CorrectCount() int { return s.correctCount }

// Selected returns the current selection.
func (s *Session) Selected() entities.Input { return s.selected }

// LastGrade returns the verdict of the current question while revealed.
func (s *Session) LastGrade() entities.GradeResult { return s.lastGrade }

// InFlashcardRegion reports whether the current position shows a word flashcard.
func (s *Session) InFlashcardRegion() bool { return s.position < s.wordCount }

// Current returns the question at the current position.
func (s *Session) Current() (entities.Question, error) {
	if s.status == StatusComplete {
		return entities.Question{}, fmt.Errorf("current in %s: %w", s.status, ErrInvalidTransition)
	}
	q := s.questions[s.position]
	if q == nil {
		return entities.Question{}, fmt.Errorf("question %d not generated: %w", s.position, ErrInvalidTransition)
	}
	return *q, nil
}

// Submit stores the learner's selection for the current question.
func (s *Session) Submit(in entities.Input) error {
	if err := s.requireGradable("submit"); err != nil {
		return err
	}
	s.selected = in
	return nil
}

// SelectPiece appends piece i of the current reassembly question to the selection.
func (s *Session) SelectPiece(i int) error {
	if err := s.requireGradable("select piece"); err != nil {
		return err
	}

	q := s.questions[s.position]
	if !q.Variant.IsReassembly() || i < 0 || i >= len(q.Pieces) {
		return fmt.Errorf("piece %d for %s: %w", i, q.Variant, ErrInvalidTransition)
	}
	for _, p := range s.selected.Pieces {
		if p.Index == i {
			return ErrPieceUsed
		}
	}

	pieces := append(append([]entities.PieceRef(nil), s.selected.Pieces...), entities.PieceRef{Index: i, Text: q.Pieces[i]})
	return s.Submit(entities.Input{Pieces: pieces})
}

// UndoPiece removes the last selected reassembly piece.
func (s *Session) UndoPiece() error {
	if err := s.requireGradable("undo piece"); err != nil {
		return err
	}
	if n := len(s.selected.Pieces); n > 0 {
		s.selected = entities.Input{Pieces: s.selected.Pieces[:n-1]}
	}
	return nil
}

// Check grades the current selection and reveals the verdict.
func (s *Session) Check() (entities.GradeResult, error) {
	if err := s.requireGradable("check"); err != nil {
		return entities.GradeResult{}, err
	}

	res, err := s.grader.Grade(*s.questions[s.position], s.selected)
	if err != nil {
		return entities.GradeResult{}, err
	}

	if res.IsCorrect {
		s.correctCount++
	}
	s.lastGrade = res
	s.status = StatusRevealed

	return res, nil
}

// Advance moves to the next position. Flashcards advance straight from AwaitingInput;
// graded questions must be revealed first. The next question is generated before the
// state changes, so a content error leaves the session where it was.
func (s *Session) Advance() error {
	switch {
	case s.status == StatusRevealed:
	case s.status == StatusAwaitingInput && s.InFlashcardRegion():
	default:
		return fmt.Errorf("advance in %s: %w", s.status, ErrInvalidTransition)
	}

	next := s.position + 1
	if next < len(s.items) {
		if _, err := s.questionAt(next); err != nil {
			return err
		}
	}

	s.position = next
	s.selected = entities.Input{}
	s.lastGrade = entities.GradeResult{}

	if s.position == len(s.items) {
		s.status = StatusComplete
		return nil
	}
	s.status = StatusAwaitingInput

	return nil
}

// Result returns the final score. It is only available in the terminal state.
func (s *Session) Result() (SessionResult, error) {
	if s.status != StatusComplete {
		return SessionResult{}, fmt.Errorf("result in %s: %w", s.status, ErrInvalidTransition)
	}
	return SessionResult{
		Step:         s.Step,
		CorrectCount: s.correctCount,
		TotalItems:   len(s.items),
	}, nil
}

func (s *Session) requireGradable(op string) error {
	if s.status != StatusAwaitingInput {
		return fmt.Errorf("%s in %s: %w", op, s.status, ErrInvalidTransition)
	}
	if s.InFlashcardRegion() {
		return fmt.Errorf("%s on flashcard: %w", op, ErrInvalidTransition)
	}
	return nil
}

// questionAt returns the cached question at pos, generating it on first use.
func (s *Session) questionAt(pos int) (*entities.Question, error) {
	if q := s.questions[pos]; q != nil {
		return q, nil
	}

	q, err := s.generator.Generate(s.items[pos], s.course)
	if err != nil {
		return nil, fmt.Errorf("generate question %d: %w", pos, err)
	}
	s.questions[pos] = &q

	return &q, nil
}
