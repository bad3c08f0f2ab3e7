package service

import "errors"

var (
	// ErrEmptyStep means the step has no word or sentence entries to test.
	ErrEmptyStep = errors.New("nothing to test in this step")

	// ErrMalformedContent means a course row lacks data a question requires.
	ErrMalformedContent = errors.New("malformed course content")

	// ErrInvalidTransition means a session operation was called in the wrong state.
	ErrInvalidTransition = errors.New("invalid session transition")

	// ErrNotGradable means a flashcard was submitted for grading.
	ErrNotGradable = errors.New("question is not gradable")

	// ErrPieceUsed means a reassembly piece was selected twice.
	ErrPieceUsed = errors.New("piece already selected")

	ErrCourseNotFound  = errors.New("course not found")
	ErrStepNotFound    = errors.New("step not found")
	ErrNoActiveSession = errors.New("no active quiz session")
	ErrSessionMismatch = errors.New("quiz session is no longer active")
)
