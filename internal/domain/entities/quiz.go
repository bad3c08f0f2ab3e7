package entities

import "time"

// QuizResult is the outcome of a completed step test.
// It is handed to persistence once a session reaches its terminal state.
type QuizResult struct {
	ID           int64     // unique result ID
	UserID       int64     // user who took the test
	CourseCode   string    // course the step belongs to
	Step         StepKey   // tested step
	CorrectCount int       // number of correctly graded questions
	TotalItems   int       // number of items in the session, flashcards included
	CompletedAt  time.Time // timestamp when the last question was acknowledged
}

// NewQuizResult creates a result for the given user and course.
func NewQuizResult(userID int64, courseCode string, step StepKey, correct, total int) *QuizResult {
	return &QuizResult{
		UserID:       userID,
		CourseCode:   courseCode,
		Step:         step,
		CorrectCount: correct,
		TotalItems:   total,
		CompletedAt:  time.Now(),
	}
}

// StepProgress stores the last completed step of a user in a course.
type StepProgress struct {
	UserID        int64
	CourseCode    string
	LastCompleted StepKey
	UpdatedAt     time.Time
}
