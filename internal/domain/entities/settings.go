package entities

import (
	"time"
)

// UserSettings stores user-specific preferences.
type UserSettings struct {
	UserID        int64
	CurrentCourse *string // nullable, code of the selected course
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewUserSettings creates a new UserSettings instance with default values.
func NewUserSettings(userID int64) *UserSettings {
	now := time.Now()
	return &UserSettings{
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// HasCourse reports whether a current course is selected.
func (s *UserSettings) HasCourse() bool {
	return s != nil && s.CurrentCourse != nil && *s.CurrentCourse != ""
}
