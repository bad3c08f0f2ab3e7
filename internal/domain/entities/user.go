package entities

import "time"

// User represents bot user.
type User struct {
	ID           int64 // Telegram user ID
	ChatID       int64
	LanguageCode string
	CreatedAt    time.Time
}

func NewUser(id, chatID int64, languageCode string) *User {
	return &User{
		ID:           id,
		ChatID:       chatID,
		LanguageCode: languageCode,
		CreatedAt:    time.Now(),
	}
}
