package storage

import (
	"sync"

	"github.com/aliskhannn/stepquiz-bot/internal/service"
)

// QuizStorage provides in-memory storage for active quiz sessions by user ID.
type QuizStorage struct {
	mu       sync.RWMutex
	sessions map[int64]*service.Session
}

// NewQuizStorage creates a new QuizStorage.
func NewQuizStorage() *QuizStorage {
	return &QuizStorage{
		sessions: make(map[int64]*service.Session),
	}
}

// Store saves the active session of a user, replacing any previous one.
func (s *QuizStorage) Store(userID int64, session *service.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = session
}

// Get retrieves the active session of a user.
func (s *QuizStorage) Get(userID int64) (*service.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[userID]
	return session, ok
}

// Delete removes the active session of a user.
func (s *QuizStorage) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}
