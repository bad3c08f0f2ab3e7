package service

import (
	"context"

	"github.com/aliskhannn/stepquiz-bot/internal/domain/entities"
)

type UserService struct {
	repository UserRepository
}

func NewUserService(repository UserRepository) *UserService {
	return &UserService{repository: repository}
}

// EnsureUser stores the user, refreshing chat and language on repeat visits.
// It reports whether the user is new.
func (s *UserService) EnsureUser(ctx context.Context, userID, chatID int64, languageCode string) (bool, error) {
	user := entities.NewUser(userID, chatID, languageCode)
	return s.repository.Save(ctx, user)
}
