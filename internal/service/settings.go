package service

import (
	"context"
	"errors"

	"github.com/aliskhannn/stepquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/stepquiz-bot/internal/infra/postgres/repository"
)

type SettingsService struct {
	repository SettingsRepository
}

func NewSettingsService(repository SettingsRepository) *SettingsService {
	return &SettingsService{repository: repository}
}

func (s *SettingsService) GetOrCreate(ctx context.Context, userID int64) (*entities.UserSettings, error) {
	settings, err := s.repository.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrSettingsNotFound) {
			// Create default settings.
			if err := s.repository.Create(ctx, userID); err != nil {
				return nil, err
			}
			// Retrieve newly created settings.
			return s.repository.GetByUserID(ctx, userID)
		}
		return nil, err
	}

	return settings, nil
}

// SetCurrentCourse selects the course the user is studying.
func (s *SettingsService) SetCurrentCourse(ctx context.Context, userID int64, courseCode string) error {
	if _, err := s.GetOrCreate(ctx, userID); err != nil {
		return err
	}
	return s.repository.UpdateCurrentCourse(ctx, userID, courseCode)
}
