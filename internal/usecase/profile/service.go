package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/minsukang/investlog-backend/internal/domain"
)

// Input carries the user-editable profile fields.
type Input struct {
	Nickname    string
	DisplayName string
	Bio         string
	IsPublic    bool
}

// Service handles user profile operations
type Service struct {
	ProfileRepo domain.ProfileRepository
}

// NewService creates a new profile Service instance
func NewService(profileRepo domain.ProfileRepository) *Service {
	return &Service{ProfileRepo: profileRepo}
}

// Get retrieves the user's profile.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error) {
	return s.ProfileRepo.GetByUserID(ctx, userID)
}

// Upsert creates the user's profile on first save and updates it afterwards.
func (s *Service) Upsert(ctx context.Context, userID uuid.UUID, input Input) (*domain.UserProfile, error) {
	now := time.Now()

	existing, err := s.ProfileRepo.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		existing.Nickname = input.Nickname
		existing.DisplayName = input.DisplayName
		existing.Bio = input.Bio
		existing.IsPublic = input.IsPublic
		existing.UpdatedAt = now

		if err := existing.Validate(); err != nil {
			return nil, err
		}
		if err := s.ProfileRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil

	case errors.Is(err, domain.ErrNotFound):
		created := &domain.UserProfile{
			ID:          uuid.New(),
			UserID:      userID,
			Nickname:    input.Nickname,
			DisplayName: input.DisplayName,
			Bio:         input.Bio,
			IsPublic:    input.IsPublic,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := created.Validate(); err != nil {
			return nil, err
		}
		if err := s.ProfileRepo.Create(ctx, created); err != nil {
			return nil, err
		}
		return created, nil

	default:
		return nil, err
	}
}
