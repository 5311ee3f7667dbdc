package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// UserProfile represents a user's public-facing profile.
// IsPublic controls whether other users can find this user's journals through
// the public search.
type UserProfile struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Nickname    string
	DisplayName string
	Bio         string
	IsPublic    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate ensures the profile adheres to domain rules.
func (p *UserProfile) Validate() error {
	if p.UserID == uuid.Nil {
		return errors.New("profile must belong to a user")
	}

	if p.Nickname == "" {
		return errors.New("profile nickname cannot be empty")
	}

	return nil
}
