package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned by repositories when the requested entity does not
// exist.
var ErrNotFound = errors.New("not found")

// ErrNotOwner is returned when a user attempts to read or mutate a journal
// record owned by someone else.
var ErrNotOwner = errors.New("journal record belongs to another user")

// JournalRepository defines the interface for journal persistence operations
type JournalRepository interface {
	// Create creates a new journal record
	Create(ctx context.Context, rec *JournalRecord) error

	// Update replaces an existing journal record
	Update(ctx context.Context, rec *JournalRecord) error

	// Delete removes a journal record owned by the given user
	// Returns ErrNotFound if no such record exists for that user
	Delete(ctx context.Context, id, userID uuid.UUID) error

	// GetByID retrieves a journal record by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*JournalRecord, error)

	// ListByUser retrieves all journal records of a user, ordered by date
	// ascending. An empty history yields an empty slice, not an error.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*JournalRecord, error)
}

// ProfileRepository defines the interface for user profile persistence operations
type ProfileRepository interface {
	// Create creates a new user profile
	Create(ctx context.Context, profile *UserProfile) error

	// Update replaces an existing user profile
	Update(ctx context.Context, profile *UserProfile) error

	// GetByUserID retrieves the profile of a user
	GetByUserID(ctx context.Context, userID uuid.UUID) (*UserProfile, error)

	// ListPublic retrieves up to limit public profiles
	ListPublic(ctx context.Context, limit int) ([]*UserProfile, error)

	// SearchByNickname retrieves up to limit profiles whose nickname contains
	// the given fragment (case-insensitive), public or not. Visibility
	// filtering is the caller's responsibility.
	SearchByNickname(ctx context.Context, nickname string, limit int) ([]*UserProfile, error)
}
