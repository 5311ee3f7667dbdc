package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/minsukang/investlog-backend/internal/domain"
)

// profileRepository implements domain.ProfileRepository
type profileRepository struct {
	db *DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *DB) domain.ProfileRepository {
	return &profileRepository{db: db}
}

// Create creates a new user profile
func (r *profileRepository) Create(ctx context.Context, profile *domain.UserProfile) error {
	query := `
		INSERT INTO user_profiles (id, user_id, nickname, display_name, bio, is_public, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		profile.ID,
		profile.UserID,
		profile.Nickname,
		profile.DisplayName,
		profile.Bio,
		profile.IsPublic,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user profile: %w", err)
	}

	return nil
}

// Update replaces an existing user profile
func (r *profileRepository) Update(ctx context.Context, profile *domain.UserProfile) error {
	query := `
		UPDATE user_profiles
		SET nickname = $2, display_name = $3, bio = $4, is_public = $5, updated_at = $6
		WHERE user_id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		profile.UserID,
		profile.Nickname,
		profile.DisplayName,
		profile.Bio,
		profile.IsPublic,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update user profile: %w", err)
	}

	return requireRowsAffected(result)
}

// GetByUserID retrieves the profile of a user
func (r *profileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error) {
	query := `
		SELECT id, user_id, nickname, display_name, bio, is_public, created_at, updated_at
		FROM user_profiles
		WHERE user_id = $1
	`

	profile, err := scanProfile(r.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}

	return profile, nil
}

// ListPublic retrieves up to limit public profiles
func (r *profileRepository) ListPublic(ctx context.Context, limit int) ([]*domain.UserProfile, error) {
	query := `
		SELECT id, user_id, nickname, display_name, bio, is_public, created_at, updated_at
		FROM user_profiles
		WHERE is_public = TRUE
		ORDER BY updated_at DESC
		LIMIT $1
	`

	return r.queryProfiles(ctx, query, limit)
}

// SearchByNickname retrieves up to limit profiles whose nickname contains the
// given fragment, case-insensitive
func (r *profileRepository) SearchByNickname(ctx context.Context, nickname string, limit int) ([]*domain.UserProfile, error) {
	query := `
		SELECT id, user_id, nickname, display_name, bio, is_public, created_at, updated_at
		FROM user_profiles
		WHERE nickname ILIKE '%' || $1 || '%'
		ORDER BY updated_at DESC
		LIMIT $2
	`

	return r.queryProfiles(ctx, query, nickname, limit)
}

func (r *profileRepository) queryProfiles(ctx context.Context, query string, args ...interface{}) ([]*domain.UserProfile, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query user profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]*domain.UserProfile, 0)
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user profile: %w", err)
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user profiles: %w", err)
	}

	return profiles, nil
}

func scanProfile(row rowScanner) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Nickname,
		&profile.DisplayName,
		&profile.Bio,
		&profile.IsPublic,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
