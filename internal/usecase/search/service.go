package search

import (
	"context"

	"github.com/google/uuid"

	"github.com/minsukang/investlog-backend/internal/domain"
)

const (
	maxResults  = 50
	maxProfiles = 10
)

// Result pairs one journal record with its author's profile.
type Result struct {
	Journal *domain.JournalRecord
	Profile *domain.UserProfile
}

// Input carries the search parameters. RequesterID may be uuid.Nil for an
// anonymous search.
type Input struct {
	Nickname    string
	RequesterID uuid.UUID
}

// Service handles public journal search operations
type Service struct {
	JournalRepo domain.JournalRepository
	ProfileRepo domain.ProfileRepository
}

// NewService creates a new search Service instance
func NewService(journalRepo domain.JournalRepository, profileRepo domain.ProfileRepository) *Service {
	return &Service{
		JournalRepo: journalRepo,
		ProfileRepo: profileRepo,
	}
}

// PublicJournals searches journals of public users, newest first, capped at
// 50 results. With an empty nickname it browses all public profiles. With a
// nickname it matches profiles case-insensitively; the requester's own
// journals are included even when their profile is private, so users can
// always find themselves.
func (s *Service) PublicJournals(ctx context.Context, input Input) ([]Result, error) {
	profiles, err := s.findProfiles(ctx, input)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, maxResults)
	for _, profile := range profiles {
		records, err := s.JournalRepo.ListByUser(ctx, profile.UserID)
		if err != nil {
			return nil, err
		}
		// ListByUser is ascending; newest first for search results.
		for i := len(records) - 1; i >= 0; i-- {
			if len(results) == maxResults {
				return results, nil
			}
			results = append(results, Result{Journal: records[i], Profile: profile})
		}
	}
	return results, nil
}

func (s *Service) findProfiles(ctx context.Context, input Input) ([]*domain.UserProfile, error) {
	if input.Nickname == "" {
		return s.ProfileRepo.ListPublic(ctx, maxProfiles)
	}

	matched, err := s.ProfileRepo.SearchByNickname(ctx, input.Nickname, maxProfiles)
	if err != nil {
		return nil, err
	}

	visible := make([]*domain.UserProfile, 0, len(matched))
	for _, profile := range matched {
		if profile.IsPublic || profile.UserID == input.RequesterID {
			visible = append(visible, profile)
		}
	}
	return visible, nil
}
