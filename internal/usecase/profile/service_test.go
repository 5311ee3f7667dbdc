package profile

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/minsukang/investlog-backend/internal/domain"
)

// MockProfileRepository is a mock implementation of ProfileRepository for testing
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *domain.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) Update(ctx context.Context, profile *domain.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockProfileRepository) ListPublic(ctx context.Context, limit int) ([]*domain.UserProfile, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.UserProfile), args.Error(1)
}

func (m *MockProfileRepository) SearchByNickname(ctx context.Context, nickname string, limit int) ([]*domain.UserProfile, error) {
	args := m.Called(ctx, nickname, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.UserProfile), args.Error(1)
}

func TestUpsert_CreatesOnFirstSave(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProfileRepository)
	service := NewService(mockRepo)

	userID := uuid.New()
	mockRepo.On("GetByUserID", ctx, userID).Return(nil, domain.ErrNotFound)
	mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.UserProfile")).Return(nil)

	profile, err := service.Upsert(ctx, userID, Input{Nickname: "quant-kim", IsPublic: true})

	require.NoError(t, err)
	assert.Equal(t, userID, profile.UserID)
	assert.Equal(t, "quant-kim", profile.Nickname)
	assert.NotEqual(t, uuid.Nil, profile.ID)

	mockRepo.AssertExpectations(t)
}

func TestUpsert_UpdatesExisting(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProfileRepository)
	service := NewService(mockRepo)

	userID := uuid.New()
	existing := &domain.UserProfile{
		ID:       uuid.New(),
		UserID:   userID,
		Nickname: "old-nick",
		IsPublic: false,
	}

	mockRepo.On("GetByUserID", ctx, userID).Return(existing, nil)
	mockRepo.On("Update", ctx, mock.AnythingOfType("*domain.UserProfile")).Return(nil)

	profile, err := service.Upsert(ctx, userID, Input{Nickname: "new-nick", IsPublic: true})

	require.NoError(t, err)
	assert.Equal(t, existing.ID, profile.ID)
	assert.Equal(t, "new-nick", profile.Nickname)
	assert.True(t, profile.IsPublic)

	mockRepo.AssertExpectations(t)
}

func TestUpsert_EmptyNicknameRejected(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProfileRepository)
	service := NewService(mockRepo)

	userID := uuid.New()
	mockRepo.On("GetByUserID", ctx, userID).Return(nil, domain.ErrNotFound)

	_, err := service.Upsert(ctx, userID, Input{})

	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "Create")
}
