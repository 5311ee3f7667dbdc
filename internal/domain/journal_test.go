package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestJournalRecord_Validate(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name    string
		record  JournalRecord
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid record should pass",
			record: JournalRecord{
				ID:     uuid.New(),
				UserID: userID,
				Date:   "2024-03-15",
				Psychology: PsychologySnapshot{
					FearGreedIndex: 55,
				},
			},
			wantErr: false,
		},
		{
			name: "record without user should fail",
			record: JournalRecord{
				ID:   uuid.New(),
				Date: "2024-03-15",
			},
			wantErr: true,
			errMsg:  "must belong to a user",
		},
		{
			name: "malformed date should fail",
			record: JournalRecord{
				ID:     uuid.New(),
				UserID: userID,
				Date:   "15/03/2024",
			},
			wantErr: true,
			errMsg:  "YYYY-MM-DD",
		},
		{
			name: "empty date should fail",
			record: JournalRecord{
				ID:     uuid.New(),
				UserID: userID,
				Date:   "",
			},
			wantErr: true,
			errMsg:  "YYYY-MM-DD",
		},
		{
			name: "fear & greed index above 100 should fail",
			record: JournalRecord{
				ID:     uuid.New(),
				UserID: userID,
				Date:   "2024-03-15",
				Psychology: PsychologySnapshot{
					FearGreedIndex: 101,
				},
			},
			wantErr: true,
			errMsg:  "between 0 and 100",
		},
		{
			name: "negative holdings should pass (not validated)",
			record: JournalRecord{
				ID:     uuid.New(),
				UserID: userID,
				Date:   "2024-03-15",
				ForeignStocks: []HoldingLine{
					{Symbol: "TSLA", Quantity: decimal.NewFromInt(-3), UnitPrice: decimal.NewFromInt(200)},
				},
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUserProfile_Validate(t *testing.T) {
	tests := []struct {
		name    string
		profile UserProfile
		wantErr bool
	}{
		{
			name: "valid profile should pass",
			profile: UserProfile{
				ID:       uuid.New(),
				UserID:   uuid.New(),
				Nickname: "value-investor-92",
				IsPublic: true,
			},
			wantErr: false,
		},
		{
			name: "profile without user should fail",
			profile: UserProfile{
				ID:       uuid.New(),
				Nickname: "value-investor-92",
			},
			wantErr: true,
		},
		{
			name: "profile without nickname should fail",
			profile: UserProfile{
				ID:     uuid.New(),
				UserID: uuid.New(),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
