package postgres

import (
	"context"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS investment_journals (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL,
	date DATE NOT NULL,
	total_assets NUMERIC(20, 0) NOT NULL DEFAULT 0,
	evaluation NUMERIC(20, 4) NOT NULL DEFAULT 0,
	foreign_stocks JSONB NOT NULL DEFAULT '[]',
	domestic_stocks JSONB NOT NULL DEFAULT '[]',
	cryptocurrency JSONB NOT NULL DEFAULT '[]',
	cash JSONB NOT NULL DEFAULT '{}',
	trades TEXT NOT NULL DEFAULT '',
	market_issues TEXT NOT NULL DEFAULT '',
	memo TEXT NOT NULL DEFAULT '',
	psychology_check JSONB NOT NULL DEFAULT '{}',
	bull_market_checklist JSONB NOT NULL DEFAULT '[]',
	bear_market_checklist JSONB NOT NULL DEFAULT '[]',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_investment_journals_user_date ON investment_journals(user_id, date);

CREATE TABLE IF NOT EXISTS user_profiles (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL UNIQUE,
	nickname TEXT NOT NULL,
	display_name TEXT NOT NULL DEFAULT '',
	bio TEXT NOT NULL DEFAULT '',
	is_public BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_user_profiles_nickname ON user_profiles(nickname);
`

// EnsureSchema creates the tables and indexes if they do not exist yet.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
