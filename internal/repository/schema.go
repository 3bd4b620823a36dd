package repository

import (
	"context"
	"fmt"
)

// schemaStatements returns the DDL for a database whose embeddings have dims
// dimensions. Every statement is idempotent.
func schemaStatements(dims int) []string {
	return []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			hashed_password TEXT NOT NULL DEFAULT '',
			is_oauth BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ
		)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS properties (
			id BIGSERIAL PRIMARY KEY,
			title TEXT,
			description TEXT,
			price DOUBLE PRECISION,
			location TEXT,
			property_type TEXT,
			bedrooms INTEGER,
			bathrooms INTEGER,
			area_sqft DOUBLE PRECISION,
			amenities JSONB NOT NULL DEFAULT '[]',
			images JSONB NOT NULL DEFAULT '[]',
			available_from TIMESTAMPTZ,
			embedding vector(%d),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ
		)`, dims),
		`CREATE INDEX IF NOT EXISTS idx_properties_location ON properties (location)`,
		`CREATE INDEX IF NOT EXISTS idx_properties_available_from ON properties (available_from)`,
		`CREATE TABLE IF NOT EXISTS conversations (
			id BIGSERIAL PRIMARY KEY,
			session_id TEXT NOT NULL,
			user_id BIGINT REFERENCES users(id) ON DELETE SET NULL,
			user_message TEXT NOT NULL,
			agent_response TEXT NOT NULL,
			language TEXT NOT NULL,
			conversation_data JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversations_session ON conversations (session_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS chat_sessions (
			id BIGSERIAL PRIMARY KEY,
			session_id TEXT NOT NULL UNIQUE,
			user_id BIGINT REFERENCES users(id) ON DELETE SET NULL,
			title TEXT NOT NULL DEFAULT '',
			language TEXT NOT NULL DEFAULT 'english',
			message_count INTEGER NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS idx_chat_sessions_user ON chat_sessions (user_id)`,
		`CREATE TABLE IF NOT EXISTS user_preferences (
			id BIGSERIAL PRIMARY KEY,
			session_id TEXT NOT NULL UNIQUE,
			budget_min DOUBLE PRECISION,
			budget_max DOUBLE PRECISION,
			preferred_locations JSONB,
			property_types JSONB,
			bedrooms INTEGER,
			amenities JSONB,
			language TEXT NOT NULL DEFAULT 'english',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ
		)`,
	}
}

// Migrate applies the schema in one transaction
func (r *PostgresRepository) Migrate(ctx context.Context, dims int) error {
	if dims <= 0 {
		return fmt.Errorf("invalid embedding dimensions: %d", dims)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range schemaStatements(dims) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema: %w", err)
	}
	return nil
}
