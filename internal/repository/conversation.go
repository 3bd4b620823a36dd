package repository

import (
	"context"
	"fmt"

	"realestate-agent/internal/model"
)

// SaveExchange persists one chat turn in a single transaction: the
// conversation row, the session preference upsert and the chat session upsert.
func (r *PostgresRepository) SaveExchange(ctx context.Context, rec model.ExchangeRecord) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	c := rec.Conversation
	_, err = tx.ExecContext(ctx, `
		INSERT INTO conversations (session_id, user_id, user_message, agent_response, language, conversation_data)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, c.SessionID, c.UserID, c.UserMessage, c.AgentResponse, c.Language, c.ConversationData)
	if err != nil {
		return fmt.Errorf("failed to insert conversation: %w", err)
	}

	if p := rec.Preference; p != nil {
		// Fields missing from this turn keep their stored value.
		_, err = tx.ExecContext(ctx, `
			INSERT INTO user_preferences (session_id, budget_min, budget_max, preferred_locations,
				property_types, bedrooms, amenities, language)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (session_id) DO UPDATE SET
				budget_min = COALESCE(EXCLUDED.budget_min, user_preferences.budget_min),
				budget_max = COALESCE(EXCLUDED.budget_max, user_preferences.budget_max),
				preferred_locations = COALESCE(EXCLUDED.preferred_locations, user_preferences.preferred_locations),
				property_types = COALESCE(EXCLUDED.property_types, user_preferences.property_types),
				bedrooms = COALESCE(EXCLUDED.bedrooms, user_preferences.bedrooms),
				amenities = COALESCE(EXCLUDED.amenities, user_preferences.amenities),
				language = EXCLUDED.language,
				updated_at = NOW()
		`, p.SessionID, p.BudgetMin, p.BudgetMax, p.PreferredLocations,
			p.PropertyTypes, p.Bedrooms, p.Amenities, p.Language)
		if err != nil {
			return fmt.Errorf("failed to upsert preferences: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO chat_sessions (session_id, user_id, title, language, message_count, is_active)
		VALUES ($1, $2, $3, $4, 1, true)
		ON CONFLICT (session_id) DO UPDATE SET
			user_id = COALESCE(chat_sessions.user_id, EXCLUDED.user_id),
			language = EXCLUDED.language,
			message_count = chat_sessions.message_count + 1,
			is_active = true,
			updated_at = NOW()
	`, c.SessionID, c.UserID, rec.SessionTitle, c.Language)
	if err != nil {
		return fmt.Errorf("failed to upsert chat session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit exchange: %w", err)
	}
	return nil
}

// ListConversations returns the persisted exchanges of a session, oldest first
func (r *PostgresRepository) ListConversations(ctx context.Context, sessionID string) ([]model.Conversation, error) {
	conversations := []model.Conversation{}
	err := r.db.SelectContext(ctx, &conversations, `
		SELECT id, session_id, user_id, user_message, agent_response, language, conversation_data, created_at
		FROM conversations
		WHERE session_id = $1
		ORDER BY created_at ASC, id ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return conversations, nil
}

// ListChatSessions returns the sessions of a user, most recently active first
func (r *PostgresRepository) ListChatSessions(ctx context.Context, userID int64) ([]model.ChatSession, error) {
	sessions := []model.ChatSession{}
	err := r.db.SelectContext(ctx, &sessions, `
		SELECT id, session_id, user_id, title, language, message_count, is_active, created_at, updated_at
		FROM chat_sessions
		WHERE user_id = $1
		ORDER BY COALESCE(updated_at, created_at) DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat sessions: %w", err)
	}
	return sessions, nil
}

// DeactivateChatSession marks a session inactive after a reset
func (r *PostgresRepository) DeactivateChatSession(ctx context.Context, sessionID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE chat_sessions SET is_active = false, updated_at = NOW() WHERE session_id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("failed to deactivate chat session: %w", err)
	}
	return nil
}
