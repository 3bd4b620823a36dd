package model

import (
	"time"

	"realestate-agent/internal/agent"
)

// Conversation is one persisted user/assistant exchange
type Conversation struct {
	ID               int64     `json:"id" db:"id"`
	SessionID        string    `json:"session_id" db:"session_id"`
	UserID           *int64    `json:"user_id,omitempty" db:"user_id"`
	UserMessage      string    `json:"user_message" db:"user_message"`
	AgentResponse    string    `json:"agent_response" db:"agent_response"`
	Language         string    `json:"language" db:"language"`
	ConversationData JSONMap   `json:"conversation_data,omitempty" db:"conversation_data"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// ChatSession summarises a conversation thread for the session list
type ChatSession struct {
	ID           int64      `json:"id" db:"id"`
	SessionID    string     `json:"session_id" db:"session_id"`
	UserID       *int64     `json:"user_id,omitempty" db:"user_id"`
	Title        string     `json:"title" db:"title"`
	Language     string     `json:"language" db:"language"`
	MessageCount int        `json:"message_count" db:"message_count"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// UserPreference is the latest known search criteria of a session
type UserPreference struct {
	ID                 int64      `json:"id" db:"id"`
	SessionID          string     `json:"session_id" db:"session_id"`
	BudgetMin          *float64   `json:"budget_min,omitempty" db:"budget_min"`
	BudgetMax          *float64   `json:"budget_max,omitempty" db:"budget_max"`
	PreferredLocations JSONArray  `json:"preferred_locations,omitempty" db:"preferred_locations"`
	PropertyTypes      JSONArray  `json:"property_types,omitempty" db:"property_types"`
	Bedrooms           *int       `json:"bedrooms,omitempty" db:"bedrooms"`
	Amenities          JSONArray  `json:"amenities,omitempty" db:"amenities"`
	Language           string     `json:"language" db:"language"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// NewUserPreference maps an extracted preference snapshot onto a row.
// Empty lists stay nil so an upsert leaves the stored value untouched.
func NewUserPreference(sessionID string, lang agent.Language, p agent.Preferences) UserPreference {
	return UserPreference{
		SessionID:          sessionID,
		BudgetMin:          p.BudgetMin,
		BudgetMax:          p.BudgetMax,
		PreferredLocations: nonEmpty(p.PreferredLocations),
		PropertyTypes:      nonEmpty(p.PropertyTypes),
		Bedrooms:           p.Bedrooms,
		Amenities:          nonEmpty(p.Amenities),
		Language:           string(lang),
	}
}

// ExchangeRecord is everything written after one chat turn
type ExchangeRecord struct {
	Conversation Conversation
	Preference   *UserPreference // nil when nothing was extracted
	SessionTitle string          // used when the chat session is first created
}

func nonEmpty(values []string) JSONArray {
	if len(values) == 0 {
		return nil
	}
	return JSONArray(values)
}
