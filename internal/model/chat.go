package model

import "realestate-agent/internal/agent"

// ChatRequest is the body of POST /chat
type ChatRequest struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"session_id,omitempty"`
	Language  string `json:"language,omitempty"` // "auto" or empty to detect
}

// ChatResponse is the reply to a chat message
type ChatResponse struct {
	Response    string             `json:"response"`
	Language    string             `json:"language"`
	SessionID   string             `json:"session_id"`
	Timestamp   string             `json:"timestamp"`
	Source      string             `json:"source"`
	Preferences *agent.Preferences `json:"preferences,omitempty"`
}

// ChatSessionsResponse wraps the session list of a user
type ChatSessionsResponse struct {
	Sessions []ChatSession `json:"sessions"`
}
