package handler

import (
	"context"
	"errors"
	"net/http"

	"realestate-agent/internal/model"
	"realestate-agent/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// ChatService is the chat business logic used by ChatHandler
type ChatService interface {
	Chat(ctx context.Context, req model.ChatRequest, userID *int64) (*model.ChatResponse, error)
	History(ctx context.Context, sessionID string) ([]model.Conversation, error)
	Sessions(ctx context.Context, userID int64) ([]model.ChatSession, error)
	Reset(ctx context.Context, sessionID string) error
}

// ChatHandler handles chat-related HTTP requests
type ChatHandler struct {
	chatService ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Chat handles POST /api/v1/chat
func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if missingMessage(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message cannot be empty"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.chatService.Chat(c.Request.Context(), req, userID(c))
	if err != nil {
		if errors.Is(err, service.ErrEmptyMessage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message cannot be empty"})
			return
		}
		log.Error().Err(err).Msg("Chat failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error processing chat message"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Conversations handles GET /api/v1/conversations/:session_id
func (h *ChatHandler) Conversations(c *gin.Context) {
	conversations, err := h.chatService.History(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch conversation history")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching conversation history"})
		return
	}
	c.JSON(http.StatusOK, conversations)
}

// Reset handles POST /api/v1/sessions/:session_id/reset
func (h *ChatHandler) Reset(c *gin.Context) {
	sessionID := c.Param("session_id")
	if err := h.chatService.Reset(c.Request.Context(), sessionID); err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("Failed to reset session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error resetting session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session_id": sessionID, "status": "reset"})
}

// Sessions handles GET /api/v1/chat-sessions. Requires RequireAuth.
func (h *ChatHandler) Sessions(c *gin.Context) {
	id := userID(c)
	if id == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	sessions, err := h.chatService.Sessions(c.Request.Context(), *id)
	if err != nil {
		log.Error().Err(err).Int64("user_id", *id).Msg("Failed to fetch chat sessions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching chat sessions"})
		return
	}
	c.JSON(http.StatusOK, model.ChatSessionsResponse{Sessions: sessions})
}

// missingMessage reports whether the bind failed only on the required message
func missingMessage(err error) bool {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return false
	}
	for _, fe := range verrs {
		if fe.Field() != "Message" || fe.Tag() != "required" {
			return false
		}
	}
	return len(verrs) > 0
}
