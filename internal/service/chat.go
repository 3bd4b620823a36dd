package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"realestate-agent/internal/agent"
	"realestate-agent/internal/llm"
	"realestate-agent/internal/model"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/rs/zerolog/log"
)

const (
	DefaultPropertyContextLimit = 10
	sessionTitleRunes           = 50
)

// ErrEmptyMessage is returned for a blank chat message
var ErrEmptyMessage = errors.New("message cannot be empty")

// ChatRepository is the persistence used by ChatService
type ChatRepository interface {
	ListAvailableProperties(ctx context.Context, now time.Time, limit int) ([]model.Property, error)
	NearestProperties(ctx context.Context, vec pgvector.Vector, now time.Time, limit int) ([]model.Property, error)
	SaveExchange(ctx context.Context, rec model.ExchangeRecord) error
	ListConversations(ctx context.Context, sessionID string) ([]model.Conversation, error)
	ListChatSessions(ctx context.Context, userID int64) ([]model.ChatSession, error)
	DeactivateChatSession(ctx context.Context, sessionID string) error
}

// Assistant answers chat turns and owns their short-term memory
type Assistant interface {
	Handle(ctx context.Context, req agent.Request) agent.Result
	ClearSession(ctx context.Context, sessionID string) error
}

// ChatService handles chat business logic
type ChatService struct {
	repo         ChatRepository
	assistant    Assistant
	embedder     llm.Embedder
	contextLimit int
	now          func() time.Time
	newID        func() string
}

// NewChatService creates a new chat service. embedder may be nil, in which
// case the model sees the currently available listings.
func NewChatService(repo ChatRepository, assistant Assistant, embedder llm.Embedder, contextLimit int) *ChatService {
	if contextLimit <= 0 {
		contextLimit = DefaultPropertyContextLimit
	}
	return &ChatService{
		repo:         repo,
		assistant:    assistant,
		embedder:     embedder,
		contextLimit: contextLimit,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

// Chat answers one message. userID links the exchange to an account when set.
func (s *ChatService) Chat(ctx context.Context, req model.ChatRequest, userID *int64) (*model.ChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = s.newID()
	}

	res := s.assistant.Handle(ctx, agent.Request{
		SessionID: sessionID,
		Message:   message,
		Language:  req.Language,
		Listings:  model.ToListings(s.contextListings(ctx, message)),
	})

	s.persist(ctx, userID, message, res)

	var prefs *agent.Preferences
	if !res.Preferences.IsEmpty() {
		prefs = &res.Preferences
	}

	return &model.ChatResponse{
		Response:    res.Response,
		Language:    string(res.Language),
		SessionID:   res.SessionID,
		Timestamp:   s.now().UTC().Format(time.RFC3339),
		Source:      string(res.Source),
		Preferences: prefs,
	}, nil
}

// contextListings picks the listings shown to the model. Failures degrade to
// fewer listings, never to a failed turn.
func (s *ChatService) contextListings(ctx context.Context, message string) []model.Property {
	if s.embedder != nil {
		props, err := s.nearest(ctx, message)
		if err != nil {
			log.Warn().Err(err).Msg("Semantic listing lookup failed, using available listings")
		} else if len(props) > 0 {
			return props
		}
	}

	props, err := s.repo.ListAvailableProperties(ctx, s.now(), s.contextLimit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load available listings")
		return nil
	}
	return props
}

func (s *ChatService) nearest(ctx context.Context, message string) ([]model.Property, error) {
	vecs, err := s.embedder.Embed(ctx, []string{message})
	if err != nil {
		return nil, err
	}
	if len(vecs) != 1 {
		return nil, errors.New("embedder returned no vector")
	}
	return s.repo.NearestProperties(ctx, pgvector.NewVector(vecs[0]), s.now(), s.contextLimit)
}

func (s *ChatService) persist(ctx context.Context, userID *int64, message string, res agent.Result) {
	rec := model.ExchangeRecord{
		Conversation: model.Conversation{
			SessionID:     res.SessionID,
			UserID:        userID,
			UserMessage:   message,
			AgentResponse: res.Response,
			Language:      string(res.Language),
			ConversationData: model.JSONMap{
				"source":      string(res.Source),
				"preferences": res.Preferences,
			},
		},
		SessionTitle: sessionTitle(message),
	}
	if !res.Preferences.IsEmpty() {
		pref := model.NewUserPreference(res.SessionID, res.Language, res.Preferences)
		rec.Preference = &pref
	}

	if err := s.repo.SaveExchange(ctx, rec); err != nil {
		log.Error().Err(err).Str("session_id", res.SessionID).Msg("Failed to persist exchange")
	}
}

// History returns the persisted exchanges of a session
func (s *ChatService) History(ctx context.Context, sessionID string) ([]model.Conversation, error) {
	return s.repo.ListConversations(ctx, sessionID)
}

// Sessions returns the chat sessions of a user
func (s *ChatService) Sessions(ctx context.Context, userID int64) ([]model.ChatSession, error) {
	return s.repo.ListChatSessions(ctx, userID)
}

// Reset forgets the short-term memory of a session. Persisted history stays.
func (s *ChatService) Reset(ctx context.Context, sessionID string) error {
	if err := s.assistant.ClearSession(ctx, sessionID); err != nil {
		return err
	}
	if err := s.repo.DeactivateChatSession(ctx, sessionID); err != nil {
		log.Warn().Err(err).Str("session_id", sessionID).Msg("Failed to deactivate chat session")
	}
	return nil
}

func sessionTitle(message string) string {
	if utf8.RuneCountInString(message) <= sessionTitleRunes {
		return message
	}
	runes := []rune(message)
	return strings.TrimSpace(string(runes[:sessionTitleRunes])) + "..."
}
