package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"realestate-agent/internal/config"
	"realestate-agent/internal/model"
	"realestate-agent/internal/repository"
	"realestate-agent/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeChat struct {
	lastReq    model.ChatRequest
	lastUserID *int64
	err        error
	reset      []string
	sessionsOf []int64
}

func (f *fakeChat) Chat(_ context.Context, req model.ChatRequest, userID *int64) (*model.ChatResponse, error) {
	f.lastReq = req
	f.lastUserID = userID
	if f.err != nil {
		return nil, f.err
	}
	return &model.ChatResponse{Response: "hello", Language: "english", SessionID: "s1", Source: "model"}, nil
}

func (f *fakeChat) History(_ context.Context, sessionID string) ([]model.Conversation, error) {
	return []model.Conversation{{SessionID: sessionID, UserMessage: "hi", AgentResponse: "hello"}}, nil
}

func (f *fakeChat) Sessions(_ context.Context, userID int64) ([]model.ChatSession, error) {
	f.sessionsOf = append(f.sessionsOf, userID)
	return []model.ChatSession{{SessionID: "s1", Title: "villa"}}, nil
}

func (f *fakeChat) Reset(_ context.Context, sessionID string) error {
	f.reset = append(f.reset, sessionID)
	return nil
}

type fakeProperties struct {
	created []model.PropertyCreateRequest
	filter  model.PropertyFilter
	batch   model.EmbeddingBatchResponse
}

func (f *fakeProperties) Create(_ context.Context, req model.PropertyCreateRequest) (*model.Property, error) {
	f.created = append(f.created, req)
	return &model.Property{ID: 1, Title: &req.Title}, nil
}

func (f *fakeProperties) Get(_ context.Context, id int64) (*model.Property, error) {
	if id != 1 {
		return nil, repository.ErrNotFound
	}
	title := "Marina Loft"
	return &model.Property{ID: 1, Title: &title}, nil
}

func (f *fakeProperties) List(_ context.Context, filter model.PropertyFilter) ([]model.Property, int, error) {
	f.filter = filter
	return []model.Property{{ID: 1}}, 1, nil
}

func (f *fakeProperties) UpdateEmbeddings(_ context.Context, items []model.EmbeddingItem) model.EmbeddingBatchResponse {
	return f.batch
}

type fakeAuth struct{}

func (fakeAuth) Signup(_ context.Context, req model.SignupRequest) (*model.AuthResponse, error) {
	if req.Email == "taken@example.com" {
		return nil, service.ErrEmailTaken
	}
	return &model.AuthResponse{User: model.User{ID: 1, Email: req.Email}, AccessToken: "t", TokenType: "bearer"}, nil
}

func (fakeAuth) Login(_ context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	if req.Password != "secret1" {
		return nil, service.ErrInvalidCredentials
	}
	return &model.AuthResponse{User: model.User{ID: 1, Email: req.Email}, AccessToken: "t", TokenType: "bearer"}, nil
}

type testServer struct {
	router *gin.Engine
	chat   *fakeChat
	props  *fakeProperties
	tokens *service.TokenIssuer
}

func newTestServer() *testServer {
	ts := &testServer{
		chat:   &fakeChat{},
		props:  &fakeProperties{},
		tokens: service.NewTokenIssuer("test-secret", time.Hour),
	}
	ts.router = NewRouter(Handlers{
		Chat:       NewChatHandler(ts.chat),
		Properties: NewPropertyHandler(ts.props),
		Embeddings: NewEmbeddingHandler(ts.props),
		Auth:       NewAuthHandler(fakeAuth{}),
		Tokens:     ts.tokens,
	}, config.ServerConfig{AllowedOrigins: []string{"*"}}, BuildInfo{Version: "test"})
	return ts
}

func (ts *testServer) do(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			_ = json.NewEncoder(&buf).Encode(b)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealthAndVersion(t *testing.T) {
	ts := newTestServer()

	w := ts.do(http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode(t, w)["status"])

	w = ts.do(http.MethodGet, "/version", nil, "")
	assert.Equal(t, "test", decode(t, w)["version"])
}

func TestChat(t *testing.T) {
	ts := newTestServer()

	w := ts.do(http.MethodPost, "/api/v1/chat", model.ChatRequest{Message: "villa in Dubai", Language: "auto"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "hello", body["response"])
	assert.Equal(t, "s1", body["session_id"])
	assert.Equal(t, "villa in Dubai", ts.chat.lastReq.Message)
	assert.Nil(t, ts.chat.lastUserID)
}

func TestChat_LinksAuthenticatedUser(t *testing.T) {
	ts := newTestServer()
	token, err := ts.tokens.Issue(model.User{ID: 42, Email: "a@b.com"})
	require.NoError(t, err)

	w := ts.do(http.MethodPost, "/api/v1/chat", model.ChatRequest{Message: "villa"}, token)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, ts.chat.lastUserID)
	assert.Equal(t, int64(42), *ts.chat.lastUserID)

	w = ts.do(http.MethodPost, "/api/v1/chat", model.ChatRequest{Message: "villa"}, "not-a-token")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, ts.chat.lastUserID)
}

func TestChat_BadRequests(t *testing.T) {
	tests := []struct {
		name       string
		body       interface{}
		err        error
		wantErr    string
		wantPrefix bool
	}{
		{"missing message", `{"session_id":"x"}`, nil, "Message cannot be empty", false},
		{"whitespace message", model.ChatRequest{Message: "   "}, service.ErrEmptyMessage, "Message cannot be empty", false},
		{"malformed json", `{"message":`, nil, "Invalid request: ", true},
		{"wrong type", `{"message":5}`, nil, "Invalid request: ", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer()
			ts.chat.err = tt.err
			w := ts.do(http.MethodPost, "/api/v1/chat", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
			msg, _ := decode(t, w)["error"].(string)
			if tt.wantPrefix {
				assert.True(t, strings.HasPrefix(msg, tt.wantErr), msg)
				assert.Greater(t, len(msg), len(tt.wantErr))
				return
			}
			assert.Equal(t, tt.wantErr, msg)
		})
	}
}

func TestChat_ServiceError(t *testing.T) {
	ts := newTestServer()
	ts.chat.err = errors.New("db down")

	w := ts.do(http.MethodPost, "/api/v1/chat", model.ChatRequest{Message: "villa"}, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db down")
}

func TestConversationsAndReset(t *testing.T) {
	ts := newTestServer()

	w := ts.do(http.MethodGet, "/api/v1/conversations/abc", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var convs []model.Conversation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &convs))
	require.Len(t, convs, 1)
	assert.Equal(t, "abc", convs[0].SessionID)

	w = ts.do(http.MethodPost, "/api/v1/sessions/abc/reset", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"abc"}, ts.chat.reset)
}

func TestChatSessions_RequiresAuth(t *testing.T) {
	ts := newTestServer()

	w := ts.do(http.MethodGet, "/api/v1/chat-sessions", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.do(http.MethodGet, "/api/v1/chat-sessions", nil, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := ts.tokens.Issue(model.User{ID: 7, Email: "a@b.com"})
	require.NoError(t, err)
	w = ts.do(http.MethodGet, "/api/v1/chat-sessions", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var resp model.ChatSessionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Sessions, 1)
	assert.Equal(t, []int64{7}, ts.chat.sessionsOf)
}

func TestProperties(t *testing.T) {
	ts := newTestServer()

	w := ts.do(http.MethodPost, "/api/v1/properties", model.PropertyCreateRequest{
		Title: "Marina Loft", Price: 1200000, Location: "Dubai Marina", PropertyType: "apartment", Bedrooms: 1,
	}, "")
	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, ts.props.created, 1)

	w = ts.do(http.MethodPost, "/api/v1/properties", `{"title":"no price"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodGet, "/api/v1/properties?location=Marina&min_price=500000&bedrooms=2&amenities=pool&amenities=gym", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["total"])
	require.NotNil(t, ts.props.filter.Location)
	assert.Equal(t, "Marina", *ts.props.filter.Location)
	require.NotNil(t, ts.props.filter.MinPrice)
	assert.Equal(t, 500000.0, *ts.props.filter.MinPrice)
	require.NotNil(t, ts.props.filter.Bedrooms)
	assert.Equal(t, 2, *ts.props.filter.Bedrooms)
	assert.Equal(t, []string{"pool", "gym"}, ts.props.filter.Amenities)
	assert.Nil(t, ts.props.filter.MaxPrice)

	w = ts.do(http.MethodGet, "/api/v1/properties/1", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = ts.do(http.MethodGet, "/api/v1/properties/2", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = ts.do(http.MethodGet, "/api/v1/properties/abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmbeddingBatch(t *testing.T) {
	ts := newTestServer()
	body := model.EmbeddingBatchRequest{Embeddings: []model.EmbeddingItem{{PropertyID: 1, Embedding: []float32{0.1, 0.2}}}}

	ts.props.batch = model.EmbeddingBatchResponse{Success: 1}
	w := ts.do(http.MethodPost, "/api/v1/properties/embeddings/batch", body, "")
	assert.Equal(t, http.StatusOK, w.Code)

	ts.props.batch = model.EmbeddingBatchResponse{Failed: 1, Errors: []string{"property_id 1: expected 3 dimensions, got 2"}}
	w = ts.do(http.MethodPost, "/api/v1/properties/embeddings/batch", body, "")
	assert.Equal(t, http.StatusPartialContent, w.Code)

	w = ts.do(http.MethodPost, "/api/v1/properties/embeddings/batch", `{"embeddings":[]}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuth(t *testing.T) {
	ts := newTestServer()

	tests := []struct {
		path string
		body interface{}
		want int
	}{
		{"/api/v1/auth/signup", model.SignupRequest{Email: "new@example.com", Name: "N", Password: "secret1"}, http.StatusOK},
		{"/api/v1/auth/signup", model.SignupRequest{Email: "taken@example.com", Name: "N", Password: "secret1"}, http.StatusBadRequest},
		{"/api/v1/auth/signup", model.SignupRequest{Email: "bad-email", Name: "N", Password: "secret1"}, http.StatusBadRequest},
		{"/api/v1/auth/signup", model.SignupRequest{Email: "short@example.com", Name: "N", Password: "123"}, http.StatusBadRequest},
		{"/api/v1/auth/login", model.LoginRequest{Email: "new@example.com", Password: "secret1"}, http.StatusOK},
		{"/api/v1/auth/login", model.LoginRequest{Email: "new@example.com", Password: "wrong"}, http.StatusUnauthorized},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("%d%s", i, tt.path), func(t *testing.T) {
			w := ts.do(http.MethodPost, tt.path, tt.body, "")
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestNoRoute(t *testing.T) {
	ts := newTestServer()
	w := ts.do(http.MethodGet, "/api/v1/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "API endpoint not found", decode(t, w)["error"])
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer  abc ", "abc", true},
		{"Basic abc", "", false},
		{"Bearer", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.Header.Set("Authorization", tt.header)

			got, ok := bearerToken(c)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
