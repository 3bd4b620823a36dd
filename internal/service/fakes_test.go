package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"realestate-agent/internal/agent"
	"realestate-agent/internal/model"
	"realestate-agent/internal/repository"

	"github.com/pgvector/pgvector-go"
)

type fakeRepo struct {
	mu sync.Mutex

	available []model.Property
	nearest   []model.Property
	listErr   error
	saveErr   error

	nearestVec   []float32
	nearestAt    time.Time
	saved        []model.ExchangeRecord
	deactivated  []string
	conversation []model.Conversation
	sessions     []model.ChatSession

	properties map[int64]*model.Property
	missing    []model.Property
	updates    [][]model.EmbeddingItem
	rejectIDs  map[int64]bool

	users map[string]model.User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		properties: map[int64]*model.Property{},
		rejectIDs:  map[int64]bool{},
		users:      map[string]model.User{},
	}
}

func (r *fakeRepo) ListAvailableProperties(_ context.Context, _ time.Time, limit int) ([]model.Property, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	if len(r.available) > limit {
		return r.available[:limit], nil
	}
	return r.available, nil
}

// NearestProperties applies the same availability cut-off as the SQL query.
func (r *fakeRepo) NearestProperties(_ context.Context, vec pgvector.Vector, now time.Time, _ int) ([]model.Property, error) {
	r.nearestVec = vec.Slice()
	r.nearestAt = now
	var out []model.Property
	for _, p := range r.nearest {
		if p.AvailableFrom != nil && !p.AvailableFrom.After(now) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeRepo) SaveExchange(_ context.Context, rec model.ExchangeRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = append(r.saved, rec)
	return nil
}

func (r *fakeRepo) ListConversations(_ context.Context, _ string) ([]model.Conversation, error) {
	return r.conversation, nil
}

func (r *fakeRepo) ListChatSessions(_ context.Context, _ int64) ([]model.ChatSession, error) {
	return r.sessions, nil
}

func (r *fakeRepo) DeactivateChatSession(_ context.Context, sessionID string) error {
	r.deactivated = append(r.deactivated, sessionID)
	return nil
}

func (r *fakeRepo) CreateProperty(_ context.Context, p *model.Property) error {
	p.ID = int64(len(r.properties) + 1)
	r.properties[p.ID] = p
	return nil
}

func (r *fakeRepo) GetProperty(_ context.Context, id int64) (*model.Property, error) {
	p, ok := r.properties[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (r *fakeRepo) ListProperties(_ context.Context, _ model.PropertyFilter) ([]model.Property, int, error) {
	var out []model.Property
	for _, p := range r.properties {
		out = append(out, *p)
	}
	return out, len(out), nil
}

// PropertiesMissingEmbedding pops up to limit entries off missing.
func (r *fakeRepo) PropertiesMissingEmbedding(_ context.Context, limit int) ([]model.Property, error) {
	var out []model.Property
	for _, p := range r.missing {
		if len(out) == limit {
			break
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeRepo) BatchUpdateEmbeddings(_ context.Context, items []model.EmbeddingItem) (int, []string) {
	r.updates = append(r.updates, items)

	done := map[int64]bool{}
	var errs []string
	for _, it := range items {
		if r.rejectIDs[it.PropertyID] {
			errs = append(errs, fmt.Sprintf("property_id %d: rejected", it.PropertyID))
			continue
		}
		done[it.PropertyID] = true
	}

	var remaining []model.Property
	for _, p := range r.missing {
		if !done[p.ID] {
			remaining = append(remaining, p)
		}
	}
	r.missing = remaining
	return len(done), errs
}

func (r *fakeRepo) CreateUser(_ context.Context, u *model.User) error {
	if _, ok := r.users[u.Email]; ok {
		return repository.ErrConflict
	}
	u.ID = int64(len(r.users) + 1)
	u.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	r.users[u.Email] = *u
	return nil
}

func (r *fakeRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

type fakeAssistant struct {
	requests []agent.Request
	cleared  []string
	result   agent.Result
}

func (a *fakeAssistant) Handle(_ context.Context, req agent.Request) agent.Result {
	a.requests = append(a.requests, req)
	res := a.result
	res.SessionID = req.SessionID
	return res
}

func (a *fakeAssistant) ClearSession(_ context.Context, sessionID string) error {
	a.cleared = append(a.cleared, sessionID)
	return nil
}

type fakeEmbedder struct {
	dims  int
	err   error
	calls [][]string
}

func (e *fakeEmbedder) Dimensions() int { return e.dims }

func (e *fakeEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	e.calls = append(e.calls, texts)
	if e.err != nil {
		return nil, e.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = make([]float32, e.dims)
		out[i][0] = float32(i + 1)
	}
	return out, nil
}

var errBoom = errors.New("boom")

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }
