package service

import (
	"context"
	"testing"

	"realestate-agent/internal/model"
	"realestate-agent/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyService_CreateEmbedsNewListing(t *testing.T) {
	repo := newFakeRepo()
	emb := &fakeEmbedder{dims: 3}
	s := NewPropertyService(repo, emb, 0, 0)

	p, err := s.Create(context.Background(), model.PropertyCreateRequest{
		Title: "Marina Loft", Price: 1200000, Location: "Dubai Marina", PropertyType: "apartment", Bedrooms: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), p.ID)
	require.NotNil(t, p.AvailableFrom)
	require.Len(t, repo.updates, 1)
	assert.Equal(t, int64(1), repo.updates[0][0].PropertyID)
	assert.Len(t, repo.updates[0][0].Embedding, 3)
	assert.Contains(t, emb.calls[0][0], "Marina Loft")
}

func TestPropertyService_CreateWithoutEmbedder(t *testing.T) {
	repo := newFakeRepo()
	s := NewPropertyService(repo, nil, 768, 0)

	_, err := s.Create(context.Background(), model.PropertyCreateRequest{Title: "Villa", Price: 1, Location: "Arabian Ranches", PropertyType: "villa"})
	require.NoError(t, err)
	assert.Empty(t, repo.updates)
}

func TestPropertyService_GetNotFound(t *testing.T) {
	s := NewPropertyService(newFakeRepo(), nil, 768, 0)
	_, err := s.Get(context.Background(), 42)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPropertyService_UpdateEmbeddingsChecksDimensions(t *testing.T) {
	repo := newFakeRepo()
	s := NewPropertyService(repo, nil, 3, 0)

	resp := s.UpdateEmbeddings(context.Background(), []model.EmbeddingItem{
		{PropertyID: 1, Embedding: []float32{1, 2, 3}},
		{PropertyID: 2, Embedding: []float32{1, 2}},
		{PropertyID: 3, Embedding: []float32{3, 2, 1}},
	})

	assert.Equal(t, 2, resp.Success)
	assert.Equal(t, 1, resp.Failed)
	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0], "property_id 2: expected 3 dimensions, got 2")
	require.Len(t, repo.updates, 1)
	assert.Len(t, repo.updates[0], 2)
}

func TestPropertyService_UpdateEmbeddingsAllInvalid(t *testing.T) {
	repo := newFakeRepo()
	s := NewPropertyService(repo, nil, 3, 0)

	resp := s.UpdateEmbeddings(context.Background(), []model.EmbeddingItem{{PropertyID: 1, Embedding: []float32{1}}})
	assert.Equal(t, 0, resp.Success)
	assert.Equal(t, 1, resp.Failed)
	assert.Empty(t, repo.updates)
}

func TestPropertyService_Reindex(t *testing.T) {
	repo := newFakeRepo()
	for i := 1; i <= 5; i++ {
		repo.missing = append(repo.missing, model.Property{ID: int64(i), Title: strPtr("p")})
	}
	emb := &fakeEmbedder{dims: 2}
	s := NewPropertyService(repo, emb, 0, 2)

	n, err := s.Reindex(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Len(t, emb.calls, 3)
	assert.Empty(t, repo.missing)
}

func TestPropertyService_ReindexStopsWhenNothingStored(t *testing.T) {
	repo := newFakeRepo()
	repo.missing = []model.Property{{ID: 1}, {ID: 2}, {ID: 3}}
	repo.rejectIDs[3] = true
	s := NewPropertyService(repo, &fakeEmbedder{dims: 2}, 0, 2)

	n, err := s.Reindex(context.Background())
	assert.ErrorIs(t, err, ErrNothingIndexed)
	assert.Equal(t, 2, n)
}

func TestPropertyService_ReindexErrors(t *testing.T) {
	_, err := NewPropertyService(newFakeRepo(), nil, 768, 0).Reindex(context.Background())
	assert.Error(t, err)

	repo := newFakeRepo()
	repo.missing = []model.Property{{ID: 1}}
	_, err = NewPropertyService(repo, &fakeEmbedder{dims: 2, err: errBoom}, 0, 0).Reindex(context.Background())
	assert.ErrorIs(t, err, errBoom)
}
