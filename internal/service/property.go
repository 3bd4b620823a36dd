package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"realestate-agent/internal/llm"
	"realestate-agent/internal/model"

	"github.com/rs/zerolog/log"
)

const DefaultReindexBatch = 32

// ErrNothingIndexed stops a reindex whose batch stored no embedding
var ErrNothingIndexed = errors.New("no embeddings stored for batch")

// PropertyRepository is the persistence used by PropertyService
type PropertyRepository interface {
	CreateProperty(ctx context.Context, p *model.Property) error
	GetProperty(ctx context.Context, id int64) (*model.Property, error)
	ListProperties(ctx context.Context, filter model.PropertyFilter) ([]model.Property, int, error)
	PropertiesMissingEmbedding(ctx context.Context, limit int) ([]model.Property, error)
	BatchUpdateEmbeddings(ctx context.Context, items []model.EmbeddingItem) (int, []string)
}

// PropertyService handles property listings and their embeddings
type PropertyService struct {
	repo       PropertyRepository
	embedder   llm.Embedder
	dimensions int
	batchSize  int
	now        func() time.Time
}

// NewPropertyService creates a property service. With a nil embedder new
// listings are stored without an embedding and Reindex is unavailable.
func NewPropertyService(repo PropertyRepository, embedder llm.Embedder, dimensions, batchSize int) *PropertyService {
	if embedder != nil {
		dimensions = embedder.Dimensions()
	}
	if batchSize <= 0 {
		batchSize = DefaultReindexBatch
	}
	return &PropertyService{
		repo:       repo,
		embedder:   embedder,
		dimensions: dimensions,
		batchSize:  batchSize,
		now:        time.Now,
	}
}

// Create stores a new listing and embeds it when an embedder is configured
func (s *PropertyService) Create(ctx context.Context, req model.PropertyCreateRequest) (*model.Property, error) {
	p := req.ToProperty(s.now().UTC())
	if err := s.repo.CreateProperty(ctx, &p); err != nil {
		return nil, err
	}

	if s.embedder != nil {
		if _, err := s.embed(ctx, []model.Property{p}); err != nil {
			log.Warn().Err(err).Int64("property_id", p.ID).Msg("Failed to embed new property")
		}
	}
	return &p, nil
}

// Get returns one listing
func (s *PropertyService) Get(ctx context.Context, id int64) (*model.Property, error) {
	return s.repo.GetProperty(ctx, id)
}

// List returns one page of listings matching filter and the match count
func (s *PropertyService) List(ctx context.Context, filter model.PropertyFilter) ([]model.Property, int, error) {
	return s.repo.ListProperties(ctx, filter)
}

// UpdateEmbeddings stores externally computed embeddings. Vectors of the wrong
// dimension are rejected per item.
func (s *PropertyService) UpdateEmbeddings(ctx context.Context, items []model.EmbeddingItem) model.EmbeddingBatchResponse {
	var valid []model.EmbeddingItem
	var errs []string

	for _, item := range items {
		if s.dimensions > 0 && len(item.Embedding) != s.dimensions {
			errs = append(errs, fmt.Sprintf("property_id %d: expected %d dimensions, got %d",
				item.PropertyID, s.dimensions, len(item.Embedding)))
			continue
		}
		valid = append(valid, item)
	}

	success := 0
	if len(valid) > 0 {
		var updateErrs []string
		success, updateErrs = s.repo.BatchUpdateEmbeddings(ctx, valid)
		errs = append(errs, updateErrs...)
	}

	return model.EmbeddingBatchResponse{
		Success: success,
		Failed:  len(items) - success,
		Errors:  errs,
	}
}

// Reindex embeds every listing that has no embedding yet and returns how many
// were stored
func (s *PropertyService) Reindex(ctx context.Context) (int, error) {
	if s.embedder == nil {
		return 0, errors.New("embeddings are disabled")
	}

	total := 0
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		props, err := s.repo.PropertiesMissingEmbedding(ctx, s.batchSize)
		if err != nil {
			return total, err
		}
		if len(props) == 0 {
			return total, nil
		}

		n, err := s.embed(ctx, props)
		total += n
		if err != nil {
			return total, err
		}
		if n == 0 {
			return total, ErrNothingIndexed
		}

		log.Info().Int("batch", n).Int("total", total).Msg("Indexed properties")
	}
}

func (s *PropertyService) embed(ctx context.Context, props []model.Property) (int, error) {
	texts := make([]string, len(props))
	for i, p := range props {
		texts[i] = p.EmbeddingText()
	}

	vecs, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("failed to embed properties: %w", err)
	}
	if len(vecs) != len(props) {
		return 0, fmt.Errorf("embedder returned %d vectors for %d properties", len(vecs), len(props))
	}

	items := make([]model.EmbeddingItem, len(props))
	for i, p := range props {
		items[i] = model.EmbeddingItem{PropertyID: p.ID, Embedding: vecs[i]}
	}

	success, errs := s.repo.BatchUpdateEmbeddings(ctx, items)
	for _, e := range errs {
		log.Warn().Str("error", e).Msg("Embedding update failed")
	}
	return success, nil
}
