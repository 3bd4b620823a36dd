// Package llm adapts hosted language model APIs to the agent.Generator
// interface and provides text embeddings for listing retrieval.
package llm

import (
	"context"
	"errors"
	"fmt"

	"realestate-agent/internal/agent"
	"realestate-agent/internal/config"
)

// ErrMissingAPIKey is returned when a client is built without a credential.
var ErrMissingAPIKey = errors.New("llm: API key is required")

// Embedder turns texts into vectors, one per input, in input order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
}

// NewGenerator builds the chat generator selected by cfg.Provider.
func NewGenerator(ctx context.Context, cfg config.LLMConfig) (agent.Generator, error) {
	switch cfg.Provider {
	case config.ProviderGemini, "":
		return NewGemini(ctx, cfg.APIKey, cfg.ChatModel)
	case config.ProviderOpenAI:
		return NewOpenAI(cfg.APIKey, cfg.APIBase, cfg.ChatModel)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", cfg.Provider)
	}
}

// NewEmbedder builds the embedder for the configured provider. It returns
// nil, nil when embeddings are disabled.
func NewEmbedder(ctx context.Context, cfg config.LLMConfig, emb config.EmbeddingConfig) (Embedder, error) {
	if !emb.Enabled {
		return nil, nil
	}

	switch cfg.Provider {
	case config.ProviderGemini, "":
		return NewGeminiEmbedder(ctx, cfg.APIKey, emb.Model, emb.Dimensions, emb.BatchSize)
	case config.ProviderOpenAI:
		return NewOpenAIEmbedder(cfg.APIKey, cfg.APIBase, emb.Model, emb.Dimensions, emb.BatchSize)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", cfg.Provider)
	}
}

// batches splits texts into consecutive chunks of at most size elements.
func batches(texts []string, size int) [][]string {
	if size <= 0 {
		size = len(texts)
	}
	var out [][]string
	for i := 0; i < len(texts); i += size {
		end := i + size
		if end > len(texts) {
			end = len(texts)
		}
		out = append(out, texts[i:end])
	}
	return out
}
