package llm

import (
	"context"
	"fmt"
	"strings"

	"realestate-agent/internal/agent"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// Gemini generates replies with the Google Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini generator for model.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	client, err := newGeminiClient(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	log.Info().Str("model", model).Msg("Using Gemini chat model")

	return &Gemini{client: client, model: model}, nil
}

func newGeminiClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return client, nil
}

// Generate sends the prompt as a single user turn.
func (g *Gemini) Generate(ctx context.Context, prompt agent.Prompt) (string, error) {
	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{genai.NewPartFromText(prompt.Content)},
	}}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, geminiConfig(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini api error: %w", err)
	}

	return geminiText(resp)
}

func geminiConfig(prompt agent.Prompt) *genai.GenerateContentConfig {
	p := prompt.Params
	cfg := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(p.MaxOutputTokens),
	}

	if p.Temperature > 0 {
		cfg.Temperature = genai.Ptr(float32(p.Temperature))
	}
	if p.TopP > 0 {
		cfg.TopP = genai.Ptr(float32(p.TopP))
	}
	if p.TopK > 0 {
		cfg.TopK = genai.Ptr(float32(p.TopK))
	}

	if prompt.System != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{genai.NewPartFromText(prompt.System)},
		}
	}

	for _, s := range p.SafetySettings {
		cfg.SafetySettings = append(cfg.SafetySettings, &genai.SafetySetting{
			Category:  genai.HarmCategory(s.Category),
			Threshold: genai.HarmBlockThreshold(s.Threshold),
		})
	}

	return cfg
}

// geminiText joins the text parts of the first candidate.
func geminiText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("gemini blocked the prompt: %s", resp.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("gemini returned no candidates")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return "", fmt.Errorf("gemini candidate has no content (finish reason %s)", candidate.FinishReason)
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil && part.Text != "" && !part.Thought {
			b.WriteString(part.Text)
		}
	}

	if strings.TrimSpace(b.String()) == "" {
		return "", agent.ErrEmptyResponse
	}
	return b.String(), nil
}

// GeminiEmbedder embeds texts with a Gemini embedding model.
type GeminiEmbedder struct {
	client     *genai.Client
	model      string
	dimensions int
	batchSize  int
}

// NewGeminiEmbedder creates an embedder producing vectors of the given size.
func NewGeminiEmbedder(ctx context.Context, apiKey, model string, dimensions, batchSize int) (*GeminiEmbedder, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	client, err := newGeminiClient(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	return &GeminiEmbedder{
		client:     client,
		model:      model,
		dimensions: dimensions,
		batchSize:  batchSize,
	}, nil
}

func (e *GeminiEmbedder) Dimensions() int {
	return e.dimensions
}

func (e *GeminiEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	cfg := &genai.EmbedContentConfig{}
	if e.dimensions > 0 {
		cfg.OutputDimensionality = genai.Ptr(int32(e.dimensions))
	}

	all := make([][]float32, 0, len(texts))
	for _, batch := range batches(texts, e.batchSize) {
		contents := make([]*genai.Content, len(batch))
		for i, text := range batch {
			contents[i] = &genai.Content{Parts: []*genai.Part{genai.NewPartFromText(text)}}
		}

		resp, err := e.client.Models.EmbedContent(ctx, e.model, contents, cfg)
		if err != nil {
			return nil, fmt.Errorf("gemini embedding error: %w", err)
		}
		if len(resp.Embeddings) != len(batch) {
			return nil, fmt.Errorf("gemini returned %d embeddings for %d texts", len(resp.Embeddings), len(batch))
		}

		for _, emb := range resp.Embeddings {
			all = append(all, emb.Values)
		}
	}

	return all, nil
}

var (
	_ agent.Generator = (*Gemini)(nil)
	_ Embedder        = (*GeminiEmbedder)(nil)
)
