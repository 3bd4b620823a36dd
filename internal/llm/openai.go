package llm

import (
	"context"
	"fmt"
	"strings"

	"realestate-agent/internal/agent"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

const nvidiaAPIBase = "https://integrate.api.nvidia.com/v1"

// IsOpenAIProvider checks if the base URL is the official OpenAI API
func IsOpenAIProvider(baseURL string) bool {
	return strings.Contains(baseURL, "api.openai.com")
}

// IsNVIDIAProvider checks if the base URL is the NVIDIA API
func IsNVIDIAProvider(baseURL string) bool {
	return strings.TrimRight(baseURL, "/") == nvidiaAPIBase
}

// Reasoning models take max_completion_tokens instead of max_tokens.
var maxCompletionTokensModels = map[string]bool{
	"o1": true, "o3": true, "o3-mini": true, "o4-mini": true,
	"gpt-5": true, "gpt-5-mini": true, "gpt-5-nano": true,
}

// OpenAI generates replies through any OpenAI compatible chat completions
// endpoint (OpenAI, NVIDIA, local gateways).
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates a generator. An empty baseURL targets api.openai.com.
func NewOpenAI(apiKey, baseURL, model string) (*OpenAI, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	logProvider(baseURL)

	return &OpenAI{
		client: openai.NewClientWithConfig(openAIConfig(apiKey, baseURL)),
		model:  model,
	}, nil
}

func openAIConfig(apiKey, baseURL string) openai.ClientConfig {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return cfg
}

func logProvider(baseURL string) {
	switch {
	case IsNVIDIAProvider(baseURL):
		log.Info().Msg("Detected NVIDIA API provider")
	case baseURL == "" || IsOpenAIProvider(baseURL):
		log.Info().Msg("Detected OpenAI API provider")
	default:
		log.Info().Str("base_url", baseURL).Msg("Using standard OpenAI format")
	}
}

func (o *OpenAI) Generate(ctx context.Context, prompt agent.Prompt) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, o.request(prompt))
	if err != nil {
		return "", fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", agent.ErrEmptyResponse
	}

	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return "", agent.ErrEmptyResponse
	}
	return text, nil
}

// request maps a prompt onto a chat completion request. Top-k has no
// equivalent in the OpenAI API and safety settings are Gemini only.
func (o *OpenAI) request(prompt agent.Prompt) openai.ChatCompletionRequest {
	var messages []openai.ChatCompletionMessage
	if prompt.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: prompt.System})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: prompt.Content})

	req := openai.ChatCompletionRequest{
		Model:       o.model,
		Messages:    messages,
		Temperature: float32(prompt.Params.Temperature),
		TopP:        float32(prompt.Params.TopP),
	}

	if n := prompt.Params.MaxOutputTokens; n > 0 {
		if maxCompletionTokensModels[o.model] {
			req.MaxCompletionTokens = n
		} else {
			req.MaxTokens = n
		}
	}

	return req
}

// OpenAIEmbedder embeds texts through an OpenAI compatible embeddings endpoint.
type OpenAIEmbedder struct {
	client     *openai.Client
	model      string
	dimensions int
	batchSize  int
	nvidia     bool
}

// NewOpenAIEmbedder creates an embedder.
func NewOpenAIEmbedder(apiKey, baseURL, model string, dimensions, batchSize int) (*OpenAIEmbedder, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	return &OpenAIEmbedder{
		client:     openai.NewClientWithConfig(openAIConfig(apiKey, baseURL)),
		model:      model,
		dimensions: dimensions,
		batchSize:  batchSize,
		nvidia:     IsNVIDIAProvider(baseURL),
	}, nil
}

func (e *OpenAIEmbedder) Dimensions() int {
	return e.dimensions
}

func (e *OpenAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	all := make([][]float32, 0, len(texts))
	for _, batch := range batches(texts, e.batchSize) {
		req := openai.EmbeddingRequest{
			Input: batch,
			Model: openai.EmbeddingModel(e.model),
		}
		// NVIDIA rejects the dimensions field and needs an explicit float encoding.
		if e.nvidia {
			req.EncodingFormat = openai.EmbeddingEncodingFormatFloat
		} else if e.dimensions > 0 {
			req.Dimensions = e.dimensions
		}

		resp, err := e.client.CreateEmbeddings(ctx, req)
		if err != nil {
			log.Error().
				Err(err).
				Str("model", e.model).
				Int("input_count", len(batch)).
				Msg("Failed to generate embeddings")
			return nil, fmt.Errorf("failed to generate embeddings: %w", err)
		}
		if len(resp.Data) != len(batch) {
			return nil, fmt.Errorf("embedding count mismatch: got %d, want %d", len(resp.Data), len(batch))
		}

		ordered := make([][]float32, len(batch))
		for _, d := range resp.Data {
			if d.Index < 0 || d.Index >= len(batch) {
				return nil, fmt.Errorf("embedding index %d out of range", d.Index)
			}
			ordered[d.Index] = d.Embedding
		}
		all = append(all, ordered...)
	}

	return all, nil
}

var (
	_ agent.Generator = (*OpenAI)(nil)
	_ Embedder        = (*OpenAIEmbedder)(nil)
)
