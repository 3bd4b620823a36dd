package agent

import (
	"context"
	"errors"
)

var (
	// ErrMissingGenerator is returned when an orchestrator is built without a model client.
	ErrMissingGenerator = errors.New("agent: generator is required")
	// ErrEmptyResponse marks a model reply with no usable text.
	ErrEmptyResponse = errors.New("agent: model returned no text")
)

// Generator sends a prompt to a hosted language model and returns its raw text.
type Generator interface {
	Generate(ctx context.Context, prompt Prompt) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, prompt Prompt) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt Prompt) (string, error) {
	return f(ctx, prompt)
}

// Outcome is the result of one model call: either Text or the Reason it failed.
type Outcome struct {
	Text   string
	Reason error
}

// OK reports whether the call produced usable text.
func (o Outcome) OK() bool {
	return o.Reason == nil
}
