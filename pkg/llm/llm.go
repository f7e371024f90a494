package llm

import (
	"context"
	"errors"
)

// ErrEmptyAPIKey is returned by providers constructed without credentials.
var ErrEmptyAPIKey = errors.New("llm api key is empty")

// ChatModel is a minimal abstraction for chat-based LLMs used by the domain.
// Providers are configured with sampling settings (temperature, max tokens)
// at construction time, so callers only pass prompts.
type ChatModel interface {
	Ask(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ChatFunc adapts a function to ChatModel.
type ChatFunc func(ctx context.Context, systemPrompt, userPrompt string) (string, error)

func (f ChatFunc) Ask(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return f(ctx, systemPrompt, userPrompt)
}
