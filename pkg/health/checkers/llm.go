package checkers

import (
	"context"

	"github.com/artem13815/icebreaker/pkg/llm"
)

// LLMKeyChecker reports not ready while no LLM API key is configured.
// The pipeline still answers with fallback ice breakers in that case.
type LLMKeyChecker struct {
	provider string
	apiKey   string
}

func NewLLMKeyChecker(provider, apiKey string) *LLMKeyChecker {
	return &LLMKeyChecker{provider: provider, apiKey: apiKey}
}

func (c *LLMKeyChecker) Name() string { return "llm:" + c.provider }

func (c *LLMKeyChecker) Check(context.Context) error {
	if c.apiKey == "" {
		return llm.ErrEmptyAPIKey
	}
	return nil
}
