package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/artem13815/icebreaker/pkg/llm"
)

// Turn is one entry of the agent scratchpad.
type Turn struct {
	// Log is the model output that led to the observation.
	Log         string
	Observation string
}

// Decider chooses the next action given the task and the turns so far.
type Decider interface {
	Decide(ctx context.Context, task string, history []Turn) (Step, error)
}

// LLMDecider asks a chat model in the Thought/Action/Action Input format.
type LLMDecider struct {
	llm llm.ChatModel
}

func NewLLMDecider(model llm.ChatModel) *LLMDecider {
	return &LLMDecider{llm: model}
}

// Decide returns a *FormatError when the reply cannot be parsed and a
// plain error when the model call fails.
func (d *LLMDecider) Decide(ctx context.Context, task string, history []Turn) (Step, error) {
	raw, err := d.llm.Ask(ctx, agentSystemPrompt, fmt.Sprintf(agentPromptTemplate, task, renderScratchpad(history)))
	if err != nil {
		return Step{}, fmt.Errorf("decide: %w", err)
	}
	return ParseStep(raw)
}

func renderScratchpad(history []Turn) string {
	var sb strings.Builder
	for _, t := range history {
		sb.WriteString(strings.TrimSpace(t.Log))
		sb.WriteString("\nObservation: ")
		sb.WriteString(strings.TrimSpace(t.Observation))
		sb.WriteString("\n")
	}
	return sb.String()
}

// stepLog renders a parsed step the way the model is asked to write it.
func stepLog(s Step) string {
	if f, ok := s.Action.(Finish); ok {
		return fmt.Sprintf("Thought: %s\nFinal Answer: %s", s.Thought, f.Answer)
	}
	return fmt.Sprintf("Thought: %s\nAction: %s\nAction Input: %s", s.Thought, s.Action.Tool(), input(s.Action))
}
