package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/artem13815/icebreaker/pkg/llm"
)

const maxIceBreakers = 5

var (
	// один маркер списка: "1.", "2)", "-", "*", "* **3.**"
	reEnumeration = regexp.MustCompile(`^(?:[-*•]\s+)?(?:\*\*|__)?(?:\d+[).:]|[-*•])(?:\*\*|__)?\s*`)
	reLabelLine   = regexp.MustCompile(`(?i)^ice[\s-]?breakers?\b`)
	emphasis      = strings.NewReplacer("*", "", "_", "")
)

// Fallback returns the three generic ice breakers used when nothing grounded is available.
func Fallback(name string) []string {
	return []string{
		fmt.Sprintf("I'd love to hear more about your professional background. What kind of work do you do, %s?", name),
		fmt.Sprintf("What are you passionate about in your field, %s?", name),
		fmt.Sprintf("What's the most interesting project you've worked on recently, %s?", name),
	}
}

// CleanIceBreakers turns a free-form model reply into at most five ice breakers:
// headers, empty lines and "Ice breakers:" labels are dropped, enumeration markers stripped.
func CleanIceBreakers(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || reLabelLine.MatchString(strings.TrimSpace(emphasis.Replace(line))) {
			continue
		}
		line = strings.TrimSpace(reEnumeration.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}
		out = append(out, line)
		if len(out) == maxIceBreakers {
			break
		}
	}
	return out
}

// Synthesizer makes the second, separate model call that writes the ice breakers.
type Synthesizer struct {
	llm llm.ChatModel
	log *slog.Logger
}

func NewSynthesizer(model llm.ChatModel, log *slog.Logger) *Synthesizer {
	if log == nil {
		log = slog.Default()
	}
	return &Synthesizer{llm: model, log: log.With("module", "synthesis")}
}

// Generate always returns between one and five ice breakers.
func (s *Synthesizer) Generate(ctx context.Context, name string, findings []Finding) (out []string) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("synthesis panicked", "name", name, "panic", r)
			out = Fallback(name)
		}
	}()

	lines, err := s.generate(ctx, name, findings)
	if err != nil {
		s.log.Warn("using fallback ice breakers", "name", name, "reason", err)
		return Fallback(name)
	}
	return lines
}

func (s *Synthesizer) generate(ctx context.Context, name string, findings []Finding) ([]string, error) {
	if len(findings) == 0 {
		return nil, errors.New("no profile data")
	}
	raw, err := s.llm.Ask(ctx, synthesisSystemPrompt, fmt.Sprintf(synthesisPromptTemplate, name, FormatFindings(findings)))
	if err != nil {
		return nil, fmt.Errorf("synthesis call: %w", err)
	}
	lines := CleanIceBreakers(raw)
	if len(lines) == 0 {
		return nil, errors.New("no usable lines in synthesis output")
	}
	return lines, nil
}
