package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/artem13815/icebreaker/pkg/llm"
	"github.com/artem13815/icebreaker/pkg/search"
)

const (
	maxContentChars = 12000
	rawPreviewChars = 500
)

// UseCase: LLM-инструменты агента: поиск профилей среди результатов поиска
// и извлечение биографии из текста страницы. Ошибки не пробрасываются.
type UseCase interface {
	Identify(ctx context.Context, name string, results []search.Result) []Candidate
	Analyze(ctx context.Context, content string) Record
}

type service struct {
	llm llm.ChatModel
	log *slog.Logger
}

func NewService(model llm.ChatModel, log *slog.Logger) UseCase {
	if log == nil {
		log = slog.Default()
	}
	return &service{llm: model, log: log.With("module", "profile")}
}

// Identify seeds the prompt with a name guessed from the results, falling back to hint.
func (s *service) Identify(ctx context.Context, hint string, results []search.Result) []Candidate {
	listing := FormatSearchResults(results)
	if listing == "" {
		s.log.Info("identify skipped: no usable search results")
		return []Candidate{}
	}
	name := ExtractName(results)
	if name == "" {
		name = hint
	}

	raw, err := s.llm.Ask(ctx, identifySystemPrompt, fmt.Sprintf(identifyPromptTemplate, name, listing))
	if err != nil {
		s.log.Warn("identify: llm call failed", "name", name, "err", err)
		return []Candidate{}
	}
	out := ParseIdentification(raw)
	if len(out) == 0 {
		s.log.Info("identify: no candidates parsed", "name", name, "response_chars", len(raw))
	}
	return out
}

func (s *service) Analyze(ctx context.Context, content string) Record {
	text := strings.TrimSpace(content)
	if text == "" {
		rec := NewRecord("")
		rec.Error = "empty profile content"
		return rec
	}
	if utf8.RuneCountInString(text) > maxContentChars {
		text = string([]rune(text)[:maxContentChars])
	}

	raw, err := s.llm.Ask(ctx, analyzeSystemPrompt, fmt.Sprintf(analyzePromptTemplate, text))
	if err != nil {
		s.log.Warn("analyze: llm call failed", "err", err)
		return Degraded(err, content)
	}
	return ParseAnalysis(raw)
}

// Degraded is the record returned when the analysis call itself fails:
// only Error and a 500-character preview of the input are set ("..." marks a cut).
func Degraded(err error, content string) Record {
	if err == nil {
		err = errors.New("profile analysis failed")
	}
	preview := content
	if utf8.RuneCountInString(preview) > rawPreviewChars {
		preview = string([]rune(preview)[:rawPreviewChars]) + "..."
	}
	rec := NewRecord(preview)
	rec.Error = err.Error()
	return rec
}
