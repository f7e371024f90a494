package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/icebreaker/pkg/llm"
	"github.com/artem13815/icebreaker/pkg/profile"
)

func TestCleanIceBreakers(t *testing.T) {
	text := `# Ice Breakers for Jane
Ice breakers:

1. I saw your kvstore project on GitHub. What made you write your own storage engine?
2) How did you get into bouldering?
- What was the best talk at GopherCon this year?
**Ice Breakers:**
* **4.** Which database paper changed how you think?
5. 10 years of Rust or Go: which would you pick for your next project?
6. This line is over the limit.`

	out := CleanIceBreakers(text)
	assert.Equal(t, []string{
		"I saw your kvstore project on GitHub. What made you write your own storage engine?",
		"How did you get into bouldering?",
		"What was the best talk at GopherCon this year?",
		"Which database paper changed how you think?",
		"10 years of Rust or Go: which would you pick for your next project?",
	}, out)
}

func TestCleanIceBreakersKeepsLeadingNumbers(t *testing.T) {
	out := CleanIceBreakers("1. 10 years in fintech is impressive. What kept you there?\n2. 3D printing as a hobby sounds fun!\n__Ice breakers__")
	assert.Equal(t, []string{
		"10 years in fintech is impressive. What kept you there?",
		"3D printing as a hobby sounds fun!",
	}, out)
}

func TestCleanIceBreakersNothingUsable(t *testing.T) {
	assert.Empty(t, CleanIceBreakers(""))
	assert.Empty(t, CleanIceBreakers("# Heading\n\nIcebreakers\n1.\n"))
}

func TestFallback(t *testing.T) {
	out := Fallback("Jane Smith")
	require.Len(t, out, 3)
	for _, s := range out {
		assert.Contains(t, s, "Jane Smith")
	}
}

func findings() []Finding {
	rec := profile.NewRecord("")
	rec.Skills = []string{"Go"}
	return []Finding{{URL: "https://github.com/jane", Platform: "GitHub", Profile: &rec}}
}

func TestSynthesizerFallbacks(t *testing.T) {
	calls := 0
	counting := func(reply string, err error) llm.ChatModel {
		return llm.ChatFunc(func(context.Context, string, string) (string, error) {
			calls++
			return reply, err
		})
	}
	ctx := context.Background()

	// no profile data: no model call at all
	out := NewSynthesizer(counting("1. hi", nil), nil).Generate(ctx, "Jane", nil)
	assert.Equal(t, Fallback("Jane"), out)
	assert.Equal(t, 0, calls)

	out = NewSynthesizer(counting("", errors.New("boom")), nil).Generate(ctx, "Jane", findings())
	assert.Equal(t, Fallback("Jane"), out)

	out = NewSynthesizer(counting("# Ice breakers\n\n", nil), nil).Generate(ctx, "Jane", findings())
	assert.Equal(t, Fallback("Jane"), out)

	panicking := llm.ChatFunc(func(context.Context, string, string) (string, error) { panic("provider bug") })
	out = NewSynthesizer(panicking, nil).Generate(ctx, "Jane", findings())
	assert.Equal(t, Fallback("Jane"), out)
}

func TestSynthesizerUsesFindings(t *testing.T) {
	var prompt string
	model := llm.ChatFunc(func(_ context.Context, _, user string) (string, error) {
		prompt = user
		return "1. What got you into Go?\n2. Which Go library are you proudest of?", nil
	})
	out := NewSynthesizer(model, nil).Generate(context.Background(), "Jane", findings())
	assert.Equal(t, []string{"What got you into Go?", "Which Go library are you proudest of?"}, out)
	assert.Contains(t, prompt, "conversation with Jane")
	assert.Contains(t, prompt, "Source: https://github.com/jane (GitHub)\nSkills: Go\n")
}

func TestFormatFindings(t *testing.T) {
	out := FormatFindings([]Finding{
		{URL: "https://x.com/jane", Platform: "Twitter", Title: "Jane (@jane)",
			Structured: map[string]any{"recent_tweets": []string{"one", "two"}, "bio": "climber"},
			Excerpt:    "Jane tweets about climbing"},
		{Profile: &profile.Record{Bio: strPtr("Engineer")}},
	})
	assert.Equal(t, "Source: https://x.com/jane (Twitter)\nPage title: Jane (@jane)\nbio: climber\nrecent tweets: one | two\n"+
		"Excerpt: Jane tweets about climbing\n\nSource: analyzed text\nBio: Engineer\n", out)
}

func TestConvertSources(t *testing.T) {
	score := func(v float64) *float64 { return &v }
	out := ConvertSources([]SourceRecord{
		{URL: "https://github.com/jane", Platform: "GitHub", RelevanceScore: score(0.9)},
		{URL: "", Platform: "GitHub"},
		{URL: "https://janesmith.dev", Platform: ""},
		{URL: "https://x.com/jane", Platform: "Twitter", RelevanceScore: score(1.5)},
		{URL: "https://medium.com/@jane", Platform: "Medium", Title: "Jane on Medium"},
	})
	assert.Equal(t, []profile.Candidate{
		{URL: "https://github.com/jane", Platform: "GitHub", RelevanceScore: 0.9},
		{URL: "https://medium.com/@jane", Platform: "Medium", Title: "Jane on Medium", RelevanceScore: 0.8},
	}, out)
	assert.NotNil(t, ConvertSources(nil))
}
