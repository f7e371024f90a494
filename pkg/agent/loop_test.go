package agent

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/icebreaker/pkg/llm"
	"github.com/artem13815/icebreaker/pkg/profile"
)

func TestLoopFullRun(t *testing.T) {
	s, sc, p := testTools()
	d := &scriptedDecider{script: []any{
		Search{Query: "Jane Smith"},
		Identify{},
		Scrape{URL: "https://github.com/jane"},
		Analyze{Content: "https://github.com/jane"},
		Finish{Answer: "Jane is a Go developer."},
	}}
	loop := NewLoop(d, Tools{Search: s, Scraper: sc, Profiles: p}, Limits{MaxIterations: 10, MaxExecutionTime: time.Minute}, nil)

	out := loop.Run(context.Background(), "Jane Smith")
	assert.Equal(t, StopFinished, out.Stop)
	assert.Equal(t, 5, out.Iterations)
	assert.Equal(t, "Jane is a Go developer.", out.Answer)
	assert.Equal(t, []string{"Jane Smith"}, s.queries)

	// identify received the accumulated search results
	require.Len(t, p.identified, 1)
	assert.Len(t, p.identified[0], 2)
	// analyze received the scraped page content
	require.Equal(t, []string{"Jane Smith builds key-value stores in Go and maintains several libraries."}, p.analyzed)

	require.Len(t, out.Findings, 1)
	f := out.Findings[0]
	assert.Equal(t, "https://github.com/jane", f.URL)
	assert.Equal(t, "GitHub", f.Platform)
	assert.Equal(t, "Go and databases", f.Structured["bio"])
	require.NotNil(t, f.Profile)
	assert.Equal(t, "Jane Smith", *f.Profile.Name)

	// deduplicated by URL, identification order, scores kept
	require.Len(t, out.Sources, 2)
	assert.Equal(t, "https://github.com/jane", out.Sources[0].URL)
	assert.Equal(t, 0.9, *out.Sources[0].RelevanceScore)
	assert.Equal(t, "https://linkedin.com/in/jane-smith", out.Sources[1].URL)

	// observations were fed back to the decider
	last := d.seen[len(d.seen)-1]
	require.Len(t, last, 4)
	assert.Contains(t, last[0].Observation, "https://github.com/jane")
	assert.Contains(t, last[1].Observation, "relevance 0.90")
	assert.Contains(t, last[2].Observation, "bio: Go and databases")
	assert.Contains(t, last[3].Observation, "Name: Jane Smith")
}

func TestLoopIterationCeiling(t *testing.T) {
	s, sc, p := testTools()
	d := &scriptedDecider{script: []any{
		Search{Query: "a"}, Search{Query: "b"}, Search{Query: "c"}, Search{Query: "d"}, Search{Query: "e"}, Search{Query: "f"},
	}}
	loop := NewLoop(d, Tools{Search: s, Scraper: sc, Profiles: p}, Limits{MaxIterations: 3, MaxExecutionTime: time.Minute}, nil)

	out := loop.Run(context.Background(), "Jane Smith")
	assert.Equal(t, StopIterationLimit, out.Stop)
	assert.Equal(t, 3, out.Iterations)
	assert.Equal(t, []string{"a", "b", "c"}, s.queries)
}

func TestLoopTimeCeiling(t *testing.T) {
	s, sc, p := testTools()
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	d := &scriptedDecider{
		script: []any{Scrape{URL: "https://github.com/jane"}, Search{Query: "a"}, Search{Query: "b"}},
		onCall: func() { clock.Advance(30 * time.Second) },
	}
	loop := NewLoop(d, Tools{Search: s, Scraper: sc, Profiles: p},
		Limits{MaxIterations: 10, MaxExecutionTime: time.Minute}, nil, WithClock(clock.Now))

	out := loop.Run(context.Background(), "Jane Smith")
	assert.Equal(t, StopTimeLimit, out.Stop)
	assert.Equal(t, 2, out.Iterations)
	// partial output survives
	assert.Len(t, out.Findings, 1)
	assert.Len(t, out.Sources, 1)
}

func TestLoopFeedsBackFormatErrors(t *testing.T) {
	s, sc, p := testTools()
	d := &scriptedDecider{script: []any{
		&FormatError{Output: "I will search now", Reason: "missing 'Action:' after 'Thought:'"},
		Search{Query: "Jane"},
	}}
	loop := NewLoop(d, Tools{Search: s, Scraper: sc, Profiles: p}, Limits{MaxIterations: 5, MaxExecutionTime: time.Minute}, nil)

	out := loop.Run(context.Background(), "Jane")
	assert.Equal(t, StopFinished, out.Stop)
	require.Len(t, d.seen, 3)
	require.Len(t, d.seen[1], 1)
	assert.Equal(t, "I will search now", d.seen[1][0].Log)
	assert.True(t, strings.HasPrefix(d.seen[1][0].Observation, "Invalid format: missing 'Action:'"))
}

func TestLoopStopsWhenModelFails(t *testing.T) {
	s, sc, p := testTools()
	d := &scriptedDecider{script: []any{
		Scrape{URL: "https://github.com/jane"},
		errors.New("llm unavailable"),
		Search{Query: "never reached"},
	}}
	loop := NewLoop(d, Tools{Search: s, Scraper: sc, Profiles: p}, Limits{MaxIterations: 5, MaxExecutionTime: time.Minute}, nil)

	out := loop.Run(context.Background(), "Jane")
	assert.Equal(t, StopDecideFailed, out.Stop)
	assert.Len(t, out.Findings, 1)
	assert.Empty(t, s.queries)
}

func TestLoopCancelled(t *testing.T) {
	s, sc, p := testTools()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d := &scriptedDecider{}
	out := NewLoop(d, Tools{Search: s, Scraper: sc, Profiles: p}, Limits{}, nil).Run(ctx, "Jane")
	assert.Equal(t, StopCancelled, out.Stop)
	assert.Equal(t, 0, d.calls)
}

func TestLoopToolEdgeCases(t *testing.T) {
	s, sc, p := testTools()
	p.record = profile.Degraded(errors.New("llm down"), "text")
	d := &scriptedDecider{script: []any{
		Identify{},
		Scrape{URL: "github.com/jane"},
		Scrape{URL: "https://example.com/missing"},
		Analyze{},
		Scrape{URL: "https://github.com/jane"},
		Scrape{URL: "https://github.com/jane"},
		Analyze{Content: "latest"},
	}}
	loop := NewLoop(d, Tools{Search: s, Scraper: sc, Profiles: p}, Limits{MaxIterations: 10, MaxExecutionTime: time.Minute}, nil)

	out := loop.Run(context.Background(), "Jane")
	obs := d.seen[len(d.seen)-1]
	require.Len(t, obs, 7)
	assert.Contains(t, obs[0].Observation, "Use Search first")
	assert.Contains(t, obs[1].Observation, "Invalid URL")
	assert.Contains(t, obs[2].Observation, "Failed to scrape https://example.com/missing: HTTP 404")
	assert.Contains(t, obs[3].Observation, "Nothing to analyze")
	assert.Contains(t, obs[6].Observation, "Analysis failed: llm down")

	// the second scrape of the same page is served from the run cache
	assert.Equal(t, 2, sc.calls)
	assert.Len(t, out.Findings, 1)
	assert.Nil(t, out.Findings[0].Profile)
	assert.Empty(t, p.identified)
}

func TestLoopWithLLMDecider(t *testing.T) {
	s, sc, p := testTools()
	replies := []string{
		"Thought: start with a search\nAction: Search\nAction Input: Jane Smith",
		"I found a GitHub page.\nAction: Scrape\nAction Input: https://github.com/jane",
		"Thought: I have enough information\nFinal Answer: Jane writes Go.",
	}
	var prompts []string
	model := llm.ChatFunc(func(_ context.Context, _, user string) (string, error) {
		prompts = append(prompts, user)
		r := replies[0]
		replies = replies[1:]
		return r, nil
	})

	loop := NewLoop(NewLLMDecider(model), Tools{Search: s, Scraper: sc, Profiles: p}, Limits{}, nil)
	out := loop.Run(context.Background(), "Jane Smith")

	assert.Equal(t, StopFinished, out.Stop)
	assert.Equal(t, "Jane writes Go.", out.Answer)
	require.Len(t, prompts, 3)
	assert.True(t, strings.HasPrefix(prompts[0], "Task: Generate personalized ice breakers for Jane Smith"))
	assert.Contains(t, prompts[2], "Action: Scrape\nAction Input: https://github.com/jane\nObservation: Title: jane (Jane Smith)")
}
