package agent

import (
	"context"
	"sync"
	"time"

	"github.com/artem13815/icebreaker/pkg/profile"
	"github.com/artem13815/icebreaker/pkg/scraper"
	"github.com/artem13815/icebreaker/pkg/search"
)

// scriptedDecider replays steps (or errors) in order, then finishes.
type scriptedDecider struct {
	mu     sync.Mutex
	script []any
	calls  int
	seen   [][]Turn
	onCall func()
}

func (d *scriptedDecider) Decide(_ context.Context, _ string, history []Turn) (Step, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.onCall != nil {
		d.onCall()
	}
	d.seen = append(d.seen, append([]Turn(nil), history...))
	i := d.calls
	d.calls++
	if i >= len(d.script) {
		return Step{Thought: "done", Action: Finish{Answer: "done"}}, nil
	}
	switch v := d.script[i].(type) {
	case Action:
		return Step{Thought: "next", Action: v}, nil
	case error:
		return Step{}, v
	}
	panic("bad script entry")
}

type fakeSearcher struct {
	results []search.Result
	queries []string
}

func (f *fakeSearcher) Search(_ context.Context, q string) []search.Result {
	f.queries = append(f.queries, q)
	return f.results
}

type fakeScraper struct {
	pages map[string]scraper.Result
	calls int
}

func (f *fakeScraper) Scrape(_ context.Context, url string) scraper.Result {
	f.calls++
	if r, ok := f.pages[url]; ok {
		return r
	}
	return scraper.Result{URL: url, Success: false, Platform: "unknown", Error: "HTTP 404", StructuredData: map[string]any{}}
}

type fakeProfiles struct {
	candidates []profile.Candidate
	record     profile.Record
	identified [][]search.Result
	analyzed   []string
}

func (f *fakeProfiles) Identify(_ context.Context, _ string, results []search.Result) []profile.Candidate {
	f.identified = append(f.identified, results)
	return f.candidates
}

func (f *fakeProfiles) Analyze(_ context.Context, content string) profile.Record {
	f.analyzed = append(f.analyzed, content)
	return f.record
}

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func strPtr(s string) *string { return &s }

func testTools() (*fakeSearcher, *fakeScraper, *fakeProfiles) {
	s := &fakeSearcher{results: []search.Result{
		{Title: "Jane Smith | LinkedIn", Link: "https://linkedin.com/in/jane-smith", Source: search.SourceSerpAPI},
		{Title: "jane (Jane Smith) · GitHub", Link: "https://github.com/jane", Snippet: "Go developer", Source: search.SourceSerpAPI},
	}}
	sc := &fakeScraper{pages: map[string]scraper.Result{
		"https://github.com/jane": {
			URL: "https://github.com/jane", Success: true, Title: "jane (Jane Smith)", Platform: "GitHub",
			Content:        "Jane Smith builds key-value stores in Go and maintains several libraries.",
			StructuredData: map[string]any{"bio": "Go and databases"},
		},
	}}
	rec := profile.NewRecord("# Name\nJane Smith")
	rec.Name = strPtr("Jane Smith")
	rec.Skills = []string{"Go", "Databases"}
	p := &fakeProfiles{
		candidates: []profile.Candidate{
			{URL: "https://github.com/jane", Platform: "GitHub", Title: "jane", RelevanceScore: 0.9},
			{URL: "https://linkedin.com/in/jane-smith", Platform: "LinkedIn", RelevanceScore: 0.7},
		},
		record: rec,
	}
	return s, sc, p
}
