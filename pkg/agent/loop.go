package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/artem13815/icebreaker/pkg/nlp"
	"github.com/artem13815/icebreaker/pkg/profile"
	"github.com/artem13815/icebreaker/pkg/scraper"
	"github.com/artem13815/icebreaker/pkg/search"
)

const (
	observationChars = 1500
	excerptChars     = 1500
	// shorter Analyze inputs are treated as a reference to the last scraped page
	minAnalyzeChars = 40
)

// StopReason says why the loop ended. None of them is an error.
type StopReason string

const (
	StopFinished       StopReason = "finished"
	StopIterationLimit StopReason = "iteration_limit"
	StopTimeLimit      StopReason = "time_limit"
	StopDecideFailed   StopReason = "decide_failed"
	StopCancelled      StopReason = "cancelled"
)

// Tools are the four capabilities the loop can invoke.
type Tools struct {
	Search   search.Searcher
	Scraper  scraper.Scraper
	Profiles profile.UseCase
}

type Limits struct {
	MaxIterations    int
	MaxExecutionTime time.Duration
}

// Finding is one piece of profile data gathered by the loop.
type Finding struct {
	URL        string
	Platform   string
	Title      string
	Structured map[string]any
	Excerpt    string
	Profile    *profile.Record
}

// SourceRecord is a raw source before validation; RelevanceScore is nil when unknown.
type SourceRecord struct {
	URL            string
	Platform       string
	Title          string
	RelevanceScore *float64
}

// Outcome is the partial or complete result of one loop run.
type Outcome struct {
	Findings   []Finding
	Sources    []SourceRecord
	Answer     string
	Iterations int
	Stop       StopReason
}

// Loop drives the think-act-observe cycle. Steps run strictly one after another.
type Loop struct {
	decider Decider
	tools   Tools
	limits  Limits
	now     func() time.Time
	log     *slog.Logger
}

type LoopOption func(*Loop)

// WithClock replaces time.Now for the wall-clock ceiling.
func WithClock(now func() time.Time) LoopOption {
	return func(l *Loop) { l.now = now }
}

func NewLoop(decider Decider, tools Tools, limits Limits, log *slog.Logger, opts ...LoopOption) *Loop {
	if limits.MaxIterations <= 0 {
		limits.MaxIterations = 5
	}
	if limits.MaxExecutionTime <= 0 {
		limits.MaxExecutionTime = 60 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}
	l := &Loop{
		decider: decider,
		tools:   tools,
		limits:  limits,
		now:     time.Now,
		log:     log.With("module", "agent"),
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// run holds the mutable state of a single Run call.
type run struct {
	name     string
	results  []search.Result
	pages    map[string]scraper.Result
	lastPage string
	sources  map[string]int
	history  []Turn
	out      Outcome
}

// Run never fails: hitting a ceiling or losing the model returns what was gathered so far.
func (l *Loop) Run(ctx context.Context, name string) Outcome {
	start := l.now()
	runCtx, cancel := context.WithTimeout(ctx, l.limits.MaxExecutionTime)
	defer cancel()

	r := &run{
		name:    name,
		pages:   map[string]scraper.Result{},
		sources: map[string]int{},
	}
	task := fmt.Sprintf(taskTemplate, name)
	log := l.log.With("name", name)

	for {
		if r.out.Iterations >= l.limits.MaxIterations {
			r.out.Stop = StopIterationLimit
			break
		}
		if l.now().Sub(start) >= l.limits.MaxExecutionTime {
			r.out.Stop = StopTimeLimit
			break
		}
		if err := runCtx.Err(); err != nil {
			r.out.Stop = l.ctxStop(ctx)
			break
		}
		r.out.Iterations++

		step, err := l.decider.Decide(runCtx, task, r.history)
		if err != nil {
			var fe *FormatError
			if errors.As(err, &fe) {
				log.Info("unparseable agent output", "iteration", r.out.Iterations, "reason", fe.Reason)
				r.history = append(r.history, Turn{
					Log:         fe.Output,
					Observation: fmt.Sprintf("Invalid format: %s. %s", fe.Reason, formatReminder),
				})
				continue
			}
			if runCtx.Err() != nil {
				r.out.Stop = l.ctxStop(ctx)
			} else {
				r.out.Stop = StopDecideFailed
			}
			log.Warn("agent decide failed", "iteration", r.out.Iterations, "err", err)
			break
		}

		if f, ok := step.Action.(Finish); ok {
			r.out.Answer = f.Answer
			r.out.Stop = StopFinished
			break
		}
		log.Debug("agent action", "iteration", r.out.Iterations, "tool", step.Action.Tool(), "input", input(step.Action))
		obs := l.act(runCtx, r, step.Action)
		r.history = append(r.history, Turn{Log: stepLog(step), Observation: nlp.TruncateText(obs, observationChars)})
	}

	log.Info("agent loop finished",
		"stop", string(r.out.Stop),
		"iterations", r.out.Iterations,
		"findings", len(r.out.Findings),
		"sources", len(r.out.Sources),
		"elapsed", l.now().Sub(start).String(),
	)
	return r.out
}

func (l *Loop) ctxStop(parent context.Context) StopReason {
	if parent.Err() != nil {
		return StopCancelled
	}
	return StopTimeLimit
}

func (l *Loop) act(ctx context.Context, r *run, a Action) string {
	switch a := a.(type) {
	case Search:
		return l.search(ctx, r, a.Query)
	case Scrape:
		return l.scrape(ctx, r, a.URL)
	case Identify:
		return l.identify(ctx, r, a.Data)
	case Analyze:
		return l.analyze(ctx, r, a.Content)
	}
	return "Unsupported action."
}

func (l *Loop) search(ctx context.Context, r *run, query string) string {
	results := l.tools.Search.Search(ctx, query)
	var sb strings.Builder
	n := 0
	for _, res := range results {
		if res.Source == search.SourceError {
			sb.WriteString(res.Snippet + "\n")
			continue
		}
		r.results = append(r.results, res)
		n++
		fmt.Fprintf(&sb, "%d. %s\n   %s\n", n, res.Title, res.Link)
		if res.Snippet != "" {
			fmt.Fprintf(&sb, "   %s\n", res.Snippet)
		}
	}
	if sb.Len() == 0 {
		return "No results found."
	}
	return sb.String()
}

func (l *Loop) scrape(ctx context.Context, r *run, url string) string {
	if !nlp.IsValidURL(url) {
		return fmt.Sprintf("Invalid URL %q: pass a full http(s) URL from the search results.", url)
	}
	res, seen := r.pages[url]
	if !seen {
		res = l.tools.Scraper.Scrape(ctx, url)
	}
	if !res.Success {
		return fmt.Sprintf("Failed to scrape %s: %s", url, res.Error)
	}
	r.pages[url] = res
	r.lastPage = url
	if !seen {
		r.out.Findings = append(r.out.Findings, Finding{
			URL:        url,
			Platform:   res.Platform,
			Title:      res.Title,
			Structured: res.StructuredData,
			Excerpt:    nlp.TruncateText(res.Content, excerptChars),
		})
		r.addSource(SourceRecord{URL: url, Platform: res.Platform, Title: res.Title})
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Title: %s\nPlatform: %s\n", res.Title, res.Platform)
	if res.LoginRequired {
		sb.WriteString("Login wall: only public information is visible.\n")
	}
	for _, line := range structuredLines(res.StructuredData) {
		sb.WriteString(line + "\n")
	}
	sb.WriteString("Content:\n")
	sb.WriteString(res.Content)
	return sb.String()
}

func (l *Loop) identify(ctx context.Context, r *run, data string) string {
	results := r.results
	var explicit []search.Result
	if err := json.Unmarshal([]byte(data), &explicit); err == nil && len(explicit) > 0 {
		results = explicit
	}
	if len(results) == 0 {
		return "No search results to identify profiles from. Use Search first."
	}

	candidates := l.tools.Profiles.Identify(ctx, r.name, results)
	if len(candidates) == 0 {
		return "No matching profiles identified."
	}
	var sb strings.Builder
	for i, c := range candidates {
		score := c.RelevanceScore
		r.addSource(SourceRecord{URL: c.URL, Platform: c.Platform, Title: c.Title, RelevanceScore: &score})
		fmt.Fprintf(&sb, "%d. %s (%s, relevance %.2f) %s\n", i+1, c.URL, c.Platform, c.RelevanceScore, c.Title)
	}
	return sb.String()
}

func (l *Loop) analyze(ctx context.Context, r *run, arg string) string {
	url, content := "", arg
	if page, ok := r.pages[arg]; ok {
		url, content = arg, page.Content
	} else if utf8.RuneCountInString(arg) < minAnalyzeChars && r.lastPage != "" {
		url, content = r.lastPage, r.pages[r.lastPage].Content
	}
	if strings.TrimSpace(content) == "" {
		return "Nothing to analyze. Scrape a profile page first or pass its text."
	}

	rec := l.tools.Profiles.Analyze(ctx, content)
	if rec.Error != "" {
		return "Analysis failed: " + rec.Error
	}
	if rec.Empty() {
		return "No biographical details could be extracted."
	}
	r.attachProfile(url, rec)
	return summarizeRecord(rec)
}

func (r *run) addSource(s SourceRecord) {
	if i, ok := r.sources[s.URL]; ok {
		if r.out.Sources[i].RelevanceScore == nil {
			r.out.Sources[i].RelevanceScore = s.RelevanceScore
		}
		return
	}
	r.sources[s.URL] = len(r.out.Sources)
	r.out.Sources = append(r.out.Sources, s)
}

func (r *run) attachProfile(url string, rec profile.Record) {
	if url != "" {
		for i := range r.out.Findings {
			if r.out.Findings[i].URL == url {
				r.out.Findings[i].Profile = &rec
				return
			}
		}
	}
	r.out.Findings = append(r.out.Findings, Finding{URL: url, Profile: &rec})
}
