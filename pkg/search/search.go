package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Result sources.
const (
	SourceSerpAPI   = "serpapi"
	SourceGoogleCSE = "google_cse"
	SourceError     = "error"
)

// Backend selects the search API.
type Backend string

const (
	BackendNone      Backend = ""
	BackendSerpAPI   Backend = "serpapi"
	BackendGoogleCSE Backend = "google_cse"
)

const (
	defaultSerpAPIURL = "https://serpapi.com/search"
	defaultCSEURL     = "https://www.googleapis.com/customsearch/v1"
	resultsPerQuery   = 10
)

// Result is one organic search hit.
type Result struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet,omitempty"`
	Source  string `json:"source"`
}

type Config struct {
	Backend Backend
	APIKey  string
	CSEID   string
	// Endpoint overrides the backend URL (tests, proxies).
	Endpoint string
	Timeout  time.Duration
}

// Searcher is the search capability consumed by the agent.
type Searcher interface {
	Search(ctx context.Context, query string) []Result
}

// Client queries exactly one configured backend.
type Client struct {
	cfg  Config
	rest *resty.Client
	log  *slog.Logger
}

func New(cfg Config, log *slog.Logger) (*Client, error) {
	if cfg.Backend == BackendGoogleCSE && cfg.CSEID == "" {
		return nil, errors.New("google_cse backend requires a custom search engine id")
	}
	if cfg.Endpoint == "" {
		switch cfg.Backend {
		case BackendSerpAPI:
			cfg.Endpoint = defaultSerpAPIURL
		case BackendGoogleCSE:
			cfg.Endpoint = defaultCSEURL
		}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		cfg:  cfg,
		rest: resty.New().SetTimeout(cfg.Timeout).SetHeader("Accept", "application/json"),
		log:  log.With("module", "search"),
	}, nil
}

// Search never fails: backend errors come back as a single result with Source "error".
func (c *Client) Search(ctx context.Context, query string) []Result {
	var (
		out []Result
		err error
	)
	switch c.cfg.Backend {
	case BackendSerpAPI:
		out, err = c.serpAPI(ctx, query)
	case BackendGoogleCSE:
		out, err = c.googleCSE(ctx, query)
	default:
		err = errors.New("search backend is not configured")
	}
	if err != nil {
		c.log.Warn("search failed", "query", query, "backend", string(c.cfg.Backend), "err", err)
		return []Result{ErrorResult(err)}
	}
	c.log.Debug("search done", "query", query, "results", len(out))
	return out
}

// ErrorResult builds the error-flagged placeholder result.
func ErrorResult(err error) Result {
	return Result{
		Title:   "Error searching Google",
		Link:    "",
		Snippet: fmt.Sprintf("An error occurred while searching Google: %v", err),
		Source:  SourceError,
	}
}

type hit struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

func (c *Client) serpAPI(ctx context.Context, query string) ([]Result, error) {
	params := map[string]string{
		"q":       query,
		"api_key": c.cfg.APIKey,
		"engine":  "google",
		"num":     fmt.Sprint(resultsPerQuery),
		"gl":      "us",
		"hl":      "en",
	}

	var body struct {
		OrganicResults []hit `json:"organic_results"`
	}
	if err := c.getJSON(ctx, params, &body); err != nil {
		return nil, err
	}
	return toResults(body.OrganicResults, SourceSerpAPI), nil
}

func (c *Client) googleCSE(ctx context.Context, query string) ([]Result, error) {
	params := map[string]string{
		"q":   query,
		"key": c.cfg.APIKey,
		"cx":  c.cfg.CSEID,
		"num": fmt.Sprint(resultsPerQuery),
	}

	var body struct {
		Items []hit `json:"items"`
	}
	if err := c.getJSON(ctx, params, &body); err != nil {
		return nil, err
	}
	return toResults(body.Items, SourceGoogleCSE), nil
}

func (c *Client) getJSON(ctx context.Context, params map[string]string, dst any) error {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(c.cfg.Endpoint)
	if err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("search http %d", resp.StatusCode())
	}
	if err := json.Unmarshal(resp.Body(), dst); err != nil {
		return fmt.Errorf("decode search response: %w", err)
	}
	return nil
}

func toResults(hits []hit, source string) []Result {
	out := make([]Result, 0, len(hits))
	for _, h := range hits {
		out = append(out, Result{Title: h.Title, Link: h.Link, Snippet: h.Snippet, Source: source})
	}
	return out
}
