package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/artem13815/icebreaker/pkg/nlp"
)

const (
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	maxBodyBytes     = 5 << 20
)

// Result: итог одного скрейпа. После возврата не изменяется.
type Result struct {
	URL            string         `json:"url"`
	Success        bool           `json:"success"`
	Content        string         `json:"content"`
	HTML           string         `json:"html,omitempty"`
	Title          string         `json:"title"`
	Platform       string         `json:"platform"`
	StructuredData map[string]any `json:"structured_data"`
	LoginRequired  bool           `json:"login_required,omitempty"`
	Error          string         `json:"error,omitempty"`
}

// Repository is a pinned GitHub repository.
type Repository struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Config struct {
	UserAgent string
	Timeout   time.Duration
	// Transport overrides the HTTP transport (tests, proxies).
	Transport http.RoundTripper
}

// Scraper is the scrape capability consumed by the agent.
type Scraper interface {
	Scrape(ctx context.Context, url string) Result
}

// Client fetches pages and runs the matching platform extractor.
type Client struct {
	userAgent string
	httpDo    *http.Client
	log       *slog.Logger
}

func New(cfg Config, log *slog.Logger) *Client {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		userAgent: cfg.UserAgent,
		httpDo:    &http.Client{Timeout: cfg.Timeout, Transport: cfg.Transport},
		log:       log.With("module", "scraper"),
	}
}

// Scrape never returns an error: every failure is folded into Result.Error.
func (c *Client) Scrape(ctx context.Context, rawURL string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = failure(rawURL, fmt.Errorf("panic while scraping: %v", r))
			c.log.Error("scrape panicked", "url", rawURL, "panic", r)
		}
	}()

	res, err := c.scrape(ctx, rawURL)
	if err != nil {
		c.log.Warn("scrape failed", "url", rawURL, "err", err)
		return failure(rawURL, err)
	}
	if !res.Success {
		c.log.Info("scrape rejected", "url", rawURL, "err", res.Error)
	}
	return res
}

func (c *Client) scrape(ctx context.Context, rawURL string) (Result, error) {
	if !nlp.IsValidURL(rawURL) {
		return Result{}, fmt.Errorf("invalid url %q", rawURL)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Result{}, err
	}
	c.setHeaders(req)

	resp, err := c.httpDo.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{
			URL:            rawURL,
			Success:        false,
			Platform:       PlatformLabel(rawURL),
			StructuredData: map[string]any{},
			Error:          fmt.Sprintf("HTTP %d", resp.StatusCode),
		}, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Result{}, fmt.Errorf("read body: %w", err)
	}
	if isPDF(resp.Header.Get("Content-Type"), rawURL) {
		return scrapePDF(rawURL, body)
	}
	return scrapeHTML(rawURL, body)
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Referer", "https://www.google.com/")
	req.Header.Set("DNT", "1")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
}

func scrapeHTML(rawURL string, body []byte) (Result, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("parse html: %w", err)
	}
	res := Result{
		URL:            rawURL,
		Success:        true,
		HTML:           string(body),
		Title:          strings.TrimSpace(doc.Find("title").First().Text()),
		Platform:       PlatformLabel(rawURL),
		StructuredData: map[string]any{},
		Content:        mainText(doc),
	}
	if ex := extractorFor(nlp.ExtractDomain(rawURL)); ex != nil {
		ex.Extract(doc, &res)
	}
	return res, nil
}

var contentContainers = []string{"main", "article", "div", "body"}

// mainText берёт первый найденный контейнер (main > article > div > body),
// вырезает служебные поддеревья на копии и собирает видимый текст построчно.
func mainText(doc *goquery.Document) string {
	container := doc.Selection
	for _, sel := range contentContainers {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			container = s
			break
		}
	}
	clone := container.Clone()
	clone.Find("script, style, nav, footer, header").Remove()
	return nodeText(clone.Nodes, "\n")
}

// nodeText joins trimmed text nodes under nodes with sep.
func nodeText(nodes []*html.Node, sep string) string {
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if t := strings.Join(strings.Fields(n.Data), " "); t != "" {
				parts = append(parts, t)
			}
			return
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "noscript":
				return
			}
		case html.CommentNode:
			return
		}
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			walk(ch)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return strings.Join(parts, sep)
}

func failure(rawURL string, err error) Result {
	if err == nil {
		err = errors.New("unknown scrape error")
	}
	return Result{
		URL:            rawURL,
		Success:        false,
		Content:        "",
		Title:          "",
		Platform:       "unknown",
		StructuredData: map[string]any{},
		Error:          err.Error(),
	}
}
