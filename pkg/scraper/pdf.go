package scraper

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"path"
	"regexp"
	"strings"

	pdf "github.com/ledongthuc/pdf"
)

var reBlankLines = regexp.MustCompile(`\n{3,}`)

func isPDF(contentType, rawURL string) bool {
	if strings.Contains(strings.ToLower(contentType), "application/pdf") {
		return true
	}
	u, err := url.Parse(rawURL)
	return err == nil && strings.HasSuffix(strings.ToLower(u.Path), ".pdf")
}

// scrapePDF handles CVs and papers linked from academic pages.
func scrapePDF(rawURL string, data []byte) (Result, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Result{}, fmt.Errorf("open pdf: %w", err)
	}
	rs, err := r.GetPlainText()
	if err != nil {
		return Result{}, fmt.Errorf("pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rs); err != nil {
		return Result{}, fmt.Errorf("pdf text: %w", err)
	}
	title := ""
	if u, err := url.Parse(rawURL); err == nil {
		title = path.Base(u.Path)
	}
	return Result{
		URL:            rawURL,
		Success:        true,
		Content:        strings.TrimSpace(reBlankLines.ReplaceAllString(buf.String(), "\n\n")),
		Title:          title,
		Platform:       PlatformLabel(rawURL),
		StructuredData: map[string]any{},
	}, nil
}
