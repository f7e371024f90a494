package scraper

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/artem13815/icebreaker/pkg/nlp"
)

// Extractor layers platform-specific structured extraction over the generic page text.
// Each platform keeps its own selector set; a selector miss leaves the field out.
type Extractor interface {
	Name() string
	Match(domain string) bool
	Extract(doc *goquery.Document, res *Result)
}

var extractors = []Extractor{linkedIn{}, twitter{}, gitHub{}}

func extractorFor(domain string) Extractor {
	if domain == "" {
		return nil
	}
	for _, ex := range extractors {
		if ex.Match(domain) {
			return ex
		}
	}
	return nil
}

var academicHost = regexp.MustCompile(`\.(edu|ac\.[a-z]{2})$`)

// PlatformLabel определяет метку платформы по URL: известные домены,
// академические (.edu / .ac.xx), персональные страницы ("about"/"bio" в пути), иначе "unknown".
func PlatformLabel(raw string) string {
	if p := nlp.IdentifyPlatform(raw); p != "unknown" {
		return p
	}
	if academicHost.MatchString(nlp.ExtractDomain(raw)) {
		return "Academic"
	}
	if u, err := url.Parse(raw); err == nil {
		p := strings.ToLower(u.Path)
		if strings.Contains(p, "about") || strings.Contains(p, "bio") {
			return "Personal Website"
		}
	}
	return "unknown"
}

// setText stores the cleaned text of the first match of sel under key.
func setText(doc *goquery.Document, res *Result, key, sel string) {
	s := doc.Find(sel).First()
	if s.Length() == 0 {
		return
	}
	if v := nlp.CleanText(nodeText(s.Nodes, " ")); v != "" {
		res.StructuredData[key] = v
	}
}
