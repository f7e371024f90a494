package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/artem13815/icebreaker/pkg/nlp"
)

const loginNote = "\n\nNote: Full LinkedIn profile requires login. Only public information is available."

type linkedIn struct{}

func (linkedIn) Name() string { return "linkedin" }

func (linkedIn) Match(domain string) bool { return nlp.MatchDomain(domain, "linkedin.com") }

func (linkedIn) Extract(doc *goquery.Document, res *Result) {
	setText(doc, res, "name", ".pv-top-card-section__name, .text-heading-xlarge")
	setText(doc, res, "headline", ".pv-top-card-section__headline, .text-body-medium")
	setText(doc, res, "about", "#about-section, .pv-about-section")

	// login wall
	if strings.Contains(res.Content, "Sign in") && strings.Contains(res.Content, "to view") {
		res.LoginRequired = true
		res.Content += loginNote
	}
}
