package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/artem13815/icebreaker/pkg/nlp"
)

type gitHub struct{}

func (gitHub) Name() string { return "github" }

func (gitHub) Match(domain string) bool { return nlp.MatchDomain(domain, "github.com") }

func (gitHub) Extract(doc *goquery.Document, res *Result) {
	setText(doc, res, "bio", ".user-profile-bio")

	var repos []Repository
	doc.Find(".pinned-item-list-item").Each(func(_ int, item *goquery.Selection) {
		name := strings.TrimSpace(item.Find("a.text-bold").First().Text())
		if name == "" {
			return
		}
		repos = append(repos, Repository{
			Name:        name,
			Description: nlp.CleanText(item.Find("p.pinned-item-desc").First().Text()),
		})
	})
	if len(repos) > 0 {
		res.StructuredData["pinned_repositories"] = repos
	}
}
