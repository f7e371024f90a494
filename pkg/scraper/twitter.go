package scraper

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/artem13815/icebreaker/pkg/nlp"
)

const maxRecentTweets = 5

type twitter struct{}

func (twitter) Name() string { return "twitter" }

func (twitter) Match(domain string) bool {
	return nlp.MatchDomain(domain, "twitter.com") || nlp.MatchDomain(domain, "x.com")
}

func (twitter) Extract(doc *goquery.Document, res *Result) {
	setText(doc, res, "bio", "[data-testid='UserDescription'], .ProfileHeaderCard-bio")
	setText(doc, res, "location", "[data-testid='UserLocation'], .ProfileHeaderCard-location")

	var tweets []string
	doc.Find("[data-testid='tweet'], .tweet").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if t := nodeText(s.Nodes, " "); t != "" {
			tweets = append(tweets, t)
		}
		return len(tweets) < maxRecentTweets
	})
	if len(tweets) > 0 {
		res.StructuredData["recent_tweets"] = tweets
	}
}
