package agent

import "github.com/artem13815/icebreaker/pkg/profile"

const defaultSourceRelevance = 0.8

// ConvertSources validates raw sources. A record without url or platform, or
// with a score outside [0, 1], is dropped; the rest are kept in order.
func ConvertSources(raw []SourceRecord) []profile.Candidate {
	out := make([]profile.Candidate, 0, len(raw))
	for _, s := range raw {
		if s.URL == "" || s.Platform == "" {
			continue
		}
		score := defaultSourceRelevance
		if s.RelevanceScore != nil {
			score = *s.RelevanceScore
		}
		if score < 0 || score > 1 {
			continue
		}
		out = append(out, profile.Candidate{URL: s.URL, Platform: s.Platform, Title: s.Title, RelevanceScore: score})
	}
	return out
}
