package profile

import (
	"regexp"
	"strings"
)

type section int

const (
	sectionUnknown section = iota
	sectionName
	sectionTitle
	sectionBio
	sectionExperience
	sectionEducation
	sectionSkills
	sectionInterests
	sectionPosts
)

// headerKeywords is checked in order; the first matching keyword set wins.
var headerKeywords = []struct {
	kind     section
	keywords []string
}{
	{sectionName, []string{"name"}},
	{sectionTitle, []string{"title", "headline", "position"}},
	{sectionBio, []string{"bio", "about", "summary"}},
	{sectionExperience, []string{"experience", "work", "employment", "job"}},
	{sectionEducation, []string{"education", "study", "university", "college", "school"}},
	{sectionSkills, []string{"skill", "expertise", "proficiency"}},
	{sectionInterests, []string{"interest", "hobby", "hobbies", "passion"}},
	{sectionPosts, []string{"post", "tweet", "activity", "update"}},
}

var (
	reSectionSplit = regexp.MustCompile(`\n\s*#+\s*|\n\s*\*{3,}\s*|\n\s*-{3,}\s*|\n\s*_{3,}\s*`)
	reHeaderMarks  = regexp.MustCompile(`^[#*_\-\s]+`)
	reItemSplit    = regexp.MustCompile(`\n\s*-\s*|\n\s*\*\s*|\n\s*[0-9]+\.\s*`)
	reTagSplit     = regexp.MustCompile(`\n\s*-\s*|\n\s*\*\s*|\n\s*[0-9]+\.\s*|,`)

	reCompany     = regexp.MustCompile(`(?i)\bat\s+([^,.\n(]+)`)
	reDateRange   = regexp.MustCompile(`(?i)(\d{4}\s*[-–]\s*\d{4}|\d{4}\s*[-–]\s*Present|\d{4})`)
	reInstitution = regexp.MustCompile(`(?:[A-Z][\w&'-]*\s+)*(?:University|College|School|Institute)(?:\s+of(?:\s+[A-Z][\w&'-]*)+)?`)
	reDegree      = regexp.MustCompile(`\b(Bachelor|Master|PhD|Doctorate|BSc|MSc|BA|MA|MBA)\b`)
)

// ParseAnalysis разбирает секционированную биографию (заголовки #, ***, ---, ___)
// в Record. Неизвестные секции пропускаются, ненайденные поля остаются nil.
// RawText всегда содержит исходный текст целиком.
func ParseAnalysis(text string) Record {
	rec := NewRecord(text)
	for _, chunk := range reSectionSplit.Split(text, -1) {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		header, body, _ := strings.Cut(chunk, "\n")
		header = strings.TrimSpace(reHeaderMarks.ReplaceAllString(header, ""))
		body = strings.TrimSpace(body)
		if body == "" {
			// "# Skills: Go, SQL"
			if _, after, ok := strings.Cut(header, ":"); ok {
				body = strings.TrimSpace(after)
			}
		}
		if body == "" {
			continue
		}

		switch classify(header) {
		case sectionName:
			rec.Name = ptr(body)
		case sectionTitle:
			rec.Title = ptr(body)
		case sectionBio:
			rec.Bio = ptr(body)
		case sectionExperience:
			for _, item := range splitItems(body, reItemSplit) {
				rec.Experience = append(rec.Experience, Experience{
					Description: item,
					Company:     firstGroup(reCompany, item),
					DateRange:   firstGroup(reDateRange, item),
				})
			}
		case sectionEducation:
			for _, item := range splitItems(body, reItemSplit) {
				rec.Education = append(rec.Education, Education{
					Description: item,
					Institution: firstMatch(reInstitution, item),
					Degree:      firstGroup(reDegree, item),
					DateRange:   firstGroup(reDateRange, item),
				})
			}
		case sectionSkills:
			rec.Skills = append(rec.Skills, splitItems(body, reTagSplit)...)
		case sectionInterests:
			rec.Interests = append(rec.Interests, splitItems(body, reTagSplit)...)
		case sectionPosts:
			for _, item := range splitItems(body, reItemSplit) {
				rec.Posts = append(rec.Posts, Post{Content: item})
			}
		}
	}
	return rec
}

func classify(header string) section {
	h := strings.ToLower(header)
	for _, hk := range headerKeywords {
		for _, kw := range hk.keywords {
			if strings.Contains(h, kw) {
				return hk.kind
			}
		}
	}
	return sectionUnknown
}

// splitItems splits a list body on bullets, numbering (and commas for tag lists).
// The leading newline makes the first bullet a delimiter too.
func splitItems(body string, re *regexp.Regexp) []string {
	var out []string
	for _, item := range re.Split("\n"+body, -1) {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func firstGroup(re *regexp.Regexp, s string) *string {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	if v := strings.TrimSpace(m[1]); v != "" {
		return &v
	}
	return nil
}

func firstMatch(re *regexp.Regexp, s string) *string {
	if v := strings.TrimSpace(re.FindString(s)); v != "" {
		return &v
	}
	return nil
}

func ptr(s string) *string { return &s }
