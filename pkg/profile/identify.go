package profile

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/artem13815/icebreaker/pkg/nlp"
	"github.com/artem13815/icebreaker/pkg/search"
)

const defaultRelevance = 0.5

var (
	reEntryStart = regexp.MustCompile(`^[0-9]+[.)]*`)
	reURL        = regexp.MustCompile(`(?i)URL:?\s*(https?://[^\s]+)`)
	rePlatform   = regexp.MustCompile(`(?i)Platform:?\s*([^\s:]+)`)
	// Принимаются только формы 0.d+ и 1.0; всё остальное оставляет оценку по умолчанию.
	reScore = regexp.MustCompile(`(?i)(Relevance|Score|Likelihood):?\s*(0\.\d+|1\.0)`)
	reTitle = regexp.MustCompile(`(?i)Title:?\s*(.+)$`)
)

type entry struct {
	url, platform, title string
	score                *float64
}

func (e entry) complete() bool { return e.url != "" && e.platform != "" }

func (e entry) candidate() Candidate {
	c := Candidate{URL: e.url, Platform: e.platform, Title: e.title, RelevanceScore: defaultRelevance}
	if e.score != nil {
		c.RelevanceScore = *e.score
	}
	return c
}

// ParseIdentification разбирает ранжированный список профилей из ответа LLM.
// Записи без url или platform отбрасываются; результат отсортирован по
// relevance_score по убыванию с сохранением исходного порядка при равенстве.
// Нераспознанный текст даёт пустой список.
func ParseIdentification(text string) []Candidate {
	out := []Candidate{}
	var cur entry
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if reEntryStart.MatchString(line) || strings.Contains(line, "Platform:") || strings.Contains(line, "URL:") {
			if cur.complete() {
				out = append(out, cur.candidate())
				cur = entry{}
			}
		}
		if m := reURL.FindStringSubmatch(line); m != nil {
			cur.url = m[1]
		}
		if m := rePlatform.FindStringSubmatch(line); m != nil {
			cur.platform = m[1]
		}
		if m := reScore.FindStringSubmatch(line); m != nil {
			if v, err := strconv.ParseFloat(m[2], 64); err == nil {
				cur.score = &v
			}
		}
		if m := reTitle.FindStringSubmatch(line); m != nil {
			cur.title = strings.TrimSpace(m[1])
		}
	}
	if cur.complete() {
		out = append(out, cur.candidate())
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].RelevanceScore > out[j].RelevanceScore })
	return out
}

var (
	reTitleName = regexp.MustCompile(`^(.+?)\s*(?:\||–|—|\s-\s)`)
	reSlug      = regexp.MustCompile(`(?i)(?:linkedin\.com/in/|twitter\.com/|github\.com/)([^/?#\s]+)`)
	reDigit     = regexp.MustCompile(`\d`)
)

// ExtractName угадывает имя человека по результатам поиска: сначала по заголовку
// вида "Имя | Платформа", затем по slug из URL LinkedIn/Twitter/GitHub.
// Возвращает первое совпадение или пустую строку.
func ExtractName(results []search.Result) string {
	for _, r := range results {
		if r.Source == search.SourceError {
			continue
		}
		if m := reTitleName.FindStringSubmatch(strings.TrimSpace(r.Title)); m != nil {
			if name := strings.TrimSpace(m[1]); name != "" {
				return name
			}
		}
		if name := nameFromSlug(r.Link); name != "" {
			return name
		}
	}
	return ""
}

// nameFromSlug turns "jane-smith-4b1a2c" into "Jane Smith": every word Title Case.
func nameFromSlug(link string) string {
	m := reSlug.FindStringSubmatch(link)
	if m == nil {
		return ""
	}
	var words []string
	for _, part := range strings.Split(m[1], "-") {
		if part == "" || reDigit.MatchString(part) {
			continue
		}
		words = append(words, nlp.Capitalize(part))
	}
	return strings.Join(words, " ")
}

// FormatSearchResults renders results for the identification prompt.
func FormatSearchResults(results []search.Result) string {
	var sb strings.Builder
	n := 0
	for _, r := range results {
		if r.Source == search.SourceError || r.Link == "" {
			continue
		}
		n++
		fmt.Fprintf(&sb, "%d. Title: %s\n   URL: %s\n", n, r.Title, r.Link)
		if r.Snippet != "" {
			fmt.Fprintf(&sb, "   Snippet: %s\n", r.Snippet)
		}
	}
	return sb.String()
}
