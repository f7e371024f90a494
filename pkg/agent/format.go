package agent

import (
	"fmt"
	"sort"
	"strings"

	"github.com/artem13815/icebreaker/pkg/profile"
	"github.com/artem13815/icebreaker/pkg/scraper"
)

// structuredLines renders scraper structured data as sorted "key: value" lines.
func structuredLines(data map[string]any) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		var v string
		switch val := data[k].(type) {
		case string:
			v = val
		case []string:
			v = strings.Join(val, " | ")
		case []scraper.Repository:
			parts := make([]string, 0, len(val))
			for _, repo := range val {
				if repo.Description != "" {
					parts = append(parts, repo.Name+" ("+repo.Description+")")
				} else {
					parts = append(parts, repo.Name)
				}
			}
			v = strings.Join(parts, "; ")
		default:
			v = fmt.Sprint(val)
		}
		lines = append(lines, strings.ReplaceAll(k, "_", " ")+": "+v)
	}
	return lines
}

func summarizeRecord(rec profile.Record) string {
	var sb strings.Builder
	writeRecord(&sb, rec)
	return sb.String()
}

func writeRecord(sb *strings.Builder, rec profile.Record) {
	opt := func(label string, v *string) {
		if v != nil {
			fmt.Fprintf(sb, "%s: %s\n", label, *v)
		}
	}
	opt("Name", rec.Name)
	opt("Title", rec.Title)
	opt("Bio", rec.Bio)
	for _, e := range rec.Experience {
		fmt.Fprintf(sb, "Experience: %s\n", e.Description)
	}
	for _, e := range rec.Education {
		fmt.Fprintf(sb, "Education: %s\n", e.Description)
	}
	if len(rec.Skills) > 0 {
		fmt.Fprintf(sb, "Skills: %s\n", strings.Join(rec.Skills, ", "))
	}
	if len(rec.Interests) > 0 {
		fmt.Fprintf(sb, "Interests: %s\n", strings.Join(rec.Interests, ", "))
	}
	for _, p := range rec.Posts {
		fmt.Fprintf(sb, "Post: %s\n", p.Content)
	}
}

// FormatFindings renders the gathered profile data for the synthesis prompt.
func FormatFindings(findings []Finding) string {
	var sb strings.Builder
	for i, f := range findings {
		if i > 0 {
			sb.WriteString("\n")
		}
		switch {
		case f.URL != "" && f.Platform != "":
			fmt.Fprintf(&sb, "Source: %s (%s)\n", f.URL, f.Platform)
		case f.URL != "":
			fmt.Fprintf(&sb, "Source: %s\n", f.URL)
		default:
			sb.WriteString("Source: analyzed text\n")
		}
		if f.Title != "" {
			fmt.Fprintf(&sb, "Page title: %s\n", f.Title)
		}
		for _, line := range structuredLines(f.Structured) {
			sb.WriteString(line + "\n")
		}
		if f.Profile != nil {
			writeRecord(&sb, *f.Profile)
		} else if f.Excerpt != "" {
			fmt.Fprintf(&sb, "Excerpt: %s\n", f.Excerpt)
		}
	}
	return sb.String()
}
