package nlp

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var (
	reTags   = regexp.MustCompile(`<[^>]+>`)
	reSpaces = regexp.MustCompile(`\s+`)
)

// CleanText приводит текст к каноническому виду: NFKD, без HTML-тегов,
// с одиночными пробелами вместо любых последовательностей whitespace.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	s = reTags.ReplaceAllString(s, " ")
	s = norm.NFKD.String(s)
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// TruncateText обрезает текст до max символов и добавляет "...".
// Если последний пробел находится в последних 20% отрезка, обрезаем по нему,
// чтобы не рвать слово.
func TruncateText(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	cut := string(runes[:max])
	if i := strings.LastIndex(cut, " "); i > 0 && utf8.RuneCountInString(cut[:i]) > max*8/10 {
		cut = cut[:i]
	}
	return cut + "..."
}

// particles are kept lower-case unless they open the name.
var particles = map[string]struct{}{
	"van": {}, "de": {}, "der": {}, "von": {}, "el": {},
	"al": {}, "bin": {}, "ibn": {}, "mac": {}, "mc": {},
}

// FormatName нормализует регистр имени: "vincent van gogh" -> "Vincent van Gogh",
// "mary-jane smith" -> "Mary-Jane Smith".
func FormatName(name string) string {
	parts := strings.Fields(name)
	for i, p := range parts {
		lower := strings.ToLower(p)
		switch {
		case strings.Contains(p, "-"):
			sub := strings.Split(p, "-")
			for j := range sub {
				sub[j] = Capitalize(sub[j])
			}
			parts[i] = strings.Join(sub, "-")
		case i > 0 && isParticle(lower):
			parts[i] = lower
		default:
			parts[i] = Capitalize(p)
		}
	}
	return strings.Join(parts, " ")
}

func isParticle(s string) bool {
	_, ok := particles[s]
	return ok
}

// Capitalize upper-cases the first letter and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
