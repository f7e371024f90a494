package nlp

import (
	"net/url"
	"strings"
)

// IsValidURL reports whether s is an absolute http(s) URL with a host.
func IsValidURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ExtractDomain возвращает хост URL в нижнем регистре без "www.".
// Для невалидного URL возвращает пустую строку.
func ExtractDomain(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(host, "www.")
}

// MatchDomain reports whether domain equals want or is a subdomain of it.
func MatchDomain(domain, want string) bool {
	return domain == want || strings.HasSuffix(domain, "."+want)
}

var platformDomains = []struct {
	domain string
	label  string
}{
	{"linkedin.com", "LinkedIn"},
	{"twitter.com", "Twitter"},
	{"x.com", "Twitter"},
	{"github.com", "GitHub"},
	{"facebook.com", "Facebook"},
	{"instagram.com", "Instagram"},
	{"medium.com", "Medium"},
	{"scholar.google.com", "Google Scholar"},
	{"researchgate.net", "ResearchGate"},
	{"academia.edu", "Academia"},
}

// IdentifyPlatform определяет платформу по домену URL.
// Неизвестные домены дают "unknown".
func IdentifyPlatform(raw string) string {
	domain := ExtractDomain(raw)
	if domain == "" {
		return "unknown"
	}
	for _, p := range platformDomains {
		if MatchDomain(domain, p.domain) {
			return p.label
		}
	}
	return "unknown"
}
