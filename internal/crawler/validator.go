package crawler

import (
	"net/url"
	"strings"
)

var skipExtensions = []string{
	".pdf", ".jpg", ".jpeg", ".png", ".gif", ".svg", ".ico", ".webp",
	".zip", ".tar", ".gz", ".rar", ".7z",
	".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx",
	".mp4", ".mp3", ".avi", ".mov", ".wav",
	".css", ".js", ".xml", ".json", ".csv",
}

var skipPatterns = []string{
	"login", "signin", "sign-in", "signup", "sign-up", "register",
	"cart", "checkout", "payment", "account", "profile",
	"search", "filter", "sort",
	"privacy", "terms", "cookie", "legal", "disclaimer",
	"wp-admin", "wp-content", "wp-includes",
	"feed", "rss", "atom",
}

// NormalizeSeed turns a bare domain or URL into an absolute https URL.
func NormalizeSeed(seed string) string {
	seed = strings.TrimSpace(seed)
	lower := strings.ToLower(seed)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return seed
	}
	return "https://" + seed
}

// NormalizeURL reduces a URL to scheme://host/path with the trailing slash,
// query and fragment removed. Unparsable input is returned unchanged.
func NormalizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Scheme + "://" + strings.ToLower(u.Host) + strings.TrimRight(u.EscapedPath(), "/")
}

// BaseDomain returns the host used for same-site checks, without a leading www.
func BaseDomain(seedURL string) string {
	u, err := url.Parse(seedURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Host), "www.")
}

// IsValidCandidate reports whether a discovered URL is worth fetching: same
// site, HTML-like and not a utility, legal or feed endpoint.
func IsValidCandidate(raw, baseDomain string) bool {
	if strings.HasPrefix(strings.TrimSpace(raw), "#") {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if baseDomain == "" || !strings.Contains(strings.ToLower(u.Host), baseDomain) {
		return false
	}

	path := strings.ToLower(u.Path)
	for _, ext := range skipExtensions {
		if strings.HasSuffix(path, ext) {
			return false
		}
	}

	target := path
	if u.RawQuery != "" {
		target += "?" + strings.ToLower(u.RawQuery)
	}
	for _, p := range skipPatterns {
		if strings.Contains(target, p) {
			return false
		}
	}
	return true
}
