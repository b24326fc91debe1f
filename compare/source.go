package compare

import (
	"net/url"
	"strings"
)

// SiteName derives a display name from a URL host: the first hostname
// label, capitalized, with any www. prefix removed.
func SiteName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "Source"
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	host, _, _ = strings.Cut(host, ":")
	name, _, _ := strings.Cut(host, ".")
	if name == "" {
		return "Source"
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// SourceLink renders the gap row source cell: an anchor that opens the
// competitor page in a new tab.
func SourceLink(rawURL string) string {
	return `<a href="` + rawURL + `" target="_blank" rel="noopener noreferrer">` + SiteName(rawURL) + `</a>`
}
