// Package title turns page titles and page URLs into canonical node
// identifiers.
//
// The canonical form uses spaces as word separators, carries no protocol,
// host or article-path prefix and is compared case-sensitively. URLs use the
// underscore form produced by Site.URL.
package title

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aleksandradimitrov/wikipedia-task/internal/constants"
)

// ErrEmpty is returned when an input normalises to an empty identifier.
var ErrEmpty = errors.New("title: empty title")

// Site describes the knowledge base whose page URLs can be converted to
// identifiers.
type Site struct {
	base string
	host string
}

// Default is the English Wikipedia site.
var Default = MustSite(constants.DefaultBaseURL)

// NewSite builds a Site from a base URL such as https://en.wikipedia.org.
func NewSite(base string) (Site, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(base), "/")
	u, err := url.Parse(trimmed)
	if err != nil {
		return Site{}, fmt.Errorf("title: parse base url %q: %w", base, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return Site{}, fmt.Errorf("title: base url %q must include scheme and host", base)
	}
	return Site{base: trimmed, host: u.Host}, nil
}

// MustSite is like NewSite but panics on an invalid base URL.
func MustSite(base string) Site {
	s, err := NewSite(base)
	if err != nil {
		panic(err)
	}
	return s
}

// Base returns the site's base URL without a trailing slash.
func (s Site) Base() string {
	return s.base
}

// Normalize converts user input, either a title or a page URL under the
// site's article path, into a node identifier. A trailing section fragment
// is dropped so the identifier names the page itself.
func (s Site) Normalize(input string) (string, error) {
	raw := strings.TrimSpace(input)
	rest, matched := s.trimArticlePath(raw)
	if matched {
		rest = cutAny(rest, "?#")
		rest = unescape(rest)
	} else {
		rest = cutAny(rest, "#")
	}

	id := Canonical(rest)
	if id == "" {
		return "", ErrEmpty
	}
	return id, nil
}

// Link converts one raw outbound link into a node identifier. It reports
// false for links that do not name a content page: links outside the
// article path, anchor links and namespaced pages.
func (s Site) Link(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	rest, matched := s.trimArticlePath(raw)
	if !matched && looksLikeURL(raw) {
		return "", false
	}
	if strings.Contains(rest, "#") {
		return "", false
	}
	if matched {
		rest = unescape(cutAny(rest, "?"))
	}

	id := Canonical(rest)
	if id == "" || IsNamespaced(id) {
		return "", false
	}
	return id, true
}

// URL returns the page URL of an identifier.
func (s Site) URL(id string) string {
	return s.base + constants.ArticlePath + PathSegment(id)
}

func (s Site) trimArticlePath(raw string) (string, bool) {
	prefixes := []string{
		"https://" + s.host + constants.ArticlePath,
		"http://" + s.host + constants.ArticlePath,
		"//" + s.host + constants.ArticlePath,
		constants.ArticlePath,
	}
	for _, p := range prefixes {
		if len(raw) >= len(p) && strings.EqualFold(raw[:len(p)], p) {
			return raw[len(p):], true
		}
	}
	return raw, false
}

// Normalize normalises input against the Default site.
func Normalize(input string) (string, error) {
	return Default.Normalize(input)
}

// Canonical replaces underscores with spaces and collapses runs of
// whitespace into a single space.
func Canonical(s string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(s, "_", " ")), " ")
}

// PathSegment returns the underscore form of an identifier, escaped for use
// in a URL path. Slashes are kept since subpage titles use them literally.
func PathSegment(id string) string {
	parts := strings.Split(strings.ReplaceAll(id, " ", "_"), "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

// IsNamespaced reports whether id names a page outside the main content
// namespace, e.g. "Category:Films" or "File:Bacon.jpg". A colon that follows
// a multi-word prefix ("Star Wars: Episode IV") is part of an ordinary title.
func IsNamespaced(id string) bool {
	i := strings.IndexByte(id, ':')
	if i < 0 {
		return false
	}
	return !strings.ContainsAny(id[:i], " _")
}

func looksLikeURL(raw string) bool {
	return strings.HasPrefix(raw, "/") || strings.Contains(raw, "://")
}

func cutAny(s, chars string) string {
	if i := strings.IndexAny(s, chars); i >= 0 {
		return s[:i]
	}
	return s
}

func unescape(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}
