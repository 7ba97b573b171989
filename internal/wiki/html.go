package wiki

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/aleksandradimitrov/wikipedia-task/internal/constants"
	"github.com/aleksandradimitrov/wikipedia-task/internal/title"
)

// HTMLSource scrapes the rendered article page and returns every anchor
// href under the article path, in document order.
type HTMLSource struct {
	site title.Site
	fetcher
}

func NewHTMLSource(site title.Site, opts Options) *HTMLSource {
	return &HTMLSource{site: site, fetcher: newFetcher(opts)}
}

func (s *HTMLSource) Links(ctx context.Context, id string) ([]string, error) {
	body, err := s.get(ctx, s.site.URL(id), "text/html")
	if err != nil {
		return nil, err
	}
	defer body.Close()

	links, err := ExtractLinks(body)
	if err != nil {
		return nil, fmt.Errorf("wiki: parse %q: %w", id, err)
	}
	return links, nil
}

// ExtractLinks tokenizes an HTML document and collects the href of every
// <a> element whose target starts with the article path.
func ExtractLinks(r io.Reader) ([]string, error) {
	var links []string

	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, err
			}
			return links, nil
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if string(name) != "a" || !hasAttr {
				continue
			}
			for {
				key, val, more := z.TagAttr()
				if string(key) == "href" && strings.HasPrefix(string(val), constants.ArticlePath) {
					links = append(links, string(val))
				}
				if !more {
					break
				}
			}
		}
	}
}
