package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/aleksandradimitrov/wikipedia-task/internal/title"
)

// maxContinuations bounds how many result pages are requested for one title.
const maxContinuations = 25

// APISource lists a page's main-namespace links through the MediaWiki
// query API, following continuation tokens.
type APISource struct {
	endpoint string
	fetcher
}

func NewAPISource(site title.Site, opts Options) *APISource {
	return &APISource{endpoint: site.Base() + "/w/api.php", fetcher: newFetcher(opts)}
}

type apiResponse struct {
	Continue struct {
		PLContinue string `json:"plcontinue"`
	} `json:"continue"`
	Query struct {
		Pages []struct {
			Title   string `json:"title"`
			Missing bool   `json:"missing"`
			Invalid bool   `json:"invalid"`
			Links   []struct {
				NS    int    `json:"ns"`
				Title string `json:"title"`
			} `json:"links"`
		} `json:"pages"`
	} `json:"query"`
	Error *struct {
		Code string `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
}

func (s *APISource) Links(ctx context.Context, id string) ([]string, error) {
	var (
		links []string
		cont  string
	)

	for i := 0; i < maxContinuations; i++ {
		resp, err := s.query(ctx, id, cont)
		if err != nil {
			return nil, err
		}
		if resp.Error != nil {
			return nil, fmt.Errorf("wiki: api error %s: %s", resp.Error.Code, resp.Error.Info)
		}

		for _, page := range resp.Query.Pages {
			if page.Missing || page.Invalid {
				return nil, fmt.Errorf("%w: %q", ErrPageMissing, id)
			}
			for _, l := range page.Links {
				if l.NS == 0 {
					links = append(links, l.Title)
				}
			}
		}

		cont = resp.Continue.PLContinue
		if cont == "" {
			return links, nil
		}
	}

	return links, nil
}

func (s *APISource) query(ctx context.Context, id, cont string) (*apiResponse, error) {
	params := url.Values{
		"action":        {"query"},
		"format":        {"json"},
		"formatversion": {"2"},
		"prop":          {"links"},
		"titles":        {id},
		"plnamespace":   {"0"},
		"pllimit":       {"max"},
		"redirects":     {"1"},
	}
	if cont != "" {
		params.Set("plcontinue", cont)
	}

	body, err := s.get(ctx, s.endpoint+"?"+params.Encode(), "application/json")
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var resp apiResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("wiki: decode api response for %q: %w", id, err)
	}
	return &resp, nil
}
