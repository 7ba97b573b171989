// Package resolver turns a page's raw outbound links into the neighbour set
// used by the traversal: canonical identifiers, content pages only, first
// occurrence wins, capped per page.
package resolver

import (
	"context"
	"log/slog"
	"time"

	"github.com/aleksandradimitrov/wikipedia-task/internal/constants"
	"github.com/aleksandradimitrov/wikipedia-task/internal/logging"
	"github.com/aleksandradimitrov/wikipedia-task/internal/metrics"
	"github.com/aleksandradimitrov/wikipedia-task/internal/title"
	"github.com/aleksandradimitrov/wikipedia-task/internal/wiki"
)

type Resolver struct {
	source  wiki.LinkSource
	site    title.Site
	limit   int
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Resolver)

// WithLimit caps the neighbours returned per page. Values below one are
// ignored.
func WithLimit(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.limit = n
		}
	}
}

// WithSite sets the site used to recognise article links.
func WithSite(s title.Site) Option {
	return func(r *Resolver) {
		r.site = s
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

func New(source wiki.LinkSource, opts ...Option) *Resolver {
	r := &Resolver{
		source: source,
		site:   title.Default,
		limit:  constants.NeighborLimit,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the neighbours of id. A failed lookup is logged and
// reported as ok=false with no neighbours; it never aborts the caller.
func (r *Resolver) Resolve(ctx context.Context, id string) ([]string, bool) {
	neighbors, err := r.Lookup(ctx, id)
	if err != nil {
		r.logger.Warn("link lookup failed", "title", id, "error", err)
		return nil, false
	}
	r.logger.Debug("resolved links", "title", id, "neighbors", len(neighbors))
	return neighbors, true
}

// Lookup is Resolve with the lookup error exposed.
func (r *Resolver) Lookup(ctx context.Context, id string) ([]string, error) {
	start := time.Now()
	raw, err := r.source.Links(ctx, id)
	r.metrics.ObserveLookup(err == nil, time.Since(start))
	if err != nil {
		return nil, err
	}
	return r.Filter(raw), nil
}

// Filter normalises raw links, drops non-content and duplicate entries and
// applies the per-page cap after filtering.
func (r *Resolver) Filter(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, min(len(raw), r.limit))
	for _, link := range raw {
		id, ok := r.site.Link(link)
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
		if len(out) == r.limit {
			break
		}
	}
	return out
}
