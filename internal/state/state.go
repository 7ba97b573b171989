package state

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/aleksandradimitrov/wikipedia-task/internal/config"
	"github.com/aleksandradimitrov/wikipedia-task/internal/constants"
	"github.com/aleksandradimitrov/wikipedia-task/internal/logging"
	"github.com/aleksandradimitrov/wikipedia-task/internal/metrics"
	"github.com/aleksandradimitrov/wikipedia-task/internal/resolver"
	"github.com/aleksandradimitrov/wikipedia-task/internal/title"
	"github.com/aleksandradimitrov/wikipedia-task/internal/traversal"
	"github.com/aleksandradimitrov/wikipedia-task/internal/wiki"
)

// State carries what every command needs: the configuration read from disk,
// shared instrumentation and the HTTP client used to reach the site.
type State struct {
	Config   *config.Config
	Home     string
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Progress *Progress

	// Client overrides the HTTP client built from the effective timeout.
	Client wiki.HTTPClient

	stopMetrics func(context.Context) error
}

func NewState() (*State, error) {
	home, err := GetHomeDir()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(home)
	if err != nil {
		return nil, err
	}

	return New(home, cfg), nil
}

// New assembles a State around an already loaded configuration.
func New(home string, cfg *config.Config) *State {
	return &State{
		Config:   cfg,
		Home:     home,
		Logger:   logging.Discard(),
		Metrics:  metrics.New(),
		Progress: &Progress{},
	}
}

func GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return home, nil
}

// Settings returns the effective configuration with flag overrides applied
// and points the logger at the configured level.
func (s *State) Settings() (*config.Config, error) {
	cfg, err := config.FromViper()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.LogLevel, nil)
	if err != nil {
		return nil, err
	}
	s.Logger = logger

	return cfg, nil
}

// Source builds the link source selected by cfg, wrapped in an LRU cache
// when cache_size is positive.
func (s *State) Source(cfg *config.Config) (wiki.LinkSource, error) {
	site, err := title.NewSite(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	opts := wiki.Options{
		Client:    s.httpClient(cfg),
		Limiter:   wiki.NewLimiter(cfg.RateLimit, cfg.Burst),
		UserAgent: cfg.UserAgent,
	}

	var src wiki.LinkSource
	switch cfg.Source {
	case constants.SourceHTML:
		src = wiki.NewHTMLSource(site, opts)
	case constants.SourceAPI:
		src = wiki.NewAPISource(site, opts)
	default:
		return nil, fmt.Errorf("%w: unknown source %q", config.ErrInvalid, cfg.Source)
	}

	if cfg.CacheSize > 0 {
		cached, err := wiki.NewCachedSource(src, cfg.CacheSize, s.Metrics)
		if err != nil {
			return nil, err
		}
		return cached, nil
	}
	return src, nil
}

func (s *State) Resolver(cfg *config.Config) (*resolver.Resolver, error) {
	src, err := s.Source(cfg)
	if err != nil {
		return nil, err
	}

	site, err := title.NewSite(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	return resolver.New(src,
		resolver.WithSite(site),
		resolver.WithLimit(cfg.NeighborLimit),
		resolver.WithLogger(s.Logger),
		resolver.WithMetrics(s.Metrics),
	), nil
}

// Engine builds a traversal engine for cfg.Target whose events feed the
// metrics registry and the Progress counters.
func (s *State) Engine(cfg *config.Config) (*traversal.Engine, error) {
	r, err := s.Resolver(cfg)
	if err != nil {
		return nil, err
	}

	site, err := title.NewSite(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	return traversal.New(r, cfg.Target,
		traversal.WithConcurrency(cfg.Concurrency),
		traversal.WithMaxDepth(cfg.MaxDepth),
		traversal.WithNormalizer(site.Normalize),
		traversal.WithLogger(s.Logger),
		traversal.WithOnEnqueue(func(_ string, depth int) {
			s.Metrics.ObserveEnqueue()
			s.Progress.enqueued(depth)
		}),
		traversal.WithOnDequeue(func(id string, depth int) {
			s.Progress.dequeued(id, depth)
		}),
		traversal.WithOnExpand(func(_ string, depth int, _ int, ok bool) {
			s.Metrics.ObserveExpand(depth)
			s.Progress.expanded(ok)
		}),
	)
}

// ServeMetrics exposes the registry on addr until Close. An empty addr is a
// no-op.
func (s *State) ServeMetrics(addr string) error {
	if addr == "" {
		return nil
	}
	stop, err := s.Metrics.Serve(addr)
	if err != nil {
		return err
	}
	s.stopMetrics = stop
	return nil
}

func (s *State) httpClient(cfg *config.Config) wiki.HTTPClient {
	if s.Client != nil {
		return s.Client
	}
	return &http.Client{Timeout: cfg.Timeout}
}

// Close releases resources associated with the state, including the
// metrics listener.
func (s *State) Close() error {
	if s == nil {
		return nil
	}

	var errs []error
	if s.stopMetrics != nil {
		if err := s.stopMetrics(context.Background()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs = append(errs, err)
		}
		s.stopMetrics = nil
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
