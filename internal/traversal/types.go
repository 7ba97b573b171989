package traversal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aleksandradimitrov/wikipedia-task/internal/logging"
	"github.com/aleksandradimitrov/wikipedia-task/internal/title"
)

// Unreachable is the Distance reported when the frontier drains without
// meeting the target.
const Unreachable = -1

// Sentinel errors for traversal setup and execution.
var (
	// ErrEmptyStart is returned when the start page normalises to nothing.
	ErrEmptyStart = errors.New("traversal: start page is empty")

	// ErrEmptyTarget is returned when the target page normalises to nothing.
	ErrEmptyTarget = errors.New("traversal: target page is empty")

	// ErrNilResolver is returned when no Resolver is supplied.
	ErrNilResolver = errors.New("traversal: resolver is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("traversal: invalid option supplied")
)

// Resolver yields the outbound neighbours of a node. ok=false marks a failed
// lookup; the node then counts as having no neighbours.
type Resolver interface {
	Resolve(ctx context.Context, id string) (neighbors []string, ok bool)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(ctx context.Context, id string) ([]string, bool)

func (f ResolverFunc) Resolve(ctx context.Context, id string) ([]string, bool) {
	return f(ctx, id)
}

// Option configures an Engine via functional arguments.
// Invalid options are recorded and surfaced as ErrOptionViolation by New.
type Option func(*Options)

// Options holds parameters and callbacks of a traversal.
//
// Hooks always run on the goroutine that called FindDistance, also when
// expansion is parallel, so they need no locking of their own.
type Options struct {
	// Concurrency is the number of lookups issued at once within one level.
	// 1 expands nodes strictly one after another.
	Concurrency int

	// MaxDepth, if > 0, stops expanding nodes at this depth.
	// A value of 0 disables the limit.
	MaxDepth int

	// Normalize turns start and target input into node identifiers.
	Normalize func(string) (string, error)

	// OnEnqueue is called for every frontier entry created.
	OnEnqueue func(id string, depth int)

	// OnDequeue is called for every frontier entry consumed.
	OnDequeue func(id string, depth int)

	// OnExpand is called once a node's neighbours are known.
	OnExpand func(id string, depth int, neighbors int, ok bool)

	Logger *slog.Logger

	err error
}

// DefaultOptions returns sequential, unlimited options normalising titles
// against the default site.
func DefaultOptions() Options {
	return Options{
		Concurrency: 1,
		MaxDepth:    0,
		Normalize:   title.Normalize,
		OnEnqueue:   func(string, int) {},
		OnDequeue:   func(string, int) {},
		OnExpand:    func(string, int, int, bool) {},
		Logger:      logging.Discard(),
	}
}

// WithConcurrency expands up to n nodes of the same level in parallel.
// n < 1 is an ErrOptionViolation.
func WithConcurrency(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: Concurrency must be at least 1 (%d)", ErrOptionViolation, n)
			return
		}
		o.Concurrency = n
	}
}

// WithMaxDepth stops expanding nodes at depth d.
//
//	d > 0: nodes at depth d are dequeued but not expanded
//	d == 0: no depth limit
//	d < 0: ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithNormalizer replaces the identifier normaliser.
func WithNormalizer(fn func(string) (string, error)) Option {
	return func(o *Options) {
		if fn != nil {
			o.Normalize = fn
		}
	}
}

func WithOnEnqueue(fn func(id string, depth int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnEnqueue = fn
		}
	}
}

func WithOnDequeue(fn func(id string, depth int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnDequeue = fn
		}
	}
}

func WithOnExpand(fn func(id string, depth int, neighbors int, ok bool)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnExpand = fn
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// Result is the outcome of one traversal.
type Result struct {
	Start  string
	Target string

	// Distance is the hop count from Start to Target, or Unreachable.
	Distance int

	Expanded int // nodes whose neighbours were requested
	Failed   int // expansions whose lookup failed
	Enqueued int // frontier entries created, including the start
}

// Reachable reports whether the target was found.
func (r Result) Reachable() bool {
	return r.Distance != Unreachable
}
