// Package traversal finds the degree of separation between two pages by a
// breadth-first search over a graph that is revealed one lookup at a time.
//
// The engine only ever holds the frontier queue and the visited set. A node
// may be enqueued from several parents but is expanded at most once, and the
// first time the target reaches the front of the queue its depth is the
// shortest hop count.
package traversal

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// queueItem pairs a node with its distance from the start.
type queueItem struct {
	id    string
	depth int
}

// Engine searches for one fixed target page.
type Engine struct {
	resolver Resolver
	target   string
	opts     Options
}

// New builds an Engine for target. It returns ErrNilResolver, ErrEmptyTarget
// or ErrOptionViolation for invalid input.
func New(r Resolver, target string, opts ...Option) (*Engine, error) {
	if r == nil {
		return nil, ErrNilResolver
	}

	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	id, err := o.Normalize(target)
	if err != nil || id == "" {
		return nil, fmt.Errorf("%w: %q", ErrEmptyTarget, target)
	}

	return &Engine{resolver: r, target: id, opts: o}, nil
}

// Target returns the normalised target identifier.
func (e *Engine) Target() string {
	return e.target
}

// FindDistance runs one traversal from start. An unreachable target is not
// an error: the Result carries Distance == Unreachable. Errors are
// ErrEmptyStart for blank input and the context error on cancellation.
func (e *Engine) FindDistance(ctx context.Context, start string) (Result, error) {
	id, err := e.opts.Normalize(start)
	if err != nil || id == "" {
		return Result{Distance: Unreachable}, fmt.Errorf("%w: %q", ErrEmptyStart, start)
	}

	w := &walker{
		engine:  e,
		ctx:     ctx,
		visited: make(map[string]bool),
		res:     Result{Start: id, Target: e.target, Distance: Unreachable},
	}
	w.enqueue(id, 0)

	if e.opts.Concurrency > 1 {
		err = w.loopLevels()
	} else {
		err = w.loop()
	}
	return w.res, err
}

// FindDistance is a convenience wrapper building a one-off Engine.
func FindDistance(ctx context.Context, r Resolver, start, target string, opts ...Option) (Result, error) {
	e, err := New(r, target, opts...)
	if err != nil {
		return Result{Distance: Unreachable}, err
	}
	return e.FindDistance(ctx, start)
}

// walker holds the mutable state of one traversal.
type walker struct {
	engine  *Engine
	ctx     context.Context
	queue   []queueItem
	visited map[string]bool
	level   int
	res     Result
}

func (w *walker) enqueue(id string, depth int) {
	w.res.Enqueued++
	w.engine.opts.OnEnqueue(id, depth)
	w.queue = append(w.queue, queueItem{id: id, depth: depth})
}

func (w *walker) dequeue() queueItem {
	item := w.queue[0]
	w.queue = w.queue[1:]
	w.engine.opts.OnDequeue(item.id, item.depth)
	if item.depth > w.level {
		w.level = item.depth
		w.engine.opts.Logger.Debug("entering level", "depth", item.depth, "queued", len(w.queue)+1)
	}
	return item
}

// admit decides what happens to a dequeued entry. It reports found when the
// entry is the target and expand when the node must be expanded; in the
// latter case the node is already marked visited.
func (w *walker) admit(item queueItem) (found, expand bool) {
	// The target check precedes the visited check so that any entry naming
	// the target terminates the search.
	if item.id == w.engine.target {
		w.res.Distance = item.depth
		return true, false
	}
	if w.visited[item.id] {
		return false, false
	}
	w.visited[item.id] = true

	if limit := w.engine.opts.MaxDepth; limit > 0 && item.depth >= limit {
		return false, false
	}
	return false, true
}

// record applies the outcome of one expansion.
func (w *walker) record(item queueItem, neighbors []string, ok bool) {
	w.res.Expanded++
	if !ok {
		w.res.Failed++
	}
	w.engine.opts.OnExpand(item.id, item.depth, len(neighbors), ok)

	for _, nbr := range neighbors {
		if !w.visited[nbr] {
			w.enqueue(nbr, item.depth+1)
		}
	}
}

// loop expands one node at a time until the target is met, the queue
// drains, or ctx is cancelled.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		if err := w.ctx.Err(); err != nil {
			return err
		}

		item := w.dequeue()
		found, expand := w.admit(item)
		if found {
			return nil
		}
		if !expand {
			continue
		}

		neighbors, ok := w.engine.resolver.Resolve(w.ctx, item.id)
		w.record(item, neighbors, ok)
	}
	return nil
}

// loopLevels drains one whole level, resolves its unvisited nodes in
// parallel and applies the results in queue order before moving on to the
// next level.
func (w *walker) loopLevels() error {
	for len(w.queue) > 0 {
		if err := w.ctx.Err(); err != nil {
			return err
		}

		depth := w.queue[0].depth
		var batch []queueItem
		for len(w.queue) > 0 && w.queue[0].depth == depth {
			item := w.dequeue()
			found, expand := w.admit(item)
			if found {
				return nil
			}
			if expand {
				batch = append(batch, item)
			}
		}

		results := w.expandAll(batch)
		if err := w.ctx.Err(); err != nil {
			return err
		}
		for i, item := range batch {
			w.record(item, results[i].neighbors, results[i].ok)
		}
	}
	return nil
}

type expansion struct {
	neighbors []string
	ok        bool
}

func (w *walker) expandAll(batch []queueItem) []expansion {
	results := make([]expansion, len(batch))

	var g errgroup.Group
	g.SetLimit(w.engine.opts.Concurrency)
	for i, item := range batch {
		i, item := i, item
		g.Go(func() error {
			neighbors, ok := w.engine.resolver.Resolve(w.ctx, item.id)
			results[i] = expansion{neighbors: neighbors, ok: ok}
			return nil
		})
	}
	// Lookup failures are reported through ok, never as errors.
	_ = g.Wait()

	return results
}
