package traversal_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/aleksandradimitrov/wikipedia-task/internal/resolver"
	"github.com/aleksandradimitrov/wikipedia-task/internal/traversal"
	"github.com/aleksandradimitrov/wikipedia-task/internal/wiki"
)

const target = "Kevin Bacon"

// graph is a synthetic link graph that counts lookups per node.
type graph struct {
	mu     sync.Mutex
	links  map[string][]string
	failed map[string]bool
	calls  map[string]int
}

func newGraph(links map[string][]string) *graph {
	return &graph{links: links, failed: map[string]bool{}, calls: map[string]int{}}
}

func (g *graph) Resolve(_ context.Context, id string) ([]string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls[id]++
	if g.failed[id] {
		return nil, false
	}
	return g.links[id], true
}

func (g *graph) totalCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, c := range g.calls {
		n += c
	}
	return n
}

// modes runs every test against sequential and level-parallel expansion.
var modes = []struct {
	name string
	opts []traversal.Option
}{
	{"sequential", nil},
	{"parallel", []traversal.Option{traversal.WithConcurrency(4)}},
}

func find(t *testing.T, g *graph, start string, opts ...traversal.Option) traversal.Result {
	t.Helper()
	res, err := traversal.FindDistance(context.Background(), g, start, target, opts...)
	if err != nil {
		t.Fatalf("FindDistance(%q) returned error: %v", start, err)
	}
	return res
}

func TestStartIsTarget(t *testing.T) {
	for _, mode := range modes {
		t.Run(mode.name, func(t *testing.T) {
			for _, start := range []string{"Kevin Bacon", "Kevin_Bacon", " https://en.wikipedia.org/wiki/Kevin_Bacon "} {
				g := newGraph(nil)
				res := find(t, g, start, mode.opts...)
				if res.Distance != 0 {
					t.Fatalf("Distance(%q) = %d, want 0", start, res.Distance)
				}
				if g.totalCalls() != 0 {
					t.Fatalf("resolver called %d times, want 0", g.totalCalls())
				}
			}
		})
	}
}

func TestScenarios(t *testing.T) {
	cases := []struct {
		name  string
		links map[string][]string
		want  int
	}{
		{
			name:  "direct link",
			links: map[string][]string{"Start": {target}},
			want:  1,
		},
		{
			name:  "two hops",
			links: map[string][]string{"Start": {"A"}, "A": {target}},
			want:  2,
		},
		{
			name: "shorter route wins over earlier longer route",
			links: map[string][]string{
				"Start":  {"Long1", "Short1"},
				"Long1":  {"Long2"},
				"Long2":  {"Long3"},
				"Long3":  {target},
				"Short1": {"Short2"},
				"Short2": {target},
			},
			want: 3,
		},
		{
			name: "cycle without target",
			links: map[string][]string{
				"Start": {"A"},
				"A":     {"B"},
				"B":     {"Start", "A"},
			},
			want: traversal.Unreachable,
		},
		{
			name:  "dead end",
			links: map[string][]string{"Start": nil},
			want:  traversal.Unreachable,
		},
	}

	for _, tc := range cases {
		for _, mode := range modes {
			tc, mode := tc, mode
			t.Run(tc.name+"/"+mode.name, func(t *testing.T) {
				res := find(t, newGraph(tc.links), "Start", mode.opts...)
				if res.Distance != tc.want {
					t.Fatalf("Distance = %d, want %d", res.Distance, tc.want)
				}
				if res.Reachable() != (tc.want != traversal.Unreachable) {
					t.Fatalf("Reachable = %v for distance %d", res.Reachable(), res.Distance)
				}
			})
		}
	}
}

// TestShortestPathsOnLayeredGraph builds a layered graph with cross links
// and checks the distance from every node against the known layer index.
func TestShortestPathsOnLayeredGraph(t *testing.T) {
	const layers, width = 6, 5
	links := map[string][]string{}
	node := func(l, i int) string { return fmt.Sprintf("L%d-%d", l, i) }
	for l := 0; l < layers; l++ {
		for i := 0; i < width; i++ {
			var out []string
			if l == layers-1 {
				out = append(out, target)
			} else {
				out = append(out, node(l+1, i), node(l+1, (i+1)%width))
			}
			// Back edges and same-layer edges must not shorten anything.
			out = append(out, node(l, (i+2)%width))
			if l > 0 {
				out = append(out, node(l-1, i))
			}
			links[node(l, i)] = out
		}
	}

	for _, mode := range modes {
		for l := 0; l < layers; l++ {
			res := find(t, newGraph(links), node(l, 0), mode.opts...)
			if want := layers - l; res.Distance != want {
				t.Fatalf("%s: Distance from layer %d = %d, want %d", mode.name, l, res.Distance, want)
			}
		}
	}
}

// TestNeighborCap runs the engine on a real Resolver so that the per-page
// cap decides whether a link on a crowded page is ever followed.
func TestNeighborCap(t *testing.T) {
	page := func(pos int) []string {
		var raw []string
		for i := 1; i <= 61; i++ {
			if i == pos {
				raw = append(raw, "/wiki/Kevin_Bacon")
				continue
			}
			raw = append(raw, fmt.Sprintf("/wiki/Filler_%d", i))
		}
		return raw
	}

	cases := []struct {
		pos  int
		want int
	}{
		{pos: 1, want: 1},
		{pos: 50, want: 1},
		{pos: 51, want: traversal.Unreachable},
		{pos: 55, want: traversal.Unreachable},
	}
	for _, tc := range cases {
		src := wiki.LinkSourceFunc(func(_ context.Context, id string) ([]string, error) {
			if id == "Start" {
				return page(tc.pos), nil
			}
			return nil, nil
		})
		res, err := traversal.FindDistance(context.Background(), resolver.New(src), "Start", target)
		if err != nil {
			t.Fatalf("position %d: unexpected error: %v", tc.pos, err)
		}
		if res.Distance != tc.want {
			t.Fatalf("position %d: Distance = %d, want %d", tc.pos, res.Distance, tc.want)
		}
	}
}

func TestSingleExpansionPerNode(t *testing.T) {
	// Shared is reachable from every first-level node and links back.
	links := map[string][]string{
		"Start":  {"A", "B", "C", "Shared"},
		"A":      {"Shared", "B"},
		"B":      {"Shared", "A"},
		"C":      {"Shared", "Start"},
		"Shared": {"A", "B", "C", "Start", "Deep"},
		"Deep":   {"Shared"},
	}

	for _, mode := range modes {
		g := newGraph(links)
		res := find(t, g, "Start", mode.opts...)
		if res.Reachable() {
			t.Fatalf("%s: expected unreachable, got %d", mode.name, res.Distance)
		}
		for id, n := range g.calls {
			if n != 1 {
				t.Fatalf("%s: %s resolved %d times, want 1", mode.name, id, n)
			}
		}
		if res.Expanded != len(links) {
			t.Fatalf("%s: Expanded = %d, want %d", mode.name, res.Expanded, len(links))
		}
	}
}

func TestFailedNodeContributesNoEdges(t *testing.T) {
	links := map[string][]string{
		"Start":   {"Broken", "Detour"},
		"Broken":  {target},
		"Detour":  {"Detour2"},
		"Detour2": {target},
	}

	for _, mode := range modes {
		g := newGraph(links)
		g.failed["Broken"] = true

		res := find(t, g, "Start", mode.opts...)
		if res.Distance != 3 {
			t.Fatalf("%s: Distance = %d, want 3 via the detour", mode.name, res.Distance)
		}
		if res.Failed != 1 {
			t.Fatalf("%s: Failed = %d, want 1", mode.name, res.Failed)
		}
		if g.calls["Broken"] != 1 {
			t.Fatalf("%s: failed node resolved %d times, want 1", mode.name, g.calls["Broken"])
		}
	}
}

func TestFailureEverywhereTerminates(t *testing.T) {
	g := newGraph(map[string][]string{"Start": {"A"}})
	g.failed["Start"] = true

	res := find(t, g, "Start")
	if res.Reachable() {
		t.Fatalf("expected unreachable, got %d", res.Distance)
	}
}

func TestFirstTargetEntryEndsSearch(t *testing.T) {
	// The target is enqueued twice; the first entry to reach the front wins.
	links := map[string][]string{
		"Start": {"A", target},
		"A":     {target},
	}
	var dequeued []string
	res := find(t, newGraph(links), "Start", traversal.WithOnDequeue(func(id string, _ int) {
		dequeued = append(dequeued, id)
	}))
	if res.Distance != 1 {
		t.Fatalf("Distance = %d, want 1", res.Distance)
	}
	if last := dequeued[len(dequeued)-1]; last != target {
		t.Fatalf("last dequeued = %q, want target", last)
	}
}

func TestMaxDepthCutsSearch(t *testing.T) {
	links := map[string][]string{"Start": {"A"}, "A": {"B"}, "B": {target}}

	for _, mode := range modes {
		opts := append([]traversal.Option{traversal.WithMaxDepth(2)}, mode.opts...)
		g := newGraph(links)
		res := find(t, g, "Start", opts...)
		if res.Reachable() {
			t.Fatalf("%s: expected unreachable with MaxDepth=2, got %d", mode.name, res.Distance)
		}
		if g.calls["B"] != 0 {
			t.Fatalf("%s: node at the depth limit must not be resolved", mode.name)
		}

		opts = append([]traversal.Option{traversal.WithMaxDepth(3)}, mode.opts...)
		if res := find(t, newGraph(links), "Start", opts...); res.Distance != 3 {
			t.Fatalf("%s: Distance with MaxDepth=3 = %d, want 3", mode.name, res.Distance)
		}
	}
}

func TestHooksReportProgress(t *testing.T) {
	links := map[string][]string{"Start": {"A", "B"}, "A": {target}}

	var enq, exp []string
	res := find(t, newGraph(links), "Start",
		traversal.WithOnEnqueue(func(id string, d int) { enq = append(enq, fmt.Sprintf("%s@%d", id, d)) }),
		traversal.WithOnExpand(func(id string, d, n int, ok bool) {
			exp = append(exp, fmt.Sprintf("%s@%d:%d:%v", id, d, n, ok))
		}),
	)

	wantEnq := []string{"Start@0", "A@1", "B@1", "Kevin Bacon@2"}
	if fmt.Sprint(enq) != fmt.Sprint(wantEnq) {
		t.Fatalf("enqueued = %v, want %v", enq, wantEnq)
	}
	wantExp := []string{"Start@0:2:true", "A@1:1:true", "B@1:0:true"}
	if fmt.Sprint(exp) != fmt.Sprint(wantExp) {
		t.Fatalf("expanded = %v, want %v", exp, wantExp)
	}
	if res.Enqueued != 4 || res.Expanded != 3 {
		t.Fatalf("counters = %+v", res)
	}
}

func TestSetupErrors(t *testing.T) {
	g := newGraph(nil)

	if _, err := traversal.New(nil, target); !errors.Is(err, traversal.ErrNilResolver) {
		t.Fatalf("nil resolver: want ErrNilResolver, got %v", err)
	}
	if _, err := traversal.New(g, "  "); !errors.Is(err, traversal.ErrEmptyTarget) {
		t.Fatalf("blank target: want ErrEmptyTarget, got %v", err)
	}
	if _, err := traversal.New(g, target, traversal.WithConcurrency(0)); !errors.Is(err, traversal.ErrOptionViolation) {
		t.Fatalf("zero concurrency: want ErrOptionViolation, got %v", err)
	}
	if _, err := traversal.New(g, target, traversal.WithMaxDepth(-1)); !errors.Is(err, traversal.ErrOptionViolation) {
		t.Fatalf("negative depth: want ErrOptionViolation, got %v", err)
	}

	e, err := traversal.New(g, "Kevin_Bacon")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if e.Target() != target {
		t.Fatalf("Target = %q, want %q", e.Target(), target)
	}
	res, err := e.FindDistance(context.Background(), " _ ")
	if !errors.Is(err, traversal.ErrEmptyStart) {
		t.Fatalf("blank start: want ErrEmptyStart, got %v", err)
	}
	if res.Reachable() || g.totalCalls() != 0 {
		t.Fatalf("blank start must not traverse: %+v calls=%d", res, g.totalCalls())
	}
}

func TestCancellation(t *testing.T) {
	links := map[string][]string{}
	for i := 0; i < 100; i++ {
		links[fmt.Sprintf("v%d", i)] = []string{fmt.Sprintf("v%d", i+1)}
	}

	for _, mode := range modes {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := traversal.FindDistance(ctx, newGraph(links), "v0", target, mode.opts...)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("%s: want context.Canceled, got %v", mode.name, err)
		}
	}
}

func TestCancellationMidTraversal(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls int
	r := traversal.ResolverFunc(func(_ context.Context, id string) ([]string, bool) {
		calls++
		if calls == 3 {
			cancel()
		}
		return []string{id + "+"}, true
	})

	_, err := traversal.FindDistance(ctx, r, "v", target)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("resolver called %d times after cancellation, want 3", calls)
	}
}
