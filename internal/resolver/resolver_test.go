package resolver_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/aleksandradimitrov/wikipedia-task/internal/metrics"
	"github.com/aleksandradimitrov/wikipedia-task/internal/resolver"
	"github.com/aleksandradimitrov/wikipedia-task/internal/wiki"
)

func staticSource(links map[string][]string) wiki.LinkSource {
	return wiki.LinkSourceFunc(func(_ context.Context, id string) ([]string, error) {
		l, ok := links[id]
		if !ok {
			return nil, wiki.ErrPageMissing
		}
		return l, nil
	})
}

func TestResolveFiltersAndDedupesInOrder(t *testing.T) {
	src := staticSource(map[string][]string{
		"Kevin Bacon": {
			"/wiki/Footloose",
			"/wiki/Category:Actors",
			"/wiki/Apollo_13#Cast",
			"/wiki/Apollo_13",
			"/wiki/Footloose",
			"https://example.com/",
			"/wiki/Mystic_River",
			"Apollo 13",
		},
	})

	r := resolver.New(src)
	got, ok := r.Resolve(context.Background(), "Kevin Bacon")
	if !ok {
		t.Fatal("expected successful resolution")
	}

	want := []string{"Footloose", "Apollo 13", "Mystic River"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("neighbors = %v, want %v", got, want)
	}
}

func TestResolveCapsAfterFiltering(t *testing.T) {
	var raw []string
	// Namespaced links and duplicates ahead of the real links must not eat
	// into the cap.
	for i := 0; i < 20; i++ {
		raw = append(raw, fmt.Sprintf("/wiki/File:Image_%d.jpg", i), "/wiki/Page_0")
	}
	for i := 0; i < 70; i++ {
		raw = append(raw, fmt.Sprintf("/wiki/Page_%d", i))
	}

	r := resolver.New(staticSource(map[string][]string{"Start": raw}))
	got, ok := r.Resolve(context.Background(), "Start")
	if !ok {
		t.Fatal("expected successful resolution")
	}
	if len(got) != 50 {
		t.Fatalf("len(neighbors) = %d, want 50", len(got))
	}
	if got[0] != "Page 0" || got[49] != "Page 49" {
		t.Fatalf("cap kept the wrong entries: first=%q last=%q", got[0], got[49])
	}
}

func TestWithLimit(t *testing.T) {
	src := staticSource(map[string][]string{"Start": {"/wiki/A", "/wiki/B", "/wiki/C"}})

	got, _ := resolver.New(src, resolver.WithLimit(2)).Resolve(context.Background(), "Start")
	if !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Fatalf("neighbors = %v, want [A B]", got)
	}

	got, _ = resolver.New(src, resolver.WithLimit(0)).Resolve(context.Background(), "Start")
	if len(got) != 3 {
		t.Fatalf("non-positive limit should keep the default cap, got %v", got)
	}
}

func TestResolveReportsFailureWithoutError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	m := metrics.New()

	r := resolver.New(staticSource(nil), resolver.WithLogger(logger), resolver.WithMetrics(m))
	got, ok := r.Resolve(context.Background(), "Nowhere")
	if ok {
		t.Fatal("expected ok=false for a failed lookup")
	}
	if len(got) != 0 {
		t.Fatalf("expected no neighbors, got %v", got)
	}
	if !strings.Contains(buf.String(), "title=Nowhere") {
		t.Fatalf("failure was not logged:\n%s", buf.String())
	}
	if v := testutil.ToFloat64(m.Lookups.WithLabelValues("error")); v != 1 {
		t.Fatalf("error lookups = %v, want 1", v)
	}
}

func TestLookupExposesError(t *testing.T) {
	r := resolver.New(staticSource(nil))
	if _, err := r.Lookup(context.Background(), "Nowhere"); !errors.Is(err, wiki.ErrPageMissing) {
		t.Fatalf("expected ErrPageMissing, got %v", err)
	}
}
