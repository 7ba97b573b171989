// Package render formats command output. Colours are only emitted when the
// destination is a terminal that supports them.
package render

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/aleksandradimitrov/wikipedia-task/internal/traversal"
)

type Printer struct {
	w      io.Writer
	styles styles
}

func New(w io.Writer) *Printer {
	return &Printer{w: w, styles: newStyles(lipgloss.NewRenderer(w))}
}

func (p *Printer) Searching(start, target string) {
	fmt.Fprintf(p.w, "Finding the degree of separation from %s to %s...\n",
		p.styles.title.Render(start), p.styles.title.Render(target))
}

// Result prints the distance, or the unreachable message naming both pages.
func (p *Printer) Result(res traversal.Result) {
	if res.Reachable() {
		fmt.Fprintf(p.w, "Degree of separation: %s\n", p.styles.value.Render(fmt.Sprint(res.Distance)))
		return
	}
	fmt.Fprintln(p.w, p.styles.missing.Render(fmt.Sprintf("%s is not reachable from %s", res.Target, res.Start)))
}

// Summary prints the crawl counters of a finished search.
func (p *Printer) Summary(res traversal.Result, took time.Duration) {
	line := fmt.Sprintf("expanded %d pages, %d failed, %d queued in %s",
		res.Expanded, res.Failed, res.Enqueued, took.Round(time.Millisecond))
	fmt.Fprintln(p.w, p.styles.muted.Render(line))
}

// Links prints one neighbour per line.
func (p *Printer) Links(links []string) {
	for _, l := range links {
		fmt.Fprintln(p.w, l)
	}
}

func (p *Printer) Error(err error) {
	fmt.Fprintln(p.w, p.styles.failure.Render("error: "+Message(err)))
}

// Message returns the user-facing text of err.
func Message(err error) string {
	switch {
	case errors.Is(err, traversal.ErrEmptyStart):
		return "start page is empty"
	case errors.Is(err, traversal.ErrEmptyTarget):
		return "target page is empty"
	default:
		return err.Error()
	}
}
