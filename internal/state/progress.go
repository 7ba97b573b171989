package state

import (
	"fmt"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ProgressMsg notifies subscribers that the crawl status line was refreshed.
type ProgressMsg struct {
	Line string
}

// ProgressStats is a point-in-time copy of the crawl counters.
type ProgressStats struct {
	Depth    int
	Current  string
	Queued   int
	Expanded int
	Failed   int
	Started  time.Time
}

// Progress counts traversal events. Hooks update it from the search
// goroutine while the terminal UI polls it from another.
type Progress struct {
	mu    sync.Mutex
	stats ProgressStats
}

func (p *Progress) enqueued(int) {
	if p == nil {
		return
	}
	p.mu.Lock()
	if p.stats.Started.IsZero() {
		p.stats.Started = time.Now()
	}
	p.stats.Queued++
	p.mu.Unlock()
}

func (p *Progress) dequeued(id string, depth int) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.stats.Queued--
	p.stats.Depth = depth
	p.stats.Current = id
	p.mu.Unlock()
}

func (p *Progress) expanded(ok bool) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.stats.Expanded++
	if !ok {
		p.stats.Failed++
	}
	p.mu.Unlock()
}

func (p *Progress) Stats() ProgressStats {
	if p == nil {
		return ProgressStats{}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// ProgressHeartbeatCmd samples the crawl counters and returns a message that
// consumers can use to trigger rerenders.
func (s *State) ProgressHeartbeatCmd() tea.Cmd {
	if s == nil {
		return nil
	}

	return func() tea.Msg {
		return ProgressMsg{Line: formatProgress(s.Progress.Stats())}
	}
}

func formatProgress(stats ProgressStats) string {
	if stats.Started.IsZero() {
		return ""
	}

	parts := []string{
		fmt.Sprintf("depth %d", stats.Depth),
		fmt.Sprintf("expanded %d", stats.Expanded),
		fmt.Sprintf("queued %d", stats.Queued),
	}
	if stats.Failed > 0 {
		parts = append(parts, fmt.Sprintf("failed %d", stats.Failed))
	}
	if stats.Current != "" {
		parts = append(parts, stats.Current)
	}

	return strings.Join(parts, " · ")
}
