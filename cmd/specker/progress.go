package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// progressMonitor redraws a single progress line as games finish. It only
// redraws when the whole percentage changes so large batches stay cheap.
type progressMonitor struct {
	mu      sync.Mutex
	w       io.Writer
	bar     progress.Model
	lastPct int
}

func newProgressMonitor(w io.Writer, noColor bool) *progressMonitor {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return &progressMonitor{
		w:       w,
		bar:     progress.New(progress.WithWidth(40), progress.WithDefaultGradient(), progress.WithColorProfile(r.ColorProfile())),
		lastPct: -1,
	}
}

// Update matches simulator.Config.Progress
func (m *progressMonitor) Update(done, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pct := done * 100 / max(total, 1)
	if pct == m.lastPct {
		return
	}
	m.lastPct = pct

	fmt.Fprintf(m.w, "\r%s %d/%d games", m.bar.ViewAs(float64(done)/float64(max(total, 1))), done, total)
	if done == total {
		fmt.Fprintln(m.w)
	}
}
