// Package display renders game transcripts and simulation reports for a
// terminal. It only ever consumes events and results; the game core never
// writes output itself.
package display

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/specker/internal/game"
	"github.com/muesli/termenv"
)

// Options control how output is rendered
type Options struct {
	NoColor    bool                   // Force plain ASCII output
	Header     bool                   // Print a game header before the first state line
	Formatting game.FormattingOptions // Passed to the event formatter
}

func newRenderer(w io.Writer, noColor bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

// Printer writes a styled transcript line by line as events arrive. It
// implements game.EventSubscriber.
type Printer struct {
	mu        sync.Mutex
	w         io.Writer
	opts      Options
	styles    Styles
	formatter *game.EventFormatter
	err       error
}

// NewPrinter creates a printer writing to w
func NewPrinter(w io.Writer, opts Options) *Printer {
	return &Printer{
		w:         w,
		opts:      opts,
		styles:    NewStyles(newRenderer(w, opts.NoColor)),
		formatter: game.NewEventFormatter(opts.Formatting),
	}
}

// OnEvent implements game.EventSubscriber
func (p *Printer) OnEvent(event game.GameEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Stop after the first write error; Err reports it
	if p.err != nil {
		return
	}

	switch e := event.(type) {
	case game.GameStartEvent:
		if p.opts.Header {
			p.println(p.styles.Header.Render(" " + p.formatter.FormatGameStart(e) + " "))
		}
		p.println(p.styles.State.Render(p.formatter.FormatState(e.Initial)))
	case game.TurnEvent:
		style := p.styles.Action
		if e.Move.SelfTargeting() {
			style = p.styles.Warning
		}
		p.println(style.Render(p.formatter.FormatTurn(e)))
		p.println(p.styles.State.Render(p.formatter.FormatState(e.After)))
	case game.GameEndEvent:
		p.println(p.styles.Winner.Render(p.formatter.FormatWinner(e)))
	}
}

func (p *Printer) println(line string) {
	if p.err != nil {
		return
	}
	if _, err := fmt.Fprintln(p.w, line); err != nil {
		p.err = fmt.Errorf("failed to write transcript: %w", err)
	}
}

// Err returns the first write error, if any
func (p *Printer) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}
