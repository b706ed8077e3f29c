package display

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/lox/specker/internal/statistics"
)

const barWidth = 24

// Report is a finished simulation ready to be rendered
type Report struct {
	Title   string
	Stats   *statistics.Statistics
	Elapsed time.Duration
}

// WriteReport renders the report as a styled table with win-share bars
func WriteReport(w io.Writer, report Report, opts Options) error {
	r := newRenderer(w, opts.NoColor)
	styles := NewStyles(r)

	bar := progress.New(
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
		progress.WithDefaultGradient(),
		progress.WithColorProfile(r.ColorProfile()),
	)

	stats := report.Stats
	var b strings.Builder

	if report.Title != "" {
		b.WriteString(styles.Header.Render(" "+report.Title+" ") + "\n")
	}

	lo, hi := stats.ConfidenceInterval95()
	fmt.Fprintf(&b, "%s %s\n", styles.Label.Render("Games   "), styles.Value.Render(fmt.Sprintf("%d", stats.Games)))
	fmt.Fprintf(&b, "%s %s\n", styles.Label.Render("Turns   "), styles.Value.Render(fmt.Sprintf(
		"mean %.2f ± %.2f, 95%% CI [%.2f, %.2f], median %.1f, p90 %.1f, range %d..%d",
		stats.Mean(), stats.StdDev(), lo, hi, stats.Median(), stats.Percentile(0.9), stats.MinTurns, stats.MaxTurns)))
	if report.Elapsed > 0 {
		fmt.Fprintf(&b, "%s %s\n", styles.Label.Render("Elapsed "), styles.Value.Render(report.Elapsed.Round(time.Millisecond).String()))
	}

	section := func(title string, rows []row) {
		b.WriteString("\n" + styles.Label.Render(title) + "\n")
		width := 0
		for _, row := range rows {
			width = max(width, len(row.name))
		}
		for _, row := range rows {
			fmt.Fprintf(&b, "  %-*s %s %s %s\n",
				width, row.name,
				bar.ViewAs(row.tally.WinRate()),
				styles.Value.Render(fmt.Sprintf("%5.1f%%", row.tally.WinRate()*100)),
				styles.Muted.Render(fmt.Sprintf("%d/%d", row.tally.Wins, row.tally.Games)))
		}
	}

	players := make([]row, 0, len(stats.ByPlayer))
	for _, p := range stats.Players() {
		players = append(players, row{name: p.Key, tally: p.Tally})
	}
	section("Players", players)

	strategies := make([]row, 0, len(stats.ByStrategy))
	for _, s := range stats.Strategies() {
		strategies = append(strategies, row{name: s.Key, tally: s.Tally})
	}
	section("Strategies", strategies)

	seats := make([]row, len(stats.BySeat))
	for i, t := range stats.BySeat {
		seats[i] = row{name: fmt.Sprintf("seat %d", i), tally: t}
	}
	section("Seats", seats)

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

type row struct {
	name  string
	tally statistics.Tally
}
