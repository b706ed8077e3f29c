package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/specker/internal/display"
	"github.com/lox/specker/internal/game"
	"github.com/muesli/termenv"
)

type StrategiesCmd struct{}

func (c *StrategiesCmd) Run(g *Globals) error {
	r := lipgloss.NewRenderer(os.Stdout)
	if g.NoColor {
		r.SetColorProfile(termenv.Ascii)
	}
	styles := display.NewStyles(r)

	for _, k := range game.Kinds() {
		name := fmt.Sprintf("%-10s", k)
		if _, err := fmt.Fprintf(os.Stdout, "%s %s\n", styles.Label.Render(name), k.Rule()); err != nil {
			return err
		}
	}
	return nil
}
