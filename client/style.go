package client

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tempo-sh/tempo/config"
)

type styles struct {
	base     lipgloss.Style
	work     lipgloss.Style
	shortRec lipgloss.Style
	longRec  lipgloss.Style
	postpone lipgloss.Style
	clock    lipgloss.Style
	hint     lipgloss.Style
}

func newStyles(cfg *config.Config) styles {
	hint := lipgloss.NewStyle().Faint(true)
	if !cfg.Display.DarkTheme {
		hint = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	}

	return styles{
		base: lipgloss.NewStyle().Padding(1, 2),
		work: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(cfg.Display.WorkColor)),
		shortRec: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(cfg.Display.ShortBreakColor)),
		longRec: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(cfg.Display.LongBreakColor)),
		postpone: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(cfg.Display.PostponeColor)),
		clock: lipgloss.NewStyle().Bold(true),
		hint:  hint,
	}
}
