package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Palette. Every color adapts to light and dark terminals.
var (
	ColorPrimary   = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7B78FF"}
	ColorAccent    = lipgloss.AdaptiveColor{Light: "#10B981", Dark: "#34D399"}
	ColorCritical  = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}
	ColorWarning   = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}
	ColorMuted     = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	ColorSubtle    = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"}
	ColorBorder    = lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#374151"}
	ColorHighlight = lipgloss.AdaptiveColor{Light: "#F3F4F6", Dark: "#1F2937"}
	ColorText      = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#E5E7EB"}
)

// Theme holds the styles of the editor. Widths are applied at render time.
type Theme struct {
	TitleBar  lipgloss.Style
	TitleHint lipgloss.Style

	TableHeader   lipgloss.Style
	TableCell     lipgloss.Style
	TableSelected lipgloss.Style

	StatusBar       lipgloss.Style
	StatusKey       lipgloss.Style
	StatusValue     lipgloss.Style
	StatusCritical  lipgloss.Style
	StatusSeparator lipgloss.Style
	StatusMessage   lipgloss.Style

	FormBox   lipgloss.Style
	HelpKey   lipgloss.Style
	HelpDesc  lipgloss.Style
	ErrorText lipgloss.Style
}

// DefaultTheme returns the editor's theme.
func DefaultTheme() Theme {
	return Theme{
		TitleBar: lipgloss.NewStyle().
			Bold(true).
			Background(ColorPrimary).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1),
		TitleHint: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#E0DFFF", Dark: "#C4C2FF"}),

		TableHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(ColorBorder).
			Padding(0, 1),
		TableCell: lipgloss.NewStyle().
			Foreground(ColorText).
			Padding(0, 1),
		TableSelected: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent).
			Background(ColorHighlight),

		StatusBar: lipgloss.NewStyle().
			Background(ColorHighlight).
			Foreground(ColorMuted).
			Padding(0, 1),
		StatusKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),
		StatusValue: lipgloss.NewStyle().
			Foreground(ColorText),
		StatusCritical: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCritical),
		StatusSeparator: lipgloss.NewStyle().
			Foreground(ColorSubtle),
		StatusMessage: lipgloss.NewStyle().
			Italic(true).
			Foreground(ColorAccent),

		FormBox: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2),
		HelpKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),
		HelpDesc: lipgloss.NewStyle().
			Foreground(ColorMuted),
		ErrorText: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCritical),
	}
}

// tableStyles maps the theme onto bubbles/table.
func (t Theme) tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = t.TableHeader
	s.Cell = t.TableCell
	s.Selected = t.TableSelected
	return s
}
