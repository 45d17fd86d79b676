package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/GuilhermmeDev/pert-path-visualizer/internal/config"
	"github.com/GuilhermmeDev/pert-path-visualizer/internal/tui"
)

// Styles shared by the plain (non-TUI) commands. The root PersistentPreRunE
// switches lipgloss to the ASCII profile under --no-color, which strips
// the colors here too.
var (
	styleHeader   = lipgloss.NewStyle().Bold(true)
	styleSection  = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorPrimary)
	styleErrorLbl = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorCritical)
	styleWarnLbl  = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorWarning)
	styleSuccess  = lipgloss.NewStyle().Foreground(tui.ColorAccent)
)

// sourceStyle colors a config source label.
func sourceStyle(src config.ConfigSource) lipgloss.Style {
	switch src {
	case config.SourceFile:
		return lipgloss.NewStyle().Foreground(tui.ColorPrimary)
	case config.SourceEnv:
		return lipgloss.NewStyle().Foreground(tui.ColorWarning)
	case config.SourceCLI:
		return lipgloss.NewStyle().Foreground(tui.ColorCritical)
	default:
		return lipgloss.NewStyle().Foreground(tui.ColorMuted)
	}
}

// printHeading writes an underlined title followed by a blank line.
func printHeading(out io.Writer, title string) {
	fmt.Fprintln(out, styleHeader.Render(title))
	fmt.Fprintln(out, strings.Repeat("=", len(title)))
	fmt.Fprintln(out)
}
