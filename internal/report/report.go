// Package report renders computed schedules for people and for other
// tools: a styled terminal table, JSON, CSV, and Mermaid or Graphviz
// dependency diagrams.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/GuilhermmeDev/pert-path-visualizer/internal/schedule"
)

// Format names an output renderer.
type Format string

const (
	FormatTable   Format = "table"
	FormatJSON    Format = "json"
	FormatCSV     Format = "csv"
	FormatMermaid Format = "mermaid"
	FormatDOT     Format = "dot"
)

// Formats returns every supported format in display order.
func Formats() []Format {
	return []Format{FormatTable, FormatJSON, FormatCSV, FormatMermaid, FormatDOT}
}

// ParseFormat maps a case-insensitive name to a Format.
func ParseFormat(s string) (Format, error) {
	want := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, f := range Formats() {
		if f == want {
			return f, nil
		}
	}
	names := make([]string, 0, len(Formats()))
	for _, f := range Formats() {
		names = append(names, string(f))
	}
	return "", fmt.Errorf("unknown output format %q (want one of %s)", s, strings.Join(names, ", "))
}

// Options tunes rendering.
type Options struct {
	// ProjectName titles the table and diagrams when set.
	ProjectName string
	// TimeUnit labels durations in human-readable output. Defaults to "days".
	TimeUnit string
	// CriticalOnly drops tasks with slack from every format.
	CriticalOnly bool
	// Fingerprint identifies the input task set in JSON output.
	Fingerprint string
}

func (o Options) timeUnit() string {
	if strings.TrimSpace(o.TimeUnit) == "" {
		return "days"
	}
	return o.TimeUnit
}

// Render writes data to w in the given format.
func Render(w io.Writer, format Format, data *schedule.ProjectData, opts Options) error {
	if data == nil {
		return fmt.Errorf("rendering %s: no schedule", format)
	}
	switch format {
	case FormatTable:
		return Table(w, data, opts)
	case FormatJSON:
		return JSON(w, data, opts)
	case FormatCSV:
		return CSV(w, data, opts)
	case FormatMermaid:
		return Mermaid(w, data, opts)
	case FormatDOT:
		return DOT(w, data, opts)
	default:
		return fmt.Errorf("rendering: unknown output format %q", format)
	}
}

// visibleTasks returns the tasks a report shows under opts.
func visibleTasks(data *schedule.ProjectData, opts Options) []schedule.ScheduledTask {
	if !opts.CriticalOnly {
		return data.Tasks
	}
	out := make([]schedule.ScheduledTask, 0, len(data.CriticalPath))
	for _, t := range data.Tasks {
		if t.IsCritical {
			out = append(out, t)
		}
	}
	return out
}
