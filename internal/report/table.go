package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/GuilhermmeDev/pert-path-visualizer/internal/schedule"
)

var (
	colorCritical = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}
	colorPrimary  = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7B78FF"}
	colorMuted    = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	colorBorder   = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"}
	colorSuccess  = lipgloss.AdaptiveColor{Light: "#16A34A", Dark: "#4ADE80"}
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	criticalStyle = cellStyle.Foreground(colorCritical).Bold(true)
	labelStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	criticalValue = lipgloss.NewStyle().Foreground(colorCritical).Bold(true)
	okValue       = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
)

var tableHeaders = []string{"ID", "Name", "Duration", "ES", "EF", "LS", "LF", "Slack", "Critical"}

// numericColumns are right-aligned.
var numericColumns = map[int]bool{2: true, 3: true, 4: true, 5: true, 6: true, 7: true}

// Table writes the schedule as a bordered terminal table followed by a
// summary of duration and critical work.
func Table(w io.Writer, data *schedule.ProjectData, opts Options) error {
	tasks := visibleTasks(data, opts)

	rows := make([][]string, len(tasks))
	for i, t := range tasks {
		marker := ""
		if t.IsCritical {
			marker = "yes"
		}
		rows[i] = []string{
			t.ID,
			t.Name,
			strconv.Itoa(t.Duration),
			strconv.Itoa(t.EarlyStart),
			strconv.Itoa(t.EarlyFinish),
			strconv.Itoa(t.LateStart),
			strconv.Itoa(t.LateFinish),
			strconv.Itoa(t.Slack),
			marker,
		}
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers(tableHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			style := cellStyle
			if row >= 0 && row < len(tasks) && tasks[row].IsCritical {
				style = criticalStyle
			}
			if numericColumns[col] {
				style = style.Align(lipgloss.Right)
			}
			return style
		})

	var b strings.Builder
	if opts.ProjectName != "" {
		b.WriteString(titleStyle.Render(opts.ProjectName))
		b.WriteString("\n")
	}
	b.WriteString(tbl.String())
	b.WriteString("\n\n")
	b.WriteString(summaryBlock(data, opts))

	_, err := io.WriteString(w, b.String())
	return err
}

func summaryBlock(data *schedule.ProjectData, opts Options) string {
	s := data.Summary()
	unit := opts.timeUnit()

	line := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("%-20s", label)) + value + "\n"
	}

	var b strings.Builder
	b.WriteString(line("Project duration:", fmt.Sprintf("%d %s", s.ProjectDuration, unit)))

	critical := strconv.Itoa(s.CriticalCount)
	if len(s.CriticalNames) > 0 {
		critical += " (" + strings.Join(s.CriticalNames, ", ") + ")"
	}
	b.WriteString(line("Critical tasks:", criticalValue.Render(critical)))

	nonCritical := fmt.Sprintf("%d, total slack %d %s", s.NonCriticalCount, s.TotalSlack, unit)
	b.WriteString(line("Non-critical tasks:", okValue.Render(nonCritical)))

	if len(data.CriticalPath) > 0 {
		b.WriteString(line("Critical path:", strings.Join(data.CriticalPath, " -> ")))
	}
	return b.String()
}
