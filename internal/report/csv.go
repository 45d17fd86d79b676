package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/GuilhermmeDev/pert-path-visualizer/internal/schedule"
)

var csvHeader = []string{
	"ID", "Name", "Duration", "Predecessors",
	"EarlyStart", "EarlyFinish", "LateStart", "LateFinish", "Slack", "Critical",
}

// CSV writes one row per task with its computed times.
func CSV(w io.Writer, data *schedule.ProjectData, opts Options) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, t := range visibleTasks(data, opts) {
		row := []string{
			t.ID,
			t.Name,
			strconv.Itoa(t.Duration),
			strings.Join(t.Predecessors, ","),
			strconv.Itoa(t.EarlyStart),
			strconv.Itoa(t.EarlyFinish),
			strconv.Itoa(t.LateStart),
			strconv.Itoa(t.LateFinish),
			strconv.Itoa(t.Slack),
			strconv.FormatBool(t.IsCritical),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row for %q: %w", t.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
