package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/GuilhermmeDev/pert-path-visualizer/internal/schedule"
)

// Document is the JSON form of a schedule.
type Document struct {
	Project         string                   `json:"project,omitempty"`
	TimeUnit        string                   `json:"time_unit"`
	Fingerprint     string                   `json:"fingerprint,omitempty"`
	ProjectDuration int                      `json:"project_duration"`
	CriticalPath    []string                 `json:"critical_path"`
	CriticalChains  [][]string               `json:"critical_chains"`
	Summary         schedule.Summary         `json:"summary"`
	Waves           []schedule.Wave          `json:"waves"`
	Tasks           []schedule.ScheduledTask `json:"tasks"`
}

// NewDocument assembles the JSON document for data. CriticalOnly trims
// Tasks; the summary, waves and chains always describe the whole project.
func NewDocument(data *schedule.ProjectData, opts Options) Document {
	chains := data.CriticalChains()
	if chains == nil {
		chains = [][]string{}
	}
	return Document{
		Project:         opts.ProjectName,
		TimeUnit:        opts.timeUnit(),
		Fingerprint:     opts.Fingerprint,
		ProjectDuration: data.ProjectDuration,
		CriticalPath:    data.CriticalPath,
		CriticalChains:  chains,
		Summary:         data.Summary(),
		Waves:           data.Waves(),
		Tasks:           visibleTasks(data, opts),
	}
}

// JSON writes the schedule as an indented JSON document.
func JSON(w io.Writer, data *schedule.ProjectData, opts Options) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(data, opts)); err != nil {
		return fmt.Errorf("encoding schedule: %w", err)
	}
	return nil
}
