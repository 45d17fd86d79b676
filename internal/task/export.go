package task

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/GuilhermmeDev/pert-path-visualizer/internal/schedule"
)

// csvHeader is the column layout written by WriteCSV and expected by the
// import template.
var csvHeader = []string{"ID", "Name", "Duration", "Predecessors"}

// WriteCSV writes tasks in the spreadsheet layout. Predecessors are
// joined with commas in a single quoted cell.
func WriteCSV(w io.Writer, tasks []schedule.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, t := range tasks {
		row := []string{t.ID, t.Name, strconv.Itoa(t.Duration), joinPredecessors(t.Predecessors)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row for %q: %w", t.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}

// joinPredecessors renders a predecessor list as a single spreadsheet cell.
func joinPredecessors(preds []string) string {
	return strings.Join(preds, ",")
}

// WriteTOML writes tasks as a [[tasks]] document.
func WriteTOML(w io.Writer, tasks []schedule.Task) error {
	if err := toml.NewEncoder(w).Encode(toDocument(tasks)); err != nil {
		return fmt.Errorf("encoding toml: %w", err)
	}
	return nil
}

// WriteJSON writes tasks as an indented {"tasks": [...]} document.
func WriteJSON(w io.Writer, tasks []schedule.Task) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toDocument(tasks)); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

// Write encodes tasks in the given format.
func Write(w io.Writer, format Format, tasks []schedule.Task) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, tasks)
	case FormatTOML:
		return WriteTOML(w, tasks)
	case FormatJSON:
		return WriteJSON(w, tasks)
	case FormatXLSX:
		return WriteXLSX(w, tasks)
	default:
		return fmt.Errorf("unknown task format %q", format)
	}
}

func toDocument(tasks []schedule.Task) document {
	doc := document{Tasks: make([]record, len(tasks))}
	for i, t := range tasks {
		preds := t.Predecessors
		if preds == nil {
			preds = []string{}
		}
		doc.Tasks[i] = record{ID: t.ID, Name: t.Name, Duration: t.Duration, Predecessors: preds}
	}
	return doc
}
