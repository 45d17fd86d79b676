package task

import (
	"bytes"
	"embed"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"

	"github.com/GuilhermmeDev/pert-path-visualizer/internal/schedule"
)

//go:embed templates
var templateFS embed.FS

// TemplateFileName returns the default file name for a template in format.
func TemplateFileName(format Format) string {
	return "tasks." + string(format)
}

// TemplateBytes returns the embedded starter task list in format. The
// template is the four-task example A(5), B(3, after A), C(4, after A),
// D(2, after B and C) whose critical path is A, C, D over 11 units.
func TemplateBytes(format Format) ([]byte, error) {
	if format != FormatCSV && format != FormatTOML {
		return nil, fmt.Errorf("no template for format %q (want csv or toml)", format)
	}
	raw, err := templateFS.ReadFile("templates/" + TemplateFileName(format))
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}
	return raw, nil
}

// WriteTemplate writes the starter task list to w.
func WriteTemplate(w io.Writer, format Format) error {
	raw, err := TemplateBytes(format)
	if err != nil {
		return err
	}
	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("writing template: %w", err)
	}
	return nil
}

// Template returns the starter task list as parsed tasks.
func Template() []schedule.Task {
	raw, err := TemplateBytes(FormatCSV)
	if err != nil {
		panic(err) // embedded at build time
	}
	tasks, err := ParseCSV(bytes.NewReader(raw))
	if err != nil {
		panic(err)
	}
	return tasks
}

// Fingerprint returns a stable 64-bit hash, in hex, of the fields that
// determine a schedule: IDs, durations and predecessor lists, in input
// order. Names do not contribute.
func Fingerprint(tasks []schedule.Task) string {
	d := xxhash.New()
	for _, t := range tasks {
		_, _ = d.WriteString(t.ID)
		_, _ = d.WriteString("\x00")
		_, _ = fmt.Fprintf(d, "%d", t.Duration)
		for _, p := range t.Predecessors {
			_, _ = d.WriteString("\x1f")
			_, _ = d.WriteString(p)
		}
		_, _ = d.WriteString("\x1e")
	}
	return fmt.Sprintf("%016x", d.Sum64())
}
