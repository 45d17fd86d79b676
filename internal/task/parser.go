package task

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/GuilhermmeDev/pert-path-visualizer/internal/schedule"
)

// maxTaskFileSize is the maximum number of bytes read from a single task
// file. Larger files are rejected to prevent memory exhaustion. Workbooks
// are compressed, so the limit holds for them too.
const maxTaskFileSize = 1 << 20 // 1 MiB

// utf8BOM is the byte-order mark spreadsheet tools prepend to CSV exports.
var utf8BOM = []byte("\xef\xbb\xbf")

// Column header aliases, matched case-insensitively after trimming. The
// Portuguese names come from the spreadsheets the import template was
// first written for.
var (
	idHeaders          = []string{"id"}
	nameHeaders        = []string{"name", "nome", "task", "tarefa"}
	durationHeaders    = []string{"duration", "duracao", "duração"}
	predecessorHeaders = []string{"predecessors", "predecessoras"}
)

// ErrNoHeader is returned when a CSV input has no header row.
var ErrNoHeader = errors.New("missing header row")

// columns maps each known field to its CSV column index, -1 when absent.
type columns struct {
	id, name, duration, predecessors int
}

func detectColumns(header []string) columns {
	cols := columns{id: -1, name: -1, duration: -1, predecessors: -1}
	for i, h := range header {
		h = strings.TrimSpace(h)
		switch {
		case cols.id < 0 && matchesAny(h, idHeaders):
			cols.id = i
		case cols.name < 0 && matchesAny(h, nameHeaders):
			cols.name = i
		case cols.duration < 0 && matchesAny(h, durationHeaders):
			cols.duration = i
		case cols.predecessors < 0 && matchesAny(h, predecessorHeaders):
			cols.predecessors = i
		}
	}
	return cols
}

func matchesAny(s string, candidates []string) bool {
	for _, c := range candidates {
		if strings.EqualFold(s, c) {
			return true
		}
	}
	return false
}

// ParseCSV reads a spreadsheet export. The first row is the header; see
// the header alias lists for accepted column names. Missing cells fall
// back to defaults: the ID becomes the 1-based task number, the name
// becomes "Task N" and the duration becomes 0. Predecessor cells are
// split on commas or semicolons. Blank rows are skipped. Errors name the
// line of the offending record.
func ParseCSV(r io.Reader) ([]schedule.Task, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)

	cr := csv.NewReader(bytes.NewReader(raw))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing csv: %w", ErrNoHeader)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing csv header: %w", err)
	}

	var rows []sheetRow
	for {
		cells, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing csv: %w", err)
		}
		line, _ := cr.FieldPos(0)
		rows = append(rows, sheetRow{pos: line, cells: cells})
	}
	return tasksFromSheet("csv line", header, rows)
}

// sheetRow is one data row of a spreadsheet and the line or row number the
// user sees for it.
type sheetRow struct {
	pos   int
	cells []string
}

// tasksFromSheet maps spreadsheet rows onto tasks using the header
// aliases. where prefixes row positions in errors ("csv line 3").
func tasksFromSheet(where string, header []string, rows []sheetRow) ([]schedule.Task, error) {
	cols := detectColumns(header)

	var tasks []schedule.Task
	for _, row := range rows {
		if blankRow(row.cells) {
			continue
		}

		n := len(tasks) + 1
		rec := record{
			ID:   cell(row.cells, cols.id),
			Name: cell(row.cells, cols.name),
		}
		if d := cell(row.cells, cols.duration); d != "" {
			var err error
			rec.Duration, err = strconv.Atoi(d)
			if err != nil {
				return nil, fmt.Errorf("parsing %s %d: invalid duration %q", where, row.pos, d)
			}
		}
		rec.Predecessors = SplitPredecessors(cell(row.cells, cols.predecessors))

		t, err := normalize(rec, n)
		if err != nil {
			return nil, fmt.Errorf("parsing %s %d: %w", where, row.pos, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// SplitPredecessors splits a predecessor cell such as "A, B;C" into IDs,
// dropping empty entries.
func SplitPredecessors(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' })
	preds := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			preds = append(preds, f)
		}
	}
	return preds
}

// ParseTOML reads a TOML project document:
//
//	[[tasks]]
//	id = "A"
//	name = "Design"
//	duration = 5
//	predecessors = []
func ParseTOML(r io.Reader) ([]schedule.Task, error) {
	var doc document
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("parsing toml: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parsing toml: unknown key %q", undecoded[0].String())
	}
	return normalizeAll(doc.Tasks)
}

// ParseJSON reads a JSON project document of the form {"tasks": [...]}.
// Unknown fields are rejected.
func ParseJSON(r io.Reader) ([]schedule.Task, error) {
	var doc document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing json: %w", err)
	}
	return normalizeAll(doc.Tasks)
}

// Parse reads r in the given format.
func Parse(r io.Reader, format Format) ([]schedule.Task, error) {
	switch format {
	case FormatCSV:
		return ParseCSV(r)
	case FormatTOML:
		return ParseTOML(r)
	case FormatJSON:
		return ParseJSON(r)
	case FormatXLSX:
		return ParseXLSX(r)
	default:
		return nil, fmt.Errorf("unknown task format %q", format)
	}
}

// ParseFile reads a task file from disk, inferring its format from the
// extension. It enforces a 1 MiB size limit.
func ParseFile(path string) ([]schedule.Task, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening task file %q: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	// Read at most maxTaskFileSize+1 bytes so oversized files are detected
	// without loading them entirely.
	raw, err := io.ReadAll(io.LimitReader(f, maxTaskFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading task file %q: %w", path, err)
	}
	if int64(len(raw)) > maxTaskFileSize {
		return nil, fmt.Errorf("task file %q exceeds 1 MiB limit", path)
	}

	tasks, err := Parse(bytes.NewReader(raw), format)
	if err != nil {
		return nil, fmt.Errorf("parsing task file %q: %w", path, err)
	}
	return tasks, nil
}

func normalizeAll(recs []record) ([]schedule.Task, error) {
	tasks := make([]schedule.Task, 0, len(recs))
	for i, rec := range recs {
		t, err := normalize(rec, i+1)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// normalize applies the defaults for a record at 1-based position n.
func normalize(rec record, n int) (schedule.Task, error) {
	if rec.Duration < 0 {
		return schedule.Task{}, fmt.Errorf("negative duration %d", rec.Duration)
	}

	id := strings.TrimSpace(rec.ID)
	if id == "" {
		id = strconv.Itoa(n)
	}
	name := strings.TrimSpace(rec.Name)
	if name == "" {
		name = fmt.Sprintf("Task %d", n)
	}

	preds := make([]string, 0, len(rec.Predecessors))
	for _, p := range rec.Predecessors {
		if p = strings.TrimSpace(p); p != "" {
			preds = append(preds, p)
		}
	}

	return schedule.Task{ID: id, Name: name, Duration: rec.Duration, Predecessors: preds}, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
