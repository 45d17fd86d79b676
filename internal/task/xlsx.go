package task

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/GuilhermmeDev/pert-path-visualizer/internal/schedule"
)

// xlsxSheet is the sheet name WriteXLSX gives the task list.
const xlsxSheet = "Tarefas"

// ParseXLSX reads the first sheet of an Excel workbook. The sheet uses the
// CSV layout: a header row with the same aliases, then one task per row.
// Errors name the sheet row as numbered in a spreadsheet program.
func ParseXLSX(r io.Reader) ([]schedule.Task, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close() //nolint:errcheck

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("parsing xlsx: workbook has no sheets")
	}
	all, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	if len(all) == 0 || blankRow(all[0]) {
		return nil, fmt.Errorf("parsing xlsx sheet %q: %w", sheets[0], ErrNoHeader)
	}

	rows := make([]sheetRow, 0, len(all)-1)
	for i, cells := range all[1:] {
		rows = append(rows, sheetRow{pos: i + 2, cells: cells})
	}
	return tasksFromSheet("xlsx row", all[0], rows)
}

// WriteXLSX writes tasks as a workbook with a single "Tarefas" sheet in the
// CSV column layout. Durations are stored as numbers.
func WriteXLSX(w io.Writer, tasks []schedule.Task) error {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	if err := f.SetSheetName(f.GetSheetName(0), xlsxSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]any, len(csvHeader))
	for i, h := range csvHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return fmt.Errorf("writing xlsx header: %w", err)
	}
	for i, t := range tasks {
		addr, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("writing xlsx row for %q: %w", t.ID, err)
		}
		row := []any{t.ID, t.Name, t.Duration, joinPredecessors(t.Predecessors)}
		if err := f.SetSheetRow(xlsxSheet, addr, &row); err != nil {
			return fmt.Errorf("writing xlsx row for %q: %w", t.ID, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
