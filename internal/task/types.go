// Package task reads and writes project task lists: the spreadsheet (CSV)
// layout used by the import template, Excel workbooks with the same
// columns, plus TOML and JSON project documents. Every reader produces []schedule.Task with IDs and names
// filled in and schedule values left to the engine.
package task

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies an on-disk task list encoding.
type Format string

const (
	// FormatCSV is the spreadsheet layout: ID, Name, Duration, Predecessors.
	FormatCSV Format = "csv"
	// FormatTOML is a document with a [[tasks]] array of tables.
	FormatTOML Format = "toml"
	// FormatJSON is a document with a "tasks" array.
	FormatJSON Format = "json"
	// FormatXLSX is an Excel workbook whose first sheet has the CSV columns.
	FormatXLSX Format = "xlsx"
)

// validFormats is the set of all known Format values.
var validFormats = map[Format]bool{
	FormatCSV:  true,
	FormatTOML: true,
	FormatJSON: true,
	FormatXLSX: true,
}

// IsValid returns true if the format is a recognized value.
func (f Format) IsValid() bool {
	return validFormats[f]
}

// ParseFormat converts a user-supplied name ("csv", "TOML", ...) to a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !f.IsValid() {
		return "", fmt.Errorf("unknown task format %q (want csv, toml, json or xlsx)", s)
	}
	return f, nil
}

// FormatForPath infers the format from a file extension.
func FormatForPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("cannot infer task format of %q: no file extension", path)
	}
	f, err := ParseFormat(ext)
	if err != nil {
		return "", fmt.Errorf("cannot infer task format of %q: %w", path, err)
	}
	return f, nil
}

// record is the document shape shared by the TOML and JSON readers and
// writers.
type record struct {
	ID           string   `toml:"id" json:"id"`
	Name         string   `toml:"name" json:"name"`
	Duration     int      `toml:"duration" json:"duration"`
	Predecessors []string `toml:"predecessors" json:"predecessors"`
}

type document struct {
	Tasks []record `toml:"tasks" json:"tasks"`
}
