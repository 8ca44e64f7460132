package core

import (
	"fmt"

	"github.com/huangsam/gradebook/internal/sheet"
	"github.com/huangsam/gradebook/schema"
)

// IngestOptions selects what part of a spreadsheet is read.
type IngestOptions struct {
	HeaderSkip int                   // rows above the header row
	Sheet      string                // workbook sheet, empty for the first
	Mapping    *schema.ColumnMapping // nil uses schema.DefaultColumnMapping
}

// IngestReport is a normalized roster plus what ingestion noticed on the way.
type IngestReport struct {
	Table    *schema.Table
	Label    string
	Missing  []string // canonical columns the sheet did not provide
	Warnings []string
}

// Ingest reads a roster spreadsheet and normalizes it. It fails only when the
// file cannot be read or carries none of the expected headers.
func Ingest(path string, opts IngestOptions, s *schema.Settings) (*IngestReport, error) {
	grid, err := sheet.Read(path, opts.Sheet, opts.HeaderSkip)
	if err != nil {
		return nil, err
	}
	return IngestGrid(grid, opts, s)
}

// IngestGrid normalizes an already loaded sheet.
func IngestGrid(grid *sheet.Grid, opts IngestOptions, s *schema.Settings) (*IngestReport, error) {
	mapping := schema.DefaultColumnMapping
	if opts.Mapping != nil {
		mapping = *opts.Mapping
	}

	mapped, err := MapColumns(grid, opts.HeaderSkip, mapping)
	if err != nil {
		return nil, err
	}

	label := DeriveLabel(grid)
	table, warnings := normalizeTable(mapped, mapping, label, s.General.MissingValueDefault)

	report := &IngestReport{Table: table, Label: label, Missing: mapped.Missing}
	for _, col := range mapped.Missing {
		report.Warnings = append(report.Warnings, fmt.Sprintf("expected column %q not found", col))
	}
	for _, h := range mapped.Unmapped {
		report.Warnings = append(report.Warnings, fmt.Sprintf("column %q is not recognized and was ignored", h))
	}
	for _, h := range mapped.Dropped {
		report.Warnings = append(report.Warnings, fmt.Sprintf("column %q has no data and was ignored", h))
	}
	report.Warnings = append(report.Warnings, warnings...)
	return report, nil
}

// IngestRoster reads a roster and returns the normalized table with its label.
func IngestRoster(path string, headerSkip int, s *schema.Settings) (*schema.Table, string, error) {
	report, err := Ingest(path, IngestOptions{HeaderSkip: headerSkip}, s)
	if err != nil {
		return nil, "", err
	}
	return report.Table, report.Label, nil
}
