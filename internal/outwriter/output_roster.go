package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/huangsam/gradebook/internal/contract"
	"github.com/huangsam/gradebook/internal/parquet"
	"github.com/huangsam/gradebook/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintRoster outputs a roster, dispatching based on the output format configured.
func PrintRoster(table *schema.Table, course string, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRosterJSON(w, table, course)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRosterCSV(w, table, fmtFloat, intFmt)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := parquet.WriteStudentsParquet(parquet.ConvertTable(table, course), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	case schema.XLSXOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeWorkbook(w, table)
		}, "Wrote workbook"); err != nil {
			return fmt.Errorf("error writing workbook output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRosterTable(w, table, course, cfg, fmtFloat, intFmt, duration)
		}, "Wrote table")
	}
	return nil
}

// writeRosterTable generates and writes the human-readable table.
func writeRosterTable(w io.Writer, table *schema.Table, course string, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	tbl := tablewriter.NewWriter(w)

	// 1. Define Headers
	headers := append([]string{"#"}, table.Columns...)
	tbl.Header(headers)

	// 2. Keep numbers aligned on the right
	tbl.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	nameWidth := GetMaxNameWidth(cfg, len(table.Columns))
	var data [][]string
	for i, r := range table.Rows {
		row := []string{strconv.Itoa(i + 1)}
		for _, col := range table.Columns {
			switch col {
			case schema.ColFullName:
				row = append(row, contract.TruncateText(r.Text[col], nameWidth))
			case schema.ColResult:
				row = append(row, resultLabel(r, cfg.UseColors))
			default:
				row = append(row, plainCell(r, col, fmtFloat, intFmt))
			}
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := tbl.Bulk(data); err != nil {
		return err
	}
	if err := tbl.Render(); err != nil {
		return err
	}

	if course == "" {
		if _, err := fmt.Fprintf(w, "Showing %d students from %s (not graded)\n", len(table.Rows), table.Label); err != nil {
			return err
		}
	} else {
		passed, failed := table.CountOutcomes()
		if _, err := fmt.Fprintf(w, "Showing %d students from %s (passed: %d, failed: %d)\n", len(table.Rows), table.Label, passed, failed); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Completed in %v. Course: %s\n", duration, courseOrNone(course)); err != nil {
		return err
	}
	return nil
}

// writeRosterCSV writes every roster column in CSV format.
func writeRosterCSV(w io.Writer, table *schema.Table, fmtFloat func(float64) string, intFmt string) error {
	return writeCSVWithHeader(w, table.Columns, func(cw *csv.Writer) error {
		for _, r := range table.Rows {
			rec := make([]string, len(table.Columns))
			for i, col := range table.Columns {
				rec[i] = plainCell(r, col, fmtFloat, intFmt)
			}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

// RosterDocument is the JSON shape of a roster, shared with the MCP tools.
type RosterDocument struct {
	Label    string           `json:"label"`
	Course   string           `json:"course,omitempty"`
	Columns  []string         `json:"columns"`
	Rows     []map[string]any `json:"rows"`
	Students int              `json:"students"`
	Passed   int              `json:"passed"`
	Failed   int              `json:"failed"`
	Warnings []string         `json:"warnings,omitempty"`
}

// NewRosterDocument builds the JSON document for a roster. Missing values become null.
func NewRosterDocument(table *schema.Table, course string) RosterDocument {
	passed, failed := table.CountOutcomes()
	doc := RosterDocument{
		Label:    table.Label,
		Course:   course,
		Columns:  table.Columns,
		Rows:     make([]map[string]any, len(table.Rows)),
		Students: len(table.Rows),
		Passed:   passed,
		Failed:   failed,
	}
	for i, r := range table.Rows {
		cells := make(map[string]any, len(table.Columns))
		for _, col := range table.Columns {
			cells[col] = jsonCell(r, col)
		}
		doc.Rows[i] = cells
	}
	return doc
}

// writeRosterJSON writes the roster in JSON format.
func writeRosterJSON(w io.Writer, table *schema.Table, course string) error {
	return writeJSON(w, NewRosterDocument(table, course))
}

func resultLabel(r *schema.Row, useColors bool) string {
	if useColors {
		return contract.GetColorLabel(r.Result())
	}
	return contract.GetPlainLabel(r.Result())
}

func courseOrNone(course string) string {
	if course == "" {
		return "none"
	}
	return course
}
