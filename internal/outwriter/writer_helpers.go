package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/huangsam/gradebook/internal/contract"
	"github.com/huangsam/gradebook/schema"
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	if err := writeRows(csvWriter); err != nil {
		return err
	}

	return nil
}

// createFormatters creates the common formatter closures used across multiple output types.
func createFormatters(precision int) (fmtFloat func(float64) string, intFmt string) {
	numFmt := "%.*f"
	intFmt = "%d"
	fmtFloat = func(v float64) string {
		return fmt.Sprintf(numFmt, precision, v)
	}
	return fmtFloat, intFmt
}

// plainCell renders a roster cell for CSV and table output. Missing values
// render empty and student ids render without decimals.
func plainCell(r *schema.Row, column string, fmtFloat func(float64) string, intFmt string) string {
	if column == schema.ColResult {
		if r.Result() == "" {
			return ""
		}
		return contract.GetPlainLabel(r.Result())
	}
	if schema.IsTextColumn(column) {
		return r.Text[column]
	}
	v, ok := r.Value(column)
	if !ok {
		return ""
	}
	if column == schema.ColStudentID && v == math.Trunc(v) {
		return fmt.Sprintf(intFmt, int64(v))
	}
	return fmtFloat(v)
}

// jsonCell renders a roster cell for JSON output. Missing values become null.
func jsonCell(r *schema.Row, column string) any {
	if schema.IsTextColumn(column) {
		if s, ok := r.Text[column]; ok && s != "" {
			return s
		}
		return nil
	}
	v, ok := r.Value(column)
	if !ok {
		return nil
	}
	if column == schema.ColStudentID && v == math.Trunc(v) {
		return int64(v)
	}
	return v
}

// workbookCell renders a roster cell for a spreadsheet. Numbers stay numeric.
func workbookCell(r *schema.Row, column string) any {
	if schema.IsTextColumn(column) {
		return r.Text[column]
	}
	v, ok := r.Value(column)
	if !ok {
		return nil
	}
	if column == schema.ColStudentID && v == math.Trunc(v) {
		return int64(v)
	}
	return v
}

// formatPercent renders a weight fraction as a whole percentage.
func formatPercent(fraction float64) string {
	return strconv.Itoa(int(math.Round(fraction*100))) + "%"
}
