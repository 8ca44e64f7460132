// Package sheet reads and writes single-sheet spreadsheets as raw string grids.
// Workbooks go through github.com/xuri/excelize/v2; delimited text through encoding/csv.
package sheet

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned for file extensions no reader handles.
var ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

// maxSheetNameLen is the longest sheet name a workbook accepts.
const maxSheetNameLen = 31

// Grid is one sheet read as text cells. Rows may be ragged.
type Grid struct {
	Name string // sheet name, empty when the source has none
	Path string
	Rows [][]string
}

// Width returns the length of the longest row.
func (g *Grid) Width() int {
	width := 0
	for _, row := range g.Rows {
		width = max(width, len(row))
	}
	return width
}

// Cell returns the cell at row r and column c, or "" past a ragged edge.
func (g *Grid) Cell(r, c int) string {
	if r < 0 || r >= len(g.Rows) || c < 0 || c >= len(g.Rows[r]) {
		return ""
	}
	return g.Rows[r][c]
}

// Read loads one sheet from path. For workbooks an empty sheetName selects the
// first sheet; CSV files ignore it and sniff their delimiter from line headerRow.
func Read(path, sheetName string, headerRow int) (*Grid, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return readWorkbook(path, sheetName)
	case ".csv":
		return readDelimited(path, headerRow)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// readWorkbook reads raw cell values so numbers are not reformatted by cell styles.
func readWorkbook(path, sheetName string) (*Grid, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	name := sheets[0]
	if sheetName != "" {
		idx, err := f.GetSheetIndex(sheetName)
		if err != nil || idx < 0 {
			return nil, fmt.Errorf("sheet %q not found in %s", sheetName, path)
		}
		name = sheetName
	}

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
	}
	return &Grid{Name: name, Path: path, Rows: rows}, nil
}

// readDelimited reads a CSV file, accepting ';' as the delimiter when the
// header line uses it more than ','.
func readDelimited(path string, headerRow int) (*Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data, headerRow)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &Grid{Path: path, Rows: rows}, nil
}

// sniffDelimiter decides on the header line. When that line holds neither
// delimiter, the next line that does decides, else the last one before it.
func sniffDelimiter(data []byte, headerRow int) rune {
	before := ','
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	n := -1
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		// encoding/csv skips empty lines, so they take no row number.
		if line == "" {
			continue
		}
		n++
		semis, commas := strings.Count(line, ";"), strings.Count(line, ",")
		if semis == 0 && commas == 0 {
			continue
		}
		comma := ','
		if semis > commas {
			comma = ';'
		}
		if n >= headerRow {
			return comma
		}
		before = comma
	}
	return before
}

// WriteWorkbook writes header plus rows as a single sheet with no index column.
func WriteWorkbook(w io.Writer, sheetName string, header []string, rows [][]any) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const defaultSheet = "Sheet1"
	name := SanitizeSheetName(sheetName)
	if name != defaultSheet {
		if err := f.SetSheetName(defaultSheet, name); err != nil {
			return fmt.Errorf("failed to name sheet %q: %w", name, err)
		}
	}

	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &headerRow); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	return f.Write(w)
}

// SanitizeSheetName makes name acceptable as a workbook sheet name.
func SanitizeSheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	name = strings.Trim(name, "'")
	if runes := []rune(name); len(runes) > maxSheetNameLen {
		name = string(runes[:maxSheetNameLen])
	}
	if name == "" {
		return "Sheet1"
	}
	return name
}
