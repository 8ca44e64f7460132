package core

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/huangsam/gradebook/internal/sheet"
	"github.com/huangsam/gradebook/schema"
)

// MappedRow is one data row keyed by canonical column.
type MappedRow struct {
	Index int // position among the sheet's data rows
	Cells map[string]string
}

// Mapped is a sheet narrowed to the canonical columns it carries.
type Mapped struct {
	Columns  []string // canonical columns found, in mapping order
	Rows     []MappedRow
	Missing  []string // canonical columns with no usable header
	Unmapped []string // headers that matched nothing
	Dropped  []string // headers whose data cells were all blank
}

// MapColumns skips headerSkip rows, reads the next row as the header and maps
// every non-blank column onto the canonical schema. It fails with
// schema.ErrSchemaMismatch when the offset is out of range or no expected
// header is present.
func MapColumns(grid *sheet.Grid, headerSkip int, mapping schema.ColumnMapping) (*Mapped, error) {
	if headerSkip < 0 {
		return nil, fmt.Errorf("%w: header offset cannot be negative (received %d)",
			schema.ErrSchemaMismatch, headerSkip)
	}
	if headerSkip >= len(grid.Rows) {
		return nil, fmt.Errorf("%w: sheet has %d rows, no header row after skipping %d",
			schema.ErrSchemaMismatch, len(grid.Rows), headerSkip)
	}

	headerRow := headerSkip
	firstData := headerSkip + 1
	width := grid.Width()
	out := &Mapped{}

	// Columns without any data are dropped before matching.
	var kept []int
	for c := range width {
		header := strings.TrimSpace(grid.Cell(headerRow, c))
		if columnIsBlank(grid, c, firstData) {
			if header != "" {
				out.Dropped = append(out.Dropped, header)
			}
			continue
		}
		kept = append(kept, c)
	}

	found := make(map[string]int)
	var headers []string
	for _, c := range kept {
		header := strings.TrimSpace(grid.Cell(headerRow, c))
		if header != "" {
			headers = append(headers, header)
		}
		entry, ok := mapping.Lookup(header)
		if !ok {
			if header != "" {
				out.Unmapped = append(out.Unmapped, header)
			}
			continue
		}
		if _, dup := found[entry.Column]; dup {
			out.Unmapped = append(out.Unmapped, header)
			continue
		}
		found[entry.Column] = c
	}

	if len(found) == 0 {
		return nil, fmt.Errorf("%w: none of the expected headers found after skipping %d rows (headers: %s)",
			schema.ErrSchemaMismatch, headerSkip, quoteList(headers))
	}

	for _, col := range mapping.Columns() {
		if _, ok := found[col]; ok {
			out.Columns = append(out.Columns, col)
		} else {
			out.Missing = append(out.Missing, col)
		}
	}

	for r := firstData; r < len(grid.Rows); r++ {
		cells := make(map[string]string, len(found))
		blank := true
		for col, c := range found {
			v := grid.Cell(r, c)
			cells[col] = v
			if strings.TrimSpace(v) != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		out.Rows = append(out.Rows, MappedRow{Index: r - firstData, Cells: cells})
	}
	return out, nil
}

func columnIsBlank(grid *sheet.Grid, c, firstData int) bool {
	for r := firstData; r < len(grid.Rows); r++ {
		if strings.TrimSpace(grid.Cell(r, c)) != "" {
			return false
		}
	}
	return true
}

// DeriveLabel names an ingested roster: the sheet name, else the file name
// without extension, else schema.UnknownLabel.
func DeriveLabel(grid *sheet.Grid) string {
	if name := strings.TrimSpace(grid.Name); name != "" {
		return name
	}
	if grid.Path != "" {
		base := filepath.Base(grid.Path)
		base = strings.TrimSpace(strings.TrimSuffix(base, filepath.Ext(base)))
		if base != "" && base != "." && base != string(filepath.Separator) {
			return base
		}
	}
	return schema.UnknownLabel
}

func quoteList(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return strings.Join(quoted, ", ")
}
