package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/huangsam/gradebook/core/algo"
	"github.com/huangsam/gradebook/schema"
)

// ParseNumber parses a numeric cell, accepting ',' as the decimal separator.
// Blank, malformed and non-finite text is reported as not ok.
func ParseNumber(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(text, ",", "."), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// coerceTable converts mapped text cells into a table. Numeric cells that are
// blank or do not parse are stored as NaN. The returned counts hold, per
// column, how many non-blank cells failed to parse.
func coerceTable(m *Mapped, mapping schema.ColumnMapping, label string) (*schema.Table, map[string]int) {
	t := schema.NewTable(label, m.Columns)
	unparseable := make(map[string]int)
	for _, mr := range m.Rows {
		row := schema.NewRow(mr.Index)
		for _, col := range m.Columns {
			cell := mr.Cells[col]
			if !mapping.IsNumeric(col) {
				row.Text[col] = strings.TrimSpace(cell)
				continue
			}
			v, ok := ParseNumber(cell)
			if !ok {
				if strings.TrimSpace(cell) != "" {
					unparseable[col]++
				}
				v = math.NaN()
			}
			row.Values[col] = v
		}
		t.Rows = append(t.Rows, row)
	}
	return t, unparseable
}

// fillMissing replaces every NaN numeric value with fill and returns how many
// values were replaced.
func fillMissing(t *schema.Table, fill float64) int {
	filled := 0
	for _, r := range t.Rows {
		for col, v := range r.Values {
			if math.IsNaN(v) {
				r.Values[col] = fill
				filled++
			}
		}
	}
	return filled
}

// normalizeTable runs coercion, missing value fill and id ordering. It never
// fails; problems come back as warnings.
func normalizeTable(m *Mapped, mapping schema.ColumnMapping, label string, missingDefault int) (*schema.Table, []string) {
	var warnings []string

	t, unparseable := coerceTable(m, mapping, label)
	for _, col := range m.Columns {
		if n := unparseable[col]; n > 0 {
			warnings = append(warnings, fmt.Sprintf("column %q: %d value(s) could not be read as numbers and were set to %d",
				col, n, missingDefault))
		}
	}

	fillMissing(t, float64(missingDefault))

	if t.HasColumn(schema.ColStudentID) {
		if !algo.SortByStudentID(t.Rows) {
			warnings = append(warnings, "student ids are not all whole numbers, rows kept in sheet order")
		}
		if dups := algo.DuplicateIDs(t.Rows); len(dups) > 0 {
			warnings = append(warnings, fmt.Sprintf("duplicate student ids: %s", joinIDs(dups)))
		}
	}
	return t, warnings
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ", ")
}
