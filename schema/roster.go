package schema

import (
	"math"
	"slices"
)

// Row is one student record. Index is its position in the source sheet and
// stays stable when rows are reordered.
type Row struct {
	Index  int
	Values map[string]float64 // numeric columns, NaN marks a missing value
	Text   map[string]string  // full_name and result
}

// Table is a roster: ordered columns plus student rows.
type Table struct {
	Label   string
	Columns []string
	Rows    []*Row
}

// NewRow creates an empty row at the given source index.
func NewRow(index int) *Row {
	return &Row{
		Index:  index,
		Values: make(map[string]float64),
		Text:   make(map[string]string),
	}
}

// NewTable creates an empty table with the given label and columns.
func NewTable(label string, columns []string) *Table {
	return &Table{Label: label, Columns: slices.Clone(columns)}
}

// Value returns a numeric cell and whether it holds a real number.
func (r *Row) Value(column string) (float64, bool) {
	v, ok := r.Values[column]
	if !ok || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// ValueOr returns a numeric cell or fallback when it is absent or missing.
func (r *Row) ValueOr(column string, fallback float64) float64 {
	if v, ok := r.Value(column); ok {
		return v
	}
	return fallback
}

// Result returns the computed outcome, or "" before calculation.
func (r *Row) Result() Outcome {
	return Outcome(r.Text[ColResult])
}

// HasColumn reports whether the table carries the column.
func (t *Table) HasColumn(name string) bool {
	return slices.Contains(t.Columns, name)
}

// EnsureColumn appends a column if it is not there yet. Columns are never removed.
func (t *Table) EnsureColumn(name string) bool {
	if t.HasColumn(name) {
		return false
	}
	t.Columns = append(t.Columns, name)
	return true
}

// AddNumericColumn appends a numeric column and fills every row with fill.
// It returns false and leaves values alone when the column already exists.
func (t *Table) AddNumericColumn(name string, fill float64) bool {
	if !t.EnsureColumn(name) {
		return false
	}
	for _, r := range t.Rows {
		r.Values[name] = fill
	}
	return true
}

// Row returns the row with the given source index.
func (t *Table) Row(index int) (*Row, bool) {
	for _, r := range t.Rows {
		if r.Index == index {
			return r, true
		}
	}
	return nil, false
}

// FindByStudentID returns the first row whose student_id equals id.
func (t *Table) FindByStudentID(id int64) (*Row, bool) {
	for _, r := range t.Rows {
		if v, ok := r.Value(ColStudentID); ok && v == float64(id) {
			return r, true
		}
	}
	return nil, false
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	clone := &Table{
		Label:   t.Label,
		Columns: slices.Clone(t.Columns),
		Rows:    make([]*Row, len(t.Rows)),
	}
	for i, r := range t.Rows {
		cr := NewRow(r.Index)
		for k, v := range r.Values {
			cr.Values[k] = v
		}
		for k, v := range r.Text {
			cr.Text[k] = v
		}
		clone.Rows[i] = cr
	}
	return clone
}

// CountOutcomes returns how many rows passed and failed.
func (t *Table) CountOutcomes() (passed, failed int) {
	for _, r := range t.Rows {
		switch r.Result() {
		case Pass:
			passed++
		case Fail:
			failed++
		}
	}
	return passed, failed
}
