package core

import (
	"maps"
	"slices"

	"github.com/huangsam/gradebook/internal/settings"
	"github.com/huangsam/gradebook/schema"
)

// MarkFields returns the keys a teacher may enter for a course: the written
// exams, the project and each criterion.
func MarkFields(criteria []schema.Criterion) []string {
	fields := slices.Clone(schema.MarkColumns)
	for _, c := range criteria {
		fields = append(fields, c.Name)
	}
	return fields
}

// CommitMarks validates one student's entered marks, writes them to the row
// and recomputes the whole table. Entries are whole numbers from 0 to 100 and
// blank means 0. Nothing is written unless every entry is valid.
func CommitMarks(t *schema.Table, s *schema.Settings, course string, rowIndex int, entries map[string]string) error {
	if t == nil {
		return ErrNoRoster
	}
	criteria, err := ResolveCriteria(s, course)
	if err != nil {
		return err
	}
	row, ok := t.Row(rowIndex)
	if !ok {
		return schema.NewValidationError("row", "no student at row %d", rowIndex)
	}

	allowed := MarkFields(criteria)
	parsed := make(map[string]float64, len(entries))
	for _, key := range slices.Sorted(maps.Keys(entries)) {
		if !slices.Contains(allowed, key) {
			return schema.NewValidationError(key, "not a mark of course %q", course)
		}
		v, err := settings.ParsePercent(key, entries[key])
		if err != nil {
			return err
		}
		parsed[key] = float64(v)
	}

	fill := float64(s.General.MissingValueDefault)
	for _, key := range allowed {
		t.AddNumericColumn(key, fill)
	}
	for key, v := range parsed {
		row.Values[key] = v
	}

	_, err = ComputeGrades(t, s, course)
	return err
}
