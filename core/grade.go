package core

import (
	"errors"

	"github.com/huangsam/gradebook/core/algo"
	"github.com/huangsam/gradebook/schema"
)

// ErrNoRoster is returned when an operation needs a roster and none is loaded.
var ErrNoRoster = errors.New("no roster loaded")

// ResolveCriteria returns the criteria of a course, or a *schema.ConfigurationError
// when the course is unknown or has none.
func ResolveCriteria(s *schema.Settings, course string) ([]schema.Criterion, error) {
	if course == "" {
		return nil, &schema.ConfigurationError{Course: course, Reason: "no course selected"}
	}
	criteria, ok := s.Courses[course]
	if !ok {
		return nil, &schema.ConfigurationError{Course: course, Reason: "course is not defined in settings"}
	}
	if len(criteria) == 0 {
		return nil, &schema.ConfigurationError{Course: course, Reason: "course has no criteria"}
	}
	return criteria, nil
}

// ComputeGrades recomputes the derived columns of every row for a course.
// Criterion columns the table lacks are added and filled with the missing
// value default first. On error the table is left exactly as it was.
func ComputeGrades(t *schema.Table, s *schema.Settings, course string) (*schema.Table, error) {
	if t == nil {
		return nil, ErrNoRoster
	}
	criteria, err := ResolveCriteria(s, course)
	if err != nil {
		return nil, err
	}

	fill := float64(s.General.MissingValueDefault)
	for _, c := range criteria {
		t.AddNumericColumn(c.Name, fill)
	}
	for _, col := range schema.DerivedColumns {
		t.EnsureColumn(col)
	}

	for _, r := range t.Rows {
		computeRow(r, criteria, s.General)
	}
	return t, nil
}

// computeRow writes performance_score, average and result for one row.
// Absent written and project marks read as the missing value default.
func computeRow(r *schema.Row, criteria []schema.Criterion, g schema.GeneralSettings) {
	fill := float64(g.MissingValueDefault)
	performance := algo.PerformanceScore(criteria, r.Values)
	written := algo.WrittenComponent(r.ValueOr(schema.ColWritten1, fill), r.ValueOr(schema.ColWritten2, fill))
	average := algo.Average(g, written, r.ValueOr(schema.ColProject, fill), performance)

	r.Values[schema.ColPerformanceScore] = performance
	r.Values[schema.ColAverage] = average
	r.Text[schema.ColResult] = string(algo.Outcome(average, g.PassThreshold))
}
