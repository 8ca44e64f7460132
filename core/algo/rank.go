package algo

import (
	"math"
	"slices"
	"sort"

	"github.com/huangsam/gradebook/schema"
)

// IntegralID returns a row's student_id when it holds a whole number.
func IntegralID(r *schema.Row) (int64, bool) {
	v, ok := r.Value(schema.ColStudentID)
	if !ok || math.IsInf(v, 0) || v != math.Trunc(v) || math.Abs(v) > 1<<53 {
		return 0, false
	}
	return int64(v), true
}

// SortByStudentID orders rows ascending by student_id in place. If any id is
// missing or not a whole number the rows are left as they were and false is
// returned.
func SortByStudentID(rows []*schema.Row) bool {
	ids := make(map[*schema.Row]int64, len(rows))
	for _, r := range rows {
		id, ok := IntegralID(r)
		if !ok {
			return false
		}
		ids[r] = id
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return ids[rows[i]] < ids[rows[j]]
	})
	return true
}

// DuplicateIDs returns student ids that appear on more than one row, ascending.
func DuplicateIDs(rows []*schema.Row) []int64 {
	counts := make(map[int64]int, len(rows))
	for _, r := range rows {
		if id, ok := IntegralID(r); ok {
			counts[id]++
		}
	}
	var dups []int64
	for id, n := range counts {
		if n > 1 {
			dups = append(dups, id)
		}
	}
	slices.Sort(dups)
	return dups
}

// RankByAverage returns a copy of rows ordered by average, highest first,
// keeping source order among ties, and trimmed to limit when limit > 0.
func RankByAverage(rows []*schema.Row, limit int) []*schema.Row {
	ranked := slices.Clone(rows)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ValueOr(schema.ColAverage, math.Inf(-1)) > ranked[j].ValueOr(schema.ColAverage, math.Inf(-1))
	})
	return Limit(ranked, limit)
}

// Limit trims rows to limit when limit > 0.
func Limit(rows []*schema.Row, limit int) []*schema.Row {
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}
