package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// Outcome represents the pass/fail verdict for a student.
	Outcome string

	// SortKey represents how roster rows are ordered in output.
	SortKey string
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
	XLSXOut    OutputMode = "xlsx"
)

// All outcomes supported.
const (
	Pass Outcome = "pass"
	Fail Outcome = "fail"
)

// All sort keys supported.
const (
	SortByID      SortKey = "id" // default
	SortByAverage SortKey = "average"
)

// Canonical column names of a normalized roster.
const (
	ColStudentID           = "student_id"
	ColFullName            = "full_name"
	ColWritten1            = "written_1"
	ColWritten2            = "written_2"
	ColPerformance1        = "performance_1"
	ColPerformance2        = "performance_2"
	ColParticipationWeight = "participation_weight"
	ColProject             = "project"
)

// Derived column names populated by grade calculation.
const (
	ColPerformanceScore = "performance_score"
	ColAverage          = "average"
	ColResult           = "result"
)

// UnknownLabel is used when no sheet or file name can label a roster.
const UnknownLabel = "Unknown"

// ValidOutputModes is the set of output formats accepted on the command line.
var ValidOutputModes = map[OutputMode]bool{
	TextOut:    true,
	CSVOut:     true,
	JSONOut:    true,
	ParquetOut: true,
	XLSXOut:    true,
}

// ValidSortKeys is the set of sort keys accepted on the command line.
var ValidSortKeys = map[SortKey]bool{
	SortByID:      true,
	SortByAverage: true,
}

// DerivedColumns lists the columns written by grade calculation, in output order.
var DerivedColumns = []string{ColPerformanceScore, ColAverage, ColResult}

// MarkColumns are the non-criterion marks a teacher enters per student.
var MarkColumns = []string{ColWritten1, ColWritten2, ColProject}

// IsTextColumn reports whether a column holds text rather than numbers.
func IsTextColumn(name string) bool {
	return name == ColFullName || name == ColResult
}

// IsReservedColumn reports whether a name is taken by a canonical or derived column.
// Criterion names may not use these.
func IsReservedColumn(name string) bool {
	switch name {
	case ColStudentID, ColFullName, ColWritten1, ColWritten2, ColPerformance1,
		ColPerformance2, ColParticipationWeight, ColProject,
		ColPerformanceScore, ColAverage, ColResult:
		return true
	}
	return false
}
