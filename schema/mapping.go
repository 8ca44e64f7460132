package schema

// MappingEntry maps one external header text onto a canonical column.
type MappingEntry struct {
	Header  string
	Column  string
	Numeric bool
}

// ColumnMapping is a versioned lookup table from sheet headers to canonical columns.
// Several headers may point at the same column; the first one present in a sheet wins.
type ColumnMapping struct {
	Version int
	Entries []MappingEntry
}

// DefaultColumnMapping is the bilingual header set of school roster exports.
var DefaultColumnMapping = ColumnMapping{
	Version: 1,
	Entries: []MappingEntry{
		{Header: "Okul No", Column: ColStudentID, Numeric: true},
		{Header: "Student No", Column: ColStudentID, Numeric: true},
		{Header: "Adı Soyadı", Column: ColFullName},
		{Header: "Full Name", Column: ColFullName},
		{Header: "Y1", Column: ColWritten1, Numeric: true},
		{Header: "Written 1", Column: ColWritten1, Numeric: true},
		{Header: "Y2", Column: ColWritten2, Numeric: true},
		{Header: "Written 2", Column: ColWritten2, Numeric: true},
		{Header: "P1", Column: ColPerformance1, Numeric: true},
		{Header: "Performance 1", Column: ColPerformance1, Numeric: true},
		{Header: "P2", Column: ColPerformance2, Numeric: true},
		{Header: "Performance 2", Column: ColPerformance2, Numeric: true},
		{Header: "D.ET.KAT.", Column: ColParticipationWeight, Numeric: true},
		{Header: "Participation Weight", Column: ColParticipationWeight, Numeric: true},
		{Header: "PROJE", Column: ColProject, Numeric: true},
		{Header: "Project", Column: ColProject, Numeric: true},
	},
}

// Columns returns the distinct canonical columns in mapping order.
func (m ColumnMapping) Columns() []string {
	seen := make(map[string]bool)
	var cols []string
	for _, e := range m.Entries {
		if !seen[e.Column] {
			seen[e.Column] = true
			cols = append(cols, e.Column)
		}
	}
	return cols
}

// IsNumeric reports whether a canonical column is declared numeric.
func (m ColumnMapping) IsNumeric(column string) bool {
	for _, e := range m.Entries {
		if e.Column == column {
			return e.Numeric
		}
	}
	return false
}

// Lookup returns the entry whose header text equals header exactly.
func (m ColumnMapping) Lookup(header string) (MappingEntry, bool) {
	for _, e := range m.Entries {
		if e.Header == header {
			return e, true
		}
	}
	return MappingEntry{}, false
}
