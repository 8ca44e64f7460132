package core

import (
	"strings"
	"unicode"

	"github.com/huangsam/gradebook/internal/outwriter"
	"github.com/huangsam/gradebook/internal/settings"
	"github.com/huangsam/gradebook/schema"
)

// Session owns the live settings, the loaded roster and the selected course.
// Every core operation that needs that state goes through it.
type Session struct {
	SettingsPath string
	Settings     *schema.Settings
	Roster       *schema.Table
	Course       string
}

// NewSession loads settings from path and starts a session without a roster.
func NewSession(settingsPath string) (*Session, settings.LoadReport) {
	s, report := settings.LoadWithReport(settingsPath)
	return &Session{SettingsPath: settingsPath, Settings: s}, report
}

// LoadRoster replaces the roster with a freshly ingested one. On error the
// current roster stays in place.
func (s *Session) LoadRoster(path string, opts IngestOptions) (*IngestReport, error) {
	report, err := Ingest(path, opts, s.Settings)
	if err != nil {
		return nil, err
	}
	s.Roster = report.Table
	return report, nil
}

// SelectCourse makes course the active one.
func (s *Session) SelectCourse(course string) error {
	if _, err := ResolveCriteria(s.Settings, course); err != nil {
		return err
	}
	s.Course = course
	return nil
}

// Compute recomputes the roster for the active course.
func (s *Session) Compute() error {
	_, err := ComputeGrades(s.Roster, s.Settings, s.Course)
	return err
}

// CommitMarks records one student's marks for the active course.
func (s *Session) CommitMarks(rowIndex int, entries map[string]string) error {
	return CommitMarks(s.Roster, s.Settings, s.Course, rowIndex, entries)
}

// ApplySettings commits a settings draft and, when a roster is graded for a
// course that still has criteria, recomputes it under the new settings.
func (s *Session) ApplySettings(d *settings.Draft, acceptWeightDeviation bool) ([]settings.WeightDeviation, error) {
	deviations, err := settings.Commit(s.Settings, d, settings.CommitOptions{
		Path:                  s.SettingsPath,
		AcceptWeightDeviation: acceptWeightDeviation,
	})
	if err != nil {
		return deviations, err
	}
	if s.Course == "" {
		return deviations, nil
	}
	if _, ok := s.Settings.Courses[s.Course]; !ok {
		s.Course = ""
		return deviations, nil
	}
	if s.Roster != nil && len(s.Settings.Courses[s.Course]) > 0 {
		if err := s.Compute(); err != nil {
			return deviations, err
		}
	}
	return deviations, nil
}

// Export writes the roster to a single sheet workbook at path.
func (s *Session) Export(path string) error {
	if s.Roster == nil {
		return ErrNoRoster
	}
	return outwriter.WriteRosterWorkbook(s.Roster, path)
}

// ExportFileName builds the default export name for a graded roster. Any
// character other than a letter, digit, '-' or '_' becomes '_'; an empty label
// or course falls back to "Class" or "Course".
func ExportFileName(label, course string) string {
	return fileNamePart(label, "Class") + "_" + fileNamePart(course, "Course") + "_Graded.xlsx"
}

func fileNamePart(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			return r
		}
		return '_'
	}, name)
}
