package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/gradebook/schema"
	"github.com/stretchr/testify/require"
)

// writeRoster writes a CSV roster into a temp dir and returns its path.
func writeRoster(t *testing.T, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

// preamble returns n filler rows standing in for a school export's title block.
func preamble(n int) []string {
	rows := make([]string, n)
	for i := range rows {
		rows[i] = "Report line"
	}
	return rows
}

// gradingSettings returns the worked example settings with a Participation course.
func gradingSettings() *schema.Settings {
	s := schema.DefaultSettings()
	s.General.PassThreshold = 50
	s.General.WrittenWeight = 0.6
	s.General.ProjectWeight = 0.2
	s.Courses["Civics"] = []schema.Criterion{{Name: "Participation", Weight: 1.0}}
	s.Courses["Empty"] = []schema.Criterion{}
	return s
}

// workedTable returns the two students of the worked examples, already normalized.
func workedTable() *schema.Table {
	t := schema.NewTable("9-A", []string{
		schema.ColStudentID, schema.ColFullName, schema.ColWritten1, schema.ColWritten2, schema.ColProject,
	})

	r1 := schema.NewRow(0)
	r1.Values[schema.ColStudentID] = 1
	r1.Text[schema.ColFullName] = "Ada"
	r1.Values[schema.ColWritten1] = 80
	r1.Values[schema.ColWritten2] = 60
	r1.Values[schema.ColProject] = 90

	r2 := schema.NewRow(1)
	r2.Values[schema.ColStudentID] = 2
	r2.Text[schema.ColFullName] = "Bo"
	r2.Values[schema.ColWritten1] = 40
	r2.Values[schema.ColWritten2] = 40
	r2.Values[schema.ColProject] = 40

	t.Rows = []*schema.Row{r1, r2}
	return t
}
