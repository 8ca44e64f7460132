package outwriter

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/gradebook/internal/contract"
	"github.com/huangsam/gradebook/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleTable() *schema.Table {
	table := schema.NewTable("9-A", []string{
		schema.ColStudentID, schema.ColFullName, schema.ColWritten1, schema.ColAverage, schema.ColResult,
	})

	r1 := schema.NewRow(0)
	r1.Values[schema.ColStudentID] = 101
	r1.Text[schema.ColFullName] = "Ayşe Yılmaz"
	r1.Values[schema.ColWritten1] = 80
	r1.Values[schema.ColAverage] = 74
	r1.Text[schema.ColResult] = string(schema.Pass)

	r2 := schema.NewRow(1)
	r2.Values[schema.ColStudentID] = 102
	r2.Text[schema.ColFullName] = "Mehmet Demir"
	r2.Values[schema.ColWritten1] = math.NaN()
	r2.Values[schema.ColAverage] = 40
	r2.Text[schema.ColResult] = string(schema.Fail)

	table.Rows = []*schema.Row{r1, r2}
	return table
}

func sampleSettings() *schema.Settings {
	s := schema.DefaultSettings()
	s.Courses["Math"] = []schema.Criterion{{Name: "Homework", Weight: 0.5}, {Name: "Quiz", Weight: 0.5}}
	s.Courses["Art"] = []schema.Criterion{{Name: "Portfolio", Weight: 0.7}}
	s.Courses["Music"] = []schema.Criterion{}
	return s
}

func TestWriteRosterJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRosterJSON(&buf, sampleTable(), "Math"))

	var result map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))

	assert.Equal(t, "9-A", result["label"])
	assert.Equal(t, "Math", result["course"])
	assert.Equal(t, float64(2), result["students"])
	assert.Equal(t, float64(1), result["passed"])
	assert.Equal(t, float64(1), result["failed"])

	rows, ok := result["rows"].([]any)
	require.True(t, ok)
	require.Len(t, rows, 2)
	first := rows[0].(map[string]any)
	assert.Equal(t, float64(101), first[schema.ColStudentID])
	assert.Equal(t, "pass", first[schema.ColResult])
	second := rows[1].(map[string]any)
	assert.Nil(t, second[schema.ColWritten1], "missing value should be null")
}

func TestWriteRosterCSV(t *testing.T) {
	fmtFloat, intFmt := createFormatters(1)

	var buf bytes.Buffer
	require.NoError(t, writeRosterCSV(&buf, sampleTable(), fmtFloat, intFmt))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3) // header + 2 rows
	assert.Equal(t, "student_id,full_name,written_1,average,result", lines[0])
	assert.Equal(t, "101,Ayşe Yılmaz,80.0,74.0,PASS", lines[1])
	assert.Equal(t, "102,Mehmet Demir,,40.0,FAIL", lines[2])
}

func TestWriteRosterTable(t *testing.T) {
	fmtFloat, intFmt := createFormatters(0)
	cfg := &contract.Config{Width: 120}

	t.Run("graded", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeRosterTable(&buf, sampleTable(), "Math", cfg, fmtFloat, intFmt, time.Second))
		out := buf.String()
		assert.Contains(t, out, "Ayşe Yılmaz")
		assert.Contains(t, out, "PASS")
		assert.Contains(t, out, "FAIL")
		assert.Contains(t, out, "Showing 2 students from 9-A (passed: 1, failed: 1)")
		assert.Contains(t, out, "Course: Math")
	})

	t.Run("not graded", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeRosterTable(&buf, sampleTable(), "", cfg, fmtFloat, intFmt, time.Second))
		assert.Contains(t, buf.String(), "(not graded)")
		assert.Contains(t, buf.String(), "Course: none")
	})
}

func TestWriteWorkbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeWorkbook(&buf, sampleTable()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"9-A"}, f.GetSheetList())
	rows, err := f.GetRows("9-A")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"student_id", "full_name", "written_1", "average", "result"}, rows[0])
	assert.Equal(t, "101", rows[1][0])
	assert.Equal(t, "pass", rows[1][4])
	assert.Equal(t, "", rows[2][2], "missing value should be an empty cell")
}

func TestWriteRosterWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "9-A_Math_Graded.xlsx")
	require.NoError(t, WriteRosterWorkbook(sampleTable(), path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	err = WriteRosterWorkbook(sampleTable(), filepath.Join(t.TempDir(), "missing", "out.xlsx"))
	assert.Error(t, err)
}

func TestPrintRosterToFile(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name   string
		output schema.OutputMode
		file   string
	}{
		{"csv", schema.CSVOut, "roster.csv"},
		{"json", schema.JSONOut, "roster.json"},
		{"parquet", schema.ParquetOut, "roster.parquet"},
		{"xlsx", schema.XLSXOut, "roster.xlsx"},
		{"text", schema.TextOut, "roster.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &contract.Config{Output: tt.output, OutputFile: filepath.Join(dir, tt.file), Precision: 1, Width: 100}
			require.NoError(t, NewOutWriter().WriteRoster(sampleTable(), "Math", cfg, time.Millisecond))
			info, err := os.Stat(cfg.OutputFile)
			require.NoError(t, err)
			assert.Greater(t, info.Size(), int64(0))
		})
	}
}

func TestPlainCell(t *testing.T) {
	fmtFloat, intFmt := createFormatters(2)
	r := schema.NewRow(0)
	r.Values[schema.ColStudentID] = 7
	r.Values[schema.ColAverage] = 73.456
	r.Values[schema.ColProject] = math.NaN()

	assert.Equal(t, "7", plainCell(r, schema.ColStudentID, fmtFloat, intFmt))
	assert.Equal(t, "73.46", plainCell(r, schema.ColAverage, fmtFloat, intFmt))
	assert.Equal(t, "", plainCell(r, schema.ColProject, fmtFloat, intFmt))
	assert.Equal(t, "", plainCell(r, schema.ColResult, fmtFloat, intFmt), "no result before grading")

	r.Values[schema.ColStudentID] = 7.5
	assert.Equal(t, "7.50", plainCell(r, schema.ColStudentID, fmtFloat, intFmt))
}

func TestGetMaxNameWidth(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		columns int
		want    int
	}{
		{"narrow clamps to minimum", 40, 8, 15},
		{"wide clamps to maximum", 300, 4, 40},
		{"in between", 80, 5, 29},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetMaxNameWidth(&contract.Config{Width: tt.width}, tt.columns))
		})
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "60%", formatPercent(0.6))
	assert.Equal(t, "20%", formatPercent(0.2000000001))
	assert.Equal(t, "0%", formatPercent(0))
}
