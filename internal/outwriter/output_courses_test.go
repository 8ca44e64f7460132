package outwriter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/huangsam/gradebook/internal/contract"
	"github.com/huangsam/gradebook/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteCoursesTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCoursesTable(&buf, sampleSettings(), false))
	out := buf.String()

	assert.Contains(t, out, "Pass threshold: 50. Weights: written 60%, project 20%, performance 20%")
	assert.Contains(t, out, "Homework")
	assert.Contains(t, out, "Portfolio")
	assert.Contains(t, out, contract.OffBandText, "Art sums to 70%")
	assert.Contains(t, out, contract.BalancedText, "Math sums to 100%")
	assert.Contains(t, out, "(none)")
	assert.Contains(t, out, "Showing 3 courses")
}

func TestWriteCoursesCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCoursesCSV(&buf, sampleSettings()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"course,criterion,weight",
		"Art,Portfolio,0.7",
		"Math,Homework,0.5",
		"Math,Quiz,0.5",
	}, lines)
}

func TestWriteCoursesJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCoursesJSON(&buf, sampleSettings()))

	var result CoursesDocument
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))

	assert.Equal(t, 50, result.General.PassThreshold)
	require.Len(t, result.Courses, 3)
	assert.Equal(t, "Art", result.Courses[0].Name)
	assert.False(t, result.Courses[0].InBand)
	assert.Equal(t, "Math", result.Courses[1].Name)
	assert.True(t, result.Courses[1].InBand)
	assert.Equal(t, "Music", result.Courses[2].Name)
	assert.True(t, result.Courses[2].InBand, "a course without criteria is not flagged")
}

func TestWriteCoursesWorkbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCoursesWorkbook(&buf, sampleSettings()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(coursesSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"course", "criterion", "weight"}, rows[0])
	assert.Equal(t, "Portfolio", rows[1][1])
}

func TestPrintCoursesRejectsParquet(t *testing.T) {
	cfg := &contract.Config{Output: schema.ParquetOut, OutputFile: "courses.parquet"}
	err := NewOutWriter().WriteCourses(sampleSettings(), cfg)
	assert.Error(t, err)
}
