package core

import (
	"testing"

	"github.com/huangsam/gradebook/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkFields(t *testing.T) {
	fields := MarkFields([]schema.Criterion{{Name: "Participation", Weight: 1}})
	assert.Equal(t, []string{schema.ColWritten1, schema.ColWritten2, schema.ColProject, "Participation"}, fields)
	assert.Equal(t, []string{schema.ColWritten1, schema.ColWritten2, schema.ColProject}, schema.MarkColumns, "shared slice untouched")
}

func TestCommitMarks(t *testing.T) {
	table := workedTable()
	s := gradingSettings()

	err := CommitMarks(table, s, "Civics", 0, map[string]string{
		"Participation":    "70",
		schema.ColWritten1: " 80 ",
	})
	require.NoError(t, err)

	ada := table.Rows[0]
	assert.InDelta(t, 70.0, ada.Values["Participation"], 1e-9)
	assert.InDelta(t, 74.0, ada.Values[schema.ColAverage], 1e-9)
	assert.Equal(t, schema.Pass, ada.Result())
	assert.Equal(t, schema.Fail, table.Rows[1].Result(), "other rows are recomputed too")
}

func TestCommitMarksBlankMeansZero(t *testing.T) {
	table := workedTable()
	require.NoError(t, CommitMarks(table, gradingSettings(), "Civics", 1, map[string]string{schema.ColProject: ""}))
	assert.InDelta(t, 0.0, table.Rows[1].Values[schema.ColProject], 1e-9)
}

func TestCommitMarksRejectsInvalidEntries(t *testing.T) {
	tests := []struct {
		name    string
		row     int
		entries map[string]string
	}{
		{"above range", 0, map[string]string{schema.ColWritten1: "101"}},
		{"below range", 0, map[string]string{schema.ColWritten1: "-1"}},
		{"not a whole number", 0, map[string]string{"Participation": "7.5"}},
		{"not a number", 0, map[string]string{schema.ColProject: "abc"}},
		{"unknown field", 0, map[string]string{"Homework": "50"}},
		{"derived field", 0, map[string]string{schema.ColAverage: "50"}},
		{"unknown row", 9, map[string]string{schema.ColWritten1: "50"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := workedTable()
			before := table.Clone()

			err := CommitMarks(table, gradingSettings(), "Civics", tt.row, tt.entries)
			require.Error(t, err)
			assert.ErrorIs(t, err, schema.ErrValidation)
			assert.Equal(t, before, table, "nothing is written when an entry is rejected")
		})
	}
}

func TestCommitMarksMixedEntriesWriteNothing(t *testing.T) {
	table := workedTable()
	before := table.Clone()
	err := CommitMarks(table, gradingSettings(), "Civics", 0, map[string]string{
		schema.ColWritten1: "90",
		schema.ColWritten2: "200",
	})
	assert.ErrorIs(t, err, schema.ErrValidation)
	assert.Equal(t, before, table)
}

func TestCommitMarksConfigurationError(t *testing.T) {
	table := workedTable()
	err := CommitMarks(table, gradingSettings(), "Empty", 0, map[string]string{schema.ColWritten1: "50"})
	assert.ErrorIs(t, err, schema.ErrConfiguration)
}

func TestCommitMarksNoRoster(t *testing.T) {
	err := CommitMarks(nil, gradingSettings(), "Civics", 0, nil)
	assert.ErrorIs(t, err, ErrNoRoster)
}
