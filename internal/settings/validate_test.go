package settings

import (
	"testing"

	"github.com/huangsam/gradebook/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*schema.Settings)
		field  string // empty means valid
	}{
		{name: "defaults are valid", mutate: func(*schema.Settings) {}},
		{
			name:   "threshold above range",
			mutate: func(s *schema.Settings) { s.General.PassThreshold = 101 },
			field:  "general.pass_threshold",
		},
		{
			name:   "threshold below range",
			mutate: func(s *schema.Settings) { s.General.PassThreshold = -1 },
			field:  "general.pass_threshold",
		},
		{
			name:   "negative missing default is allowed",
			mutate: func(s *schema.Settings) { s.General.MissingValueDefault = -5 },
		},
		{
			name:   "written weight above one",
			mutate: func(s *schema.Settings) { s.General.WrittenWeight = 1.2 },
			field:  "general.written_weight",
		},
		{
			name:   "project weight negative",
			mutate: func(s *schema.Settings) { s.General.ProjectWeight = -0.1 },
			field:  "general.project_weight",
		},
		{
			name: "weights exceed one together",
			mutate: func(s *schema.Settings) {
				s.General.WrittenWeight = 0.7
				s.General.ProjectWeight = 0.4
			},
			field: "general",
		},
		{
			name: "weights exactly one together",
			mutate: func(s *schema.Settings) {
				s.General.WrittenWeight = 0.7
				s.General.ProjectWeight = 0.3
			},
		},
		{
			name:   "bad window size",
			mutate: func(s *schema.Settings) { s.UI.WindowSize = "big" },
			field:  "ui.window_size",
		},
		{
			name:   "blank title",
			mutate: func(s *schema.Settings) { s.UI.Title = "  " },
			field:  "ui.title",
		},
		{
			name:   "blank course name",
			mutate: func(s *schema.Settings) { s.Courses[" "] = nil },
			field:  "courses",
		},
		{
			name: "course names collide after trimming",
			mutate: func(s *schema.Settings) {
				s.Courses["Math"] = nil
				s.Courses["Math "] = nil
			},
			field: "courses",
		},
		{
			name:   "blank criterion name",
			mutate: func(s *schema.Settings) { s.Courses["Math"] = []schema.Criterion{{Name: "", Weight: 1}} },
			field:  "courses.Math",
		},
		{
			name:   "reserved criterion name",
			mutate: func(s *schema.Settings) { s.Courses["Math"] = []schema.Criterion{{Name: "average", Weight: 1}} },
			field:  "courses.Math",
		},
		{
			name: "duplicate criterion name",
			mutate: func(s *schema.Settings) {
				s.Courses["Math"] = []schema.Criterion{{Name: "Quiz", Weight: 0.5}, {Name: "Quiz", Weight: 0.5}}
			},
			field: "courses.Math",
		},
		{
			name:   "criterion weight out of range",
			mutate: func(s *schema.Settings) { s.Courses["Math"] = []schema.Criterion{{Name: "Quiz", Weight: 1.5}} },
			field:  "courses.Math",
		},
		{
			name:   "unbalanced criteria are still structurally valid",
			mutate: func(s *schema.Settings) { s.Courses["Math"] = []schema.Criterion{{Name: "Quiz", Weight: 0.5}} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := schema.DefaultSettings()
			tt.mutate(s)
			err := Validate(s)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, schema.ErrValidation)
			var verr *schema.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestInWeightBand(t *testing.T) {
	tests := []struct {
		sum      float64
		expected bool
	}{
		{1.0, true},
		{0.9995, true},
		{1.0005, true},
		{0.998, false},
		{1.002, false},
		{0.5, false},
		{0.1 + 0.2 + 0.7, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, InWeightBand(tt.sum), "sum %v", tt.sum)
	}
}

func TestCheckCriterionWeights(t *testing.T) {
	s := schema.DefaultSettings()
	s.Courses["Art"] = []schema.Criterion{}
	s.Courses["Math"] = []schema.Criterion{{Name: "Quiz", Weight: 0.5}, {Name: "Homework", Weight: 0.3}}
	s.Courses["Physics"] = []schema.Criterion{{Name: "Lab", Weight: 0.25}, {Name: "Quiz", Weight: 0.75}}

	deviations := CheckCriterionWeights(s)
	require.Len(t, deviations, 1)
	assert.Equal(t, "Math", deviations[0].Course)
	assert.InDelta(t, 80.0, deviations[0].SumPct, 1e-9)
}

func TestParsePercent(t *testing.T) {
	tests := []struct {
		input       string
		expected    int
		expectError bool
	}{
		{"", 0, false},
		{"  ", 0, false},
		{"0", 0, false},
		{"100", 100, false},
		{" 55 ", 55, false},
		{"101", 0, true},
		{"-1", 0, true},
		{"12.5", 0, true},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePercent("field", tt.input)
			if tt.expectError {
				assert.ErrorIs(t, err, schema.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
