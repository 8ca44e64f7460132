package contract

import (
	"testing"

	"github.com/huangsam/gradebook/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		RosterPathStr: "roster.xlsx",
		Settings:      "settings.json",
		HeaderSkip:    DefaultHeaderSkip,
		Output:        "text",
		Precision:     DefaultPrecision,
		Color:         "yes",
		Sort:          "id",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{
			name:   "valid minimal config",
			mutate: func(*ConfigRawInput) {},
		},
		{
			name:        "negative header skip",
			mutate:      func(in *ConfigRawInput) { in.HeaderSkip = -1 },
			expectError: true,
		},
		{
			name:        "invalid output",
			mutate:      func(in *ConfigRawInput) { in.Output = "html" },
			expectError: true,
		},
		{
			name:        "parquet without output file",
			mutate:      func(in *ConfigRawInput) { in.Output = "parquet" },
			expectError: true,
		},
		{
			name: "xlsx with output file",
			mutate: func(in *ConfigRawInput) {
				in.Output = "XLSX"
				in.OutputFile = "out.xlsx"
			},
		},
		{
			name:        "precision too high",
			mutate:      func(in *ConfigRawInput) { in.Precision = 3 },
			expectError: true,
		},
		{
			name:        "invalid sort",
			mutate:      func(in *ConfigRawInput) { in.Sort = "name" },
			expectError: true,
		},
		{
			name:        "negative limit",
			mutate:      func(in *ConfigRawInput) { in.Limit = -5 },
			expectError: true,
		},
		{
			name:        "invalid color",
			mutate:      func(in *ConfigRawInput) { in.Color = "maybe" },
			expectError: true,
		},
		{
			name:        "malformed mark assignment",
			mutate:      func(in *ConfigRawInput) { in.Set = []string{"written_1"} },
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)
			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProcessAndValidateFields(t *testing.T) {
	input := validInput()
	input.Course = "  Math "
	input.Sort = ""
	input.Student = 42
	input.Set = []string{"written_1 = 80", "Participation=70"}

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, "roster.xlsx", cfg.RosterPath)
	assert.Equal(t, "Math", cfg.Course)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.SortByID, cfg.Sort)
	assert.True(t, cfg.UseColors)
	assert.Equal(t, int64(42), cfg.StudentID)
	assert.Equal(t, map[string]string{"written_1": "80", "Participation": "70"}, cfg.Marks)
	assert.Equal(t, []string{"Participation", "written_1"}, cfg.SortedMarkKeys())
}

func TestProcessAndValidateDefaultSettingsPath(t *testing.T) {
	input := validInput()
	input.Settings = ""
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, DefaultSettingsPath(), cfg.SettingsPath)
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{Course: "Math", Marks: map[string]string{"written_1": "80"}}
	clone := cfg.Clone()
	clone.Marks["written_1"] = "10"
	clone.Course = "Physics"

	assert.Equal(t, "80", cfg.Marks["written_1"])
	assert.Equal(t, "Math", cfg.Course)
}

func TestParseAssignment(t *testing.T) {
	tests := []struct {
		input       string
		key, value  string
		expectError bool
	}{
		{input: "a=1", key: "a", value: "1"},
		{input: " Participation = 70 ", key: "Participation", value: "70"},
		{input: "project=", key: "project", value: ""},
		{input: "=5", expectError: true},
		{input: "novalue", expectError: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			key, value, err := ParseAssignment(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.value, value)
		})
	}
}
