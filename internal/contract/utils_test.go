package contract

import (
	"testing"

	"github.com/fatih/color"
	"github.com/huangsam/gradebook/schema"
	"github.com/stretchr/testify/assert"
)

func TestGetPlainLabel(t *testing.T) {
	assert.Equal(t, PassValue, GetPlainLabel(schema.Pass))
	assert.Equal(t, FailValue, GetPlainLabel(schema.Fail))
	assert.Equal(t, PendingValue, GetPlainLabel(""))
}

func TestGetColorLabel(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	assert.Equal(t, PassValue, GetColorLabel(schema.Pass))
	assert.Equal(t, FailValue, GetColorLabel(schema.Fail))
	assert.Equal(t, PendingValue, GetColorLabel(""))
}

func TestGetBandLabel(t *testing.T) {
	assert.Equal(t, BalancedText, GetBandLabel(true, true))
	assert.Equal(t, OffBandText, GetBandLabel(false, false))
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		width    int
		expected string
	}{
		{"short", "Ada", 10, "Ada"},
		{"exact", "Ada Lovelace", 12, "Ada Lovelace"},
		{"cut", "Ada Lovelace", 8, "Ada L..."},
		{"multibyte", "Şule Çağlayan", 7, "Şule..."},
		{"tiny width", "Ada Lovelace", 3, "Ada Lovelace"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateText(tt.text, tt.width))
		})
	}
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input       string
		expected    bool
		expectError bool
	}{
		{"yes", true, false},
		{"TRUE", true, false},
		{"1", true, false},
		{"no", false, false},
		{"False", false, false},
		{"0", false, false},
		{"maybe", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
