package contract

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/huangsam/gradebook/schema"
)

// Default values for configuration.
const (
	DefaultHeaderSkip = 15 // rows above the header in school roster exports
	DefaultPrecision  = 1
	MaxPrecision      = 2
	MaxResultLimit    = 10000
)

// Config holds the runtime configuration for a command.
// This struct remains the "final, validated" config.
type Config struct {
	SettingsPath string
	RosterPath   string
	HeaderSkip   int
	Sheet        string
	Course       string

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)
	Sort       schema.SortKey
	Limit      int // 0 shows every row

	StudentID int64
	Marks     map[string]string

	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from flags and the optional config file.
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	RosterPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Settings   string `mapstructure:"settings"`
	HeaderSkip int    `mapstructure:"header-skip"`
	Sheet      string `mapstructure:"sheet"`
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Precision  int    `mapstructure:"precision"`
	Width      int    `mapstructure:"width"`
	Color      string `mapstructure:"color"`

	// --- Fields from grade/mark/export flags ---
	Course string `mapstructure:"course"`
	Sort   string `mapstructure:"sort"`
	Limit  int    `mapstructure:"limit"`

	// --- Fields from markCmd.Flags() ---
	Student int64    `mapstructure:"student"`
	Set     []string `mapstructure:"set"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Marks != nil {
		clone.Marks = make(map[string]string, len(c.Marks))
		maps.Copy(clone.Marks, c.Marks)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processOutput(cfg, input); err != nil {
		return err
	}
	if err := processMarks(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates the roster and settings inputs.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.RosterPath = strings.TrimSpace(input.RosterPathStr)
	cfg.Sheet = strings.TrimSpace(input.Sheet)
	cfg.Course = strings.TrimSpace(input.Course)
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	cfg.SettingsPath = strings.TrimSpace(input.Settings)
	if cfg.SettingsPath == "" {
		cfg.SettingsPath = DefaultSettingsPath()
	}

	if input.HeaderSkip < 0 {
		return fmt.Errorf("header-skip cannot be negative (received %d)", input.HeaderSkip)
	}
	cfg.HeaderSkip = input.HeaderSkip

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	return nil
}

// processOutput validates output format, precision, ordering and limit.
func processOutput(cfg *Config, input *ConfigRawInput) error {
	if input.Precision < 0 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 0 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet, xlsx", input.Output)
	}
	if (cfg.Output == schema.ParquetOut || cfg.Output == schema.XLSXOut) && cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required for %s output", cfg.Output)
	}

	cfg.Sort = schema.SortKey(strings.ToLower(input.Sort))
	if cfg.Sort == "" {
		cfg.Sort = schema.SortByID
	}
	if _, ok := schema.ValidSortKeys[cfg.Sort]; !ok {
		return fmt.Errorf("invalid sort '%s'. must be id, average", input.Sort)
	}

	if input.Limit < 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be between 0 and %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.Limit = input.Limit
	return nil
}

// processMarks parses repeated key=value assignments for the mark command.
func processMarks(cfg *Config, input *ConfigRawInput) error {
	cfg.StudentID = input.Student
	cfg.Marks = nil
	if len(input.Set) == 0 {
		return nil
	}
	cfg.Marks = make(map[string]string, len(input.Set))
	for _, assignment := range input.Set {
		key, value, err := ParseAssignment(assignment)
		if err != nil {
			return err
		}
		cfg.Marks[key] = value
	}
	return nil
}

// ParseAssignment splits "key=value", trimming both sides.
func ParseAssignment(s string) (string, string, error) {
	key, value, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", "", fmt.Errorf("invalid assignment %q (expected key=value)", s)
	}
	return key, strings.TrimSpace(value), nil
}

// SortedMarkKeys returns the mark keys in a stable order for messages.
func (c *Config) SortedMarkKeys() []string {
	return slices.Sorted(maps.Keys(c.Marks))
}
