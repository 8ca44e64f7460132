package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/gradebook/schema"
)

// Outcome and weight band label constants.
const (
	PassValue    = "PASS"     // Pass value
	FailValue    = "FAIL"     // Fail value
	PendingValue = "-"        // Not yet computed
	BalancedText = "OK"       // Criterion weights inside the band
	OffBandText  = "Off band" // Criterion weights outside the band
)

// Color variables for console output.
var (
	PassColor    = color.New(color.FgGreen, color.Bold) // PassColor marks a passing student.
	FailColor    = color.New(color.FgRed, color.Bold)   // FailColor marks a failing student.
	OffBandColor = color.New(color.FgYellow)            // OffBandColor marks unbalanced criteria.
)

// GetPlainLabel returns a plain text label for an outcome. This is the core
// logic used for CSV, JSON, and table printing.
func GetPlainLabel(outcome schema.Outcome) string {
	switch outcome {
	case schema.Pass:
		return PassValue
	case schema.Fail:
		return FailValue
	default:
		return PendingValue
	}
}

// GetColorLabel returns a colored outcome label for console output (table).
func GetColorLabel(outcome schema.Outcome) string {
	text := GetPlainLabel(outcome)
	switch text {
	case PassValue:
		return PassColor.Sprint(text)
	case FailValue:
		return FailColor.Sprint(text)
	default:
		return text
	}
}

// GetBandLabel returns the weight band label, colored when useColors is set.
func GetBandLabel(inBand bool, useColors bool) string {
	if inBand {
		return BalancedText
	}
	if useColors {
		return OffBandColor.Sprint(OffBandText)
	}
	return OffBandText
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. Empty means os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// LogWarnings logs each soft warning under a shared heading.
func LogWarnings(msg string, warnings []string) {
	for _, w := range warnings {
		_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %s\n", msg, w)
	}
}

// DefaultSettingsPath returns the path of the settings document.
func DefaultSettingsPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "settings.json"
	}
	return filepath.Join(configDir, "gradebook", "settings.json")
}

// TruncateText shortens text to maxWidth runes, marking the cut with "...".
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
