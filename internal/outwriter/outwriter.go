// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/gradebook/internal/contract"
	"github.com/huangsam/gradebook/internal/sheet"
	"github.com/huangsam/gradebook/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

var _ contract.RosterWriter = &OutWriter{} // Compile-time check

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteRoster prints a roster using the configured output format.
func (ow *OutWriter) WriteRoster(table *schema.Table, course string, cfg *contract.Config, duration time.Duration) error {
	return PrintRoster(table, course, cfg, duration)
}

// WriteCourses prints the configured courses using the configured output format.
func (ow *OutWriter) WriteCourses(settings *schema.Settings, cfg *contract.Config) error {
	return PrintCourses(settings, cfg)
}

// WriteRosterWorkbook saves a roster as a single sheet workbook named after
// the roster label.
func WriteRosterWorkbook(table *schema.Table, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create workbook: %w", err)
	}
	if err := writeWorkbook(file, table); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// writeWorkbook renders every column of the roster into one sheet.
func writeWorkbook(w io.Writer, table *schema.Table) error {
	rows := make([][]any, len(table.Rows))
	for i, r := range table.Rows {
		cells := make([]any, len(table.Columns))
		for j, col := range table.Columns {
			cells[j] = workbookCell(r, col)
		}
		rows[i] = cells
	}
	return sheet.WriteWorkbook(w, table.Label, table.Columns, rows)
}

// GetMaxNameWidth calculates the maximum width for student names in table output
// based on terminal width and the number of other columns.
func GetMaxNameWidth(cfg *contract.Config, otherColumns int) int {
	var termWidth int

	// Check for absolute width override from flag
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Numeric columns with borders and padding
	baseWidth := otherColumns * 9

	// Reserve space for table borders
	baseWidth += 6

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 40 {
		return 40
	}
	return available
}
