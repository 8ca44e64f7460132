// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/huangsam/gradebook/schema"
)

// RosterWriter defines the output operations the core needs.
// This allows the orchestration logic to be tested without touching stdout.
type RosterWriter interface {
	// WriteRoster renders a normalized or graded roster in the configured format.
	WriteRoster(table *schema.Table, course string, cfg *Config, duration time.Duration) error

	// WriteCourses renders the course and criterion listing.
	WriteCourses(settings *schema.Settings, cfg *Config) error
}
