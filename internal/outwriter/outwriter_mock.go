package outwriter

import (
	"time"

	"github.com/huangsam/gradebook/internal/contract"
	"github.com/huangsam/gradebook/schema"
	"github.com/stretchr/testify/mock"
)

// MockRosterWriter is a mock implementation of RosterWriter for testing.
type MockRosterWriter struct {
	mock.Mock
}

var _ contract.RosterWriter = &MockRosterWriter{} // Compile-time check

// WriteRoster implements the RosterWriter interface.
func (m *MockRosterWriter) WriteRoster(table *schema.Table, course string, cfg *contract.Config, duration time.Duration) error {
	args := m.Called(table, course, cfg, duration)
	return args.Error(0)
}

// WriteCourses implements the RosterWriter interface.
func (m *MockRosterWriter) WriteCourses(settings *schema.Settings, cfg *contract.Config) error {
	args := m.Called(settings, cfg)
	return args.Error(0)
}
