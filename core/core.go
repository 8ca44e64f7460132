// Package core has core logic for ingesting rosters, grading and exporting.
package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/huangsam/gradebook/core/algo"
	"github.com/huangsam/gradebook/internal/contract"
	"github.com/huangsam/gradebook/internal/settings"
	"github.com/huangsam/gradebook/schema"
)

// ExecutorFunc defines the function signature for the roster commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, writer contract.RosterWriter) error

// ExecuteIngest reads and normalizes a roster and prints it without grading.
func ExecuteIngest(ctx context.Context, cfg *contract.Config, writer contract.RosterWriter) error {
	start := time.Now()
	session, err := openSession(ctx, cfg)
	if err != nil {
		return err
	}
	return writer.WriteRoster(orderView(session.Roster, cfg), "", cfg, time.Since(start))
}

// ExecuteGrade reads a roster, computes it for the selected course and prints it.
func ExecuteGrade(ctx context.Context, cfg *contract.Config, writer contract.RosterWriter) error {
	start := time.Now()
	session, err := openGradedSession(ctx, cfg)
	if err != nil {
		return err
	}
	return writer.WriteRoster(orderView(session.Roster, cfg), session.Course, cfg, time.Since(start))
}

// ExecuteMark records marks for one student, recomputes the roster and prints it.
// Marks live only in memory; pair with --output xlsx to keep them.
func ExecuteMark(ctx context.Context, cfg *contract.Config, writer contract.RosterWriter) error {
	start := time.Now()
	if len(cfg.Marks) == 0 {
		return errors.New("no marks given (use --set key=value)")
	}
	session, err := openGradedSession(ctx, cfg)
	if err != nil {
		return err
	}
	row, ok := session.Roster.FindByStudentID(cfg.StudentID)
	if !ok {
		return schema.NewValidationError(schema.ColStudentID, "no student with id %d", cfg.StudentID)
	}
	if err := session.CommitMarks(row.Index, cfg.Marks); err != nil {
		return err
	}
	return writer.WriteRoster(orderView(session.Roster, cfg), session.Course, cfg, time.Since(start))
}

// ExecuteExport grades a roster and saves it as a single sheet workbook.
// Without --output-file the workbook lands next to the roster under its
// default export name.
func ExecuteExport(ctx context.Context, cfg *contract.Config, _ contract.RosterWriter) error {
	session, err := openGradedSession(ctx, cfg)
	if err != nil {
		return err
	}
	target := cfg.OutputFile
	if target == "" {
		target = filepath.Join(filepath.Dir(cfg.RosterPath), ExportFileName(session.Roster.Label, session.Course))
	}
	if err := session.Export(target); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	if !shouldSuppressHeader(ctx) {
		fmt.Fprintf(os.Stderr, "💾 Exported %d students to %s\n", len(session.Roster.Rows), target)
	}
	return nil
}

// ExecuteCourses prints the configured courses with their criteria.
func ExecuteCourses(ctx context.Context, cfg *contract.Config, writer contract.RosterWriter) error {
	s, report := settings.LoadWithReport(cfg.SettingsPath)
	logSettingsReport(ctx, cfg.SettingsPath, report)
	return writer.WriteCourses(s, cfg)
}

// openSession loads settings and the roster named by cfg.
func openSession(ctx context.Context, cfg *contract.Config) (*Session, error) {
	if cfg.RosterPath == "" {
		return nil, errors.New("a roster file is required")
	}
	session, report := NewSession(cfg.SettingsPath)
	logSettingsReport(ctx, cfg.SettingsPath, report)
	if !shouldSuppressHeader(ctx) {
		logRosterHeader(cfg)
	}

	ingest, err := session.LoadRoster(cfg.RosterPath, IngestOptions{HeaderSkip: cfg.HeaderSkip, Sheet: cfg.Sheet})
	if err != nil {
		return nil, err
	}
	if !shouldSuppressHeader(ctx) {
		contract.LogWarnings("Roster", ingest.Warnings)
	}
	return session, nil
}

// openGradedSession opens a session and computes it for cfg.Course.
func openGradedSession(ctx context.Context, cfg *contract.Config) (*Session, error) {
	session, err := openSession(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := session.SelectCourse(cfg.Course); err != nil {
		return nil, err
	}
	if err := session.Compute(); err != nil {
		return nil, err
	}
	return session, nil
}

// orderView applies the requested ordering and limit to a copy of the roster.
func orderView(t *schema.Table, cfg *contract.Config) *schema.Table {
	if cfg.Sort != schema.SortByAverage && cfg.Limit == 0 {
		return t
	}
	view := t.Clone()
	if cfg.Sort == schema.SortByAverage {
		view.Rows = algo.RankByAverage(view.Rows, cfg.Limit)
	} else {
		view.Rows = algo.Limit(view.Rows, cfg.Limit)
	}
	return view
}

// logSettingsReport tells the user when settings came from somewhere other
// than a clean file on disk.
func logSettingsReport(ctx context.Context, path string, report settings.LoadReport) {
	if shouldSuppressHeader(ctx) {
		return
	}
	switch report.Source {
	case settings.SourceCreated:
		fmt.Fprintf(os.Stderr, "🛠  Created default settings at %s\n", path)
	case settings.SourceDefaults:
		contract.LogWarn("Settings unreadable, using defaults", report.Err)
	}
	if len(report.Repaired) > 0 {
		contract.LogWarnings("Settings repaired", report.Repaired)
	}
}

// logRosterHeader prints which roster and course are being processed.
func logRosterHeader(cfg *contract.Config) {
	course := cfg.Course
	if course == "" {
		course = "none"
	}
	fmt.Fprintf(os.Stderr, "🔎 Roster: %s (Course: %s)\n", filepath.Base(cfg.RosterPath), course)
}
