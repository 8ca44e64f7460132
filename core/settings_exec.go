package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/huangsam/gradebook/internal/contract"
	"github.com/huangsam/gradebook/internal/settings"
	"github.com/huangsam/gradebook/schema"
)

// SettingsEdit applies one edit to a settings draft.
type SettingsEdit func(d *settings.Draft) error

// ExecuteSettingsShow prints the settings document in json or yaml.
func ExecuteSettingsShow(ctx context.Context, cfg *contract.Config, format string, w io.Writer) error {
	s, report := settings.LoadWithReport(cfg.SettingsPath)
	logSettingsReport(ctx, cfg.SettingsPath, report)

	data, err := settings.Render(s, format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// ExecuteSettingsInit writes the default settings. An existing file is only
// replaced when force is set.
func ExecuteSettingsInit(ctx context.Context, cfg *contract.Config, force bool) error {
	if _, err := os.Stat(cfg.SettingsPath); err == nil && !force {
		return fmt.Errorf("settings already exist at %s (use --force to reset)", cfg.SettingsPath)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cannot inspect settings: %w", err)
	}
	if !settings.Save(cfg.SettingsPath, schema.DefaultSettings()) {
		return fmt.Errorf("%w: %s", schema.ErrSaveFailed, cfg.SettingsPath)
	}
	if !shouldSuppressHeader(ctx) {
		fmt.Fprintf(os.Stderr, "💾 Wrote default settings to %s\n", cfg.SettingsPath)
	}
	return nil
}

// ExecuteSettingsValidate reports repairs and weight deviations and returns the
// first validation error, if any.
func ExecuteSettingsValidate(ctx context.Context, cfg *contract.Config, w io.Writer) error {
	s, report := settings.LoadWithReport(cfg.SettingsPath)
	logSettingsReport(ctx, cfg.SettingsPath, report)

	if err := settings.Validate(s); err != nil {
		return err
	}
	for _, dev := range settings.CheckCriterionWeights(s) {
		if _, err := fmt.Fprintf(w, "%s: criterion weights sum to %.1f%%\n", dev.Course, dev.SumPct); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Settings at %s are valid (%d courses)\n", cfg.SettingsPath, len(s.Courses))
	return err
}

// ExecuteSettingsEdit applies edits to a draft of the stored settings and
// commits them together. Nothing is saved if any edit or the commit fails.
func ExecuteSettingsEdit(ctx context.Context, cfg *contract.Config, acceptWeightDeviation bool, edits ...SettingsEdit) error {
	session, report := NewSession(cfg.SettingsPath)
	logSettingsReport(ctx, cfg.SettingsPath, report)

	draft := settings.NewDraft(session.Settings)
	for _, edit := range edits {
		if err := edit(draft); err != nil {
			return err
		}
	}

	deviations, err := session.ApplySettings(draft, acceptWeightDeviation)
	if err != nil {
		return err
	}
	if shouldSuppressHeader(ctx) {
		return nil
	}
	for _, dev := range deviations {
		contract.LogWarn("Criterion weights", fmt.Errorf("%s sums to %.1f%%", dev.Course, dev.SumPct))
	}
	fmt.Fprintf(os.Stderr, "💾 Saved settings to %s\n", cfg.SettingsPath)
	return nil
}

// ParseCriterion parses "name=pct" as entered on the command line.
func ParseCriterion(s string) (settings.CriterionEdit, error) {
	name, pct, err := contract.ParseAssignment(s)
	if err != nil {
		return settings.CriterionEdit{}, err
	}
	weight, err := settings.ParsePercent(name, pct)
	if err != nil {
		return settings.CriterionEdit{}, err
	}
	return settings.CriterionEdit{Name: name, WeightPct: weight}, nil
}
