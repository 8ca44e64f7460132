package cmd

import (
	"fmt"

	"github.com/huangsam/gradebook/core"
	"github.com/huangsam/gradebook/internal/contract"
	"github.com/huangsam/gradebook/internal/settings"
	"github.com/spf13/cobra"
)

// settingsCmd is the parent command for settings management.
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Inspect and edit the grading settings.",
	Long: `Manage the settings document that holds the pass threshold, the
component weights and the course criteria.

Every edit is applied to a copy first and saved only when the whole
document is valid.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// settingsShowCmd prints the settings document.
var settingsShowCmd = &cobra.Command{
	Use:     "show",
	Short:   "Print the settings document.",
	Args:    cobra.NoArgs,
	PreRunE: settingsSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		format, _ := cmd.Flags().GetString("format")
		if err := core.ExecuteSettingsShow(rootCtx, cfg, format, cmd.OutOrStdout()); err != nil {
			contract.LogFatal("Cannot show settings", err)
		}
	},
}

// settingsPathCmd prints where the settings live.
var settingsPathCmd = &cobra.Command{
	Use:     "path",
	Short:   "Print the settings file path.",
	Args:    cobra.NoArgs,
	PreRunE: settingsSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Println(cfg.SettingsPath)
	},
}

// settingsInitCmd writes the default settings.
var settingsInitCmd = &cobra.Command{
	Use:     "init",
	Short:   "Write the default settings file.",
	Args:    cobra.NoArgs,
	PreRunE: settingsSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		force, _ := cmd.Flags().GetBool("force")
		if err := core.ExecuteSettingsInit(rootCtx, cfg, force); err != nil {
			contract.LogFatal("Cannot initialize settings", err)
		}
	},
}

// settingsValidateCmd checks the settings document.
var settingsValidateCmd = &cobra.Command{
	Use:     "validate",
	Short:   "Check the settings file and report problems.",
	Args:    cobra.NoArgs,
	PreRunE: settingsSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		if err := core.ExecuteSettingsValidate(rootCtx, cfg, cmd.OutOrStdout()); err != nil {
			contract.LogFatal("Invalid settings", err)
		}
	},
}

// settingsSetCmd edits the general and UI sections.
// Only settingsCriteriaCmd enforces the criterion weight band.
var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change general or UI settings.",
	Long: `Change the pass threshold, the missing value default, the component
weights or the UI preferences. Weights are whole percentages.

Examples:
  gradebook settings set --pass-threshold 45
  gradebook settings set --written-weight 50 --project-weight 30`,
	Args:    cobra.NoArgs,
	PreRunE: settingsSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		edit, err := settingsSetEdit(cmd)
		if err != nil {
			contract.LogFatal("Cannot change settings", err)
		}
		if err := core.ExecuteSettingsEdit(rootCtx, cfg, true, edit); err != nil {
			contract.LogFatal("Cannot change settings", err)
		}
	},
}

// settingsCourseCmd is the parent command for course management.
var settingsCourseCmd = &cobra.Command{
	Use:   "course",
	Short: "Add, remove or rename courses.",
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

var courseAddCmd = &cobra.Command{
	Use:     "add <name>",
	Short:   "Add a course without criteria.",
	Args:    cobra.ExactArgs(1),
	PreRunE: settingsSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		edit := func(d *settings.Draft) error { return d.AddCourse(args[0]) }
		if err := core.ExecuteSettingsEdit(rootCtx, cfg, true, edit); err != nil {
			contract.LogFatal("Cannot add course", err)
		}
	},
}

var courseRemoveCmd = &cobra.Command{
	Use:     "remove <name>",
	Short:   "Remove a course and its criteria.",
	Args:    cobra.ExactArgs(1),
	PreRunE: settingsSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		edit := func(d *settings.Draft) error { return d.RemoveCourse(args[0]) }
		if err := core.ExecuteSettingsEdit(rootCtx, cfg, true, edit); err != nil {
			contract.LogFatal("Cannot remove course", err)
		}
	},
}

var courseRenameCmd = &cobra.Command{
	Use:     "rename <old> <new>",
	Short:   "Rename a course, keeping its criteria.",
	Args:    cobra.ExactArgs(2),
	PreRunE: settingsSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		edit := func(d *settings.Draft) error { return d.RenameCourse(args[0], args[1]) }
		if err := core.ExecuteSettingsEdit(rootCtx, cfg, true, edit); err != nil {
			contract.LogFatal("Cannot rename course", err)
		}
	},
}

// settingsCriteriaCmd replaces the criteria of one course.
var settingsCriteriaCmd = &cobra.Command{
	Use:   "criteria <course>",
	Short: "Replace the criteria of a course.",
	Long: `Replace a course's criterion list. Weights are whole percentages and
should sum to 100; use --force to save a list that does not.

Examples:
  gradebook settings criteria Civics --criterion Participation=40 --criterion Homework=60
  gradebook settings criteria Civics --criterion Participation=70 --force`,
	Args:    cobra.ExactArgs(1),
	PreRunE: settingsSetupWrapper,
	Run: func(cmd *cobra.Command, args []string) {
		raw, _ := cmd.Flags().GetStringArray("criterion")
		force, _ := cmd.Flags().GetBool("force")

		edits := make([]settings.CriterionEdit, 0, len(raw))
		for _, r := range raw {
			e, err := core.ParseCriterion(r)
			if err != nil {
				contract.LogFatal("Invalid criterion", err)
			}
			edits = append(edits, e)
		}
		edit := func(d *settings.Draft) error { return d.SetCriteria(args[0], edits) }
		if err := core.ExecuteSettingsEdit(rootCtx, cfg, force, edit); err != nil {
			contract.LogFatal("Cannot set criteria", err)
		}
	},
}

// settingsSetEdit builds a draft edit from the flags that were given.
func settingsSetEdit(cmd *cobra.Command) (core.SettingsEdit, error) {
	flags := cmd.Flags()
	general := []string{"pass-threshold", "missing-default", "written-weight", "project-weight"}
	ui := []string{"theme", "window-size", "title"}

	changed := false
	for _, name := range append(general, ui...) {
		changed = changed || flags.Changed(name)
	}
	if !changed {
		return nil, fmt.Errorf("no settings given (use --help to list them)")
	}

	return func(d *settings.Draft) error {
		e := settings.GeneralEditOf(d.Settings().General)
		if flags.Changed("pass-threshold") {
			e.PassThreshold, _ = flags.GetInt("pass-threshold")
		}
		if flags.Changed("missing-default") {
			e.MissingValueDefault, _ = flags.GetInt("missing-default")
		}
		if flags.Changed("written-weight") {
			e.WrittenWeightPct, _ = flags.GetInt("written-weight")
		}
		if flags.Changed("project-weight") {
			e.ProjectWeightPct, _ = flags.GetInt("project-weight")
		}
		if err := d.SetGeneral(e); err != nil {
			return err
		}

		u := d.Settings().UI
		setString := func(name string, target *string) {
			if flags.Changed(name) {
				*target, _ = flags.GetString(name)
			}
		}
		setString("theme", &u.Theme)
		setString("window-size", &u.WindowSize)
		setString("title", &u.Title)
		return d.SetUI(u)
	}, nil
}
