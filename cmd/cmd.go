// Package cmd defines the command-line interface for gradebook.
package cmd

import (
	"github.com/huangsam/gradebook/internal/contract"
	"github.com/huangsam/gradebook/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(markCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(coursesCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the settings subcommands to the parent settings command
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsPathCmd)
	settingsCmd.AddCommand(settingsInitCmd)
	settingsCmd.AddCommand(settingsValidateCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsCourseCmd)
	settingsCmd.AddCommand(settingsCriteriaCmd)

	// Add the course subcommands to the parent course command
	settingsCourseCmd.AddCommand(courseAddCmd)
	settingsCourseCmd.AddCommand(courseRemoveCmd)
	settingsCourseCmd.AddCommand(courseRenameCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("settings", "", "Path to the settings document (default: user config dir)")
	rootCmd.PersistentFlags().Int("header-skip", contract.DefaultHeaderSkip, "Rows above the header row in the roster")
	rootCmd.PersistentFlags().String("sheet", "", "Workbook sheet to read (default: first sheet)")
	rootCmd.PersistentFlags().String("course", "", "Course whose criteria are applied")
	rootCmd.PersistentFlags().String("sort", string(schema.SortByID), "Row order: id or average")
	rootCmd.PersistentFlags().IntP("limit", "l", 0, "Number of students to display (0 = all)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet or xlsx")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of markCmd to Viper
	markCmd.Flags().Int64("student", 0, "Student ID whose marks are set")
	markCmd.Flags().StringArray("set", nil, "Mark assignment as key=value (repeatable)")
	if err := viper.BindPFlags(markCmd.Flags()); err != nil {
		contract.LogFatal("Error binding mark flags", err)
	}

	// Settings edit flags stay off Viper so the preferences file cannot edit settings.
	settingsShowCmd.Flags().String("format", "json", "Display format: json or yaml")
	settingsInitCmd.Flags().Bool("force", false, "Overwrite an existing settings file")
	settingsSetCmd.Flags().Int("pass-threshold", 0, "Minimum average to pass (0-100)")
	settingsSetCmd.Flags().Int("missing-default", 0, "Value used for missing marks")
	settingsSetCmd.Flags().Int("written-weight", 0, "Share of the written exams, in percent")
	settingsSetCmd.Flags().Int("project-weight", 0, "Share of the project, in percent")
	settingsSetCmd.Flags().String("theme", "", "UI theme")
	settingsSetCmd.Flags().String("window-size", "", "UI window size as WIDTHxHEIGHT")
	settingsSetCmd.Flags().String("title", "", "UI window title")
	settingsCriteriaCmd.Flags().StringArray("criterion", nil, "Criterion as name=percent (repeatable, replaces the list)")
	settingsCriteriaCmd.Flags().Bool("force", false, "Save even if the weights do not sum to 100%")
}
