package cmd

import (
	"github.com/huangsam/gradebook/core"
	"github.com/huangsam/gradebook/internal/contract"
	"github.com/huangsam/gradebook/internal/outwriter"
	"github.com/spf13/cobra"
)

// coursesCmd lists the configured courses.
var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List courses, criteria and weight sums.",
	Long: `Show every course in the settings with its criteria and weights.

Courses whose criterion weights do not sum to 100% are flagged.

Examples:
  gradebook courses
  gradebook courses --output json`,
	Args:    cobra.NoArgs,
	PreRunE: settingsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCourses(rootCtx, cfg, outwriter.NewOutWriter()); err != nil {
			contract.LogFatal("Cannot list courses", err)
		}
	},
}
