package cmd

import (
	"github.com/huangsam/gradebook/core"
	"github.com/huangsam/gradebook/internal/contract"
	"github.com/huangsam/gradebook/internal/outwriter"
	"github.com/spf13/cobra"
)

// gradeCmd computes grades for a roster.
var gradeCmd = &cobra.Command{
	Use:   "grade <roster>",
	Short: "Compute performance, average and pass/fail for a roster.",
	Long: `Read a roster spreadsheet and grade it under one course's criteria.

For every student:
- the performance score is the weighted sum of the course criteria
- the average combines the written exams, the project and the performance score
- the result is pass when the average reaches the pass threshold

Criterion columns missing from the roster are added and filled with the
missing value default.

Examples:
  # Grade a roster for Civics
  gradebook grade 9-A.xlsx --course Civics

  # Show the top ten students by average
  gradebook grade 9-A.xlsx --course Civics --sort average --limit 10

  # Export the graded table to JSON
  gradebook grade 9-A.csv --course Civics --output json --output-file 9-A.json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteGrade(rootCtx, cfg, outwriter.NewOutWriter()); err != nil {
			contract.LogFatal("Cannot grade roster", err)
		}
	},
}
