package cmd

import (
	"github.com/huangsam/gradebook/core"
	"github.com/huangsam/gradebook/internal/contract"
	"github.com/huangsam/gradebook/internal/outwriter"
	"github.com/spf13/cobra"
)

// markCmd edits the marks of one student.
var markCmd = &cobra.Command{
	Use:   "mark <roster>",
	Short: "Set marks for one student and regrade the roster.",
	Long: `Apply mark edits for one student, then recompute the course.

Keys are roster columns (written_1, written_2, project) or criterion names
of the selected course. Values must be numbers between 0 and 100. Either
every edit applies or none does.

Examples:
  # Correct a written exam and a criterion
  gradebook mark 9-A.xlsx --course Civics --student 12 --set written_2=75 --set Participation=90

  # Save the result as a workbook
  gradebook mark 9-A.xlsx --course Civics --student 12 --set project=80 --output xlsx --output-file 9-A_fixed.xlsx`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMark(rootCtx, cfg, outwriter.NewOutWriter()); err != nil {
			contract.LogFatal("Cannot set marks", err)
		}
	},
}
