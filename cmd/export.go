package cmd

import (
	"github.com/huangsam/gradebook/core"
	"github.com/huangsam/gradebook/internal/contract"
	"github.com/huangsam/gradebook/internal/outwriter"
	"github.com/spf13/cobra"
)

// exportCmd writes a graded roster to a workbook.
var exportCmd = &cobra.Command{
	Use:   "export <roster>",
	Short: "Grade a roster and save it as a single sheet workbook.",
	Long: `Grade a roster and write every column, derived ones included, to an .xlsx file.

Without --output-file the workbook is written next to the roster as
<label>_<course>_Graded.xlsx.

Examples:
  # Write 9-A_Civics_Graded.xlsx next to the roster
  gradebook export 9-A.xlsx --course Civics

  # Choose the file name
  gradebook export 9-A.xlsx --course Civics --output-file grades.xlsx`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteExport(rootCtx, cfg, outwriter.NewOutWriter()); err != nil {
			contract.LogFatal("Cannot export roster", err)
		}
	},
}
