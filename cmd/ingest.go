package cmd

import (
	"github.com/huangsam/gradebook/core"
	"github.com/huangsam/gradebook/internal/contract"
	"github.com/huangsam/gradebook/internal/outwriter"
	"github.com/spf13/cobra"
)

// ingestCmd shows how a roster is read before grading.
var ingestCmd = &cobra.Command{
	Use:   "ingest <roster>",
	Short: "Show the normalized roster without grading it.",
	Long: `Read a roster spreadsheet and print the table the grader would see.

Useful for checking:
- that --header-skip lands on the header row
- which expected columns the sheet did not provide
- how blank or malformed marks were filled

Examples:
  # Inspect a school export with the default 15 row preamble
  gradebook ingest 9-A.xlsx

  # A CSV whose header is on the first line
  gradebook ingest marks.csv --header-skip 0`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteIngest(rootCtx, cfg, outwriter.NewOutWriter()); err != nil {
			contract.LogFatal("Cannot ingest roster", err)
		}
	},
}
