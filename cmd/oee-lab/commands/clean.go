package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"oee-lab/internal/extract"
)

var monthFirst bool

var cleanCmd = &cobra.Command{
	Use:   "clean [files...]",
	Short: "Extract circuit activity intervals from raw equipment log files",
	Long: `Scans the given text files for Circuit<N> markers and their date/time
tokens, normalizes them into activity intervals, and writes the processed
table used by 'report'. Dates are read day-first unless --month-first is set.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := extract.ReadFiles(args)
		if err != nil {
			return err
		}

		intervals, circuits, ok := extract.Extract(text, !monthFirst)
		if !ok {
			log.Warn().Msg("No valid activity records extracted; nothing written")
			return nil
		}

		if err := extract.SaveTable(cfg.ProcessedCSV, intervals); err != nil {
			return err
		}

		fmt.Printf("Processed %d records across %d circuits:\n", len(intervals), len(circuits))
		for _, circuit := range circuits {
			fmt.Println("  " + circuit)
		}
		return nil
	},
}

func init() {
	cleanCmd.Flags().BoolVar(&monthFirst, "month-first", false, "read dates as mm/dd/yyyy instead of dd/mm/yyyy")
	rootCmd.AddCommand(cleanCmd)
}
