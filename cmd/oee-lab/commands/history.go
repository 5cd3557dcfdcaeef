package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"oee-lab/internal/oee"
)

var (
	removeYear  int
	removeMonth int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect or edit the monthly OEE time series",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print all recorded months",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := oee.History{Path: cfg.HistoryCSV}.Load()
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No history recorded yet.")
			return nil
		}

		fmt.Println("period   avail%   perf%   qual%    oee%")
		for _, e := range entries {
			fmt.Printf("%02d/%d  %6.2f  %6.2f  %6.2f  %6.2f\n",
				e.Month, e.Year, e.Availability, e.Performance, e.Quality, e.OEE)
		}
		return nil
	},
}

var historyRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Delete one recorded month",
	RunE: func(cmd *cobra.Command, args []string) error {
		if removeMonth < 1 || removeMonth > 12 {
			return fmt.Errorf("invalid month %d (want 1-12)", removeMonth)
		}
		return oee.History{Path: cfg.HistoryCSV}.Remove(removeYear, removeMonth)
	},
}

func init() {
	historyRemoveCmd.Flags().IntVar(&removeYear, "year", 0, "year of the row to remove")
	historyRemoveCmd.Flags().IntVar(&removeMonth, "month", 0, "month of the row to remove")
	_ = historyRemoveCmd.MarkFlagRequired("year")
	_ = historyRemoveCmd.MarkFlagRequired("month")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyRemoveCmd)
	rootCmd.AddCommand(historyCmd)
}
