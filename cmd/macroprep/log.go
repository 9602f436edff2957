package macroprep

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macroprep/macroprep-cli/internal/service"
	"github.com/macroprep/macroprep-cli/internal/store"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Inspect and undo consumption logs",
}

var (
	logDate string
	logAll  bool
)

var logListCmd = &cobra.Command{
	Use:   "list",
	Short: "List logs for a day",
	RunE: func(cmd *cobra.Command, args []string) error {
		date := ""
		if !logAll {
			var err error
			if date, err = parseDateOrToday(logDate); err != nil {
				return err
			}
		}
		return withStore(func(st *store.Store) error {
			items, err := service.ListLogs(st.DB(), date)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tDATE\tNAME\tGRAMS\tKCAL\tP\tC\tF\tBATCH")
			for _, l := range items {
				batch := "-"
				if l.SourceBatchID != nil {
					batch = fmt.Sprintf("%d", *l.SourceBatchID)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\t%.0f\t%.0f\t%.0f\t%.0f\t%s\n",
					l.ID, l.Date, l.Name, formatMass(l.MassConsumedG), l.Calories, l.ProteinG, l.CarbsG, l.FatG, batch)
			}
			return nil
		})
	},
}

var logDeleteCmd = &cobra.Command{
	Use:   "delete <log-id>",
	Short: "Delete a log and refund its mass to the source batch",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("log id", args[0])
		if err != nil {
			return err
		}
		return withStore(func(st *store.Store) error {
			entry, err := service.DeleteLog(st, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted log %d (%s)\n", entry.ID, entry.Name)
			if entry.SourceBatchID != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Refunded %sg to batch %d\n", formatMass(entry.MassConsumedG), *entry.SourceBatchID)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.AddCommand(logListCmd, logDeleteCmd)
	logListCmd.Flags().StringVar(&logDate, "date", "", "Day YYYY-MM-DD (default today)")
	logListCmd.Flags().BoolVar(&logAll, "all", false, "List every log")
}
