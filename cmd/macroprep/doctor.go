package macroprep

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macroprep/macroprep-cli/internal/service"
	"github.com/macroprep/macroprep-cli/internal/store"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run ledger integrity checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			report, err := service.RunDoctor(st, doctorFix)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unreadable recipes: %d\n", report.InvalidRecipes)
			fmt.Fprintf(cmd.OutOrStdout(), "Invalid log dates: %d\n", report.InvalidLogDates)
			fmt.Fprintf(cmd.OutOrStdout(), "Logs linked to used-up batches: %d\n", report.UnlinkedRefunds)
			if doctorFix {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed recipe rows: %d\n", report.RemovedRecipeRows)
				// Re-check after fixes so exit status reflects final state.
				report, err = service.RunDoctor(st, false)
				if err != nil {
					return err
				}
			}
			if !report.Healthy() {
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Remove unreadable recipes")
}
