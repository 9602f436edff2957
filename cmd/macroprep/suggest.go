package macroprep

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macroprep/macroprep-cli/internal/service"
	"github.com/macroprep/macroprep-cli/internal/store"
)

var suggestDate string

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Recommend a fridge portion that closes the day's protein gap",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateOrToday(suggestDate)
		if err != nil {
			return err
		}
		return withStore(func(st *store.Store) error {
			profile, err := service.GetProfile(st.DB())
			if err != nil {
				return err
			}
			if profile == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No profile set; run `macroprep profile set` first")
				return nil
			}
			rec, err := service.Suggest(st, date)
			if err != nil {
				return err
			}
			if rec == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to suggest: protein target met or no protein-rich batch in the fridge")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Protein gap: %.0fg\n", rec.DeficitG)
			fmt.Fprintf(cmd.OutOrStdout(), "Eat %dg of %s (batch %d): %d kcal | P %dg | C %dg | F %dg\n",
				rec.MassG, rec.Batch.Name, rec.Batch.ID, rec.Calories, rec.ProteinG, rec.CarbsG, rec.FatG)
			if rec.Partial {
				fmt.Fprintln(cmd.OutOrStdout(), "That is everything left; it will not fully close the gap")
			}
			if rec.Split != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Tip: split into %d portions of %dg\n", rec.Split.Portions, rec.Split.MassG)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(suggestCmd)
	suggestCmd.Flags().StringVar(&suggestDate, "date", "", "Date YYYY-MM-DD (default today)")
}
