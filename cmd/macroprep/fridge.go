package macroprep

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macroprep/macroprep-cli/internal/service"
	"github.com/macroprep/macroprep-cli/internal/store"
)

var fridgeCmd = &cobra.Command{
	Use:   "fridge",
	Short: "Inspect and eat from cooked batches",
}

var (
	fridgeMode   string
	fridgeTarget float64
	fridgeDate   string
)

var fridgeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List fridge batches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			items, err := service.ListFridge(st.DB())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tLEFT_G\tTOTAL_G\tLEFT%\tKCAL/100\tP/100")
			for _, b := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%.0f\t%.0f\t%d\t%.1f\t%.1f\n",
					b.ID, b.Name, b.CurrentMassG, b.TotalMassG, service.RemainingPercent(b), b.Calories, b.ProteinG)
			}
			return nil
		})
	},
}

var fridgeShowCmd = &cobra.Command{
	Use:   "show <id|name>",
	Short: "Show one fridge batch",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			b, err := service.ResolveBatch(st.DB(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", b.ID, b.Name)
			fmt.Fprintf(cmd.OutOrStdout(), "Left: %sg of %sg (%d%%)\n", formatMass(b.CurrentMassG), formatMass(b.TotalMassG), service.RemainingPercent(b))
			fmt.Fprintf(cmd.OutOrStdout(), "Per 100g: %.1f kcal | P %.1fg | C %.1fg | F %.1fg\n", b.Calories, b.ProteinG, b.CarbsG, b.FatG)
			fmt.Fprintf(cmd.OutOrStdout(), "Cooked: %s\n", b.CreatedAt.Local().Format("2006-01-02 15:04"))
			return nil
		})
	},
}

var fridgeCalcCmd = &cobra.Command{
	Use:   "calc <id|name>",
	Short: "Preview a portion of a batch without logging it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := service.ParseMode(fridgeMode)
		if err != nil {
			return err
		}
		return withStore(func(st *store.Store) error {
			b, err := service.ResolveBatch(st.DB(), args[0])
			if err != nil {
				return err
			}
			printPortion(cmd.OutOrStdout(), service.Distribute(service.BatchSource(b), mode, fridgeTarget))
			return nil
		})
	},
}

var fridgeEatCmd = &cobra.Command{
	Use:   "eat <id|name>",
	Short: "Log a portion of a batch and deduct it from the fridge",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := service.ParseMode(fridgeMode)
		if err != nil {
			return err
		}
		date, err := parseDateOrToday(fridgeDate)
		if err != nil {
			return err
		}
		return withStore(func(st *store.Store) error {
			b, err := service.ResolveBatch(st.DB(), args[0])
			if err != nil {
				return err
			}
			var status *service.DailyStatus
			cancel := service.WatchDailySummary(st, date, func(s *service.DailyStatus, err error) {
				if err == nil {
					status = s
				}
			})
			defer cancel()

			entry, portion, err := service.EatFromBatch(st, b.ID, mode, fridgeTarget, date)
			if err != nil {
				if portion.Limit != nil {
					printPortion(cmd.ErrOrStderr(), portion)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %d: %s %sg on %s\n", entry.ID, entry.Name, formatMass(entry.MassConsumedG), entry.Date)
			printPortion(cmd.OutOrStdout(), portion)
			printDailyStatus(cmd.OutOrStdout(), status)
			return nil
		})
	},
}

var fridgeDiscardCmd = &cobra.Command{
	Use:   "discard <id|name>",
	Short: "Throw a batch away without logging it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			b, err := service.ResolveBatch(st.DB(), args[0])
			if err != nil {
				return err
			}
			if err := service.DiscardBatch(st, b.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Discarded batch %d (%s)\n", b.ID, b.Name)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(fridgeCmd)
	fridgeCmd.AddCommand(fridgeListCmd, fridgeShowCmd, fridgeCalcCmd, fridgeEatCmd, fridgeDiscardCmd)

	for _, c := range []*cobra.Command{fridgeCalcCmd, fridgeEatCmd} {
		c.Flags().StringVar(&fridgeMode, "mode", "scale", "scale (target is grams) or goal (target is protein grams)")
		c.Flags().Float64Var(&fridgeTarget, "target", 0, "Target grams or protein grams")
		_ = c.MarkFlagRequired("target")
	}
	fridgeEatCmd.Flags().StringVar(&fridgeDate, "date", "", "Log date YYYY-MM-DD (default today)")
}
