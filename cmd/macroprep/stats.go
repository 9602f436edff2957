package macroprep

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/macroprep/macroprep-cli/internal/service"
	"github.com/macroprep/macroprep-cli/internal/store"
)

var (
	statsView string
	statsDate string
	statsJSON bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show calorie/protein trends and goal consistency",
	RunE: func(cmd *cobra.Command, args []string) error {
		view, err := service.ParseTrendView(statsView)
		if err != nil {
			return err
		}
		today := time.Now()
		if statsDate != "" {
			today, err = time.ParseInLocation("2006-01-02", statsDate, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", statsDate)
			}
		}
		return withStore(func(st *store.Store) error {
			report, err := service.Trend(st, view, today)
			if err != nil {
				return err
			}
			if statsJSON {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Range: %s to %s (%s)\n", report.From, report.To, report.View)
			fmt.Fprintln(out, "PERIOD\tKCAL\tP\tACTIVE_DAYS")
			for _, p := range report.Points {
				fmt.Fprintf(out, "%s\t%d\t%d\t%d\n", p.Label, p.Calories, p.ProteinG, p.ActiveDays)
			}
			fmt.Fprintf(out, "Avg protein per log: %dg\n", report.AvgProteinPerLog)
			if !report.HasProfile {
				fmt.Fprintln(out, "Consistency: no profile set")
				return nil
			}
			c := report.Consistency
			fmt.Fprintf(out, "Targets: %d kcal | P %dg (%s)\n", report.TargetCalories, report.TargetProteinG, report.Goal)
			fmt.Fprintf(out, "Calorie consistency: %d/%d (%d%%)\n", c.CalorieHits, c.ActiveBuckets, c.CaloriePercent)
			fmt.Fprintf(out, "Protein consistency: %d/%d (%d%%)\n", c.ProteinHits, c.ActiveBuckets, c.ProteinPercent)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVar(&statsView, "view", "week", "View: week, month, year")
	statsCmd.Flags().StringVar(&statsDate, "date", "", "Anchor date YYYY-MM-DD (default today)")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output as JSON")
}
