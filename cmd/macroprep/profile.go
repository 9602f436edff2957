package macroprep

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/macroprep/macroprep-cli/internal/model"
	"github.com/macroprep/macroprep-cli/internal/service"
	"github.com/macroprep/macroprep-cli/internal/store"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage daily calorie and protein targets",
}

var (
	profileGoal     string
	profileCalories int
	profileProtein  float64
	profileWeight   float64
	profileHeight   float64
	profileAge      int
	profileSex      string
	profileDryRun   bool
)

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set targets directly (--calories/--protein) or estimate them from body stats",
	RunE: func(cmd *cobra.Command, args []string) error {
		goal, err := service.ParseGoal(profileGoal)
		if err != nil {
			return err
		}
		in := service.ProfileInput{
			Manual:         cmd.Flags().Changed("calories") || cmd.Flags().Changed("protein"),
			Goal:           goal,
			TargetCalories: profileCalories,
			TargetProteinG: profileProtein,
			WeightKg:       profileWeight,
			HeightCm:       profileHeight,
			AgeYears:       profileAge,
			Sex:            service.Sex(profileSex),
		}
		if profileDryRun {
			p, err := service.ComputeTargets(in)
			if err != nil {
				return err
			}
			printProfile(cmd.OutOrStdout(), p)
			return nil
		}
		return withStore(func(st *store.Store) error {
			p, err := service.SetProfile(st, in)
			if err != nil {
				return err
			}
			printProfile(cmd.OutOrStdout(), p)
			return nil
		})
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			p, err := service.GetProfile(st.DB())
			if err != nil {
				return err
			}
			if p == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Profile: not set")
				return nil
			}
			printProfile(cmd.OutOrStdout(), *p)
			return nil
		})
	},
}

func printProfile(w io.Writer, p model.UserProfile) {
	fmt.Fprintf(w, "Goal: %s\n", p.Goal)
	fmt.Fprintf(w, "TDEE: %d kcal\n", p.TDEE)
	fmt.Fprintf(w, "Targets: %d kcal | P %.0fg\n", p.TargetCalories, p.TargetProteinG)
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileSetCmd, profileShowCmd)

	profileSetCmd.Flags().StringVar(&profileGoal, "goal", "maintain", "Goal: lose, maintain, gain")
	profileSetCmd.Flags().IntVar(&profileCalories, "calories", 0, "Daily calorie target")
	profileSetCmd.Flags().Float64Var(&profileProtein, "protein", 0, "Daily protein target grams")
	profileSetCmd.Flags().Float64Var(&profileWeight, "weight", 0, "Body weight kg")
	profileSetCmd.Flags().Float64Var(&profileHeight, "height", 0, "Height cm")
	profileSetCmd.Flags().IntVar(&profileAge, "age", 0, "Age in years")
	profileSetCmd.Flags().StringVar(&profileSex, "sex", "", "Sex for the estimate: male or female")
	profileSetCmd.Flags().BoolVar(&profileDryRun, "dry-run", false, "Print the computed targets without saving")
}
