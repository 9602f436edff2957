package macroprep

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macroprep/macroprep-cli/internal/service"
	"github.com/macroprep/macroprep-cli/internal/store"
)

var recipeCmd = &cobra.Command{
	Use:   "recipe",
	Short: "Manage saved pot recipes (create with `pot save`)",
}

var recipeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recipes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			items, err := service.ListRecipes(st.DB())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tITEMS\tKCAL\tP\tCOOKED_G")
			for _, r := range items {
				t := service.Aggregate(r.Entries).Rounded()
				cooked := "-"
				if r.DefaultCookedMassG != nil {
					cooked = formatMass(*r.DefaultCookedMassG)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%d\t%d\t%d\t%s\n", r.ID, r.Name, len(r.Entries), t.Calories, t.ProteinG, cooked)
			}
			return nil
		})
	},
}

var recipeShowCmd = &cobra.Command{
	Use:   "show <id|name>",
	Short: "Show recipe items and totals",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			r, err := service.ResolveRecipe(st.DB(), args[0])
			if err != nil {
				return err
			}
			session := service.NewSession()
			cooked, err := service.LoadRecipe(st.DB(), r, session)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", r.ID, r.Name)
			printPot(cmd.OutOrStdout(), session, cooked)
			return nil
		})
	},
}

var recipeDeleteCmd = &cobra.Command{
	Use:   "delete <id|name>",
	Short: "Delete a recipe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			if err := service.DeleteRecipe(st, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted recipe %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(recipeCmd)
	recipeCmd.AddCommand(recipeListCmd, recipeShowCmd, recipeDeleteCmd)
}
