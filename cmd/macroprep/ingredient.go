package macroprep

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macroprep/macroprep-cli/internal/model"
	"github.com/macroprep/macroprep-cli/internal/service"
	"github.com/macroprep/macroprep-cli/internal/store"
)

var ingredientCmd = &cobra.Command{
	Use:   "ingredient",
	Short: "Manage the ingredient catalog",
}

var (
	ingredientName     string
	ingredientCategory string
	ingredientCalories float64
	ingredientProtein  float64
	ingredientCarbs    float64
	ingredientFat      float64
	ingredientMeasure  string
	ingredientPiece    float64
	ingredientQuery    string
	ingredientPantry   bool
)

var ingredientAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a catalog ingredient (nutrients per 100 g/ml, or per piece)",
	RunE: func(cmd *cobra.Command, args []string) error {
		measure, err := service.ParseMeasureKind(ingredientMeasure)
		if err != nil {
			return err
		}
		return withStore(func(st *store.Store) error {
			id, err := service.CreateIngredient(st, service.IngredientInput{
				Name:       ingredientName,
				Category:   ingredientCategory,
				Calories:   ingredientCalories,
				ProteinG:   ingredientProtein,
				CarbsG:     ingredientCarbs,
				FatG:       ingredientFat,
				Measure:    measure,
				PieceMassG: ingredientPiece,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added ingredient %d\n", id)
			return nil
		})
	},
}

var ingredientListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog ingredients",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			if ingredientPantry {
				items, err := service.SearchPantry(st.DB(), ingredientQuery)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "SOURCE\tID\tNAME")
				for _, it := range items {
					if it.Batch != nil {
						fmt.Fprintf(cmd.OutOrStdout(), "fridge\t%d\t%s\n", it.Batch.ID, it.Name)
						continue
					}
					fmt.Fprintf(cmd.OutOrStdout(), "catalog\t%d\t%s\n", it.Ingredient.ID, it.Name)
				}
				return nil
			}
			items, err := service.ListIngredients(st.DB(), ingredientQuery)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tCATEGORY\tPER\tKCAL\tP\tC\tF")
			for _, it := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\t%.1f\t%.1f\t%.1f\t%.1f\n",
					it.ID, it.Name, it.Category, perLabel(it), it.Calories, it.ProteinG, it.CarbsG, it.FatG)
			}
			return nil
		})
	},
}

var ingredientShowCmd = &cobra.Command{
	Use:   "show <id|name>",
	Short: "Show one catalog ingredient",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			ing, err := service.ResolveIngredient(st.DB(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", ing.ID, ing.Name)
			fmt.Fprintf(cmd.OutOrStdout(), "Category: %s\n", ing.Category)
			fmt.Fprintf(cmd.OutOrStdout(), "Per %s: %.1f kcal | P %.1fg | C %.1fg | F %.1fg\n", perLabel(ing), ing.Calories, ing.ProteinG, ing.CarbsG, ing.FatG)
			if ing.PieceMassG != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Piece mass: %sg\n", formatMass(*ing.PieceMassG))
			}
			return nil
		})
	},
}

var ingredientUpdateCmd = &cobra.Command{
	Use:   "update <id|name>",
	Short: "Update a catalog ingredient; unset flags keep their value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			current, err := service.ResolveIngredient(st.DB(), args[0])
			if err != nil {
				return err
			}
			in := service.IngredientInput{
				Name:     current.Name,
				Category: current.Category,
				Calories: current.Calories,
				ProteinG: current.ProteinG,
				CarbsG:   current.CarbsG,
				FatG:     current.FatG,
				Measure:  current.Measure,
			}
			if current.PieceMassG != nil {
				in.PieceMassG = *current.PieceMassG
			}
			flags := cmd.Flags()
			if flags.Changed("name") {
				in.Name = ingredientName
			}
			if flags.Changed("category") {
				in.Category = ingredientCategory
			}
			if flags.Changed("calories") {
				in.Calories = ingredientCalories
			}
			if flags.Changed("protein") {
				in.ProteinG = ingredientProtein
			}
			if flags.Changed("carbs") {
				in.CarbsG = ingredientCarbs
			}
			if flags.Changed("fat") {
				in.FatG = ingredientFat
			}
			if flags.Changed("measure") {
				measure, err := service.ParseMeasureKind(ingredientMeasure)
				if err != nil {
					return err
				}
				in.Measure = measure
			}
			if flags.Changed("piece-mass") {
				in.PieceMassG = ingredientPiece
			}
			if err := service.UpdateIngredient(st, args[0], in); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated ingredient %d\n", current.ID)
			return nil
		})
	},
}

var ingredientDeleteCmd = &cobra.Command{
	Use:   "delete <id|name>",
	Short: "Delete a catalog ingredient",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			if err := service.DeleteIngredient(st, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted ingredient %s\n", args[0])
			return nil
		})
	},
}

var ingredientSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Add master ingredients missing from the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			added, err := service.SeedIngredients(st)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d ingredients\n", added)
			return nil
		})
	},
}

func perLabel(ing model.Ingredient) string {
	if ing.Measure == model.MeasurePiece {
		return "piece"
	}
	return "100" + service.MeasureUnit(ing.Measure)
}

func init() {
	rootCmd.AddCommand(ingredientCmd)
	ingredientCmd.AddCommand(ingredientAddCmd, ingredientListCmd, ingredientShowCmd, ingredientUpdateCmd, ingredientDeleteCmd, ingredientSeedCmd)

	for _, c := range []*cobra.Command{ingredientAddCmd, ingredientUpdateCmd} {
		c.Flags().StringVar(&ingredientName, "name", "", "Ingredient name")
		c.Flags().StringVar(&ingredientCategory, "category", "", "Category (default other)")
		c.Flags().Float64Var(&ingredientCalories, "calories", 0, "Calories per 100 g/ml or per piece")
		c.Flags().Float64Var(&ingredientProtein, "protein", 0, "Protein grams")
		c.Flags().Float64Var(&ingredientCarbs, "carbs", 0, "Carbs grams")
		c.Flags().Float64Var(&ingredientFat, "fat", 0, "Fat grams")
		c.Flags().StringVar(&ingredientMeasure, "measure", "mass", "Measure kind: mass, volume, piece")
		c.Flags().Float64Var(&ingredientPiece, "piece-mass", 0, "Grams per piece (required for piece)")
	}
	ingredientListCmd.Flags().StringVar(&ingredientQuery, "query", "", "Filter by name")
	ingredientListCmd.Flags().BoolVar(&ingredientPantry, "pantry", false, "Search fridge batches and catalog together")
}
