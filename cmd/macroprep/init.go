package macroprep

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macroprep/macroprep-cli/internal/service"
	"github.com/macroprep/macroprep-cli/internal/store"
)

var initNoSeed bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize local macroprep database and seed the ingredient catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDBPath()
		if err != nil {
			return err
		}
		return withStore(func(st *store.Store) error {
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized macroprep database at %s\n", path)
			if initNoSeed {
				return nil
			}
			added, err := service.SeedIngredients(st)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d ingredients\n", added)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initNoSeed, "no-seed", false, "Skip seeding the master ingredient list")
}
