package macroprep

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/macroprep/macroprep-cli/internal/service"
	"github.com/macroprep/macroprep-cli/internal/store"
)

var potCmd = &cobra.Command{
	Use:   "pot",
	Short: "Compose a pot from ingredients, batches and recipes",
	Long:  "Each pot command builds the pot from its flags: repeated --item name=qty for catalog ingredients, --batch id=qty for fridge batches, and --recipe to start from a saved recipe.",
}

var (
	potItems   []string
	potBatches []string
	potRecipe  string
	potCooked  float64
	potName    string
	potMode    string
	potTarget  float64
	potDate    string
)

type potDraft struct {
	session *service.Session
	// cookedG is the finished mass to use; 0 means the raw mass.
	cookedG    float64
	recipeName string
}

// buildPot assembles the pot described by the flags.
func buildPot(st *store.Store) (potDraft, error) {
	d := potDraft{session: service.NewSession()}
	if potRecipe != "" {
		r, err := service.ResolveRecipe(st.DB(), potRecipe)
		if err != nil {
			return potDraft{}, err
		}
		if d.cookedG, err = service.LoadRecipe(st.DB(), r, d.session); err != nil {
			return potDraft{}, err
		}
		d.recipeName = r.Name
	}
	for _, raw := range potItems {
		name, qty, err := parseQuantityPair("item", raw)
		if err != nil {
			return potDraft{}, err
		}
		ing, err := service.ResolveIngredient(st.DB(), name)
		if err != nil {
			return potDraft{}, err
		}
		if err := d.session.SetQuantity(d.session.AddIngredient(ing), qty); err != nil {
			return potDraft{}, err
		}
	}
	for _, raw := range potBatches {
		ident, qty, err := parseQuantityPair("batch", raw)
		if err != nil {
			return potDraft{}, err
		}
		b, err := service.ResolveBatch(st.DB(), ident)
		if err != nil {
			return potDraft{}, err
		}
		if err := d.session.SetQuantity(d.session.AddBatch(b), qty); err != nil {
			return potDraft{}, err
		}
	}
	if d.session.Len() == 0 {
		return potDraft{}, fmt.Errorf("pot is empty: pass --item, --batch or --recipe")
	}
	if potCooked > 0 {
		d.cookedG = potCooked
	}
	return d, nil
}

func printPot(w io.Writer, session *service.Session, cooked float64) {
	fmt.Fprintln(w, "NAME\tQTY\tGRAMS\tKCAL\tP\tC\tF")
	for _, e := range session.Entries() {
		c := service.Contribution(e).Rounded()
		fmt.Fprintf(w, "%s\t%s%s\t%d\t%d\t%d\t%d\t%d\n",
			e.Name, formatMass(e.Quantity), service.MeasureUnit(e.Measure), c.MassG, c.Calories, c.ProteinG, c.CarbsG, c.FatG)
	}
	t := service.Aggregate(session.Entries()).Rounded()
	fmt.Fprintf(w, "Total: %dg | %d kcal | P %dg | C %dg | F %dg\n", t.MassG, t.Calories, t.ProteinG, t.CarbsG, t.FatG)
	if cooked > 0 {
		fmt.Fprintf(w, "Cooked weight: %sg\n", formatMass(cooked))
	}
}

var potShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show pot totals and optionally preview a portion",
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := service.ParseMode(potMode)
		if err != nil {
			return err
		}
		return withStore(func(st *store.Store) error {
			d, err := buildPot(st)
			if err != nil {
				return err
			}
			printPot(cmd.OutOrStdout(), d.session, d.cookedG)
			if potTarget > 0 {
				totals := service.Aggregate(d.session.Entries())
				finished := d.cookedG
				if finished <= 0 {
					finished = totals.MassG
				}
				printPortion(cmd.OutOrStdout(), service.Distribute(service.CookedSource(totals, finished), mode, potTarget))
			}
			return nil
		})
	},
}

var potCookCmd = &cobra.Command{
	Use:   "cook",
	Short: "Move the pot into the fridge as a new batch",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			d, err := buildPot(st)
			if err != nil {
				return err
			}
			b, err := service.PromoteSession(st, d.session, d.cookedG, potName)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stored batch %d: %s %sg\n", b.ID, b.Name, formatMass(b.TotalMassG))
			fmt.Fprintf(cmd.OutOrStdout(), "Per 100g: %.1f kcal | P %.1fg | C %.1fg | F %.1fg\n", b.Calories, b.ProteinG, b.CarbsG, b.FatG)
			return nil
		})
	},
}

var potEatCmd = &cobra.Command{
	Use:   "eat",
	Short: "Log a portion of the pot directly",
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := service.ParseMode(potMode)
		if err != nil {
			return err
		}
		date, err := parseDateOrToday(potDate)
		if err != nil {
			return err
		}
		return withStore(func(st *store.Store) error {
			d, err := buildPot(st)
			if err != nil {
				return err
			}
			name := potName
			if name == "" {
				name = d.recipeName
			}
			var status *service.DailyStatus
			cancel := service.WatchDailySummary(st, date, func(s *service.DailyStatus, err error) {
				if err == nil {
					status = s
				}
			})
			defer cancel()

			entry, portion, err := service.LogSession(st, service.LogSessionInput{
				Session:       d.session,
				FinishedMassG: d.cookedG,
				Mode:          mode,
				Target:        potTarget,
				Name:          name,
				Date:          date,
			})
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

var potSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the pot as a reusable recipe",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			d, err := buildPot(st)
			if err != nil {
				return err
			}
			var defaultCooked *float64
			if d.cookedG > 0 {
				defaultCooked = &d.cookedG
			}
			r, err := service.SaveRecipe(st, potName, d.session.Entries(), defaultCooked)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved recipe %d: %s (%d items)\n", r.ID, r.Name, len(r.Entries))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(potCmd)
	potCmd.AddCommand(potShowCmd, potCookCmd, potEatCmd, potSaveCmd)

	potCmd.PersistentFlags().StringArrayVar(&potItems, "item", nil, "Catalog ingredient as name=qty (grams, ml or pieces); repeatable")
	potCmd.PersistentFlags().StringArrayVar(&potBatches, "batch", nil, "Fridge batch as id=grams; repeatable")
	potCmd.PersistentFlags().StringVar(&potRecipe, "recipe", "", "Start from a saved recipe (id or name)")
	potCmd.PersistentFlags().Float64Var(&potCooked, "cooked", 0, "Finished weight in grams (default: recipe default or raw weight)")

	potCookCmd.Flags().StringVar(&potName, "name", "", "Batch name")
	potSaveCmd.Flags().StringVar(&potName, "name", "", "Recipe name")
	potEatCmd.Flags().StringVar(&potName, "name", "", "Log name (default: single item name, recipe name, or Meal Batch)")
	_ = potCookCmd.MarkFlagRequired("name")
	_ = potSaveCmd.MarkFlagRequired("name")

	for _, c := range []*cobra.Command{potShowCmd, potEatCmd} {
		c.Flags().StringVar(&potMode, "mode", "scale", "scale (target is grams) or goal (target is protein grams)")
		c.Flags().Float64Var(&potTarget, "target", 0, "Target grams or protein grams")
	}
	_ = potEatCmd.MarkFlagRequired("target")
	potEatCmd.Flags().StringVar(&potDate, "date", "", "Log date YYYY-MM-DD (default today)")
}
