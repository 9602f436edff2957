package macroprep

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/macroprep/macroprep-cli/internal/app"
	"github.com/macroprep/macroprep-cli/internal/db"
	"github.com/macroprep/macroprep-cli/internal/service"
	"github.com/macroprep/macroprep-cli/internal/store"
)

func withStore(run func(*store.Store) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	st := store.New(sqldb, logger)
	defer st.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	return run(st)
}

func parseInt64Arg(name, value string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be > 0", name)
	}
	return v, nil
}

// parseDateOrToday returns date as YYYY-MM-DD, defaulting to the local day.
func parseDateOrToday(date string) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Now().Format("2006-01-02"), nil
	}
	if _, err := time.ParseInLocation("2006-01-02", date, time.Local); err != nil {
		return "", fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", date)
	}
	return date, nil
}

// parseQuantityPair splits "name=qty". The name may itself contain spaces.
func parseQuantityPair(flag, raw string) (string, float64, error) {
	idx := strings.LastIndex(raw, "=")
	if idx <= 0 || idx == len(raw)-1 {
		return "", 0, fmt.Errorf("invalid --%s %q (expected name=quantity)", flag, raw)
	}
	name := strings.TrimSpace(raw[:idx])
	qty, err := strconv.ParseFloat(strings.TrimSpace(raw[idx+1:]), 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid --%s quantity in %q", flag, raw)
	}
	if name == "" {
		return "", 0, fmt.Errorf("invalid --%s %q (missing name)", flag, raw)
	}
	return name, qty, nil
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(w, string(b))
	return nil
}

func printPortion(w io.Writer, p service.Portion) {
	fmt.Fprintf(w, "Portion: %dg | %d kcal | P %dg | C %dg | F %dg\n", p.MassG, p.Calories, p.ProteinG, p.CarbsG, p.FatG)
	if p.NoSolution {
		fmt.Fprintln(w, "No solution: source has no protein")
	}
	if p.Limit != nil {
		switch p.Limit.Axis {
		case service.AxisProtein:
			fmt.Fprintf(w, "Limit: only %.0fg left, max %dg protein\n", p.Limit.CeilingG, p.Limit.MaxProteinG)
		default:
			fmt.Fprintf(w, "Limit: only %.0fg left\n", p.Limit.CeilingG)
		}
	}
	if p.Split != nil {
		fmt.Fprintf(w, "Tip: split into %d portions of %dg\n", p.Split.Portions, p.Split.MassG)
	}
}

func printDailyStatus(w io.Writer, s *service.DailyStatus) {
	if s == nil {
		return
	}
	fmt.Fprintf(w, "%s: %d kcal | P %dg | C %dg | F %dg (%d logs)\n", s.Date, s.Calories, s.ProteinG, s.CarbsG, s.FatG, s.LogCount)
	if !s.HasProfile {
		fmt.Fprintln(w, "No profile set; run `macroprep profile set` for targets")
		return
	}
	fmt.Fprintf(w, "Calories: %d/%d (%d%%), %d remaining\n", s.Calories, s.TargetCalories, s.CaloriesPercent, s.RemainingCalories)
	fmt.Fprintf(w, "Protein:  %d/%dg (%d%%), %dg remaining\n", s.ProteinG, s.TargetProteinG, s.ProteinPercent, s.RemainingProteinG)
}

func formatMass(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
