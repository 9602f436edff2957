package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/macroprep/macroprep-cli/internal/model"
	"github.com/macroprep/macroprep-cli/internal/store"
)

type TrendView string

const (
	ViewWeek  TrendView = "week"
	ViewMonth TrendView = "month"
	ViewYear  TrendView = "year"
)

func ParseTrendView(raw string) (TrendView, error) {
	switch v := TrendView(strings.TrimSpace(strings.ToLower(raw))); v {
	case ViewWeek, ViewMonth, ViewYear:
		return v, nil
	case "":
		return ViewWeek, nil
	default:
		return "", fmt.Errorf("%w: unsupported view %q (use week, month, or year)", ErrInvalidInput, raw)
	}
}

// TrendPoint is one bucket: a day, or a month in the year view where the
// values are averages over the month's active days.
type TrendPoint struct {
	Label      string `json:"label"`
	Calories   int    `json:"calories"`
	ProteinG   int    `json:"protein_g"`
	ActiveDays int    `json:"active_days"`
}

type Consistency struct {
	ActiveBuckets  int `json:"active_buckets"`
	CalorieHits    int `json:"calorie_hits"`
	ProteinHits    int `json:"protein_hits"`
	CaloriePercent int `json:"calorie_percent"`
	ProteinPercent int `json:"protein_percent"`
}

type TrendReport struct {
	View           TrendView    `json:"view"`
	From           string       `json:"from"`
	To             string       `json:"to"`
	Points         []TrendPoint `json:"points"`
	HasProfile     bool         `json:"has_profile"`
	Goal           model.Goal   `json:"goal,omitempty"`
	TargetCalories int          `json:"target_calories,omitempty"`
	TargetProteinG int          `json:"target_protein_g,omitempty"`
	Consistency    Consistency  `json:"consistency"`
	// AvgProteinPerLog is the mean protein of every log ever recorded.
	AvgProteinPerLog int `json:"avg_protein_per_log"`
}

// Trend buckets logs for the view ending at today and scores each active
// bucket against the profile's targets.
func Trend(st *store.Store, view TrendView, today time.Time) (*TrendReport, error) {
	today = beginningOfDay(today)
	from, to := trendRange(view, today)
	daily, err := dailyTotals(st.DB(), dateKey(from), dateKey(to))
	if err != nil {
		return nil, err
	}

	report := &TrendReport{View: view, From: dateKey(from), To: dateKey(to)}
	if view == ViewYear {
		report.Points = monthlyPoints(daily, from)
	} else {
		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			t := daily[dateKey(d)]
			p := TrendPoint{Label: dateKey(d), Calories: roundInt(t.Calories), ProteinG: roundInt(t.ProteinG)}
			if p.Calories > 0 {
				p.ActiveDays = 1
			}
			report.Points = append(report.Points, p)
		}
	}

	avg, err := averageProteinPerLog(st.DB())
	if err != nil {
		return nil, err
	}
	report.AvgProteinPerLog = avg

	profile, err := GetProfile(st.DB())
	if err != nil {
		return nil, err
	}
	if profile != nil {
		report.HasProfile = true
		report.Goal = profile.Goal
		report.TargetCalories = profile.TargetCalories
		report.TargetProteinG = roundInt(profile.TargetProteinG)
		report.Consistency = scoreConsistency(report.Points, *profile)
	}
	return report, nil
}

func trendRange(view TrendView, today time.Time) (time.Time, time.Time) {
	switch view {
	case ViewMonth:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return first, first.AddDate(0, 1, -1)
	case ViewYear:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location()).AddDate(0, -11, 0)
		last := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location()).AddDate(0, 1, -1)
		return first, last
	default:
		return today.AddDate(0, 0, -6), today
	}
}

func monthlyPoints(daily map[string]Totals, from time.Time) []TrendPoint {
	points := make([]TrendPoint, 0, 12)
	for i := 0; i < 12; i++ {
		month := from.AddDate(0, i, 0)
		prefix := month.Format("2006-01")
		var sum Totals
		active := 0
		for day, t := range daily {
			if !strings.HasPrefix(day, prefix) || t.Calories <= 0 {
				continue
			}
			sum = sum.Add(t)
			active++
		}
		p := TrendPoint{Label: prefix, ActiveDays: active}
		if active > 0 {
			p.Calories = roundInt(sum.Calories / float64(active))
			p.ProteinG = roundInt(sum.ProteinG / float64(active))
		}
		points = append(points, p)
	}
	return points
}

// CalorieHit reports whether a day's calories count as on-goal: lose means
// at or under target, gain means up to 200 over, maintain up to 200 under.
func CalorieHit(goal model.Goal, calories, target int) bool {
	switch goal {
	case model.GoalLose:
		return calories <= target
	case model.GoalGain:
		return calories >= target && calories <= target+200
	default:
		return calories >= target-200 && calories <= target
	}
}

func scoreConsistency(points []TrendPoint, profile model.UserProfile) Consistency {
	var c Consistency
	for _, p := range points {
		if p.Calories <= 0 {
			continue
		}
		c.ActiveBuckets++
		if CalorieHit(profile.Goal, p.Calories, profile.TargetCalories) {
			c.CalorieHits++
		}
		if float64(p.ProteinG) >= profile.TargetProteinG {
			c.ProteinHits++
		}
	}
	if c.ActiveBuckets > 0 {
		c.CaloriePercent = roundInt(float64(c.CalorieHits) / float64(c.ActiveBuckets) * 100)
		c.ProteinPercent = roundInt(float64(c.ProteinHits) / float64(c.ActiveBuckets) * 100)
	}
	return c
}

func dailyTotals(db queryer, from, to string) (map[string]Totals, error) {
	rows, err := db.Query(`
SELECT log_date, SUM(mass_consumed_g), SUM(calories), SUM(protein_g), SUM(carbs_g), SUM(fat_g)
FROM logs
WHERE log_date >= ? AND log_date <= ?
GROUP BY log_date
ORDER BY log_date ASC
`, from, to)
	if err != nil {
		return nil, fmt.Errorf("query daily totals: %w", err)
	}
	defer rows.Close()

	out := map[string]Totals{}
	for rows.Next() {
		var day string
		var t Totals
		if err := rows.Scan(&day, &t.MassG, &t.Calories, &t.ProteinG, &t.CarbsG, &t.FatG); err != nil {
			return nil, fmt.Errorf("scan daily totals: %w", err)
		}
		out[day] = t
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily totals: %w", err)
	}
	return out, nil
}

func averageProteinPerLog(db queryer) (int, error) {
	var avg float64
	if err := db.QueryRow(`SELECT IFNULL(AVG(protein_g),0) FROM logs`).Scan(&avg); err != nil {
		return 0, fmt.Errorf("average protein per log: %w", err)
	}
	return roundInt(avg), nil
}

func beginningOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
