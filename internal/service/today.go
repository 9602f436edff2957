package service

import (
	"math"
	"time"

	"github.com/macroprep/macroprep-cli/internal/store"
)

type DailyStatus struct {
	Date              string `json:"date"`
	Calories          int    `json:"calories"`
	ProteinG          int    `json:"protein_g"`
	CarbsG            int    `json:"carbs_g"`
	FatG              int    `json:"fat_g"`
	HasProfile        bool   `json:"has_profile"`
	TargetCalories    int    `json:"target_calories,omitempty"`
	TargetProteinG    int    `json:"target_protein_g,omitempty"`
	RemainingCalories int    `json:"remaining_calories"`
	RemainingProteinG int    `json:"remaining_protein_g"`
	CaloriesPercent   int    `json:"calories_percent"`
	ProteinPercent    int    `json:"protein_percent"`
	LogCount          int    `json:"log_count"`
}

func DailySummary(st *store.Store, date string) (*DailyStatus, error) {
	if date == "" {
		date = dateKey(time.Now())
	}
	logs, err := ListLogs(st.DB(), date)
	if err != nil {
		return nil, err
	}
	var sum Totals
	for _, l := range logs {
		sum = sum.Add(Totals{Calories: l.Calories, ProteinG: l.ProteinG, CarbsG: l.CarbsG, FatG: l.FatG})
	}
	r := sum.Rounded()
	status := &DailyStatus{
		Date:     date,
		Calories: r.Calories,
		ProteinG: r.ProteinG,
		CarbsG:   r.CarbsG,
		FatG:     r.FatG,
		LogCount: len(logs),
	}

	profile, err := GetProfile(st.DB())
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return status, nil
	}
	status.HasProfile = true
	status.TargetCalories = profile.TargetCalories
	status.TargetProteinG = roundInt(profile.TargetProteinG)
	status.RemainingCalories = max(0, status.TargetCalories-status.Calories)
	status.RemainingProteinG = max(0, status.TargetProteinG-status.ProteinG)
	status.CaloriesPercent = cappedPercent(float64(status.Calories), float64(status.TargetCalories))
	status.ProteinPercent = cappedPercent(float64(status.ProteinG), profile.TargetProteinG)
	return status, nil
}

// WatchDailySummary calls fn with a fresh summary now and after every
// committed change to logs, fridge, or the profile.
func WatchDailySummary(st *store.Store, date string, fn func(*DailyStatus, error)) func() {
	recompute := func() { fn(DailySummary(st, date)) }
	cancel := st.Subscribe(func(store.Change) { recompute() }, store.Logs, store.Fridge, store.User)
	recompute()
	return cancel
}

func cappedPercent(value, target float64) int {
	if target <= 0 {
		return 0
	}
	return roundInt(math.Min(value/target*100, 100))
}
