package service

import (
	"github.com/macroprep/macroprep-cli/internal/model"
	"github.com/macroprep/macroprep-cli/internal/store"
)

const (
	// minDeficitG is the remaining protein below which nothing is suggested.
	minDeficitG = 2
	// minProteinDensity keeps near-zero protein batches out of the Goal solve.
	minProteinDensity = 0.1
)

type Recommendation struct {
	Batch    model.FridgeBatch `json:"batch"`
	DeficitG float64           `json:"deficit_g"`
	MassG    int               `json:"mass_g"`
	ProteinG int               `json:"protein_g"`
	Calories int               `json:"calories"`
	CarbsG   int               `json:"carbs_g"`
	FatG     int               `json:"fat_g"`
	Partial  bool              `json:"partial"`
	Split    *SplitAdvice      `json:"split,omitempty"`
}

// RecommendBatch picks the densest protein batch for a remaining deficit.
// It never writes anything.
func RecommendBatch(batches []model.FridgeBatch, remainingProteinG float64) *Recommendation {
	if !(remainingProteinG > minDeficitG) {
		return nil
	}
	var best *model.FridgeBatch
	for i := range batches {
		b := &batches[i]
		if b.ProteinG <= minProteinDensity {
			continue
		}
		if best == nil || b.ProteinG > best.ProteinG {
			best = b
		}
	}
	if best == nil {
		return nil
	}

	src := BatchSource(*best)
	portion := Distribute(src, ModeGoal, remainingProteinG)
	rec := &Recommendation{Batch: *best, DeficitG: remainingProteinG}
	if portion.Limit != nil {
		rec.Partial = true
		portion = Distribute(src, ModeScale, best.CurrentMassG)
	}
	rec.MassG = portion.MassG
	rec.ProteinG = portion.ProteinG
	rec.Calories = portion.Calories
	rec.CarbsG = portion.CarbsG
	rec.FatG = portion.FatG
	rec.Split = portion.Split
	return rec
}

// Suggest runs the advisor against today's remaining protein. It returns nil
// when no profile is set.
func Suggest(st *store.Store, date string) (*Recommendation, error) {
	profile, err := GetProfile(st.DB())
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}
	consumed, err := consumedOn(st.DB(), date)
	if err != nil {
		return nil, err
	}
	remaining := profile.TargetProteinG - float64(roundInt(consumed.ProteinG))
	if remaining < 0 {
		remaining = 0
	}
	batches, err := ListFridge(st.DB())
	if err != nil {
		return nil, err
	}
	return RecommendBatch(batches, remaining), nil
}
