package service

import "github.com/macroprep/macroprep-cli/internal/model"

// Totals is an unrounded macro sum.
type Totals struct {
	MassG    float64 `json:"mass_g"`
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

type RoundedTotals struct {
	MassG    int `json:"mass_g"`
	Calories int `json:"calories"`
	ProteinG int `json:"protein_g"`
	CarbsG   int `json:"carbs_g"`
	FatG     int `json:"fat_g"`
}

func (t Totals) Add(o Totals) Totals {
	return Totals{
		MassG:    t.MassG + o.MassG,
		Calories: t.Calories + o.Calories,
		ProteinG: t.ProteinG + o.ProteinG,
		CarbsG:   t.CarbsG + o.CarbsG,
		FatG:     t.FatG + o.FatG,
	}
}

// Rounded rounds each field once, after summation.
func (t Totals) Rounded() RoundedTotals {
	return RoundedTotals{
		MassG:    roundInt(t.MassG),
		Calories: roundInt(t.Calories),
		ProteinG: roundInt(t.ProteinG),
		CarbsG:   roundInt(t.CarbsG),
		FatG:     roundInt(t.FatG),
	}
}

// Contribution is what one pot entry adds. Piece fields are per piece;
// mass and volume fields are per 100.
func Contribution(e model.SessionEntry) Totals {
	q := e.Quantity
	if !isUsable(q) {
		return Totals{}
	}
	if e.Measure == model.MeasurePiece {
		mass := 0.0
		if isUsable(e.PieceMassG) {
			mass = q * e.PieceMassG
		}
		return Totals{
			MassG:    mass,
			Calories: e.Calories * q,
			ProteinG: e.ProteinG * q,
			CarbsG:   e.CarbsG * q,
			FatG:     e.FatG * q,
		}
	}
	f := q / 100
	return Totals{
		MassG:    q,
		Calories: e.Calories * f,
		ProteinG: e.ProteinG * f,
		CarbsG:   e.CarbsG * f,
		FatG:     e.FatG * f,
	}
}

func Aggregate(entries []model.SessionEntry) Totals {
	var out Totals
	for _, e := range entries {
		out = out.Add(Contribution(e))
	}
	return out
}
