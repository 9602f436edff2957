package service

import (
	"fmt"
	"strings"

	"github.com/macroprep/macroprep-cli/internal/model"
)

// SplitThresholdG is the portion mass above which splitting is advised.
const SplitThresholdG = 500

type Mode string

const (
	// ModeScale solves nutrients for a target mass.
	ModeScale Mode = "scale"
	// ModeGoal solves mass for a target protein amount.
	ModeGoal Mode = "goal"
)

func ParseMode(raw string) (Mode, error) {
	switch strings.TrimSpace(strings.ToLower(raw)) {
	case "scale", "mass", "weight", "":
		return ModeScale, nil
	case "goal", "protein":
		return ModeGoal, nil
	default:
		return "", fmt.Errorf("%w: unsupported mode %q (use scale or goal)", ErrInvalidInput, raw)
	}
}

type LimitAxis string

const (
	AxisMass    LimitAxis = "mass"
	AxisProtein LimitAxis = "protein"
)

// Limit reports that the unclamped portion is more than the source holds.
type Limit struct {
	Axis        LimitAxis `json:"axis"`
	CeilingG    float64   `json:"ceiling_g"`
	MaxProteinG int       `json:"max_protein_g"`
}

type SplitAdvice struct {
	Portions int `json:"portions"`
	MassG    int `json:"mass_g"`
}

// Source is anything a portion can be cut from: Totals are the nutrients
// contained in TotalMassG, and CeilingG is the most that may be taken.
type Source struct {
	TotalMassG float64
	Totals     Totals
	CeilingG   float64
}

// CookedSource is a finished pot weighing finishedMassG.
func CookedSource(totals Totals, finishedMassG float64) Source {
	totals.MassG = finishedMassG
	return Source{TotalMassG: finishedMassG, Totals: totals, CeilingG: finishedMassG}
}

// BatchSource reads a fridge batch's densities as the contents of 100 g,
// bounded by what is left.
func BatchSource(b model.FridgeBatch) Source {
	return Source{
		TotalMassG: 100,
		Totals: Totals{
			MassG:    100,
			Calories: b.Calories,
			ProteinG: b.ProteinG,
			CarbsG:   b.CarbsG,
			FatG:     b.FatG,
		},
		CeilingG: b.CurrentMassG,
	}
}

// Portion is a resolved serving. Values are unclamped; Limit and NoSolution
// must be checked before committing it.
type Portion struct {
	Mode       Mode         `json:"mode"`
	Target     float64      `json:"target"`
	MassG      int          `json:"mass_g"`
	Calories   int          `json:"calories"`
	ProteinG   int          `json:"protein_g"`
	CarbsG     int          `json:"carbs_g"`
	FatG       int          `json:"fat_g"`
	Limit      *Limit       `json:"limit,omitempty"`
	NoSolution bool         `json:"no_solution,omitempty"`
	Split      *SplitAdvice `json:"split,omitempty"`
}

func (p Portion) Empty() bool { return p.MassG <= 0 }

// Committable reports why p may not be logged, if it may not.
func (p Portion) Committable() error {
	switch {
	case p.NoSolution:
		return fmt.Errorf("%w: source has no protein", ErrNoSolution)
	case p.Limit != nil:
		return fmt.Errorf("%w: portion exceeds %s ceiling of %.0f g", ErrInsufficientInventory, p.Limit.Axis, p.Limit.CeilingG)
	case p.Empty():
		return fmt.Errorf("%w: portion mass must be > 0", ErrInvalidInput)
	}
	return nil
}

func Distribute(src Source, mode Mode, target float64) Portion {
	p := Portion{Mode: mode, Target: target}
	if !isUsable(target) || !isUsable(src.TotalMassG) {
		return p
	}

	var mass float64
	switch mode {
	case ModeGoal:
		if src.Totals.ProteinG <= 0 {
			p.NoSolution = true
			return p
		}
		exact := target / src.Totals.ProteinG * src.TotalMassG
		mass = float64(roundInt(exact))
		if exact > src.CeilingG+1e-9 {
			p.Limit = limitFor(src, AxisProtein)
		}
	default:
		p.Mode = ModeScale
		mass = target
		if mass > src.CeilingG+1e-9 {
			p.Limit = limitFor(src, AxisMass)
		}
	}

	ratio := mass / src.TotalMassG
	p.MassG = roundInt(mass)
	p.Calories = roundInt(src.Totals.Calories * ratio)
	p.ProteinG = roundInt(src.Totals.ProteinG * ratio)
	p.CarbsG = roundInt(src.Totals.CarbsG * ratio)
	p.FatG = roundInt(src.Totals.FatG * ratio)
	p.Split = splitAdvice(p.MassG)
	return p
}

func limitFor(src Source, axis LimitAxis) *Limit {
	return &Limit{
		Axis:        axis,
		CeilingG:    src.CeilingG,
		MaxProteinG: roundInt(src.Totals.ProteinG * src.CeilingG / src.TotalMassG),
	}
}

func splitAdvice(massG int) *SplitAdvice {
	if massG <= SplitThresholdG {
		return nil
	}
	return &SplitAdvice{Portions: 2, MassG: roundInt(float64(massG) / 2)}
}
