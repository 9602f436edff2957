package model

import "time"

// MeasureKind decides how a quantity scales nutrient fields.
type MeasureKind string

const (
	MeasureMass   MeasureKind = "mass"
	MeasureVolume MeasureKind = "volume"
	MeasurePiece  MeasureKind = "piece"
)

type Goal string

const (
	GoalLose     Goal = "lose"
	GoalMaintain Goal = "maintain"
	GoalGain     Goal = "gain"
)

type UserProfile struct {
	ID             int64     `json:"id"`
	TDEE           int       `json:"tdee" validate:"gte=0"`
	TargetCalories int       `json:"target_calories" validate:"gte=0"`
	TargetProteinG float64   `json:"target_protein_g" validate:"gte=0"`
	Goal           Goal      `json:"goal" validate:"oneof=lose maintain gain"`
	CreatedAt      time.Time `json:"created_at"`
}

// Ingredient is a catalog fact. Nutrient fields are per 100 g (or ml),
// or per piece when Measure is MeasurePiece.
type Ingredient struct {
	ID         int64       `json:"id"`
	Name       string      `json:"name" validate:"required"`
	Category   string      `json:"category"`
	Calories   float64     `json:"calories" validate:"gte=0"`
	ProteinG   float64     `json:"protein_g" validate:"gte=0"`
	CarbsG     float64     `json:"carbs_g" validate:"gte=0"`
	FatG       float64     `json:"fat_g" validate:"gte=0"`
	Measure    MeasureKind `json:"measure" validate:"oneof=mass volume piece"`
	PieceMassG *float64    `json:"piece_mass_g,omitempty"`
}

// FridgeBatch is a physical, depletable batch. Nutrient fields are always
// densities per 100 mass units.
type FridgeBatch struct {
	ID           int64       `json:"id"`
	Name         string      `json:"name" validate:"required"`
	Calories     float64     `json:"calories" validate:"gte=0"`
	ProteinG     float64     `json:"protein_g" validate:"gte=0"`
	CarbsG       float64     `json:"carbs_g" validate:"gte=0"`
	FatG         float64     `json:"fat_g" validate:"gte=0"`
	Measure      MeasureKind `json:"measure" validate:"omitempty,oneof=mass volume"`
	TotalMassG   float64     `json:"total_mass_g" validate:"gt=0"`
	CurrentMassG float64     `json:"current_mass_g" validate:"gt=0"`
	CreatedAt    time.Time   `json:"created_at"`
}

type ConsumptionLog struct {
	ID            int64     `json:"id"`
	Date          string    `json:"date" validate:"required,datetime=2006-01-02"`
	Name          string    `json:"name" validate:"required"`
	MassConsumedG float64   `json:"mass_consumed_g" validate:"gt=0"`
	Calories      float64   `json:"calories" validate:"gte=0"`
	ProteinG      float64   `json:"protein_g" validate:"gte=0"`
	CarbsG        float64   `json:"carbs_g" validate:"gte=0"`
	FatG          float64   `json:"fat_g" validate:"gte=0"`
	LoggedAt      time.Time `json:"logged_at"`
	SourceBatchID *int64    `json:"source_batch_id,omitempty"`
}

// SessionEntry is one member of a composition session. Nutrient fields are a
// snapshot taken when the entry was added.
type SessionEntry struct {
	Key          string      `json:"key"`
	Name         string      `json:"name"`
	IngredientID *int64      `json:"ingredient_id,omitempty"`
	BatchID      *int64      `json:"batch_id,omitempty"`
	Calories     float64     `json:"calories"`
	ProteinG     float64     `json:"protein_g"`
	CarbsG       float64     `json:"carbs_g"`
	FatG         float64     `json:"fat_g"`
	Measure      MeasureKind `json:"measure"`
	PieceMassG   float64     `json:"piece_mass_g,omitempty"`
	Quantity     float64     `json:"quantity"`
}

type Recipe struct {
	ID                 int64          `json:"id"`
	Name               string         `json:"name" validate:"required"`
	Entries            []SessionEntry `json:"entries"`
	DefaultCookedMassG *float64       `json:"default_cooked_mass_g,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}
