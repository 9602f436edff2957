package service

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/macroprep/macroprep-cli/internal/model"
	"github.com/macroprep/macroprep-cli/internal/store"
)

const activityFactor = 1.3

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// ProfileInput sets targets either directly (Manual) or from body stats via
// Mifflin-St Jeor.
type ProfileInput struct {
	Manual         bool
	Goal           model.Goal `validate:"required,oneof=lose maintain gain"`
	TargetCalories int        `validate:"required_if=Manual true,gte=0"`
	TargetProteinG float64    `validate:"required_if=Manual true,gte=0"`
	WeightKg       float64    `validate:"required_if=Manual false,gte=0"`
	HeightCm       float64    `validate:"required_if=Manual false,gte=0"`
	AgeYears       int        `validate:"required_if=Manual false,gte=0"`
	Sex            Sex        `validate:"omitempty,oneof=male female"`
}

// ComputeTargets derives TDEE and targets for in without persisting them.
func ComputeTargets(in ProfileInput) (model.UserProfile, error) {
	in.Goal = model.Goal(normalizeName(string(in.Goal)))
	in.Sex = Sex(normalizeName(string(in.Sex)))
	if in.Goal == "" {
		in.Goal = model.GoalMaintain
	}
	if err := validateStruct(ErrInvalidInput, in); err != nil {
		return model.UserProfile{}, err
	}

	if !in.Manual && in.Sex == "" {
		return model.UserProfile{}, fmt.Errorf("%w: sex is required to estimate targets", ErrInvalidInput)
	}

	p := model.UserProfile{Goal: in.Goal}
	if in.Manual {
		p.TargetCalories = in.TargetCalories
		p.TargetProteinG = in.TargetProteinG
		p.TDEE = in.TargetCalories
		return p, nil
	}

	bmr := 10*in.WeightKg + 6.25*in.HeightCm - 5*float64(in.AgeYears)
	if in.Sex == SexMale {
		bmr += 5
	} else {
		bmr -= 161
	}
	p.TDEE = roundInt(bmr * activityFactor)
	p.TargetCalories = p.TDEE
	switch in.Goal {
	case model.GoalLose:
		p.TargetCalories -= 500
	case model.GoalGain:
		p.TargetCalories += 300
	}
	if p.TargetCalories < 0 {
		p.TargetCalories = 0
	}
	p.TargetProteinG = float64(roundInt(2 * in.WeightKg))
	return p, nil
}

// SetProfile replaces the single stored profile.
func SetProfile(st *store.Store, in ProfileInput) (model.UserProfile, error) {
	p, err := ComputeTargets(in)
	if err != nil {
		return model.UserProfile{}, err
	}
	p.CreatedAt = time.Now().UTC()
	err = st.Update([]store.Collection{store.User}, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM user_profile`); err != nil {
			return fmt.Errorf("clear profile: %w", err)
		}
		id, err := insertProfile(tx, p)
		if err != nil {
			return err
		}
		p.ID = id
		return nil
	})
	if err != nil {
		return model.UserProfile{}, err
	}
	return p, nil
}

func insertProfile(tx queryer, p model.UserProfile) (int64, error) {
	var (
		res sql.Result
		err error
	)
	if p.ID > 0 {
		res, err = tx.Exec(`INSERT INTO user_profile(id, tdee, target_calories, target_protein_g, goal, created_at) VALUES(?, ?, ?, ?, ?, ?)`,
			p.ID, p.TDEE, p.TargetCalories, p.TargetProteinG, string(p.Goal), formatTime(p.CreatedAt))
	} else {
		res, err = tx.Exec(`INSERT INTO user_profile(tdee, target_calories, target_protein_g, goal, created_at) VALUES(?, ?, ?, ?, ?)`,
			p.TDEE, p.TargetCalories, p.TargetProteinG, string(p.Goal), formatTime(p.CreatedAt))
	}
	if err != nil {
		return 0, fmt.Errorf("insert profile: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve profile id: %w", err)
	}
	return id, nil
}

// GetProfile returns the stored profile, or nil before onboarding.
func GetProfile(db queryer) (*model.UserProfile, error) {
	var p model.UserProfile
	var goal, created string
	err := db.QueryRow(`
SELECT id, tdee, target_calories, target_protein_g, goal, created_at
FROM user_profile
ORDER BY id DESC
LIMIT 1`).Scan(&p.ID, &p.TDEE, &p.TargetCalories, &p.TargetProteinG, &goal, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	p.Goal = model.Goal(goal)
	p.CreatedAt = parseTime(created)
	return &p, nil
}

func ParseGoal(raw string) (model.Goal, error) {
	switch g := model.Goal(strings.TrimSpace(strings.ToLower(raw))); g {
	case model.GoalLose, model.GoalMaintain, model.GoalGain:
		return g, nil
	default:
		return "", fmt.Errorf("%w: unsupported goal %q (use lose, maintain, or gain)", ErrInvalidInput, raw)
	}
}
