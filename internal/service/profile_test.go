package service_test

import (
	"errors"
	"testing"

	"github.com/macroprep/macroprep-cli/internal/model"
	"github.com/macroprep/macroprep-cli/internal/service"
)

func TestComputeTargetsFromBodyStats(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		in      service.ProfileInput
		tdee    int
		target  int
		protein float64
	}{
		{
			name:    "male cutting",
			in:      service.ProfileInput{Goal: model.GoalLose, WeightKg: 80, HeightCm: 180, AgeYears: 30, Sex: service.SexMale},
			tdee:    2314,
			target:  1814,
			protein: 160,
		},
		{
			name:    "female bulking",
			in:      service.ProfileInput{Goal: model.GoalGain, WeightKg: 60, HeightCm: 165, AgeYears: 25, Sex: service.SexFemale},
			tdee:    1749,
			target:  2049,
			protein: 120,
		},
	}
	for _, tc := range cases {
		p, err := service.ComputeTargets(tc.in)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if p.TDEE != tc.tdee || p.TargetCalories != tc.target || p.TargetProteinG != tc.protein {
			t.Fatalf("%s: expected %d/%d/%v, got %d/%d/%v", tc.name, tc.tdee, tc.target, tc.protein, p.TDEE, p.TargetCalories, p.TargetProteinG)
		}
	}
}

func TestSetProfileReplacesExisting(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	if p, err := service.GetProfile(st.DB()); err != nil || p != nil {
		t.Fatalf("expected no profile yet, got %+v, %v", p, err)
	}
	if _, err := service.SetProfile(st, service.ProfileInput{Manual: true, Goal: model.GoalMaintain, TargetCalories: 2500, TargetProteinG: 140}); err != nil {
		t.Fatalf("set profile: %v", err)
	}
	if _, err := service.SetProfile(st, service.ProfileInput{Manual: true, Goal: model.GoalGain, TargetCalories: 2800, TargetProteinG: 170}); err != nil {
		t.Fatalf("replace profile: %v", err)
	}
	if n := countRows(t, st, "user_profile"); n != 1 {
		t.Fatalf("expected a single profile row, got %d", n)
	}
	p, err := service.GetProfile(st.DB())
	if err != nil || p == nil {
		t.Fatalf("get profile: %+v, %v", p, err)
	}
	if p.Goal != model.GoalGain || p.TargetCalories != 2800 || p.TDEE != 2800 {
		t.Fatalf("unexpected profile %+v", p)
	}

	_, err = service.SetProfile(st, service.ProfileInput{Manual: true, Goal: model.GoalLose, TargetCalories: 2000})
	if !errors.Is(err, service.ErrInvalidInput) {
		t.Fatalf("expected missing protein target to be rejected, got %v", err)
	}
	if _, err := service.ParseGoal("bulk"); !errors.Is(err, service.ErrInvalidInput) {
		t.Fatalf("expected unknown goal to be rejected, got %v", err)
	}
}
