package service_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/macroprep/macroprep-cli/internal/model"
	"github.com/macroprep/macroprep-cli/internal/service"
)

func TestBackupRoundTripKeepsRefundLinks(t *testing.T) {
	t.Parallel()
	src := newTestStore(t)
	if _, err := service.SetProfile(src, service.ProfileInput{Manual: true, Goal: model.GoalLose, TargetCalories: 1800, TargetProteinG: 140}); err != nil {
		t.Fatalf("set profile: %v", err)
	}
	if _, err := service.CreateIngredient(src, service.IngredientInput{Name: "Egg (Large)", Calories: 72, ProteinG: 6.3, CarbsG: 0.4, FatG: 5, Measure: model.MeasurePiece, PieceMassG: 50}); err != nil {
		t.Fatalf("create ingredient: %v", err)
	}
	batch := stockBatch(t, src, "Chili", 120, 10, 8, 4, 500)
	entry, _, err := service.EatFromBatch(src, batch.ID, service.ModeScale, 200, testDate)
	if err != nil {
		t.Fatalf("eat: %v", err)
	}
	s := service.NewSession()
	s.AddBatch(batch)
	if _, err := service.SaveRecipe(src, "Chili bowl", s.Entries(), nil); err != nil {
		t.Fatalf("save recipe: %v", err)
	}

	snapshot, err := service.ExportSnapshot(src)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	var buf bytes.Buffer
	if err := service.WriteBackup(&buf, snapshot); err != nil {
		t.Fatalf("write backup: %v", err)
	}

	dst := newTestStore(t)
	stockBatch(t, dst, "stale", 100, 1, 1, 1, 100)
	decoded, err := service.DecodeBackup(&buf)
	if err != nil {
		t.Fatalf("decode backup: %v", err)
	}
	if err := service.RestoreSnapshot(dst, decoded); err != nil {
		t.Fatalf("restore: %v", err)
	}

	for table, want := range map[string]int{"user_profile": 1, "ingredients": 1, "fridge": 1, "recipes": 1, "logs": 1} {
		if got := countRows(t, dst, table); got != want {
			t.Fatalf("expected %d rows in %s, got %d", want, table, got)
		}
	}
	restored, err := service.GetBatch(dst.DB(), batch.ID)
	if err != nil || restored.CurrentMassG != 300 {
		t.Fatalf("expected batch restored at 300 g under its id, got %+v, %v", restored, err)
	}
	if _, err := service.DeleteLog(dst, entry.ID); err != nil {
		t.Fatalf("refund after restore: %v", err)
	}
	refunded, _ := service.GetBatch(dst.DB(), batch.ID)
	if refunded.CurrentMassG != 500 {
		t.Fatalf("expected refund to reach the restored batch, got %v", refunded.CurrentMassG)
	}
}

func TestMalformedBackupAbortsBeforeWriting(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	stockBatch(t, st, "Chili", 120, 10, 8, 4, 500)

	cases := map[string]string{
		"not json":       `{"version": 1, "user": [`,
		"missing logs":   `{"version": 1, "user": [], "ingredients": [], "fridge": []}`,
		"missing fridge": `{"version": 1, "user": [], "ingredients": [], "logs": []}`,
		"bad log":        `{"version": 1, "user": [], "ingredients": [], "fridge": [], "logs": [{"date": "yesterday", "name": "x", "mass_consumed_g": 10}]}`,
		"bad batch":      `{"version": 1, "user": [], "ingredients": [], "fridge": [{"name": "x", "total_mass_g": 100, "current_mass_g": 150}], "logs": []}`,
		"no version":     `{"user": [], "ingredients": [], "fridge": [], "logs": []}`,
	}
	for name, raw := range cases {
		_, err := service.DecodeBackup(strings.NewReader(raw))
		if !errors.Is(err, service.ErrMalformedBackup) {
			t.Fatalf("%s: expected malformed backup, got %v", name, err)
		}
	}
	if countRows(t, st, "fridge") != 1 {
		t.Fatalf("expected existing data untouched")
	}

	ok, err := service.DecodeBackup(strings.NewReader(`{"version": 1, "user": [], "ingredients": [], "fridge": [], "logs": []}`))
	if err != nil {
		t.Fatalf("expected empty arrays to be accepted, got %v", err)
	}
	if ok.Recipes != nil {
		t.Fatalf("expected recipes to stay optional")
	}
}

func TestRestoreRollsBackOnConstraintFailure(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	stockBatch(t, st, "Chili", 120, 10, 8, 4, 500)

	backup := &service.Backup{
		Version:     service.BackupVersion,
		User:        []model.UserProfile{},
		Ingredients: []model.Ingredient{{Name: "Bagel", Calories: 250, Measure: model.MeasurePiece}},
		Fridge:      []model.FridgeBatch{},
		Logs:        []model.ConsumptionLog{},
	}
	if err := service.RestoreSnapshot(st, backup); err == nil {
		t.Fatalf("expected restore to fail on a piece ingredient without piece mass")
	}
	if countRows(t, st, "fridge") != 1 || countRows(t, st, "ingredients") != 0 {
		t.Fatalf("expected prior state intact after failed restore")
	}
}
