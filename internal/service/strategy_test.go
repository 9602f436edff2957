package service_test

import (
	"testing"
	"time"

	"github.com/macroprep/macroprep-cli/internal/model"
	"github.com/macroprep/macroprep-cli/internal/service"
)

func TestRecommendBatchPicksDensestProtein(t *testing.T) {
	t.Parallel()
	batches := []model.FridgeBatch{
		{ID: 1, Name: "rice", Calories: 130, ProteinG: 2.7, CurrentMassG: 800, TotalMassG: 800},
		{ID: 2, Name: "chicken", Calories: 165, ProteinG: 31, CurrentMassG: 400, TotalMassG: 600},
		{ID: 3, Name: "turkey", Calories: 135, ProteinG: 31, CurrentMassG: 400, TotalMassG: 400},
	}
	rec := service.RecommendBatch(batches, 62)
	if rec == nil {
		t.Fatalf("expected a recommendation")
	}
	if rec.Batch.ID != 2 {
		t.Fatalf("expected first of the tied densest batches, got %d", rec.Batch.ID)
	}
	if rec.MassG != 200 || rec.ProteinG != 62 || rec.Partial {
		t.Fatalf("unexpected recommendation %+v", rec)
	}
}

func TestRecommendBatchClampsToWhatIsLeft(t *testing.T) {
	t.Parallel()
	batches := []model.FridgeBatch{{ID: 7, Name: "chili", Calories: 110, ProteinG: 20, CurrentMassG: 150, TotalMassG: 900}}

	rec := service.RecommendBatch(batches, 40)
	if rec == nil || !rec.Partial {
		t.Fatalf("expected a partial recommendation, got %+v", rec)
	}
	if rec.MassG != 150 || rec.ProteinG != 30 {
		t.Fatalf("expected 150 g / 30 g protein, got %d / %d", rec.MassG, rec.ProteinG)
	}
}

func TestRecommendBatchSplitsLargePortions(t *testing.T) {
	t.Parallel()
	batches := []model.FridgeBatch{{ID: 1, Name: "lentil stew", Calories: 90, ProteinG: 8, CurrentMassG: 2000, TotalMassG: 2000}}

	rec := service.RecommendBatch(batches, 60)
	if rec == nil || rec.MassG != 750 {
		t.Fatalf("expected 750 g, got %+v", rec)
	}
	if rec.Split == nil || rec.Split.Portions != 2 || rec.Split.MassG != 375 {
		t.Fatalf("expected split into 2x375, got %+v", rec.Split)
	}
}

func TestRecommendBatchSkipsNearZeroProteinAndSmallDeficits(t *testing.T) {
	t.Parallel()
	batches := []model.FridgeBatch{
		{ID: 1, Name: "olive oil", Calories: 884, ProteinG: 0, CurrentMassG: 500, TotalMassG: 500},
		{ID: 2, Name: "jam", Calories: 250, ProteinG: 0.1, CurrentMassG: 300, TotalMassG: 300},
	}
	if rec := service.RecommendBatch(batches, 50); rec != nil {
		t.Fatalf("expected no recommendation from near-zero protein batches, got %+v", rec)
	}

	batches = append(batches, model.FridgeBatch{ID: 3, Name: "tofu", Calories: 144, ProteinG: 17, CurrentMassG: 400, TotalMassG: 400})
	if rec := service.RecommendBatch(batches, 2); rec != nil {
		t.Fatalf("expected no recommendation for a 2 g deficit, got %+v", rec)
	}
	if rec := service.RecommendBatch(batches, 2.5); rec == nil || rec.Batch.ID != 3 {
		t.Fatalf("expected tofu for a 2.5 g deficit, got %+v", rec)
	}
}

func TestSuggestUsesRemainingProtein(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	date := time.Now().Format("2006-01-02")

	if rec, err := service.Suggest(st, date); err != nil || rec != nil {
		t.Fatalf("expected no suggestion without a profile, got %+v, %v", rec, err)
	}
	if _, err := service.SetProfile(st, service.ProfileInput{Manual: true, Goal: model.GoalMaintain, TargetCalories: 2200, TargetProteinG: 150}); err != nil {
		t.Fatalf("set profile: %v", err)
	}
	stockBatch(t, st, "Chicken", 165, 31, 0, 3.6, 1000)
	if _, err := service.CommitConsumption(st, service.CommitInput{Name: "shake", MassG: 300, Calories: 400, ProteinG: 88, Date: date}); err != nil {
		t.Fatalf("commit: %v", err)
	}

	rec, err := service.Suggest(st, date)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if rec == nil || rec.DeficitG != 62 || rec.MassG != 200 {
		t.Fatalf("expected 200 g of chicken for a 62 g deficit, got %+v", rec)
	}
	if countRows(t, st, "logs") != 1 {
		t.Fatalf("expected suggest to leave logs untouched")
	}
}
