package service_test

import (
	"errors"
	"testing"

	"github.com/macroprep/macroprep-cli/internal/model"
	"github.com/macroprep/macroprep-cli/internal/service"
	"github.com/macroprep/macroprep-cli/internal/store"
)

const testDate = "2026-02-20"

func TestCommitThenRefundRestoresBatch(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	batch := stockBatch(t, st, "Chili", 120, 10, 8, 4, 150)

	entry, portion, err := service.EatFromBatch(st, batch.ID, service.ModeScale, 60, testDate)
	if err != nil {
		t.Fatalf("eat: %v", err)
	}
	if portion.MassG != 60 || entry.MassConsumedG != 60 || entry.Calories != 72 {
		t.Fatalf("unexpected log %+v for portion %+v", entry, portion)
	}
	if entry.SourceBatchID == nil || *entry.SourceBatchID != batch.ID {
		t.Fatalf("expected log linked to batch %d", batch.ID)
	}
	after, err := service.GetBatch(st.DB(), batch.ID)
	if err != nil {
		t.Fatalf("get batch: %v", err)
	}
	if after.CurrentMassG != 90 {
		t.Fatalf("expected 90 g left, got %v", after.CurrentMassG)
	}

	if _, err := service.DeleteLog(st, entry.ID); err != nil {
		t.Fatalf("delete log: %v", err)
	}
	restored, err := service.GetBatch(st.DB(), batch.ID)
	if err != nil {
		t.Fatalf("get batch after refund: %v", err)
	}
	if restored.CurrentMassG != 150 || restored.TotalMassG != 150 {
		t.Fatalf("expected batch back at 150/150, got %v/%v", restored.CurrentMassG, restored.TotalMassG)
	}
	if countRows(t, st, "logs") != 0 {
		t.Fatalf("expected log removed")
	}
}

func TestCommitWholeBatchDeletesIt(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	batch := stockBatch(t, st, "Oats", 380, 13, 68, 6.5, 80)

	entry, err := service.CommitConsumption(st, service.CommitInput{
		Name:          "Oats",
		MassG:         80,
		Calories:      304,
		ProteinG:      10,
		CarbsG:        54,
		FatG:          5,
		SourceBatchID: &batch.ID,
		Date:          testDate,
	})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if _, err := service.GetBatch(st.DB(), batch.ID); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected batch deleted, got %v", err)
	}

	// Refunding recreates the batch under its old id at the refunded mass.
	if _, err := service.DeleteLog(st, entry.ID); err != nil {
		t.Fatalf("refund: %v", err)
	}
	recreated, err := service.GetBatch(st.DB(), batch.ID)
	if err != nil {
		t.Fatalf("expected recreated batch: %v", err)
	}
	if recreated.CurrentMassG != 80 || recreated.TotalMassG != 80 || recreated.Name != "Oats" {
		t.Fatalf("unexpected recreated batch %+v", recreated)
	}
	if !approx(recreated.Calories, 380, 1e-9) || !approx(recreated.ProteinG, 12.5, 1e-9) {
		t.Fatalf("expected densities derived from the log, got %+v", recreated)
	}
}

func TestCommitRefusesLimitAndEmptyMass(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	batch := stockBatch(t, st, "Chili", 110, 20, 0, 5, 150)

	_, portion, err := service.EatFromBatch(st, batch.ID, service.ModeGoal, 40, testDate)
	if !errors.Is(err, service.ErrInsufficientInventory) {
		t.Fatalf("expected insufficient inventory, got %v", err)
	}
	if portion.Limit == nil || portion.Limit.CeilingG != 150 || portion.MassG != 200 {
		t.Fatalf("expected unclamped portion with ceiling 150, got %+v", portion)
	}

	_, err = service.CommitConsumption(st, service.CommitInput{Name: "x", MassG: 10, Limit: &service.Limit{Axis: service.AxisMass, CeilingG: 5}})
	if !errors.Is(err, service.ErrInsufficientInventory) {
		t.Fatalf("expected limit to block commit, got %v", err)
	}
	_, err = service.CommitConsumption(st, service.CommitInput{Name: "x", MassG: 0, SourceBatchID: &batch.ID})
	if !errors.Is(err, service.ErrInvalidInput) {
		t.Fatalf("expected zero mass to be rejected, got %v", err)
	}
	_, err = service.CommitConsumption(st, service.CommitInput{Name: "x", MassG: 151, SourceBatchID: &batch.ID, Date: testDate})
	if !errors.Is(err, service.ErrInsufficientInventory) {
		t.Fatalf("expected over-draw to be rejected inside the transaction, got %v", err)
	}

	if countRows(t, st, "logs") != 0 {
		t.Fatalf("expected no logs written")
	}
	after, err := service.GetBatch(st.DB(), batch.ID)
	if err != nil || after.CurrentMassG != 150 {
		t.Fatalf("expected batch untouched, got %+v, %v", after, err)
	}
}

func TestCommitMissingBatchRollsBack(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	missing := int64(404)

	_, err := service.CommitConsumption(st, service.CommitInput{Name: "ghost", MassG: 50, SourceBatchID: &missing, Date: testDate})
	if !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if countRows(t, st, "logs") != 0 {
		t.Fatalf("expected log insert rolled back")
	}
}

func TestPromoteSessionComputesDensities(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	s := service.NewSession()
	chicken := s.AddIngredient(model.Ingredient{ID: 1, Name: "Chicken Breast (Raw)", Calories: 110, ProteinG: 23, FatG: 1.2, Measure: model.MeasureMass})
	_ = s.SetQuantity(chicken, 500)
	eggs := s.AddIngredient(model.Ingredient{ID: 2, Name: "Egg (Large)", Calories: 72, ProteinG: 6.3, CarbsG: 0.4, FatG: 5, Measure: model.MeasurePiece, PieceMassG: floatPtr(50)})
	_ = s.SetQuantity(eggs, 2)

	var fridgeChanges int
	st.Subscribe(func(store.Change) { fridgeChanges++ }, store.Fridge)

	b, err := service.PromoteSession(st, s, 450, "Chicken & Egg Bake")
	if err != nil {
		t.Fatalf("promote: %v", err)
	}
	if b.TotalMassG != 450 || b.CurrentMassG != 450 {
		t.Fatalf("expected 450/450, got %v/%v", b.TotalMassG, b.CurrentMassG)
	}
	if !approx(b.ProteinG, (115+12.6)/450*100, 1e-9) || !approx(b.Calories, (550+144)/450*100, 1e-9) {
		t.Fatalf("unexpected densities %+v", b)
	}
	if s.Len() != 0 {
		t.Fatalf("expected session cleared after promote")
	}
	if fridgeChanges != 1 {
		t.Fatalf("expected one fridge notification, got %d", fridgeChanges)
	}

	if _, err := service.PromoteSession(st, s, 450, "again"); !errors.Is(err, service.ErrInvalidInput) {
		t.Fatalf("expected empty pot to be rejected, got %v", err)
	}
}

func TestLogSessionDeductsEachBatchByItsOwnQuantity(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	stew := stockBatch(t, st, "Stew", 100, 10, 5, 3, 200)
	beans := stockBatch(t, st, "Beans", 130, 8, 20, 1, 100)

	s := service.NewSession()
	_ = s.SetQuantity(s.AddBatch(stew), 50)
	_ = s.SetQuantity(s.AddBatch(beans), 100)
	s.AddIngredient(model.Ingredient{ID: 1, Name: "Rice", Calories: 130, ProteinG: 2.7, CarbsG: 28, Measure: model.MeasureMass})

	entry, portion, err := service.LogSession(st, service.LogSessionInput{
		Session: s,
		Mode:    service.ModeScale,
		Target:  250,
		Date:    testDate,
	})
	if err != nil {
		t.Fatalf("log session: %v", err)
	}
	if portion.MassG != 250 || entry.MassConsumedG != 250 {
		t.Fatalf("expected the whole 250 g pot logged, got %+v", entry)
	}
	if entry.Name != "Meal Batch" {
		t.Fatalf("expected default meal name, got %q", entry.Name)
	}
	if entry.SourceBatchID == nil || *entry.SourceBatchID != stew.ID {
		t.Fatalf("expected log linked to the first batch")
	}

	left, err := service.GetBatch(st.DB(), stew.ID)
	if err != nil || left.CurrentMassG != 150 {
		t.Fatalf("expected stew at 150 g, got %+v, %v", left, err)
	}
	if _, err := service.GetBatch(st.DB(), beans.ID); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected beans used up, got %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("expected session cleared after logging")
	}
}

func TestLogSessionAbortsWhenABatchIsGone(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	stew := stockBatch(t, st, "Stew", 100, 10, 5, 3, 200)

	s := service.NewSession()
	_ = s.SetQuantity(s.AddBatch(stew), 50)
	_ = s.SetQuantity(s.AddBatch(model.FridgeBatch{ID: 999, Name: "eaten already", ProteinG: 5}), 40)

	_, _, err := service.LogSession(st, service.LogSessionInput{Session: s, Mode: service.ModeScale, Target: 90, Name: "lunch", Date: testDate})
	if !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if countRows(t, st, "logs") != 0 {
		t.Fatalf("expected log rolled back")
	}
	left, err := service.GetBatch(st.DB(), stew.ID)
	if err != nil || left.CurrentMassG != 200 {
		t.Fatalf("expected stew untouched, got %+v, %v", left, err)
	}
	if s.Len() != 2 {
		t.Fatalf("expected session kept after a failed log")
	}
}

func TestLogSessionRefusesOverdraw(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	s := service.NewSession()
	s.AddIngredient(model.Ingredient{ID: 1, Name: "Oats", Calories: 379, ProteinG: 13, Measure: model.MeasureMass})

	_, portion, err := service.LogSession(st, service.LogSessionInput{Session: s, FinishedMassG: 250, Mode: service.ModeScale, Target: 300})
	if !errors.Is(err, service.ErrInsufficientInventory) {
		t.Fatalf("expected insufficient inventory, got %v", err)
	}
	if portion.Limit == nil || portion.Limit.CeilingG != 250 {
		t.Fatalf("expected ceiling of the finished mass, got %+v", portion.Limit)
	}

	entry, _, err := service.LogSession(st, service.LogSessionInput{Session: s, FinishedMassG: 250, Mode: service.ModeGoal, Target: 13})
	if err != nil {
		t.Fatalf("log session: %v", err)
	}
	if entry.Name != "Oats" || entry.MassConsumedG != 250 {
		t.Fatalf("expected single-entry name and 250 g, got %+v", entry)
	}
}

func TestRefundAboveTotalRaisesTotal(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	batch := stockBatch(t, st, "Stew", 100, 10, 5, 3, 100)

	s := service.NewSession()
	_ = s.SetQuantity(s.AddBatch(batch), 40)
	_ = s.SetQuantity(s.AddIngredient(model.Ingredient{ID: 1, Name: "Rice", Calories: 130, ProteinG: 2.7, Measure: model.MeasureMass}), 60)
	entry, _, err := service.LogSession(st, service.LogSessionInput{Session: s, Mode: service.ModeScale, Target: 100, Date: testDate})
	if err != nil {
		t.Fatalf("log session: %v", err)
	}

	// The log holds the whole 100 g meal but only 40 g came from the stew.
	if _, err := service.DeleteLog(st, entry.ID); err != nil {
		t.Fatalf("refund: %v", err)
	}
	after, err := service.GetBatch(st.DB(), batch.ID)
	if err != nil {
		t.Fatalf("get batch: %v", err)
	}
	if after.CurrentMassG != 160 || after.TotalMassG != 160 {
		t.Fatalf("expected total raised to 160, got %v/%v", after.CurrentMassG, after.TotalMassG)
	}
}

func TestDeleteLogNotFound(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	if _, err := service.DeleteLog(st, 12); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListLogsByDate(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	for _, date := range []string{"2026-02-19", testDate, testDate} {
		if _, err := service.CommitConsumption(st, service.CommitInput{Name: "snack", MassG: 30, Calories: 120, Date: date}); err != nil {
			t.Fatalf("commit: %v", err)
		}
	}
	logs, err := service.ListLogs(st.DB(), testDate)
	if err != nil {
		t.Fatalf("list logs: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 logs on %s, got %d", testDate, len(logs))
	}
	if _, err := service.CommitConsumption(st, service.CommitInput{Name: "bad", MassG: 30, Date: "20-02-2026"}); !errors.Is(err, service.ErrInvalidInput) {
		t.Fatalf("expected malformed date to be rejected, got %v", err)
	}
}

func TestLogSessionRefusesDrawAboveBatchMass(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	rice := stockBatch(t, st, "Rice", 130, 2.7, 28, 0.3, 80)

	s := service.NewSession()
	_ = s.SetQuantity(s.AddBatch(rice), 500)

	_, _, err := service.LogSession(st, service.LogSessionInput{Session: s, Mode: service.ModeScale, Target: 500, Date: testDate})
	if !errors.Is(err, service.ErrInsufficientInventory) {
		t.Fatalf("expected insufficient inventory, got %v", err)
	}
	if countRows(t, st, "logs") != 0 {
		t.Fatalf("expected no log written")
	}
	left, err := service.GetBatch(st.DB(), rice.ID)
	if err != nil || left.CurrentMassG != 80 || left.TotalMassG != 80 {
		t.Fatalf("expected rice untouched at 80/80, got %+v, %v", left, err)
	}
	if s.Len() != 1 {
		t.Fatalf("expected session kept after a refused log")
	}
}

func TestEatFromBatchClampsToWhatIsLeft(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	batch := stockBatch(t, st, "Turkey", 250, 20, 0, 0, 149.6)

	// 29.91 g protein resolves to 149.55 g, which rounds to 150 g.
	entry, portion, err := service.EatFromBatch(st, batch.ID, service.ModeGoal, 29.91, testDate)
	if err != nil {
		t.Fatalf("eat: %v", err)
	}
	if portion.MassG != 150 {
		t.Fatalf("expected rounded portion of 150 g, got %d", portion.MassG)
	}
	if entry.MassConsumedG != 149.6 {
		t.Fatalf("expected log clamped to 149.6 g, got %v", entry.MassConsumedG)
	}
	if entry.Calories != 374 || portion.Calories != 374 || entry.ProteinG != 30 {
		t.Fatalf("expected nutrients at the clamped mass, got log %+v portion %+v", entry, portion)
	}
	if _, err := service.GetBatch(st.DB(), batch.ID); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected batch used up, got %v", err)
	}
}

func TestRefundIsExactForFractionalMasses(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	batch := stockBatch(t, st, "Pesto", 450, 5, 4, 45, 0.9)

	entry, err := service.CommitConsumption(st, service.CommitInput{
		Name:          "Pesto",
		MassG:         0.2,
		Calories:      1,
		SourceBatchID: &batch.ID,
		Date:          testDate,
	})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	mid, err := service.GetBatch(st.DB(), batch.ID)
	if err != nil || mid.CurrentMassG != 0.7 {
		t.Fatalf("expected 0.7 g left, got %+v, %v", mid, err)
	}

	if _, err := service.DeleteLog(st, entry.ID); err != nil {
		t.Fatalf("delete log: %v", err)
	}
	restored, err := service.GetBatch(st.DB(), batch.ID)
	if err != nil {
		t.Fatalf("get batch: %v", err)
	}
	if restored.CurrentMassG != 0.9 || restored.TotalMassG != 0.9 {
		t.Fatalf("expected batch back at exactly 0.9/0.9, got %v/%v", restored.CurrentMassG, restored.TotalMassG)
	}
}
