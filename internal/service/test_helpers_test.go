package service_test

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/macroprep/macroprep-cli/internal/app"
	"github.com/macroprep/macroprep-cli/internal/db"
	"github.com/macroprep/macroprep-cli/internal/model"
	"github.com/macroprep/macroprep-cli/internal/service"
	"github.com/macroprep/macroprep-cli/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "macroprep.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	st := store.New(sqldb, app.DiscardLogger())
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func floatPtr(v float64) *float64 { return &v }

// stockBatch cooks a single-ingredient pot into the fridge so the batch's
// densities equal the given per-100 values.
func stockBatch(t *testing.T, st *store.Store, name string, calories, protein, carbs, fat, massG float64) model.FridgeBatch {
	t.Helper()
	s := service.NewSession()
	key := s.AddIngredient(model.Ingredient{
		ID:       1,
		Name:     name,
		Calories: calories,
		ProteinG: protein,
		CarbsG:   carbs,
		FatG:     fat,
		Measure:  model.MeasureMass,
	})
	if err := s.SetQuantity(key, massG); err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	b, err := service.PromoteSession(st, s, massG, name)
	if err != nil {
		t.Fatalf("promote %s: %v", name, err)
	}
	return b
}

func countRows(t *testing.T, st *store.Store, table string) int {
	t.Helper()
	var n int
	if err := st.DB().QueryRow(`SELECT COUNT(1) FROM ` + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
