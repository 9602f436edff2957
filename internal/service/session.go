package service

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/macroprep/macroprep-cli/internal/model"
)

// Session is the in-progress pot. It is owned by one workflow at a time and
// is cleared when promoted to the fridge or logged.
type Session struct {
	entries []model.SessionEntry
}

func NewSession() *Session {
	return &Session{}
}

// AddIngredient snapshots a catalog entry into the pot. Pieces default to one
// piece, everything else to 100 g/ml.
func (s *Session) AddIngredient(ing model.Ingredient) string {
	id := ing.ID
	e := model.SessionEntry{
		Key:          uuid.NewString(),
		Name:         ing.Name,
		IngredientID: &id,
		Calories:     ing.Calories,
		ProteinG:     ing.ProteinG,
		CarbsG:       ing.CarbsG,
		FatG:         ing.FatG,
		Measure:      ing.Measure,
		Quantity:     100,
	}
	if ing.Measure == model.MeasurePiece {
		e.Quantity = 1
		if ing.PieceMassG != nil {
			e.PieceMassG = *ing.PieceMassG
		}
	}
	s.entries = append(s.entries, e)
	return e.Key
}

// AddBatch snapshots a fridge batch into the pot as a 100 g draw.
func (s *Session) AddBatch(b model.FridgeBatch) string {
	id := b.ID
	e := model.SessionEntry{
		Key:      uuid.NewString(),
		Name:     b.Name,
		BatchID:  &id,
		Calories: b.Calories,
		ProteinG: b.ProteinG,
		CarbsG:   b.CarbsG,
		FatG:     b.FatG,
		Measure:  model.MeasureMass,
		Quantity: 100,
	}
	s.entries = append(s.entries, e)
	return e.Key
}

// SetQuantity stores q for the entry; unusable values become 0.
func (s *Session) SetQuantity(key string, q float64) error {
	if !isUsable(q) {
		q = 0
	}
	for i := range s.entries {
		if s.entries[i].Key == key {
			s.entries[i].Quantity = q
			return nil
		}
	}
	return fmt.Errorf("%w: pot entry %s", ErrNotFound, key)
}

func (s *Session) Remove(key string) bool {
	for i := range s.entries {
		if s.entries[i].Key == key {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Session) Entries() []model.SessionEntry {
	out := make([]model.SessionEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Session) Len() int { return len(s.entries) }

func (s *Session) Clear() { s.entries = nil }

// Load appends entries (typically from a recipe) under fresh keys.
func (s *Session) Load(entries []model.SessionEntry) error {
	fresh := make([]model.SessionEntry, 0, len(entries))
	for _, e := range entries {
		if e.IngredientID != nil && e.BatchID != nil {
			return fmt.Errorf("%w: entry %q names both an ingredient and a batch", ErrInvalidInput, e.Name)
		}
		if !isUsable(e.Quantity) {
			e.Quantity = 0
		}
		e.Key = uuid.NewString()
		fresh = append(fresh, e)
	}
	s.entries = append(s.entries, fresh...)
	return nil
}

// FirstBatchID is the batch a logged pot links to for refunds.
func (s *Session) FirstBatchID() *int64 {
	for _, e := range s.entries {
		if e.BatchID != nil {
			id := *e.BatchID
			return &id
		}
	}
	return nil
}

type BatchDraw struct {
	BatchID int64
	MassG   float64
}

// BatchDraws lists how much the pot takes from each batch, in the order the
// batches first appear. Entries drawing on the same batch are summed.
func (s *Session) BatchDraws() []BatchDraw {
	var out []BatchDraw
	index := map[int64]int{}
	for _, e := range s.entries {
		if e.BatchID == nil || !isUsable(e.Quantity) {
			continue
		}
		if i, ok := index[*e.BatchID]; ok {
			out[i].MassG += e.Quantity
			continue
		}
		index[*e.BatchID] = len(out)
		out = append(out, BatchDraw{BatchID: *e.BatchID, MassG: e.Quantity})
	}
	return out
}
