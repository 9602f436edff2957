package service

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/macroprep/macroprep-cli/internal/model"
	"github.com/macroprep/macroprep-cli/internal/store"
)

const batchColumns = `id, name, calories, protein_g, carbs_g, fat_g, measure, total_mass_g, current_mass_g, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBatch(row rowScanner) (model.FridgeBatch, error) {
	var b model.FridgeBatch
	var measure, created string
	if err := row.Scan(&b.ID, &b.Name, &b.Calories, &b.ProteinG, &b.CarbsG, &b.FatG, &measure, &b.TotalMassG, &b.CurrentMassG, &created); err != nil {
		return model.FridgeBatch{}, err
	}
	b.Measure = model.MeasureKind(measure)
	b.CreatedAt = parseTime(created)
	return b, nil
}

// ListFridge returns batches oldest first, which is also the tie order the
// strategy advisor relies on.
func ListFridge(db queryer) ([]model.FridgeBatch, error) {
	rows, err := db.Query(`SELECT ` + batchColumns + ` FROM fridge ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list fridge: %w", err)
	}
	defer rows.Close()

	items := make([]model.FridgeBatch, 0)
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan fridge batch: %w", err)
		}
		items = append(items, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fridge: %w", err)
	}
	return items, nil
}

func GetBatch(db queryer, id int64) (model.FridgeBatch, error) {
	b, err := scanBatch(db.QueryRow(`SELECT `+batchColumns+` FROM fridge WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.FridgeBatch{}, fmt.Errorf("%w: batch %d", ErrNotFound, id)
		}
		return model.FridgeBatch{}, fmt.Errorf("get batch %d: %w", id, err)
	}
	return b, nil
}

// ResolveBatch accepts a numeric id or a case-insensitive batch name. A name
// shared by several batches resolves to the oldest.
func ResolveBatch(db queryer, identifier string) (model.FridgeBatch, error) {
	identifier = strings.TrimSpace(identifier)
	if id, err := strconv.ParseInt(identifier, 10, 64); err == nil {
		return GetBatch(db, id)
	}
	b, err := scanBatch(db.QueryRow(`SELECT `+batchColumns+` FROM fridge WHERE lower(name) = ? ORDER BY id ASC LIMIT 1`, normalizeName(identifier)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.FridgeBatch{}, fmt.Errorf("%w: batch %q", ErrNotFound, identifier)
		}
		return model.FridgeBatch{}, fmt.Errorf("resolve batch %q: %w", identifier, err)
	}
	return b, nil
}

// RemainingPercent is how much of the batch is left, 0..100.
func RemainingPercent(b model.FridgeBatch) int {
	if b.TotalMassG <= 0 {
		return 0
	}
	return roundInt(b.CurrentMassG / b.TotalMassG * 100)
}

// DiscardBatch throws a batch away without logging it.
func DiscardBatch(st *store.Store, id int64) error {
	return st.Update([]store.Collection{store.Fridge}, func(tx *sql.Tx) error {
		res, err := tx.Exec(`DELETE FROM fridge WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("discard batch %d: %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("discard batch rows affected: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("%w: batch %d", ErrNotFound, id)
		}
		st.Logger().WithField("batch_id", id).Info("batch discarded")
		return nil
	})
}

func insertBatch(tx queryer, b model.FridgeBatch) (int64, error) {
	measure := b.Measure
	if measure == "" || measure == model.MeasurePiece {
		measure = model.MeasureMass
	}
	var (
		res sql.Result
		err error
	)
	if b.ID > 0 {
		res, err = tx.Exec(`
INSERT INTO fridge(id, name, calories, protein_g, carbs_g, fat_g, measure, total_mass_g, current_mass_g, created_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			b.ID, b.Name, b.Calories, b.ProteinG, b.CarbsG, b.FatG, string(measure), b.TotalMassG, b.CurrentMassG, formatTime(b.CreatedAt))
	} else {
		res, err = tx.Exec(`
INSERT INTO fridge(name, calories, protein_g, carbs_g, fat_g, measure, total_mass_g, current_mass_g, created_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			b.Name, b.Calories, b.ProteinG, b.CarbsG, b.FatG, string(measure), b.TotalMassG, b.CurrentMassG, formatTime(b.CreatedAt))
	}
	if err != nil {
		return 0, fmt.Errorf("insert batch: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve batch id: %w", err)
	}
	return id, nil
}
