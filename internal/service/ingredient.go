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

type IngredientInput struct {
	Name       string            `validate:"required,max=120"`
	Category   string            `validate:"max=40"`
	Calories   float64           `validate:"gte=0"`
	ProteinG   float64           `validate:"gte=0"`
	CarbsG     float64           `validate:"gte=0"`
	FatG       float64           `validate:"gte=0"`
	Measure    model.MeasureKind `validate:"required,oneof=mass volume piece"`
	PieceMassG float64           `validate:"required_if=Measure piece,gte=0"`
}

func (in IngredientInput) normalized() IngredientInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = normalizeName(in.Category)
	if in.Category == "" {
		in.Category = "other"
	}
	if in.Measure == "" {
		in.Measure = model.MeasureMass
	}
	return in
}

func (in IngredientInput) pieceMass() any {
	if in.Measure != model.MeasurePiece {
		return nil
	}
	return in.PieceMassG
}

func CreateIngredient(st *store.Store, in IngredientInput) (int64, error) {
	in = in.normalized()
	if err := validateStruct(ErrInvalidInput, in); err != nil {
		return 0, err
	}
	var id int64
	err := st.Update([]store.Collection{store.Ingredients}, func(tx *sql.Tx) error {
		var err error
		id, err = insertIngredient(tx, in)
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func insertIngredient(tx queryer, in IngredientInput) (int64, error) {
	res, err := tx.Exec(`
INSERT INTO ingredients(name, category, calories, protein_g, carbs_g, fat_g, measure, piece_mass_g)
VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
		in.Name, in.Category, in.Calories, in.ProteinG, in.CarbsG, in.FatG, string(in.Measure), in.pieceMass())
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return 0, fmt.Errorf("%w: ingredient %q already exists", ErrInvalidInput, in.Name)
		}
		return 0, fmt.Errorf("create ingredient: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve ingredient id: %w", err)
	}
	return id, nil
}

const ingredientColumns = `id, name, category, calories, protein_g, carbs_g, fat_g, measure, piece_mass_g`

func scanIngredient(row rowScanner) (model.Ingredient, error) {
	var ing model.Ingredient
	var measure string
	var piece sql.NullFloat64
	if err := row.Scan(&ing.ID, &ing.Name, &ing.Category, &ing.Calories, &ing.ProteinG, &ing.CarbsG, &ing.FatG, &measure, &piece); err != nil {
		return model.Ingredient{}, err
	}
	ing.Measure = model.MeasureKind(measure)
	if piece.Valid {
		ing.PieceMassG = floatPtr(piece.Float64)
	}
	return ing, nil
}

// ListIngredients returns the catalog by name, filtered by a
// case-insensitive substring when query is set.
func ListIngredients(db queryer, query string) ([]model.Ingredient, error) {
	sqlText := `SELECT ` + ingredientColumns + ` FROM ingredients`
	args := []any{}
	if q := normalizeName(query); q != "" {
		sqlText += ` WHERE lower(name) LIKE ?`
		args = append(args, "%"+q+"%")
	}
	sqlText += ` ORDER BY name COLLATE NOCASE ASC`

	rows, err := db.Query(sqlText, args...)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	defer rows.Close()

	items := make([]model.Ingredient, 0)
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		items = append(items, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ingredients: %w", err)
	}
	return items, nil
}

func ResolveIngredient(db queryer, identifier string) (model.Ingredient, error) {
	identifier = strings.TrimSpace(identifier)
	var row *sql.Row
	if id, err := strconv.ParseInt(identifier, 10, 64); err == nil {
		row = db.QueryRow(`SELECT `+ingredientColumns+` FROM ingredients WHERE id = ?`, id)
	} else {
		row = db.QueryRow(`SELECT `+ingredientColumns+` FROM ingredients WHERE name = ? COLLATE NOCASE`, identifier)
	}
	ing, err := scanIngredient(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Ingredient{}, fmt.Errorf("%w: ingredient %q", ErrNotFound, identifier)
		}
		return model.Ingredient{}, fmt.Errorf("resolve ingredient %q: %w", identifier, err)
	}
	return ing, nil
}

func UpdateIngredient(st *store.Store, identifier string, in IngredientInput) error {
	in = in.normalized()
	if err := validateStruct(ErrInvalidInput, in); err != nil {
		return err
	}
	current, err := ResolveIngredient(st.DB(), identifier)
	if err != nil {
		return err
	}
	return st.Update([]store.Collection{store.Ingredients}, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
UPDATE ingredients
SET name = ?, category = ?, calories = ?, protein_g = ?, carbs_g = ?, fat_g = ?, measure = ?, piece_mass_g = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?`,
			in.Name, in.Category, in.Calories, in.ProteinG, in.CarbsG, in.FatG, string(in.Measure), in.pieceMass(), current.ID)
		if err != nil {
			return fmt.Errorf("update ingredient %d: %w", current.ID, err)
		}
		return nil
	})
}

func DeleteIngredient(st *store.Store, identifier string) error {
	current, err := ResolveIngredient(st.DB(), identifier)
	if err != nil {
		return err
	}
	return st.Update([]store.Collection{store.Ingredients}, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM ingredients WHERE id = ?`, current.ID); err != nil {
			return fmt.Errorf("delete ingredient %d: %w", current.ID, err)
		}
		return nil
	})
}

// SeedIngredients adds every master ingredient whose name is not yet in the
// catalog and reports how many were added. User edits to seeded rows are
// left alone.
func SeedIngredients(st *store.Store) (int, error) {
	added := 0
	err := st.Update([]store.Collection{store.Ingredients}, func(tx *sql.Tx) error {
		existing, err := ListIngredients(tx, "")
		if err != nil {
			return err
		}
		names := make(map[string]bool, len(existing))
		for _, ing := range existing {
			names[normalizeName(ing.Name)] = true
		}
		for _, in := range masterIngredients {
			if names[normalizeName(in.Name)] {
				continue
			}
			if _, err := insertIngredient(tx, in.normalized()); err != nil {
				return err
			}
			added++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if added > 0 {
		st.Logger().WithField("added", added).Info("catalog seeded")
	}
	return added, nil
}

// PantryItem is one search hit: a fridge batch or a catalog ingredient.
type PantryItem struct {
	Name       string             `json:"name"`
	Batch      *model.FridgeBatch `json:"batch,omitempty"`
	Ingredient *model.Ingredient  `json:"ingredient,omitempty"`
}

// SearchPantry matches fridge batches first, then catalog ingredients whose
// name is not already covered by a batch.
func SearchPantry(db queryer, query string) ([]PantryItem, error) {
	q := normalizeName(query)
	batches, err := ListFridge(db)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	out := make([]PantryItem, 0)
	for i := range batches {
		b := batches[i]
		key := normalizeName(b.Name)
		if !strings.Contains(key, q) || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, PantryItem{Name: b.Name, Batch: &b})
	}
	ingredients, err := ListIngredients(db, q)
	if err != nil {
		return nil, err
	}
	for i := range ingredients {
		ing := ingredients[i]
		key := normalizeName(ing.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, PantryItem{Name: ing.Name, Ingredient: &ing})
	}
	return out, nil
}
