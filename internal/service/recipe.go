package service

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/macroprep/macroprep-cli/internal/model"
	"github.com/macroprep/macroprep-cli/internal/store"
)

// SaveRecipe stores the pot's entries as a named template. Saving under an
// existing name replaces that recipe.
func SaveRecipe(st *store.Store, name string, entries []model.SessionEntry, defaultCookedMassG *float64) (model.Recipe, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Recipe{}, fmt.Errorf("%w: recipe name is required", ErrInvalidInput)
	}
	if len(entries) == 0 {
		return model.Recipe{}, fmt.Errorf("%w: recipe needs at least one entry", ErrInvalidInput)
	}
	if defaultCookedMassG != nil && !isUsable(*defaultCookedMassG) {
		defaultCookedMassG = nil
	}
	stored := make([]model.SessionEntry, len(entries))
	for i, e := range entries {
		e.Key = ""
		stored[i] = e
	}
	raw, err := json.Marshal(stored)
	if err != nil {
		return model.Recipe{}, fmt.Errorf("encode recipe entries: %w", err)
	}

	now := time.Now().UTC()
	err = st.Update([]store.Collection{store.Recipes}, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
INSERT INTO recipes(name, entries_json, default_cooked_mass_g, created_at, updated_at)
VALUES(?, ?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
  entries_json = excluded.entries_json,
  default_cooked_mass_g = excluded.default_cooked_mass_g,
  updated_at = excluded.updated_at
`, name, string(raw), nullableFloat(defaultCookedMassG), formatTime(now), formatTime(now))
		if err != nil {
			return fmt.Errorf("save recipe: %w", err)
		}
		return nil
	})
	if err != nil {
		return model.Recipe{}, err
	}
	return ResolveRecipe(st.DB(), name)
}

const recipeColumns = `id, name, entries_json, default_cooked_mass_g, created_at, updated_at`

func scanRecipe(row rowScanner) (model.Recipe, error) {
	var r model.Recipe
	var raw, created, updated string
	var cooked sql.NullFloat64
	if err := row.Scan(&r.ID, &r.Name, &raw, &cooked, &created, &updated); err != nil {
		return model.Recipe{}, err
	}
	if err := json.Unmarshal([]byte(raw), &r.Entries); err != nil {
		return model.Recipe{}, fmt.Errorf("decode recipe %d entries: %w", r.ID, err)
	}
	if cooked.Valid {
		r.DefaultCookedMassG = floatPtr(cooked.Float64)
	}
	r.CreatedAt = parseTime(created)
	r.UpdatedAt = parseTime(updated)
	return r, nil
}

func ListRecipes(db queryer) ([]model.Recipe, error) {
	rows, err := db.Query(`SELECT ` + recipeColumns + ` FROM recipes ORDER BY name COLLATE NOCASE ASC`)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	items := make([]model.Recipe, 0)
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		items = append(items, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipes: %w", err)
	}
	return items, nil
}

func ResolveRecipe(db queryer, identifier string) (model.Recipe, error) {
	identifier = strings.TrimSpace(identifier)
	var row *sql.Row
	if id, err := strconv.ParseInt(identifier, 10, 64); err == nil {
		row = db.QueryRow(`SELECT `+recipeColumns+` FROM recipes WHERE id = ?`, id)
	} else {
		row = db.QueryRow(`SELECT `+recipeColumns+` FROM recipes WHERE name = ? COLLATE NOCASE`, identifier)
	}
	r, err := scanRecipe(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Recipe{}, fmt.Errorf("%w: recipe %q", ErrNotFound, identifier)
		}
		return model.Recipe{}, fmt.Errorf("resolve recipe %q: %w", identifier, err)
	}
	return r, nil
}

func DeleteRecipe(st *store.Store, identifier string) error {
	r, err := ResolveRecipe(st.DB(), identifier)
	if err != nil {
		return err
	}
	return st.Update([]store.Collection{store.Recipes}, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM recipes WHERE id = ?`, r.ID); err != nil {
			return fmt.Errorf("delete recipe %d: %w", r.ID, err)
		}
		return nil
	})
}

// LoadRecipe appends the recipe's entries to session and returns its
// default cooked mass (0 when unset). An entry whose batch or ingredient no
// longer exists keeps its nutrient snapshot but loses the link, so logging
// the pot never draws on a batch that is gone.
func LoadRecipe(db queryer, r model.Recipe, session *Session) (float64, error) {
	entries := make([]model.SessionEntry, len(r.Entries))
	for i, e := range r.Entries {
		if e.BatchID != nil {
			if _, err := GetBatch(db, *e.BatchID); err != nil {
				if !errors.Is(err, ErrNotFound) {
					return 0, err
				}
				e.BatchID = nil
			}
		}
		if e.IngredientID != nil {
			if _, err := ResolveIngredient(db, strconv.FormatInt(*e.IngredientID, 10)); err != nil {
				if !errors.Is(err, ErrNotFound) {
					return 0, err
				}
				e.IngredientID = nil
			}
		}
		entries[i] = e
	}
	if err := session.Load(entries); err != nil {
		return 0, err
	}
	if r.DefaultCookedMassG == nil {
		return 0, nil
	}
	return *r.DefaultCookedMassG, nil
}

func nullableFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
