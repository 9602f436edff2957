package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/macroprep/macroprep-cli/internal/model"
	"github.com/macroprep/macroprep-cli/internal/store"
)

const BackupVersion = 1

// Backup is the on-disk snapshot. Every array except Recipes must be
// present, even when empty.
type Backup struct {
	Version     int                    `json:"version" validate:"gte=1"`
	ExportedAt  time.Time              `json:"exported_at"`
	User        []model.UserProfile    `json:"user" validate:"required,dive"`
	Ingredients []model.Ingredient     `json:"ingredients" validate:"required,dive"`
	Fridge      []model.FridgeBatch    `json:"fridge" validate:"required,dive"`
	Recipes     []model.Recipe         `json:"recipes,omitempty" validate:"omitempty,dive"`
	Logs        []model.ConsumptionLog `json:"logs" validate:"required,dive"`
}

func ExportSnapshot(st *store.Store) (*Backup, error) {
	db := st.DB()
	out := &Backup{Version: BackupVersion, ExportedAt: time.Now().UTC()}

	out.User = []model.UserProfile{}
	profile, err := GetProfile(db)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		out.User = append(out.User, *profile)
	}
	if out.Ingredients, err = ListIngredients(db, ""); err != nil {
		return nil, err
	}
	if out.Fridge, err = ListFridge(db); err != nil {
		return nil, err
	}
	if out.Recipes, err = ListRecipes(db); err != nil {
		return nil, err
	}
	if out.Logs, err = ListLogs(db, ""); err != nil {
		return nil, err
	}
	return out, nil
}

func WriteBackup(w io.Writer, b *Backup) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}
	return nil
}

// DecodeBackup parses and shape-checks a backup without touching the store.
func DecodeBackup(r io.Reader) (*Backup, error) {
	var b Backup
	dec := json.NewDecoder(r)
	if err := dec.Decode(&b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBackup, err)
	}
	if err := validateStruct(ErrMalformedBackup, b); err != nil {
		return nil, err
	}
	for _, batch := range b.Fridge {
		if batch.CurrentMassG > batch.TotalMassG {
			return nil, fmt.Errorf("%w: fridge batch %d holds more than its total", ErrMalformedBackup, batch.ID)
		}
	}
	return &b, nil
}

// RestoreSnapshot replaces every collection with the backup's contents in a
// single transaction, keeping record ids so log-to-batch links survive.
func RestoreSnapshot(st *store.Store, b *Backup) error {
	if b == nil {
		return fmt.Errorf("%w: empty backup", ErrMalformedBackup)
	}
	err := st.Update(store.All, func(tx *sql.Tx) error {
		for _, table := range []string{"logs", "recipes", "fridge", "ingredients", "user_profile"} {
			if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		for _, p := range b.User {
			if _, err := insertProfile(tx, p); err != nil {
				return err
			}
		}
		for _, ing := range b.Ingredients {
			if err := restoreIngredient(tx, ing); err != nil {
				return err
			}
		}
		for _, batch := range b.Fridge {
			if _, err := insertBatch(tx, batch); err != nil {
				return err
			}
		}
		for _, r := range b.Recipes {
			if err := restoreRecipe(tx, r); err != nil {
				return err
			}
		}
		for _, l := range b.Logs {
			if _, err := insertLog(tx, l); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	st.Logger().WithField("logs", len(b.Logs)).Info("backup restored")
	return nil
}

func restoreIngredient(tx *sql.Tx, ing model.Ingredient) error {
	category := ing.Category
	if category == "" {
		category = "other"
	}
	_, err := tx.Exec(`
INSERT INTO ingredients(id, name, category, calories, protein_g, carbs_g, fat_g, measure, piece_mass_g)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		nullableID(ing.ID), ing.Name, category, ing.Calories, ing.ProteinG, ing.CarbsG, ing.FatG, string(ing.Measure), nullableFloat(ing.PieceMassG))
	if err != nil {
		return fmt.Errorf("restore ingredient %q: %w", ing.Name, err)
	}
	return nil
}

func restoreRecipe(tx *sql.Tx, r model.Recipe) error {
	entries := r.Entries
	if entries == nil {
		entries = []model.SessionEntry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode recipe %q entries: %w", r.Name, err)
	}
	created, updated := r.CreatedAt, r.UpdatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	if updated.IsZero() {
		updated = created
	}
	_, err = tx.Exec(`
INSERT INTO recipes(id, name, entries_json, default_cooked_mass_g, created_at, updated_at)
VALUES(?, ?, ?, ?, ?, ?)`,
		nullableID(r.ID), r.Name, string(raw), nullableFloat(r.DefaultCookedMassG), formatTime(created), formatTime(updated))
	if err != nil {
		return fmt.Errorf("restore recipe %q: %w", r.Name, err)
	}
	return nil
}

func nullableID(id int64) any {
	if id <= 0 {
		return nil
	}
	return id
}
