package service

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/macroprep/macroprep-cli/internal/store"
)

// FileSnapshot is a byte copy of the SQLite file with a sidecar checksum.
type FileSnapshot struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	CreatedAt time.Time `json:"created_at"`
	SizeBytes int64     `json:"size_bytes"`
}

type DoctorReport struct {
	InvalidRecipes    int `json:"invalid_recipes"`
	InvalidLogDates   int `json:"invalid_log_dates"`
	UnlinkedRefunds   int `json:"unlinked_refunds"`
	RemovedRecipeRows int `json:"removed_recipe_rows,omitempty"`
}

func (r DoctorReport) Healthy() bool {
	return r.InvalidRecipes == 0 && r.InvalidLogDates == 0
}

func CreateFileSnapshot(dbPath, outPath string) (FileSnapshot, error) {
	if strings.TrimSpace(dbPath) == "" {
		return FileSnapshot{}, fmt.Errorf("db path is required")
	}
	if strings.TrimSpace(outPath) == "" {
		return FileSnapshot{}, fmt.Errorf("snapshot output path is required")
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return FileSnapshot{}, fmt.Errorf("create snapshot directory: %w", err)
	}
	if err := copyFile(dbPath, outPath); err != nil {
		return FileSnapshot{}, err
	}
	checksum, err := fileSHA256(outPath)
	if err != nil {
		return FileSnapshot{}, err
	}
	if err := os.WriteFile(outPath+".sha256", []byte(checksum+"\n"), 0o644); err != nil {
		return FileSnapshot{}, fmt.Errorf("write checksum file: %w", err)
	}
	info, err := os.Stat(outPath)
	if err != nil {
		return FileSnapshot{}, fmt.Errorf("stat snapshot: %w", err)
	}
	return FileSnapshot{Path: outPath, Checksum: checksum, CreatedAt: info.ModTime(), SizeBytes: info.Size()}, nil
}

// RestoreFileSnapshot copies a snapshot over dbPath after verifying its
// checksum when a sidecar exists.
func RestoreFileSnapshot(snapshotPath, dbPath string, force bool) error {
	if strings.TrimSpace(snapshotPath) == "" || strings.TrimSpace(dbPath) == "" {
		return fmt.Errorf("snapshot path and db path are required")
	}
	if !force {
		if _, err := os.Stat(dbPath); err == nil {
			return fmt.Errorf("target db already exists; use --force to overwrite")
		}
	}
	if expected, err := os.ReadFile(snapshotPath + ".sha256"); err == nil {
		actual, err := fileSHA256(snapshotPath)
		if err != nil {
			return err
		}
		if strings.TrimSpace(string(expected)) != actual {
			return fmt.Errorf("%w: snapshot checksum mismatch", ErrMalformedBackup)
		}
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	return copyFile(snapshotPath, dbPath)
}

func ListFileSnapshots(dir string) ([]FileSnapshot, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read snapshot dir: %w", err)
	}
	out := make([]FileSnapshot, 0)
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".db") {
			continue
		}
		full := filepath.Join(dir, f.Name())
		info, err := os.Stat(full)
		if err != nil {
			continue
		}
		checksum := ""
		if b, err := os.ReadFile(full + ".sha256"); err == nil {
			checksum = strings.TrimSpace(string(b))
		}
		out = append(out, FileSnapshot{Path: full, Checksum: checksum, CreatedAt: info.ModTime(), SizeBytes: info.Size()})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// RunDoctor inspects the ledger. Unlinked refunds (logs whose batch has
// been used up) are informational: deleting such a log recreates the batch.
func RunDoctor(st *store.Store, fix bool) (DoctorReport, error) {
	db := st.DB()
	report := DoctorReport{}
	if err := db.QueryRow(`
SELECT COUNT(1) FROM logs l
LEFT JOIN fridge f ON f.id = l.source_batch_id
WHERE l.source_batch_id IS NOT NULL AND f.id IS NULL`).Scan(&report.UnlinkedRefunds); err != nil {
		return report, fmt.Errorf("doctor link check: %w", err)
	}

	dateRows, err := db.Query(`SELECT log_date FROM logs`)
	if err != nil {
		return report, fmt.Errorf("doctor date query: %w", err)
	}
	for dateRows.Next() {
		var d string
		if err := dateRows.Scan(&d); err != nil {
			_ = dateRows.Close()
			return report, fmt.Errorf("doctor date scan: %w", err)
		}
		if _, err := time.Parse(dateLayout, d); err != nil {
			report.InvalidLogDates++
		}
	}
	_ = dateRows.Close()

	rows, err := db.Query(`SELECT id, entries_json FROM recipes`)
	if err != nil {
		return report, fmt.Errorf("doctor recipe query: %w", err)
	}
	invalidIDs := make([]int64, 0)
	for rows.Next() {
		var id int64
		var raw string
		if err := rows.Scan(&id, &raw); err != nil {
			_ = rows.Close()
			return report, fmt.Errorf("doctor recipe scan: %w", err)
		}
		if !json.Valid([]byte(raw)) {
			report.InvalidRecipes++
			invalidIDs = append(invalidIDs, id)
		}
	}
	_ = rows.Close()

	if fix && len(invalidIDs) > 0 {
		err := st.Update([]store.Collection{store.Recipes}, func(tx *sql.Tx) error {
			for _, id := range invalidIDs {
				if _, err := tx.Exec(`DELETE FROM recipes WHERE id = ?`, id); err != nil {
					return fmt.Errorf("doctor remove recipe %d: %w", id, err)
				}
				report.RemovedRecipeRows++
			}
			return nil
		})
		if err != nil {
			return report, err
		}
	}
	return report, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source file: %w", err)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination file: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy file: %w", err)
	}
	if err := out.Sync(); err != nil {
		return fmt.Errorf("sync destination file: %w", err)
	}
	return nil
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for checksum: %w", err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
