package macroprep

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/macroprep/macroprep-cli/internal/service"
	"github.com/macroprep/macroprep-cli/internal/store"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export, import, and snapshot your data",
}

var (
	backupOut    string
	backupIn     string
	backupDir    string
	restoreFile  string
	restoreForce bool
)

var backupExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every collection as JSON (stdout when --out is empty)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			snapshot, err := service.ExportSnapshot(st)
			if err != nil {
				return err
			}
			if strings.TrimSpace(backupOut) == "" {
				return service.WriteBackup(cmd.OutOrStdout(), snapshot)
			}
			f, err := os.Create(backupOut)
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}
			defer f.Close()
			if err := service.WriteBackup(f, snapshot); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported data to %s\n", backupOut)
			return nil
		})
	},
}

var backupImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Replace all data with a JSON export",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(backupIn) == "" {
			return fmt.Errorf("--in is required")
		}
		f, err := os.Open(backupIn)
		if err != nil {
			return fmt.Errorf("open import file: %w", err)
		}
		defer f.Close()
		snapshot, err := service.DecodeBackup(f)
		if err != nil {
			return err
		}
		return withStore(func(st *store.Store) error {
			if err := service.RestoreSnapshot(st, snapshot); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d ingredients, %d batches, %d recipes, %d logs\n",
				len(snapshot.Ingredients), len(snapshot.Fridge), len(snapshot.Recipes), len(snapshot.Logs))
			return nil
		})
	},
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage byte-level database snapshots",
}

func snapshotDir(db string) string {
	if backupDir != "" {
		return backupDir
	}
	return filepath.Join(filepath.Dir(db), "backups")
}

var snapshotCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Copy the database file with a checksum",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := resolveDBPath()
		if err != nil {
			return err
		}
		out := backupOut
		if out == "" {
			out = filepath.Join(snapshotDir(db), fmt.Sprintf("macroprep-%s.db", time.Now().Format("20060102-150405")))
		}
		info, err := service.CreateFileSnapshot(db, out)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created snapshot: %s\n", info.Path)
		fmt.Fprintf(cmd.OutOrStdout(), "Checksum: %s\n", info.Checksum)
		return nil
	},
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := resolveDBPath()
		if err != nil {
			return err
		}
		items, err := service.ListFileSnapshots(snapshotDir(db))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "FILE\tSIZE\tCREATED\tCHECKSUM")
		for _, it := range items {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\t%s\n", it.Path, it.SizeBytes, it.CreatedAt.Format(time.RFC3339), it.Checksum)
		}
		return nil
	},
}

var snapshotRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore the database file from a snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		if restoreFile == "" {
			return fmt.Errorf("--file is required")
		}
		db, err := resolveDBPath()
		if err != nil {
			return err
		}
		if err := service.RestoreFileSnapshot(restoreFile, db, restoreForce); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Restored snapshot from %s\n", restoreFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupExportCmd, backupImportCmd, snapshotCmd)
	snapshotCmd.AddCommand(snapshotCreateCmd, snapshotListCmd, snapshotRestoreCmd)

	backupExportCmd.Flags().StringVar(&backupOut, "out", "", "Output JSON file path")
	backupImportCmd.Flags().StringVar(&backupIn, "in", "", "Input JSON file path")
	snapshotCreateCmd.Flags().StringVar(&backupOut, "out", "", "Snapshot output file path")
	snapshotCmd.PersistentFlags().StringVar(&backupDir, "dir", "", "Snapshot directory (default: alongside DB under backups/)")
	snapshotRestoreCmd.Flags().StringVar(&restoreFile, "file", "", "Snapshot .db file path")
	snapshotRestoreCmd.Flags().BoolVar(&restoreForce, "force", false, "Overwrite existing DB if present")
}
