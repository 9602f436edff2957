package macroprep

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/macroprep/macroprep-cli/internal/app"
)

var (
	dbPath   string
	logLevel string
	envFile  string

	cfg    app.Config
	logger = app.DiscardLogger()
)

var rootCmd = &cobra.Command{
	Use:           "macroprep",
	Short:         "macroprep tracks meal prep batches and daily macros from your terminal",
	Long:          "macroprep is a local-first meal prep ledger: compose pots from ingredients, keep cooked batches in a fridge, and log portions against calorie and protein targets.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadRuntime()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportError prints err once: through the logger when it writes somewhere
// at error level, otherwise plainly to w.
func reportError(w io.Writer, err error) {
	if logger.Out != io.Discard && logger.IsLevelEnabled(logrus.ErrorLevel) {
		app.LogError(logger, "cmd", rootCmd.Name(), "execute", nil, err)
		return
	}
	fmt.Fprintln(w, err)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database (default $MACROPREP_DB or the user config dir)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default $MACROPREP_LOG_LEVEL or warn)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Load KEY=value settings from this file")
}

// loadRuntime resolves configuration and the logger for the current run.
// Flags win over the environment.
func loadRuntime() error {
	var err error
	if envFile != "" {
		cfg, err = app.LoadConfigFile(envFile)
	} else {
		cfg, err = app.LoadConfig()
	}
	if err != nil {
		return err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	l, err := app.NewLogger(cfg)
	if err != nil {
		return err
	}
	logger = l
	logger.WithFields(logrus.Fields{"db": cfg.DBPath, "level": cfg.LogLevel}).Debug("runtime configured")
	return nil
}

func resolveDBPath() (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, nil
	}
	if dbPath != "" {
		return dbPath, nil
	}
	return app.DefaultDBPath()
}
