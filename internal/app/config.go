package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvDBPath    = "MACROPREP_DB"
	EnvLogLevel  = "MACROPREP_LOG_LEVEL"
	EnvLogFormat = "MACROPREP_LOG_FORMAT"
)

type Config struct {
	DBPath    string
	LogLevel  string
	LogFormat string
}

// LoadConfig reads an optional .env file from the working directory and then
// the process environment. Values already set in the environment win.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		DBPath:    strings.TrimSpace(os.Getenv(EnvDBPath)),
		LogLevel:  strings.TrimSpace(os.Getenv(EnvLogLevel)),
		LogFormat: strings.TrimSpace(os.Getenv(EnvLogFormat)),
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.DBPath == "" {
		path, err := DefaultDBPath()
		if err != nil {
			return Config{}, err
		}
		cfg.DBPath = path
	}
	return cfg, nil
}

// LoadConfigFile applies KEY=value pairs from path on top of the environment.
func LoadConfigFile(path string) (Config, error) {
	if err := godotenv.Overload(path); err != nil {
		return Config{}, err
	}
	return LoadConfig()
}
