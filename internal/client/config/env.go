package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvAPIURL         = "GOPHBLOG_API_URL"
	EnvDatabasePath   = "GOPHBLOG_DB_PATH"
	EnvLogLevel       = "GOPHBLOG_LOG_LEVEL"
	EnvAutosaveDelay  = "GOPHBLOG_AUTOSAVE_DELAY"
	EnvRequestTimeout = "GOPHBLOG_REQUEST_TIMEOUT"
)

// dotEnvFile is loaded, if present, before the environment is read.
// Variables already set in the process win over the file.
var dotEnvFile = ".env"

// parseEnv overlays Config with GOPHBLOG_* environment variables.
func parseEnv(cfg *Config) {
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	if v, ok := os.LookupEnv(EnvAPIURL); ok && v != "" {
		cfg.APIURL = v
	}
	if v, ok := os.LookupEnv(EnvDatabasePath); ok && v != "" {
		cfg.DatabasePath = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvAutosaveDelay); ok && v != "" {
		cfg.AutosaveDelay = mustDuration(EnvAutosaveDelay, v)
	}
	if v, ok := os.LookupEnv(EnvRequestTimeout); ok && v != "" {
		cfg.RequestTimeout = mustDuration(EnvRequestTimeout, v)
	}
}

func mustDuration(name, v string) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(name + ": " + err.Error())
	}
	return d
}
