// Package config loads runtime configuration for the blog CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file (see parseFile) selected via flags: -c or -config.
//     Files ending in .yaml or .yml are read as YAML, anything else as JSON.
//  3. Environment variables (see parseEnv), after loading a .env file from
//     the working directory if one exists.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the blog API
//	-d string   path of the local SQLite database
//	-t int      request timeout (seconds)
//	-l string   log level
//
// Environment
//
//	GOPHBLOG_API_URL, GOPHBLOG_DB_PATH, GOPHBLOG_LOG_LEVEL,
//	GOPHBLOG_AUTOSAVE_DELAY ("2s"), GOPHBLOG_REQUEST_TIMEOUT ("30s")
//
// # File schema
//
// Durations use timex.Duration, so they can be strings like "2s" or integer
// nanoseconds:
//
//	{
//	  "api_url": "http://localhost:5000",
//	  "database_path": "gophblog.db",
//	  "autosave_delay": "2s",
//	  "request_timeout": "30s",
//	  "log_level": "info"
//	}
//
// Invalid files, variables or flags panic; the CLI cannot start with a
// half-read configuration.
package config
