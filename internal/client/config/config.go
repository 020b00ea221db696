package config

import "time"

// Config holds runtime settings for the blog CLI.
//
// Fields:
//   - APIURL: base address of the blog backend's REST API.
//   - DatabasePath: SQLite file holding the session token and the draft.
//   - AutosaveDelay: quiet period before the draft is saved.
//   - RequestTimeout: per-request HTTP deadline.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	APIURL         string
	DatabasePath   string
	AutosaveDelay  time.Duration
	RequestTimeout time.Duration
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = "http://localhost:5000"
	c.DatabasePath = "gophblog.db"
	c.AutosaveDelay = 2 * time.Second
	c.RequestTimeout = 30 * time.Second
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file, the environment and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
