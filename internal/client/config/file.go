package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/gophblog/internal/flagx"
	"github.com/dmitrijs2005/gophblog/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used exclusively for file unmarshalling. Durations go
// through timex.Duration and are copied into the runtime Config afterwards.
type FileConfig struct {
	APIURL         string         `json:"api_url" yaml:"api_url"`
	DatabasePath   string         `json:"database_path" yaml:"database_path"`
	AutosaveDelay  timex.Duration `json:"autosave_delay" yaml:"autosave_delay"`
	RequestTimeout timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	LogLevel       string         `json:"log_level" yaml:"log_level"`
}

// parseFile overlays Config with the values set in the file named by -c or
// -config. Keys missing from the file keep their current value.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlags(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	fc, err := decodeFile(path, data)
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func decodeFile(path string, data []byte) (FileConfig, error) {
	var fc FileConfig

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err := yaml.Unmarshal(data, &fc)
		return fc, err
	default:
		err := json.Unmarshal(data, &fc)
		return fc, err
	}
}

func (fc FileConfig) apply(cfg *Config) {
	if fc.APIURL != "" {
		cfg.APIURL = fc.APIURL
	}
	if fc.DatabasePath != "" {
		cfg.DatabasePath = fc.DatabasePath
	}
	if fc.AutosaveDelay.Duration > 0 {
		cfg.AutosaveDelay = fc.AutosaveDelay.Duration
	}
	if fc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
}
