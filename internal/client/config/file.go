package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is a DTO used exclusively for file unmarshalling. Empty fields
// leave the corresponding Config value untouched.
type fileConfig struct {
	APIURL   string   `json:"api_url" yaml:"api_url"`
	DBPath   string   `json:"db_path" yaml:"db_path"`
	Timeout  Duration `json:"timeout" yaml:"timeout"`
	LogEnv   string   `json:"log_env" yaml:"log_env"`
	LogLevel string   `json:"log_level" yaml:"log_level"`
}

// parseFile overlays cfg with values from path. An empty path is a no-op.
func parseFile(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	overlay(&cfg.APIURL, fc.APIURL)
	overlay(&cfg.DBPath, fc.DBPath)
	overlay(&cfg.LogEnv, fc.LogEnv)
	overlay(&cfg.LogLevel, fc.LogLevel)
	if fc.Timeout != 0 {
		cfg.Timeout = time.Duration(fc.Timeout)
	}
	return nil
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
