package config

import (
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/fraudshield/internal/flagx"
)

// Config holds runtime settings for the FraudShield CLI.
//
// Fields:
//   - APIURL: base URL of the classification backend.
//   - DBPath: sqlite file holding the persisted credential.
//   - Timeout: per-request timeout for backend calls.
//   - LogEnv: "dev" for console logs, "prod" for JSON.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	APIURL   string
	DBPath   string
	Timeout  time.Duration
	LogEnv   string
	LogLevel string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = "http://127.0.0.1:8000"
	c.DBPath = "fraudshield.db"
	c.Timeout = 30 * time.Second
	c.LogEnv = "dev"
	c.LogLevel = "info"
}

// Flags lists every flag consumed by Load, so the command tree can strip
// them before parsing its own.
func Flags() []string {
	fs := append([]string{}, flagx.ConfigFileFlags...)
	fs = append(fs, flagx.EnvFileFlags...)
	return append(fs, configFlags...)
}

// Load builds a Config from args (without the program name): defaults, then
// environment (seeded from the dotenv file), then the config file, then
// flags. Later sources take precedence over earlier ones.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, flagx.EnvFileFlag(args)); err != nil {
		return nil, err
	}
	if err := parseFile(cfg, flagx.ConfigFileFlag(args)); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over os.Args.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Validate rejects settings the client cannot run with.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("config: api url is empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("config: db path is empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("config: timeout must be positive, got %s", c.Timeout)
	}
	switch c.LogEnv {
	case "dev", "prod":
	default:
		return fmt.Errorf("config: log env must be dev or prod, got %q", c.LogEnv)
	}
	return nil
}
