package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvAPIURL   = "FRAUDSHIELD_API_URL"
	EnvDB       = "FRAUDSHIELD_DB"
	EnvTimeout  = "FRAUDSHIELD_TIMEOUT"
	EnvLogEnv   = "FRAUDSHIELD_LOG_ENV"
	EnvLogLevel = "FRAUDSHIELD_LOG_LEVEL"
)

// parseEnv overlays cfg with FRAUDSHIELD_* variables. Values from envFile
// apply only where the process environment does not set the variable. A
// missing envFile is ignored.
func parseEnv(cfg *Config, envFile string) error {
	vars := map[string]string{}
	if envFile != "" {
		m, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			vars = m
		case errors.Is(err, fs.ErrNotExist):
		default:
			return fmt.Errorf("read env file %s: %w", envFile, err)
		}
	}

	lookup := func(k string) string {
		if v, ok := os.LookupEnv(k); ok {
			return v
		}
		return vars[k]
	}

	overlay(&cfg.APIURL, lookup(EnvAPIURL))
	overlay(&cfg.DBPath, lookup(EnvDB))
	overlay(&cfg.LogEnv, lookup(EnvLogEnv))
	overlay(&cfg.LogLevel, lookup(EnvLogLevel))

	if v := lookup(EnvTimeout); v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		cfg.Timeout = d
	}
	return nil
}

// parseTimeout accepts "15s" style durations or a bare number of seconds.
func parseTimeout(v string) (time.Duration, error) {
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(v)
}
