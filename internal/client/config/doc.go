// Package config loads runtime configuration for the FraudShield CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, with a dotenv file (-env, default ".env")
//     filling in variables that are not already set.
//  3. Optional JSON or YAML file selected via -c or -config. The format is
//     chosen by extension: .yaml and .yml are YAML, anything else JSON.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the classification backend
//	-d string   path to the credential database
//	-t int      request timeout (seconds)
//	-l string   log level
//
// Environment
//
//	FRAUDSHIELD_API_URL, FRAUDSHIELD_DB, FRAUDSHIELD_TIMEOUT,
//	FRAUDSHIELD_LOG_ENV, FRAUDSHIELD_LOG_LEVEL
//
// # File schema
//
// Durations may be strings like "15s" or integer nanoseconds:
//
//	{
//	  "api_url": "http://127.0.0.1:8000",
//	  "db_path": "fraudshield.db",
//	  "timeout": "15s",
//	  "log_env": "prod",
//	  "log_level": "debug"
//	}
package config
