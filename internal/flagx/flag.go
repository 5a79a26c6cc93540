// Package flagx extracts a known subset of flags from a command line that
// other parsers will also see.
package flagx

import (
	"flag"
	"strings"
)

// ConfigFileFlags are the flags naming a configuration file.
var ConfigFileFlags = []string{"-c", "-config"}

// EnvFileFlags are the flags naming a dotenv file.
var EnvFileFlags = []string{"-env"}

// DefaultEnvFile is read when no -env flag is given. A missing file is not an
// error.
const DefaultEnvFile = ".env"

// FilterArgs returns a slice of command-line arguments that only contains
// the allowed flags (and their values) specified in allowedFlags.
//
// Supported formats:
//  1. Flag and value as separate arguments:  -c conf.json
//  2. Flag and value combined with '=':      --config=conf.json
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := toSet(allowedFlags)

	// Always non-nil so callers can pass it straight to flag.FlagSet.Parse.
	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// StripArgs is the complement of FilterArgs: it returns args with the listed
// flags and their values removed, keeping everything else in order.
func StripArgs(args []string, flags []string) []string {
	drop := toSet(flags)
	rest := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			if _, ok := drop[strings.SplitN(arg, "=", 2)[0]]; ok {
				continue
			}
			rest = append(rest, arg)
			continue
		}

		if _, ok := drop[arg]; ok {
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++
			}
			continue
		}
		rest = append(rest, arg)
	}

	return rest
}

// ConfigFileFlag returns the config file path given via -c or -config, or ""
// if neither is present. The last occurrence wins.
func ConfigFileFlag(args []string) string {
	var config string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(FilterArgs(args, ConfigFileFlags))

	return config
}

// EnvFileFlag returns the dotenv path given via -env, or DefaultEnvFile.
func EnvFileFlag(args []string) string {
	envFile := DefaultEnvFile

	fs := flag.NewFlagSet("env", flag.ContinueOnError)
	fs.StringVar(&envFile, "env", envFile, "Path to .env file")
	_ = fs.Parse(FilterArgs(args, EnvFileFlags))

	return envFile
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
