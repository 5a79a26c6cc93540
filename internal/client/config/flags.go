package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/fraudshield/internal/flagx"
)

var configFlags = []string{"-a", "-d", "-t", "-l"}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   backend base URL
//	-d string   credential database path
//	-t int      request timeout in seconds
//	-l string   log level
//
// args are filtered with flagx.FilterArgs first so subcommand arguments do
// not reach this flag set.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIURL, "a", cfg.APIURL, "backend base URL")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "credential database path")
	timeout := fs.Int("t", int(cfg.Timeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(flagx.FilterArgs(args, configFlags)); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.Timeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
