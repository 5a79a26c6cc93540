package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/fraudshield/internal/client/cli"
	"github.com/dmitrijs2005/fraudshield/internal/client/config"
	"github.com/dmitrijs2005/fraudshield/internal/flagx"
	"github.com/dmitrijs2005/fraudshield/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	log := logging.New(logging.Config{Env: cfg.LogEnv, Level: cfg.LogLevel})
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(cfg, log)
	root.SetArgs(flagx.StripArgs(os.Args[1:], config.Flags()))

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, cli.Notice(err))
		return 1
	}
	return 0
}
