package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/fraudshield/internal/buildinfo"
	"github.com/dmitrijs2005/fraudshield/internal/client/config"
	"github.com/dmitrijs2005/fraudshield/internal/logging"
)

// appFactory builds the App for one command run.
type appFactory func(ctx context.Context, cmd *cobra.Command) (*App, error)

// NewRootCommand returns the fraudshield command tree. Without a subcommand
// it starts the interactive shell.
func NewRootCommand(cfg *config.Config, log logging.Logger) *cobra.Command {
	return newRootCommand(func(ctx context.Context, cmd *cobra.Command) (*App, error) {
		return NewApp(ctx, cfg, log, WithIO(cmd.InOrStdin(), cmd.OutOrStdout()))
	})
}

func newRootCommand(newApp appFactory) *cobra.Command {
	var showMetrics bool

	// run opens the App around fn and optionally prints metrics afterwards.
	run := func(fn func(ctx context.Context, a *App, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			err = fn(ctx, a, args)
			if showMetrics {
				if merr := a.Metrics(ctx); merr != nil && err == nil {
					err = merr
				}
			}
			return err
		}
	}

	root := &cobra.Command{
		Use:   "fraudshield",
		Short: "Check messages for scams and browse your FraudShield dashboard",
		Long: `Check messages for scams and browse your FraudShield dashboard.

Global settings are read from defaults, the environment, an optional config
file and these flags, in increasing precedence:

  -a <url>     backend base URL
  -d <path>    credential database
  -t <secs>    request timeout
  -l <level>   log level
  -c <file>    JSON or YAML config file
  -env <file>  dotenv file (default .env)`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: run(func(ctx context.Context, a *App, _ []string) error {
			a.Root(ctx)
			return nil
		}),
	}
	root.PersistentFlags().BoolVar(&showMetrics, "metrics", false, "print request metrics after the command")

	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, a *App, _ []string) error {
			return a.Login(ctx)
		}),
	}

	signupCmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, a *App, _ []string) error {
			return a.Signup(ctx)
		}),
	}

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the session",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, a *App, _ []string) error {
			return a.Logout(ctx)
		}),
	}

	whoamiCmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, a *App, _ []string) error {
			return a.WhoAmI(ctx)
		}),
	}

	checkCmd := &cobra.Command{
		Use:   "check [text...]",
		Short: "Classify a message (read from stdin when no text is given)",
		RunE: run(func(ctx context.Context, a *App, args []string) error {
			return a.Check(ctx, strings.Join(args, " "))
		}),
	}

	dashboardCmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the dashboard for your role",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, a *App, _ []string) error {
			return a.Dashboard(ctx)
		}),
	}

	var assumeYes bool
	usersDeleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, a *App, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user id %q", args[0])
			}
			return a.DeleteUser(ctx, id, assumeYes)
		}),
	}
	usersDeleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "do not ask for confirmation")

	usersCmd := &cobra.Command{Use: "users", Short: "Manage users (admin)"}
	usersCmd.AddCommand(usersDeleteCmd)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			buildinfo.PrintBuildData(cmd.OutOrStdout())
		},
	}

	root.AddCommand(loginCmd, signupCmd, logoutCmd, whoamiCmd, checkCmd, dashboardCmd, usersCmd, versionCmd)
	return root
}
