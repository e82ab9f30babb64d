package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/reqtrack/internal/infrastructure/config"
	"github.com/felixgeelhaar/reqtrack/internal/infrastructure/wiring"
	"github.com/felixgeelhaar/reqtrack/pkg/application"
	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var (
	configDir string
	logLevel  string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "reqtrack",
	Version: Version,
	Short:   "Track software requirements and their verification",
	Long: `reqtrack reads a requirements manifest and answers:
1. Which requirements are well formed and meet the SMART criteria?
2. Which of them have been verified or rejected?
3. How far along is the project?`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with a context cancelled on SIGINT or
// SIGTERM. Known errors are mapped to CLIErrors.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return MapError(RootCmd.ExecuteContext(ctx))
}

func init() {
	RootCmd.SetVersionTemplate(fmt.Sprintf("reqtrack %s (commit %s, built %s)\n", Version, Commit, Date))
	RootCmd.PersistentFlags().StringVar(&configDir, "config", ".", "Directory holding reqtrack.yaml and .env")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the log level (debug, info, warn, error)")
}

// loadServices wires the application for the configured directory. Logs go
// to the command's error stream so report output stays clean.
func loadServices(cmd *cobra.Command) (*wiring.AppServices, error) {
	services, err := wiring.BuildAppServices(configDir, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	if logLevel == "" {
		return services, nil
	}

	cfg := *services.Config
	cfg.LogLevel = logLevel
	if err := cfg.Validate(); err != nil {
		return nil, NewCLIError("invalid --log-level", "Use one of debug, info, warn, error", err)
	}
	return wiring.BuildWithConfig(&cfg, cmd.ErrOrStderr()), nil
}

// openOptions combines command flags with the configured verify defaults.
func openOptions(cfg *config.Config, verifyAll bool, notes string) application.OpenOptions {
	opts := application.OpenOptions{
		VerifyAll: verifyAll || cfg.VerifyOnLoad,
		Notes:     notes,
	}
	if opts.Notes == "" {
		opts.Notes = cfg.VerifyNotes
	}
	return opts
}

// manifestArg returns the manifest argument, defaulting to the current
// directory.
func manifestArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
