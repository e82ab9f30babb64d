package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/felixgeelhaar/reqtrack/internal/infrastructure/watch"
	"github.com/felixgeelhaar/reqtrack/pkg/application"
	"github.com/spf13/cobra"
)

var (
	reportFormat string
	reportVerify bool
	reportNotes  string
	reportWatch  bool
)

var reportCmd = &cobra.Command{
	Use:   "report [manifest]",
	Short: "Print the verification report for a requirements manifest",
	Long: `Print the verification report for a requirements manifest.

The manifest defaults to requirements.yaml in the current directory. With
--verify every requirement is verified; otherwise only entries marked
verify: true are. With --watch the report is printed again each time the
manifest changes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices(cmd)
		if err != nil {
			return err
		}

		path, err := services.Loader.ResolvePath(manifestArg(args))
		if err != nil {
			return err
		}

		format := reportFormat
		if format == "" {
			format = services.Config.OutputFormat
		}
		opts := openOptions(services.Config, reportVerify, reportNotes)

		out := cmd.OutOrStdout()
		if err := runReport(cmd.Context(), out, services.Documents, path, format, opts); err != nil {
			return err
		}
		if !reportWatch {
			return nil
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s (Ctrl+C to stop)\n", path)
		err = watchReport(cmd.Context(), services.Config.WatchDebounce, services.Logger, path, func() error {
			fmt.Fprintln(out)
			return runReport(cmd.Context(), out, services.Documents, path, format, opts)
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "", "Output format: text, json, yaml")
	reportCmd.Flags().BoolVar(&reportVerify, "verify", false, "Verify every requirement before reporting")
	reportCmd.Flags().StringVar(&reportNotes, "notes", "", "Notes recorded on requirements verified by --verify")
	reportCmd.Flags().BoolVarP(&reportWatch, "watch", "w", false, "Print the report again when the manifest changes")
	RootCmd.AddCommand(reportCmd)
}

func runReport(ctx context.Context, w io.Writer, docs *application.DocumentService, path, format string, opts application.OpenOptions) error {
	doc, err := docs.Open(ctx, path, opts)
	if err != nil {
		return err
	}
	return writeReport(w, doc, format)
}

// watchReport calls refresh after every debounced change to path until ctx
// is cancelled. Refreshes never overlap. Refresh failures are logged; a
// half-saved manifest must not stop the watch.
func watchReport(ctx context.Context, debounce time.Duration, logger *slog.Logger, path string, refresh func() error) error {
	var mu sync.Mutex
	w, err := watch.NewFileWatcher(debounce, func(e watch.ChangeEvent) {
		mu.Lock()
		defer mu.Unlock()

		logger.Debug("manifest changed", "path", e.Path, "change", e.ChangeType)
		if err := refresh(); err != nil {
			logger.Error("report refresh failed", "path", path, "error", err)
		}
	})
	if err != nil {
		return err
	}
	if err := w.Add(path); err != nil {
		_ = w.Close()
		return err
	}
	return w.Run(ctx)
}
