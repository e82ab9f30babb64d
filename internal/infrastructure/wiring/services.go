package wiring

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/felixgeelhaar/reqtrack/internal/infrastructure/config"
	"github.com/felixgeelhaar/reqtrack/internal/infrastructure/logging"
	"github.com/felixgeelhaar/reqtrack/pkg/application"
	"github.com/felixgeelhaar/reqtrack/pkg/storage"
)

// AppServices exposes the application layer wired for a working directory.
type AppServices struct {
	Config    *config.Config
	Logger    *slog.Logger
	Loader    *storage.ManifestLoader
	Documents *application.DocumentService
}

// BuildAppServices loads configuration from root and wires the services.
// Logs go to logOut.
func BuildAppServices(root string, logOut io.Writer) (*AppServices, error) {
	cfg, err := config.Load(root)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return BuildWithConfig(cfg, logOut), nil
}

// BuildWithConfig wires the services around an already loaded configuration.
func BuildWithConfig(cfg *config.Config, logOut io.Writer) *AppServices {
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, logOut)
	loader := storage.NewManifestLoader(logger)

	return &AppServices{
		Config:    cfg,
		Logger:    logger,
		Loader:    loader,
		Documents: application.NewDocumentService(loader, logger),
	}
}
