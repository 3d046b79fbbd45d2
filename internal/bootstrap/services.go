// Package bootstrap wires the services the CLI commands share: the pip
// subprocess wrapper, the index client stack and the optional history
// storage, all driven by one loaded configuration.
package bootstrap

import (
	"github.com/google/uuid"

	"github.com/chis/pipup/internal/config"
	"github.com/chis/pipup/internal/logging"
	"github.com/chis/pipup/internal/output"
	"github.com/chis/pipup/internal/pip"
	"github.com/chis/pipup/internal/registry"
	"github.com/chis/pipup/internal/storage"
)

// ServiceDependencies holds the initialized services for one run.
type ServiceDependencies struct {
	Pip     *pip.Service
	Index   *registry.PyPI
	Storage storage.Storage // nil when history is disabled or unavailable
	RunID   string
}

// InitOptions configures service initialization behavior.
type InitOptions struct {
	// Config is the loaded configuration driving every service.
	Config config.Config

	// DisableHistory skips storage entirely (the --no-history flag).
	DisableHistory bool
}

// InitializeServices builds the service dependencies and returns them
// with a cleanup function for deferring. Storage failure is never
// fatal: the run continues without persistence.
func InitializeServices(opts InitOptions) (*ServiceDependencies, func()) {
	cfg := opts.Config

	runID := uuid.New().String()
	logging.SetRunID(runID)

	deps := &ServiceDependencies{
		Pip:   pip.NewService(cfg.PipCommand),
		RunID: runID,
	}
	var cleanups []func()

	client := registry.NewClient(
		registry.WithTimeout(cfg.Timeout()),
		registry.WithUserAgent("pipup/"+output.Version),
	)
	deps.Index = registry.NewPyPI(cfg.IndexURL, registry.NewBreakerClient(client))

	if !opts.DisableHistory && !cfg.HistoryDisabled {
		store, err := storage.NewSQLiteStorage(cfg.HistoryPath)
		if err != nil {
			logging.Warn("history storage unavailable, continuing without persistence: %v", err)
		} else {
			deps.Storage = store
			cleanups = append(cleanups, func() { store.Close() })
		}
	}

	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}
	return deps, cleanup
}
