package daemon

import (
	"context"
	"log/slog"
	"sync"

	"cadenza/internal/api"
	"cadenza/internal/config"
	"cadenza/internal/enrichment"
	"cadenza/internal/library"
	"cadenza/internal/logging"
)

// Syncer runs one enrichment pass for a user.
type Syncer interface {
	SyncUser(ctx context.Context, user string, trackLimit, aiCallLimit int) (*enrichment.SyncResult, error)
}

// Daemon ties the store, the enrichment workflow, and the API server
// into one long-running process.
type Daemon struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *library.Store
	syncer Syncer

	mu      sync.Mutex
	running bool
	api     *apiServer
}

// New constructs a daemon. syncer may be nil, in which case the sync
// endpoint reports the feature unavailable.
func New(cfg *config.Config, store *library.Store, syncer Syncer, logger *slog.Logger) (*Daemon, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	d := &Daemon{
		cfg:    cfg,
		logger: logger,
		store:  store,
		syncer: syncer,
	}
	srv, err := newAPIServer(cfg, d, logger)
	if err != nil {
		return nil, err
	}
	d.api = srv
	return d, nil
}

// Start brings up the API server. It returns once the listener is
// bound; ctx cancellation triggers shutdown.
func (d *Daemon) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return nil
	}
	if err := d.api.start(ctx); err != nil {
		return err
	}
	d.running = true
	return nil
}

// Stop shuts the API server down.
func (d *Daemon) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.running {
		return
	}
	d.api.stop()
	d.running = false
}

// Addr returns the bound API address, or "" before Start.
func (d *Daemon) Addr() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.api == nil || d.api.listener == nil {
		return ""
	}
	return d.api.listener.Addr().String()
}

func (d *Daemon) libraryService() *api.LibraryService {
	threshold := 0.0
	if d.cfg != nil {
		threshold = d.cfg.Enrichment.QualityThreshold
	}
	return api.NewLibraryService(d.store, threshold)
}
