package root

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"questboss/internal/config"
	"questboss/internal/engine"
	"questboss/internal/storage"
	"questboss/internal/ui"
)

// session bundles an open service with the stores behind it.
type session struct {
	cfg     config.Config
	svc     *engine.Service
	journal *storage.Journal
	file    *storage.FileStore
	closers []func()
}

func (s *session) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func loadConfig() (config.Config, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return config.Config{}, err
	}
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	if flagBackend != "" {
		cfg.Backend = config.NormalizeBackend(flagBackend)
	}
	if flagCatalog != "" {
		cfg.CatalogPath = flagCatalog
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openSession wires config, stores, journal and catalog into a service.
// Warnings (such as a recovered corrupt state file) go to warnOut.
func openSession(ctx context.Context, warnOut io.Writer) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	dir, err := storage.ResolveDataDir(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	catalog, err := config.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg}
	opts := []engine.Option{engine.WithCatalog(catalog)}

	if cfg.Journal {
		db, err := storage.Open(ctx, filepath.Join(dir, storage.JournalDBName))
		if err != nil {
			s.Close()
			return nil, err
		}
		s.closers = append(s.closers, func() { _ = db.Close() })
		s.journal = storage.NewJournal(db)
		opts = append(opts, engine.WithJournal(s.journal))
	}

	var store storage.Store
	switch cfg.Backend {
	case config.BackendSQLite:
		db, err := storage.Open(ctx, filepath.Join(dir, storage.ProgressDBName))
		if err != nil {
			s.Close()
			return nil, err
		}
		s.closers = append(s.closers, func() { _ = db.Close() })
		store = storage.NewSQLiteStore(db)
	default:
		s.file = storage.NewFileStore(filepath.Join(dir, storage.ProgressFileName))
		store = s.file
	}

	svc, err := engine.Open(ctx, store, opts...)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.svc = svc
	if rerr := svc.Recovered(); rerr != nil {
		fmt.Fprintln(warnOut, ui.Warn.Render(ui.IconWarn+" "+rerr.Error()))
		fmt.Fprintln(warnOut, ui.Muted.Render("Starting from defaults; the unreadable file was kept for inspection."))
	}
	return s, nil
}
