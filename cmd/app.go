package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/civicgraph/civicgraph/internal/audit"
	"github.com/civicgraph/civicgraph/internal/config"
	"github.com/civicgraph/civicgraph/internal/entity"
	"github.com/civicgraph/civicgraph/internal/gov"
	"github.com/civicgraph/civicgraph/internal/relation"
	"github.com/civicgraph/civicgraph/internal/store"
)

// app bundles the wired components a command needs. Close must be called when
// the command finishes.
type app struct {
	cfg      config.Config
	repo     *entity.Repository
	engine   *relation.Engine
	registry *gov.Registry
	dataPath string

	sqlite *store.SQLite
	log    *audit.Emitter
}

// openApp loads configuration and wires the store backend, the government
// registry, the audit emitter, and the repository + relation engine on top.
func openApp() (*app, error) {
	cfg := config.Load()

	registryPath := cfg.RegistryPath
	if registryPath == "" {
		registryPath = filepath.Join(cfg.DataDir, "governments.toml")
	}
	registry, err := gov.Load(registryPath)
	if err != nil {
		return nil, err
	}

	var log *audit.Emitter
	if cfg.AuditLog != "" {
		log, err = audit.NewEmitter(cfg.AuditLog)
		if err != nil {
			return nil, err
		}
	}

	a := &app{cfg: cfg, registry: registry, log: log}

	var st entity.Store
	switch cfg.Store {
	case "sqlite":
		a.dataPath = filepath.Join(cfg.DataDir, "entities.db")
		sq, err := store.NewSQLite(a.dataPath)
		if err != nil {
			return nil, err
		}
		a.sqlite = sq
		st = sq
	case "jsonl", "":
		a.dataPath = filepath.Join(cfg.DataDir, "entities.jsonl")
		js, err := store.NewJSONL(a.dataPath)
		if err != nil {
			return nil, err
		}
		st = js
	default:
		return nil, fmt.Errorf("unknown store backend %q (jsonl or sqlite)", cfg.Store)
	}

	a.repo = entity.NewRepository(st, registry, log)
	a.engine = relation.NewEngine(a.repo)
	return a, nil
}

// registryPath returns the path the government catalog is persisted at.
func (a *app) registryPath() string {
	if a.cfg.RegistryPath != "" {
		return a.cfg.RegistryPath
	}
	return filepath.Join(a.cfg.DataDir, "governments.toml")
}

func (a *app) Close() error {
	if a.sqlite != nil {
		if err := a.sqlite.Close(); err != nil {
			return err
		}
	}
	return a.log.Close()
}
