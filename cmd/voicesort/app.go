package main

import (
	"context"
	"fmt"

	"voicesort/pkg/config"
	"voicesort/pkg/engine"
	"voicesort/pkg/logger"
	"voicesort/pkg/project"
	"voicesort/pkg/protocol"
	"voicesort/pkg/store"
)

// app bundles everything a subcommand needs: the registry, the app config,
// and the open project store with its engine.
type app struct {
	reg        *project.Registry
	cfg        config.Config
	projectKey string
	store      *store.Store
	eng        *engine.Engine
}

// openApp resolves the app home, loads the config, initializes logging, and
// opens the selected project (the --project flag, else the last-used
// project, else "default", created on first use). The last-used project is
// remembered across invocations.
func openApp(ctx context.Context) (*app, error) {
	reg, err := project.NewRegistry()
	if err != nil {
		return nil, fmt.Errorf("resolve app home: %w", err)
	}

	cfg, err := config.Load(reg.ConfigPath())
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.LogLevel)

	key := projectFlag
	if key == "" {
		key = cfg.LastProject
	}
	if key == "" {
		key = "default"
	}
	key = protocol.SafeName(key)

	if _, err := reg.Create(key); err != nil {
		return nil, err
	}

	st, err := store.Open(reg.DBPath(key))
	if err != nil {
		return nil, fmt.Errorf("open project %s: %w", key, err)
	}

	eng, err := engine.New(ctx, st, key, engine.Options{
		MoveAttempts: cfg.MoveAttempts,
		MoveBackoff:  cfg.MoveBackoff(),
		SniffAudio:   cfg.SniffAudio,
	})
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	if cfg.LastProject != key {
		cfg.LastProject = key
		if err := config.Save(reg.ConfigPath(), cfg); err != nil {
			logger.Get().Warn().Err(err).Msg("remember last project")
		}
	}

	return &app{reg: reg, cfg: cfg, projectKey: key, store: st, eng: eng}, nil
}

// Close releases the project store.
func (a *app) Close() {
	if a.store != nil {
		_ = a.store.Close()
	}
}
