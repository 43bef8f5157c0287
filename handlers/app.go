// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/danielhkuo/giftquiz/catalog"
)

// ErrNotLoaded is returned while the datasets have not loaded successfully.
var ErrNotLoaded = errors.New("datasets not loaded")

// Loader fetches the catalog.
type Loader func(ctx context.Context) (*catalog.Catalog, error)

// App holds the loaded catalog, or the failed state after a load error.
type App struct {
	load Loader

	mu      sync.RWMutex
	cat     *catalog.Catalog
	loadErr error
}

func NewApp(load Loader) *App {
	return &App{load: load, loadErr: ErrNotLoaded}
}

// NewLoadedApp returns an App already holding cat. Reload uses load.
func NewLoadedApp(cat *catalog.Catalog, load Loader) *App {
	return &App{load: load, cat: cat}
}

// Load runs the loader. On failure the previous catalog is dropped and the
// app enters the failed state until a later Load succeeds.
func (a *App) Load(ctx context.Context) error {
	cat, err := a.load(ctx)

	a.mu.Lock()
	defer a.mu.Unlock()

	if err != nil {
		slog.Error("failed to load datasets", "error", err)
		a.cat = nil
		a.loadErr = err
		return err
	}

	if verr := cat.Validate(); verr != nil {
		slog.Warn("datasets do not match the expected questionnaire", "error", verr)
	}
	slog.Info("datasets loaded", "questions", len(cat.Questions), "gifts", len(cat.Gifts))

	a.cat = cat
	a.loadErr = nil
	return nil
}

// Catalog returns the loaded catalog, or the load error in the failed state.
func (a *App) Catalog() (*catalog.Catalog, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.cat == nil {
		if a.loadErr != nil {
			return nil, a.loadErr
		}
		return nil, ErrNotLoaded
	}
	return a.cat, nil
}
