// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/danielhkuo/giftquiz/catalog"
	"github.com/danielhkuo/giftquiz/testutil"
)

func TestAppLoad(t *testing.T) {
	cat := testutil.TestCatalog()
	fail := true
	app := NewApp(func(ctx context.Context) (*catalog.Catalog, error) {
		if fail {
			return nil, errors.New("boom")
		}
		return cat, nil
	})

	if _, err := app.Catalog(); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Expected ErrNotLoaded before loading, got %v", err)
	}

	if err := app.Load(context.Background()); err == nil {
		t.Fatal("Expected load error")
	}
	if _, err := app.Catalog(); err == nil || err.Error() != "boom" {
		t.Errorf("Expected the load error in the failed state, got %v", err)
	}

	fail = false
	if err := app.Load(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	got, err := app.Catalog()
	if err != nil || got != cat {
		t.Errorf("Expected loaded catalog, got %v, %v", got, err)
	}

	// A failed reload drops the old catalog
	fail = true
	_ = app.Load(context.Background())
	if _, err := app.Catalog(); err == nil {
		t.Error("Expected failed state after a failed reload")
	}
}
