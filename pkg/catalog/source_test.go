package catalog

import (
	"context"
	"testing"

	"tellus-hq/tellus/pkg/config"
)

// TestFileSource_Load tests catalog loading through the engine-facing source
func TestFileSource_Load(t *testing.T) {
	dir := t.TempDir()
	writeRuleset(t, dir, "dwellings.yaml", basicRuleset)

	source := NewFileSource(config.CatalogConfig{Path: dir}, nil)
	interps, err := source.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(interps) != 1 || interps[0].Name != "Dwellings With Basements" {
		t.Errorf("interps = %v", interps)
	}
}

// TestFileSource_LoadCancelled tests context rejection
func TestFileSource_LoadCancelled(t *testing.T) {
	source := NewFileSource(config.CatalogConfig{Path: t.TempDir()}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := source.Load(ctx); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

// TestFileSource_WatchDisabled tests the no-hot-reload path
func TestFileSource_WatchDisabled(t *testing.T) {
	source := NewFileSource(config.CatalogConfig{Path: t.TempDir(), Watch: false}, nil)

	events, err := source.Watch(context.Background())
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	if events != nil {
		t.Error("disabled watch should return a nil channel")
	}
}
