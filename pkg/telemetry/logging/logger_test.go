package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

// TestNew tests configuration-driven construction
func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "defaults", cfg: Config{}},
		{name: "json debug", cfg: Config{Level: "debug", Format: "json"}},
		{name: "text warn", cfg: Config{Level: "warn", Format: "text"}},
		{name: "bad level", cfg: Config{Level: "loud"}, wantErr: true},
		{name: "bad format", cfg: Config{Format: "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			if tt.wantErr && err == nil {
				t.Error("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

// TestLogger_LevelFiltering tests that entries below the level are dropped
func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "warn", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Debug("dropped")
	logger.Info("dropped too")
	logger.Warn("kept")
	logger.Error("also kept")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("entries = %d, want 2: %s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "kept") {
		t.Errorf("first entry = %s", lines[0])
	}
}

// TestLogger_JSONFields tests structured field emission
func TestLogger_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.WithComponent("catalog.loader").Info("catalog materialized", "interpretations", 3)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("entry is not JSON: %v", err)
	}
	if entry["component"] != "catalog.loader" {
		t.Errorf("component = %v", entry["component"])
	}
	if entry["interpretations"] != float64(3) {
		t.Errorf("interpretations = %v", entry["interpretations"])
	}
	if entry["msg"] != "catalog materialized" {
		t.Errorf("msg = %v", entry["msg"])
	}
}

// TestLogger_WithContext tests evaluation-scoped field extraction
func TestLogger_WithContext(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx := WithInterpretation(context.Background(), "Dwellings With Basements")
	ctx = WithBatchID(ctx, "b42")

	logger.WithContext(ctx).Info("evaluated")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("entry is not JSON: %v", err)
	}
	if entry["interpretation"] != "Dwellings With Basements" {
		t.Errorf("interpretation = %v", entry["interpretation"])
	}
	if entry["batch_id"] != "b42" {
		t.Errorf("batch_id = %v", entry["batch_id"])
	}
	if _, ok := entry["result_id"]; ok {
		t.Error("absent context key should not emit a field")
	}
}

// TestLogger_EmptyContext tests that a bare context adds nothing
func TestLogger_EmptyContext(t *testing.T) {
	logger, err := New(Config{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if got := logger.WithContext(context.Background()); got != logger {
		t.Error("bare context should return the same logger")
	}
}
