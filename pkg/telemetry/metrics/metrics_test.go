package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"tellus-hq/tellus/pkg/config"
)

func testConfig() *config.MetricsConfig {
	return &config.MetricsConfig{
		Enabled:   true,
		Namespace: "test",
		Subsystem: "interp",
	}
}

// TestEvaluationMetrics_RecordEvaluation tests counter and histogram recording
func TestEvaluationMetrics_RecordEvaluation(t *testing.T) {
	registry := prometheus.NewRegistry()
	em := NewEvaluationMetrics(testConfig(), registry)

	em.RecordEvaluation("Dwellings With Basements", "moderate", 120*time.Microsecond)
	em.RecordEvaluation("Dwellings With Basements", "moderate", 80*time.Microsecond)
	em.RecordEvaluation("Dwellings With Basements", "severe", 95*time.Microsecond)

	moderate := em.evaluationsTotal.WithLabelValues("Dwellings With Basements", "moderate")
	if got := testutil.ToFloat64(moderate); got != 2 {
		t.Errorf("moderate evaluations = %v, want 2", got)
	}
	severe := em.evaluationsTotal.WithLabelValues("Dwellings With Basements", "severe")
	if got := testutil.ToFloat64(severe); got != 1 {
		t.Errorf("severe evaluations = %v, want 1", got)
	}

	if got := testutil.CollectAndCount(em.evaluationDuration); got != 1 {
		t.Errorf("duration series = %d, want 1", got)
	}
}

// TestEvaluationMetrics_NotRatedAndReloads tests the remaining counters
func TestEvaluationMetrics_NotRatedAndReloads(t *testing.T) {
	registry := prometheus.NewRegistry()
	em := NewEvaluationMetrics(testConfig(), registry)

	em.RecordNotRated("Cropland Productivity Index")
	em.RecordReload()
	em.RecordReload()

	notRated := em.notRatedTotal.WithLabelValues("Cropland Productivity Index")
	if got := testutil.ToFloat64(notRated); got != 1 {
		t.Errorf("not rated = %v, want 1", got)
	}
	if got := testutil.ToFloat64(em.catalogReloads); got != 2 {
		t.Errorf("reloads = %v, want 2", got)
	}
}

// TestCacheMetrics tests hit, miss and pruned recording
func TestCacheMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	cm := NewCacheMetrics(testConfig(), registry)

	cm.RecordHit()
	cm.RecordHit()
	cm.RecordMiss()
	cm.RecordPruned(7)

	if got := testutil.ToFloat64(cm.hitsTotal); got != 2 {
		t.Errorf("hits = %v, want 2", got)
	}
	if got := testutil.ToFloat64(cm.missesTotal); got != 1 {
		t.Errorf("misses = %v, want 1", got)
	}
	if got := testutil.ToFloat64(cm.prunedTotal); got != 7 {
		t.Errorf("pruned = %v, want 7", got)
	}
}

// TestHandler_Scrape tests that registered collectors appear on the endpoint
func TestHandler_Scrape(t *testing.T) {
	registry := prometheus.NewRegistry()
	em := NewEvaluationMetrics(testConfig(), registry)
	cm := NewCacheMetrics(testConfig(), registry)

	em.RecordEvaluation("Dwellings With Basements", "slight", time.Millisecond)
	cm.RecordMiss()
	cm.RecordPruned(3)

	server := httptest.NewServer(Handler(registry))
	defer server.Close()

	resp, err := http.Get(server.URL)
	if err != nil {
		t.Fatalf("scrape failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read scrape body: %v", err)
	}
	body := string(raw)

	for _, want := range []string{
		`test_interp_evaluations_total{class="slight",interpretation="Dwellings With Basements"} 1`,
		"test_interp_cache_misses_total 1",
		"test_interp_results_pruned_total 3",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("scrape missing %q", want)
		}
	}
}
