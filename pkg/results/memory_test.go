package results

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"tellus-hq/tellus/pkg/interp/ast"
)

func testRecord(id, interpretation, hash string, createdAt time.Time) *Record {
	return &Record{
		ID:             id,
		Interpretation: interpretation,
		DataHash:       hash,
		Rating:         0.3,
		Class:          "moderate",
		CreatedAt:      createdAt,
	}
}

// TestMemoryStore_SaveAndFindLatest tests lookup of the newest matching record
func TestMemoryStore_SaveAndFindLatest(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i, record := range []*Record{
		testRecord("old", "Dwellings", "h1", base),
		testRecord("new", "Dwellings", "h1", base.Add(time.Hour)),
		testRecord("other-hash", "Dwellings", "h2", base.Add(2*time.Hour)),
		testRecord("other-interp", "Cropland", "h1", base.Add(3*time.Hour)),
	} {
		if err := store.Save(ctx, record); err != nil {
			t.Fatalf("save %d failed: %v", i, err)
		}
	}

	got, err := store.FindLatest(ctx, "Dwellings", "h1")
	if err != nil {
		t.Fatalf("FindLatest failed: %v", err)
	}
	if got.ID != "new" {
		t.Errorf("found %q, want the newest matching record", got.ID)
	}

	if _, err := store.FindLatest(ctx, "Dwellings", "no-such-hash"); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

// TestMemoryStore_FindLatestCopies tests that stored state is isolated
func TestMemoryStore_FindLatestCopies(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	record := testRecord("a", "Dwellings", "h1", time.Now().UTC())
	if err := store.Save(ctx, record); err != nil {
		t.Fatal(err)
	}
	record.Class = "mutated after save"

	got, err := store.FindLatest(ctx, "Dwellings", "h1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Class != "moderate" {
		t.Errorf("class = %q, caller mutation leaked into store", got.Class)
	}

	got.Class = "mutated after read"
	again, err := store.FindLatest(ctx, "Dwellings", "h1")
	if err != nil {
		t.Fatal(err)
	}
	if again.Class != "moderate" {
		t.Errorf("class = %q, reader mutation leaked into store", again.Class)
	}
}

// TestMemoryStore_CopiesMaps tests that the rating and value maps are cloned,
// not aliased, in both directions
func TestMemoryStore_CopiesMaps(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	record := testRecord("a", "Dwellings", "h1", time.Now().UTC())
	record.PropertyValues = map[string]ast.PropertyValue{"slope_percent": ast.Number(4)}
	record.EvaluationRatings = map[string]float64{"Slope limitation": 0.3}
	if err := store.Save(ctx, record); err != nil {
		t.Fatal(err)
	}

	record.PropertyValues["slope_percent"] = ast.Number(99)
	record.EvaluationRatings["Slope limitation"] = 1

	got, err := store.FindLatest(ctx, "Dwellings", "h1")
	if err != nil {
		t.Fatal(err)
	}
	if got.PropertyValues["slope_percent"] != ast.Number(4) {
		t.Errorf("slope = %v, caller map mutation leaked into store", got.PropertyValues["slope_percent"])
	}
	if got.EvaluationRatings["Slope limitation"] != 0.3 {
		t.Errorf("sub rating = %v, caller map mutation leaked into store", got.EvaluationRatings["Slope limitation"])
	}

	got.EvaluationRatings["Slope limitation"] = 0.9
	again, err := store.FindLatest(ctx, "Dwellings", "h1")
	if err != nil {
		t.Fatal(err)
	}
	if again.EvaluationRatings["Slope limitation"] != 0.3 {
		t.Errorf("sub rating = %v, reader map mutation leaked into store", again.EvaluationRatings["Slope limitation"])
	}
}

// TestMemoryStore_DeleteOlderThan tests age-based deletion
func TestMemoryStore_DeleteOlderThan(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		record := testRecord("r", "Dwellings", "h", base.Add(time.Duration(i)*time.Hour))
		if err := store.Save(ctx, record); err != nil {
			t.Fatal(err)
		}
	}

	deleted, err := store.DeleteOlderThan(ctx, base.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("DeleteOlderThan failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}

// TestMemoryStore_DeleteExcess tests count-based trimming keeps the newest
func TestMemoryStore_DeleteExcess(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		record := testRecord("r", "Dwellings", "h", base.Add(time.Duration(i)*time.Hour))
		record.Rating = float64(i)
		if err := store.Save(ctx, record); err != nil {
			t.Fatal(err)
		}
	}

	deleted, err := store.DeleteExcess(ctx, 2)
	if err != nil {
		t.Fatalf("DeleteExcess failed: %v", err)
	}
	if deleted != 3 {
		t.Errorf("deleted = %d, want 3", deleted)
	}

	// The newest record must survive.
	got, err := store.FindLatest(ctx, "Dwellings", "h")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got.Rating-4) > 1e-9 {
		t.Errorf("latest rating = %v, want the newest record's 4", got.Rating)
	}

	// Trimming below the cap is a no-op.
	deleted, err = store.DeleteExcess(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if deleted != 0 {
		t.Errorf("deleted = %d, want 0", deleted)
	}
}

// TestMemoryStore_CancelledContext tests context rejection on every operation
func TestMemoryStore_CancelledContext(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := store.Save(ctx, testRecord("a", "X", "h", time.Now())); err == nil {
		t.Error("Save accepted cancelled context")
	}
	if _, err := store.FindLatest(ctx, "X", "h"); err == nil {
		t.Error("FindLatest accepted cancelled context")
	}
	if _, err := store.DeleteOlderThan(ctx, time.Now()); err == nil {
		t.Error("DeleteOlderThan accepted cancelled context")
	}
	if _, err := store.Count(ctx); err == nil {
		t.Error("Count accepted cancelled context")
	}
}
