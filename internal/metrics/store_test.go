package metrics

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/planforge/planforge/pkg/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store
}

func testRecord(id string, started time.Time) *RunRecord {
	return &RunRecord{
		ID:        id,
		Project:   "Website",
		Provider:  "anthropic",
		Model:     "claude-sonnet-4-20250514",
		Status:    models.RunRunning,
		StartedAt: started,
	}
}

func TestCreateAndGetRun(t *testing.T) {
	store := openTestStore(t)

	started := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	if err := store.CreateRun(testRecord("run-1", started)); err != nil {
		t.Fatalf("create run: %v", err)
	}

	got, err := store.GetRun("run-1")
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if got == nil {
		t.Fatal("expected run to exist")
	}
	if got.Project != "Website" {
		t.Errorf("expected project Website, got %q", got.Project)
	}
	if got.Status != models.RunRunning {
		t.Errorf("expected status running, got %q", got.Status)
	}
	if !got.StartedAt.Equal(started) {
		t.Errorf("expected started at %v, got %v", started, got.StartedAt)
	}
	if got.CompletedAt != nil {
		t.Errorf("expected no completion time, got %v", got.CompletedAt)
	}
}

func TestGetRunMissing(t *testing.T) {
	store := openTestStore(t)

	got, err := store.GetRun("nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing run, got %+v", got)
	}
}

func TestFinishRun(t *testing.T) {
	store := openTestStore(t)

	started := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rec := testRecord("run-1", started)
	if err := store.CreateRun(rec); err != nil {
		t.Fatal(err)
	}

	completed := started.Add(3 * time.Minute)
	rec.Status = models.RunCompleted
	rec.InputTokens = 12000
	rec.OutputTokens = 4000
	rec.Calls = 3
	rec.Cost = 0.0961
	rec.CompletedAt = &completed

	if err := store.FinishRun(rec); err != nil {
		t.Fatalf("finish run: %v", err)
	}

	got, err := store.GetRun("run-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.RunCompleted {
		t.Errorf("expected status completed, got %q", got.Status)
	}
	if got.InputTokens != 12000 || got.OutputTokens != 4000 || got.Calls != 3 {
		t.Errorf("unexpected usage: %+v", got)
	}
	if got.CompletedAt == nil || !got.CompletedAt.Equal(completed) {
		t.Errorf("expected completed at %v, got %v", completed, got.CompletedAt)
	}
}

func TestListRecentOrdersNewestFirst(t *testing.T) {
	store := openTestStore(t)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"run-a", "run-b", "run-c"} {
		if err := store.CreateRun(testRecord(id, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := store.ListRecent(2)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != "run-c" || runs[1].ID != "run-b" {
		t.Errorf("expected newest first, got %s then %s", runs[0].ID, runs[1].ID)
	}
}

func TestTotalCost(t *testing.T) {
	store := openTestStore(t)

	base := time.Now().UTC()
	for i, cost := range []float64{0.10, 0.25} {
		rec := testRecord(string(rune('a'+i)), base.Add(time.Duration(i)*time.Minute))
		rec.Cost = cost
		if err := store.CreateRun(rec); err != nil {
			t.Fatal(err)
		}
	}

	total, err := store.TotalCost()
	if err != nil {
		t.Fatalf("total cost: %v", err)
	}
	if total < 0.349 || total > 0.351 {
		t.Errorf("expected total near 0.35, got %f", total)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := openTestStore(t)
	if err := store.Migrate(); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}
