package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/peterkuimelis/onirim/internal/experiment"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "runs.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestSaveAndFetchRun(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	run := Run{
		Actor:     "evaluate",
		Deck:      "basic",
		Seed:      42,
		Workers:   4,
		Statistic: experiment.Statistic{Win: 3, Lose: 7, Success: 10, Total: 11, Opened: 52},
		Elapsed:   1500 * time.Millisecond,
	}
	id, err := store.SaveRun(ctx, run)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id == "" {
		t.Fatal("SaveRun() returned an empty ID")
	}

	got, err := store.RunByID(ctx, id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got.Actor != "evaluate" || got.Deck != "basic" || got.Seed != 42 || got.Workers != 4 {
		t.Errorf("run = %+v", got)
	}
	if got.Statistic != run.Statistic {
		t.Errorf("statistic = %+v, want %+v", got.Statistic, run.Statistic)
	}
	if got.Elapsed != run.Elapsed {
		t.Errorf("elapsed = %v, want %v", got.Elapsed, run.Elapsed)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt was not set")
	}
}

func TestRunByIDNotFound(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.RunByID(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestRecentRunsOrderAndFilter(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	for i, actor := range []string{"simple", "evaluate", "simple"} {
		_, err := store.SaveRun(ctx, Run{
			Actor:     actor,
			Deck:      "basic",
			Statistic: experiment.Statistic{Win: i, Success: 10, Total: 10},
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	all, err := store.RecentRuns(ctx, "", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d runs, want 3", len(all))
	}
	if all[0].Statistic.Win != 2 || all[2].Statistic.Win != 0 {
		t.Errorf("runs not newest first: %+v", all)
	}

	simple, err := store.RecentRuns(ctx, "simple", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(simple) != 2 {
		t.Errorf("got %d simple runs, want 2", len(simple))
	}

	limited, err := store.RecentRuns(ctx, "", 1)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("got %d runs, want 1", len(limited))
	}
}

func TestActorTotals(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	for _, st := range []experiment.Statistic{
		{Win: 1, Lose: 4, Success: 5, Total: 5, Opened: 20},
		{Win: 2, Lose: 3, Success: 5, Total: 6, Opened: 25},
	} {
		if _, err := store.SaveRun(ctx, Run{Actor: "simple", Deck: "basic", Statistic: st}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	got, err := store.ActorTotals(ctx, "simple")
	if err != nil {
		t.Fatalf("ActorTotals() failed: %v", err)
	}
	want := experiment.Statistic{Win: 3, Lose: 7, Success: 10, Total: 11, Opened: 45}
	if got != want {
		t.Errorf("totals = %+v, want %+v", got, want)
	}

	empty, err := store.ActorTotals(ctx, "nobody")
	if err != nil {
		t.Fatalf("ActorTotals() failed: %v", err)
	}
	if empty != (experiment.Statistic{}) {
		t.Errorf("totals for unknown actor = %+v, want zero", empty)
	}
}

func TestDeleteRun(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	id, err := store.SaveRun(ctx, Run{Actor: "simple", Deck: "basic"})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if err := store.DeleteRun(ctx, id); err != nil {
		t.Fatalf("DeleteRun() failed: %v", err)
	}
	if err := store.DeleteRun(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}
