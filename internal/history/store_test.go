package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRun(id string, started time.Time) Run {
	return Run{
		ID:          id,
		StartedAt:   started,
		FinishedAt:  started.Add(2 * time.Second),
		Database:    "/data/pv_db.txt",
		Destination: "/data/subtitles",
		Format:      "vtt",
		Total:       3,
		Succeeded:   2,
		Failed:      1,
	}
}

func TestSaveAndLoadRun(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	started := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	run := sampleRun("run-1", started)
	entries := []Entry{
		{RunID: "run-1", SongID: "101", Difficulty: "easy", ScriptPath: "a.dsc", OutputPath: "/out/pv_101_easy.vtt", Status: "ok"},
		{RunID: "run-1", SongID: "101", Difficulty: "extreme", ScriptPath: "b.dsc", OutputPath: "/out/pv_101_extreme.vtt", Status: "ok"},
		{RunID: "run-1", SongID: "42", Difficulty: "hard", ScriptPath: "c.dsc", Status: "failed", Detail: "truncated stream at offset 16"},
	}
	if err := store.SaveRun(ctx, run, entries); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	runs, err := store.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	got := runs[0]
	if got.ID != "run-1" || got.Total != 3 || got.Succeeded != 2 || got.Failed != 1 {
		t.Errorf("run = %+v", got)
	}
	if !got.StartedAt.Equal(started) {
		t.Errorf("started = %v, want %v", got.StartedAt, started)
	}

	loaded, err := store.RunEntries(ctx, "run-1")
	if err != nil {
		t.Fatalf("RunEntries: %v", err)
	}
	if len(loaded) != 3 {
		t.Fatalf("got %d entries, want 3", len(loaded))
	}
	if loaded[2].Status != "failed" || loaded[2].Detail != "truncated stream at offset 16" {
		t.Errorf("failed entry = %+v", loaded[2])
	}
	if loaded[0].OutputPath != "/out/pv_101_easy.vtt" {
		t.Errorf("entry 0 output = %q", loaded[0].OutputPath)
	}
}

func TestRecentRunsOrderAndLimit(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		run := sampleRun(string(rune('a'+i)), base.Add(time.Duration(i)*time.Minute))
		if err := store.SaveRun(ctx, run, nil); err != nil {
			t.Fatalf("SaveRun %d: %v", i, err)
		}
	}

	runs, err := store.RecentRuns(ctx, 2)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].ID != "e" || runs[1].ID != "d" {
		t.Errorf("runs = %s, %s; want e, d", runs[0].ID, runs[1].ID)
	}
}

func TestRunEntriesUnknownRun(t *testing.T) {
	store := openStore(t)
	entries, err := store.RunEntries(context.Background(), "missing")
	if err != nil {
		t.Fatalf("RunEntries: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries for unknown run", len(entries))
	}
}
