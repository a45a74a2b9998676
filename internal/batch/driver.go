package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"dscsub/internal/config"
	"dscsub/internal/history"
	"dscsub/internal/preflight"
	"dscsub/internal/songdb"
)

// MissingScriptError reports a database record whose script file does not
// exist under the source root.
type MissingScriptError struct {
	Path string
}

func (e *MissingScriptError) Error() string {
	return fmt.Sprintf("script file %s not found", e.Path)
}

// EntryResult is the outcome of converting one database record.
type EntryResult struct {
	Record     songdb.Record
	OutputPath string
	CueCount   int
	Err        error
}

// Summary collects every entry outcome of a batch run. No failure is ever
// dropped from it.
type Summary struct {
	RunID    string
	Started  time.Time
	Finished time.Time
	Results  []EntryResult
}

// Succeeded counts entries that produced an output file.
func (s *Summary) Succeeded() int {
	n := 0
	for _, r := range s.Results {
		if r.Err == nil {
			n++
		}
	}
	return n
}

// Failed counts entries that did not produce an output file.
func (s *Summary) Failed() int { return len(s.Results) - s.Succeeded() }

// Driver runs batch conversions.
type Driver struct {
	cfg    *config.Config
	conv   *Converter
	store  *history.Store // nil when history is disabled
	logger *slog.Logger
}

// New builds a batch driver. store may be nil.
func New(cfg *config.Config, conv *Converter, store *history.Store, logger *slog.Logger) (*Driver, error) {
	if cfg == nil || conv == nil {
		return nil, errors.New("batch driver requires config and converter")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Driver{cfg: cfg, conv: conv, store: store, logger: logger.With("component", "batch")}, nil
}

// Run converts every script the database references. Individual failures are
// collected in the summary; Run itself only fails when the batch cannot start
// at all (bad destination, lock held, preflight failure).
func (d *Driver) Run(ctx context.Context, db *songdb.Database, dbPath, sourceRoot, destination string) (*Summary, error) {
	if err := os.MkdirAll(destination, 0o755); err != nil {
		return nil, fmt.Errorf("create destination: %w", err)
	}

	for _, check := range []preflight.Result{
		preflight.CheckDirectoryAccess("destination", destination),
		preflight.CheckFreeSpace("destination space", destination, uint64(d.cfg.Batch.MinFreeMiB)<<20),
	} {
		if !check.Passed {
			return nil, fmt.Errorf("preflight %s: %s", check.Name, check.Detail)
		}
	}

	lock := flock.New(filepath.Join(destination, ".dscsub.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire destination lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("destination %s is locked by another batch run", destination)
	}
	defer lock.Unlock()

	records := db.Records()
	summary := &Summary{
		RunID:   uuid.NewString(),
		Started: time.Now().UTC(),
		Results: make([]EntryResult, len(records)),
	}
	d.logger.Info("batch starting", "run_id", summary.RunID, "entries", len(records), "workers", d.cfg.Batch.Workers)

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < d.cfg.Batch.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				summary.Results[i] = d.convertRecord(db, records[i], sourceRoot, destination)
			}
		}()
	}

feed:
	for i := range records {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summary.Finished = time.Now().UTC()
	d.logger.Info("batch finished",
		"run_id", summary.RunID,
		"succeeded", summary.Succeeded(),
		"failed", summary.Failed(),
		"elapsed", summary.Finished.Sub(summary.Started).Round(time.Millisecond))

	if d.store != nil {
		if err := d.recordRun(ctx, summary, dbPath, destination); err != nil {
			d.logger.Warn("recording run history failed", "error", err)
		}
	}
	return summary, nil
}

func (d *Driver) convertRecord(db *songdb.Database, rec songdb.Record, sourceRoot, destination string) EntryResult {
	result := EntryResult{Record: rec}

	scriptPath := filepath.Join(sourceRoot, filepath.FromSlash(rec.ScriptPath))
	if _, err := os.Stat(scriptPath); err != nil {
		result.Err = &MissingScriptError{Path: scriptPath}
		d.logger.Warn("script missing", "song_id", rec.SongID, "path", scriptPath)
		return result
	}

	doc, cueCount, err := d.conv.ConvertFile(scriptPath, db.SongName(rec.SongID))
	if err != nil {
		result.Err = fmt.Errorf("convert %s: %w", scriptPath, err)
		d.logger.Warn("conversion failed", "song_id", rec.SongID, "difficulty", rec.Difficulty, "error", err)
		return result
	}

	name := fmt.Sprintf("pv_%s_%s.%s", rec.SongID, rec.Difficulty, d.conv.Format().Extension())
	outputPath := filepath.Join(destination, name)
	if err := os.WriteFile(outputPath, doc, 0o644); err != nil {
		result.Err = fmt.Errorf("write %s: %w", outputPath, err)
		return result
	}

	result.OutputPath = outputPath
	result.CueCount = cueCount
	d.logger.Debug("converted", "song_id", rec.SongID, "difficulty", rec.Difficulty, "cues", cueCount, "output", outputPath)
	return result
}

func (d *Driver) recordRun(ctx context.Context, summary *Summary, dbPath, destination string) error {
	run := history.Run{
		ID:          summary.RunID,
		StartedAt:   summary.Started,
		FinishedAt:  summary.Finished,
		Database:    dbPath,
		Destination: destination,
		Format:      string(d.conv.Format()),
		Total:       len(summary.Results),
		Succeeded:   summary.Succeeded(),
		Failed:      summary.Failed(),
	}
	entries := make([]history.Entry, 0, len(summary.Results))
	for _, r := range summary.Results {
		entry := history.Entry{
			RunID:      summary.RunID,
			SongID:     r.Record.SongID,
			Difficulty: r.Record.Difficulty,
			ScriptPath: r.Record.ScriptPath,
			OutputPath: r.OutputPath,
			Status:     "ok",
		}
		if r.Err != nil {
			entry.Status = "failed"
			entry.Detail = r.Err.Error()
		}
		entries = append(entries, entry)
	}
	return d.store.SaveRun(ctx, run, entries)
}
