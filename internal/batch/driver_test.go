package batch

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dscsub/internal/config"
	"dscsub/internal/dsc"
	"dscsub/internal/songdb"
)

// script assembles a DSC buffer: magic word, instruction words, then a
// null-terminated string table.
func script(words []uint32, strs ...[]byte) []byte {
	buf := binary.LittleEndian.AppendUint32(nil, 0x14050921)
	for _, w := range words {
		buf = binary.LittleEndian.AppendUint32(buf, w)
	}
	for _, s := range strs {
		buf = append(buf, s...)
		buf = append(buf, 0)
	}
	return buf
}

func validScript(text string) []byte {
	return script([]uint32{
		dsc.OpTime, 0,
		dsc.OpLyric, 0, 1,
		dsc.OpTime, 200_000,
		dsc.OpEnd,
	}, []byte(text))
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Batch.Workers = 2
	cfg.Batch.MinFreeMiB = 1
	return &cfg
}

func testDriver(t *testing.T, cfg *config.Config) *Driver {
	t.Helper()
	conv, err := NewConverter(cfg, nil)
	if err != nil {
		t.Fatalf("NewConverter: %v", err)
	}
	driver, err := New(cfg, conv, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return driver
}

func writeScripts(t *testing.T, root string, names map[string][]byte) {
	t.Helper()
	for name, data := range names {
		path := filepath.Join(root, "script", name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func TestRunConvertsAllEntries(t *testing.T) {
	source := t.TempDir()
	destination := filepath.Join(t.TempDir(), "out")
	writeScripts(t, source, map[string][]byte{
		"pv_101_easy.dsc":    validScript("ひとつ"),
		"pv_101_extreme.dsc": validScript("ふたつ"),
		"pv_42_hard.dsc":     validScript("みっつ"),
	})
	db, err := songdb.Parse(strings.NewReader(`
pv_101.song_name=First
pv_101.difficulty.easy.0.script_file_name=script/pv_101_easy.dsc
pv_101.difficulty.extreme.0.script_file_name=script/pv_101_extreme.dsc
pv_42.song_name=Second
pv_42.difficulty.hard.0.script_file_name=script/pv_42_hard.dsc
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	driver := testDriver(t, testConfig(t))
	summary, err := driver.Run(context.Background(), db, "pv_db.txt", source, destination)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Succeeded() != 3 || summary.Failed() != 0 {
		t.Fatalf("succeeded = %d failed = %d, want 3/0", summary.Succeeded(), summary.Failed())
	}
	if summary.RunID == "" {
		t.Error("summary has no run id")
	}
	for _, name := range []string{"pv_101_easy.vtt", "pv_101_extreme.vtt", "pv_42_hard.vtt"} {
		data, err := os.ReadFile(filepath.Join(destination, name))
		if err != nil {
			t.Errorf("output %s: %v", name, err)
			continue
		}
		if !strings.HasPrefix(string(data), "WEBVTT\n") {
			t.Errorf("output %s is not a VTT document", name)
		}
	}
	// Results keep database order regardless of worker scheduling.
	if summary.Results[0].Record.Difficulty != "easy" || summary.Results[2].Record.SongID != "42" {
		t.Errorf("results out of order: %+v", summary.Results)
	}
}

func TestRunIsolatesFailures(t *testing.T) {
	source := t.TempDir()
	destination := filepath.Join(t.TempDir(), "out")

	// One corrupt script among many valid ones must not stop the batch.
	names := map[string][]byte{
		"pv_3_easy.dsc": script([]uint32{dsc.OpTime, 0, dsc.OpLyric}), // truncated mid-instruction
	}
	dbText := "pv_3.difficulty.easy.0.script_file_name=script/pv_3_easy.dsc\n"
	for i := 0; i < 6; i++ {
		name := fmt.Sprintf("pv_%d0_easy.dsc", i)
		names[name] = validScript(fmt.Sprintf("line %d", i))
		dbText += fmt.Sprintf("pv_%d0.difficulty.easy.0.script_file_name=script/%s\n", i, name)
	}
	writeScripts(t, source, names)

	db, err := songdb.Parse(strings.NewReader(dbText))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	driver := testDriver(t, testConfig(t))
	summary, err := driver.Run(context.Background(), db, "pv_db.txt", source, destination)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Succeeded() != 6 || summary.Failed() != 1 {
		t.Fatalf("succeeded = %d failed = %d, want 6/1", summary.Succeeded(), summary.Failed())
	}
	for _, r := range summary.Results {
		if r.Record.SongID == "3" {
			var truncated *dsc.TruncatedStreamError
			if !errors.As(r.Err, &truncated) {
				t.Errorf("corrupt entry error = %v, want truncated stream", r.Err)
			}
			if r.OutputPath != "" {
				t.Errorf("corrupt entry produced output %s", r.OutputPath)
			}
			continue
		}
		if r.Err != nil {
			t.Errorf("entry pv_%s failed: %v", r.Record.SongID, r.Err)
			continue
		}
		if _, err := os.Stat(r.OutputPath); err != nil {
			t.Errorf("output missing for pv_%s: %v", r.Record.SongID, err)
		}
	}
}

func TestRunReportsMissingScripts(t *testing.T) {
	source := t.TempDir()
	destination := filepath.Join(t.TempDir(), "out")
	db, err := songdb.Parse(strings.NewReader(
		"pv_9.difficulty.easy.0.script_file_name=script/pv_9_easy.dsc\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	driver := testDriver(t, testConfig(t))
	summary, err := driver.Run(context.Background(), db, "pv_db.txt", source, destination)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Failed() != 1 {
		t.Fatalf("failed = %d, want 1", summary.Failed())
	}
	var missing *MissingScriptError
	if !errors.As(summary.Results[0].Err, &missing) {
		t.Errorf("error = %v, want MissingScriptError", summary.Results[0].Err)
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	source := t.TempDir()
	destination := filepath.Join(t.TempDir(), "out")
	writeScripts(t, source, map[string][]byte{"pv_1_easy.dsc": validScript("a")})
	db, err := songdb.Parse(strings.NewReader(
		"pv_1.difficulty.easy.0.script_file_name=script/pv_1_easy.dsc\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	driver := testDriver(t, testConfig(t))
	if _, err := driver.Run(ctx, db, "pv_db.txt", source, destination); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
}

func TestConvertProducesNotes(t *testing.T) {
	cfg := testConfig(t)
	cfg.Output.OffsetSeconds = 1.5
	conv, err := NewConverter(cfg, nil)
	if err != nil {
		t.Fatalf("NewConverter: %v", err)
	}
	doc, cues, err := conv.Convert(validScript("Hello"), "Test Song")
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if cues != 1 {
		t.Errorf("cues = %d, want 1", cues)
	}
	text := string(doc)
	if !strings.Contains(text, "NOTE Test Song") {
		t.Errorf("document missing song note:\n%s", text)
	}
	if !strings.Contains(text, "NOTE Offset: 1.500 seconds") {
		t.Errorf("document missing offset note:\n%s", text)
	}
	if !strings.Contains(text, "00:00:01.500 --> 00:00:03.500") {
		t.Errorf("document missing shifted cue:\n%s", text)
	}
}
