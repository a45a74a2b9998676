package songdb

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"
)

// Record ties one script file to its song and difficulty. Records are
// read-only once parsed; one record drives exactly one conversion.
type Record struct {
	SongID     string
	ScriptPath string // relative path as recorded in the database
	Difficulty string
}

// Database is the parsed song database.
type Database struct {
	records []Record
	names   map[string]string // song id -> display name
}

// Load reads and parses a database file.
func Load(dbPath string) (*Database, error) {
	f, err := os.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer f.Close()
	db, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse database %s: %w", dbPath, err)
	}
	return db, nil
}

// Parse reads database records from r. Lines that are blank or start with #
// are skipped; everything else must be key=value.
func Parse(r io.Reader) (*Database, error) {
	db := &Database{names: make(map[string]string)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("line %d: missing '=' in %q", lineNo, line)
		}
		db.addEntry(strings.Split(strings.TrimSpace(key), "."), strings.TrimSpace(value))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read database: %w", err)
	}

	sort.Slice(db.records, func(i, j int) bool {
		a, b := db.records[i], db.records[j]
		if a.SongID != b.SongID {
			return a.SongID < b.SongID
		}
		return a.Difficulty < b.Difficulty
	})
	return db, nil
}

func (db *Database) addEntry(key []string, value string) {
	if len(key) < 2 || !strings.HasPrefix(key[0], "pv_") {
		return
	}
	songID := strings.TrimPrefix(key[0], "pv_")

	switch last := key[len(key)-1]; last {
	case "script_file_name":
		db.records = append(db.records, Record{
			SongID:     songID,
			ScriptPath: normalizeScriptPath(value),
			Difficulty: difficultyFromKey(key),
		})
	case "song_name", "song_name_en":
		// Prefer the English name when both appear.
		if last == "song_name_en" || db.names[songID] == "" {
			db.names[songID] = value
		}
	}
}

// difficultyFromKey pulls the label following the "difficulty" segment, e.g.
// pv_123.difficulty.hard.0.script_file_name -> hard.
func difficultyFromKey(key []string) string {
	for i, segment := range key {
		if segment == "difficulty" && i+1 < len(key) {
			return key[i+1]
		}
	}
	return "common"
}

// normalizeScriptPath converts recorded backslash paths to slash form.
func normalizeScriptPath(value string) string {
	return path.Clean(strings.ReplaceAll(value, `\`, "/"))
}

// Records returns all script records in (song id, difficulty) order.
func (db *Database) Records() []Record {
	out := make([]Record, len(db.records))
	copy(out, db.records)
	return out
}

// SongName returns the display name recorded for a song id, if any.
func (db *Database) SongName(songID string) string {
	return db.names[songID]
}

// Len reports how many script records the database holds.
func (db *Database) Len() int { return len(db.records) }
