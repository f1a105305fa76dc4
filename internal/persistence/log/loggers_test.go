package log

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"harvestvalley.farm/internal/sim/world"
)

func TestAuditLoggerRoundTrip(t *testing.T) {
	dir := t.TempDir()
	l := NewAuditLogger(dir)
	entries := []world.AuditEntry{
		{Tick: 1, Actor: "S000001", Action: world.AuditClaim, Pos: [2]int{15, 10}, Details: map[string]any{"cost": 50}},
		{Tick: 2, Actor: "WORLD", Action: world.AuditCropStage, Pos: [2]int{15, 10}},
	}
	for _, e := range entries {
		if err := l.WriteAudit(e); err != nil {
			t.Fatalf("WriteAudit: %v", err)
		}
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got, err := ReadAudits(dir)
	if err != nil {
		t.Fatalf("ReadAudits: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("entries: got %d want 2", len(got))
	}
	if got[0].Action != world.AuditClaim || got[0].Details["cost"] != float64(50) {
		t.Fatalf("first entry: %+v", got[0])
	}
	if got[1].Actor != "WORLD" || got[1].Pos != [2]int{15, 10} {
		t.Fatalf("second entry: %+v", got[1])
	}
}

func TestWriterRotatesHourlyAndAppends(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 1, 9, 59, 0, 0, time.UTC)
	w := NewJSONLZstdWriter(dir, "ticks")
	w.now = func() time.Time { return now }

	write := func(tick int) {
		t.Helper()
		if err := w.Write(world.TickLogEntry{Tick: uint64(tick), Digest: "d"}); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	write(1)
	now = now.Add(2 * time.Minute)
	write(2)
	write(3)
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	// Reopening the same hour appends a second zstd frame.
	w = NewJSONLZstdWriter(dir, "ticks")
	w.now = func() time.Time { return now }
	write(4)
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	files, err := Files(dir, "ticks")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 || filepath.Base(files[0]) != "ticks-2026-03-01-09.jsonl.zst" {
		t.Fatalf("files: %v", files)
	}
	var ticks []uint64
	for _, f := range files {
		err := ReadLines(f, func(line []byte) error {
			var e world.TickLogEntry
			if err := json.Unmarshal(line, &e); err != nil {
				return err
			}
			ticks = append(ticks, e.Tick)
			return nil
		})
		if err != nil {
			t.Fatalf("ReadLines %s: %v", f, err)
		}
	}
	if len(ticks) != 4 || ticks[0] != 1 || ticks[3] != 4 {
		t.Fatalf("ticks: %v", ticks)
	}
}
