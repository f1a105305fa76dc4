package snapshot

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func sampleSave() SaveV1 {
	wheat := "wheat_seed"
	return SaveV1{
		Header:    Header{Version: Version, RunID: "run-1", Tick: 42},
		Player:    PlayerV1{Pos: [2]float64{480, 272}, Money: 150, Energy: 87.5, Tool: "hoe", SelectedSlot: 2},
		Inventory: map[string]int{"wheat_seed": 9, "egg": 2},
		Hotbar:    []*string{&wheat, nil, nil, nil, nil},
		Time:      TimeV1{Time: 7.25, Day: 3, Season: "Summer"},
		Plots: PlotsV1{
			Claimed: [][2]int{{8, 8}, {9, 8}},
			Locked:  [][2]int{{9, 8}},
		},
		SimClock: 12.5,
		Tiles:    []TileV1{{Pos: [2]int{8, 8}, Kind: "SOIL", Watered: true}},
		Crops:    []CropV1{{Pos: [2]int{8, 8}, Type: "wheat", Stage: 1, Planted: 2, NeedsWater: true}},
		Animals: []AnimalV1{{
			Type: "chicken", State: "COOLDOWN", FeedCooldown: 12, Happiness: 80,
			Pos: [2]float64{300, 310}, Home: [2]float64{300, 300},
		}},
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saves", "farm.save.zst")
	want := sampleSave()
	if err := Write(path, want); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got=%+v\nwant=%+v", got, want)
	}
	h, err := ReadHeader(path)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if h != want.Header {
		t.Fatalf("header: got %+v want %+v", h, want.Header)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.save.zst"))
	if !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestWriteFillsEmptyCollections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.save.zst")
	s := SaveV1{
		Header: Header{Version: Version, Tick: 1},
		Time:   TimeV1{Time: 6, Day: 1, Season: "Spring"},
	}
	if err := Write(path, s); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got.Hotbar) != 5 || got.Inventory == nil || got.Plots.Claimed == nil {
		t.Fatalf("expected normalized collections, got %+v", got)
	}
}

func TestReadRejectsSchemaViolation(t *testing.T) {
	s := sampleSave()
	s.Time.Season = "Monsoon"
	path := writeRaw(t, s)
	_, err := Read(path)
	if err == nil || !strings.Contains(err.Error(), "save schema") {
		t.Fatalf("expected schema error, got %v", err)
	}
}

func TestReadRejectsNegativeEnergy(t *testing.T) {
	s := sampleSave()
	s.Player.Energy = -1
	if _, err := Read(writeRaw(t, s)); err == nil {
		t.Fatalf("expected negative energy to be rejected")
	}
}

func TestReadRejectsUnknownVersion(t *testing.T) {
	s := sampleSave()
	s.Header.Version = 9
	_, err := Read(writeRaw(t, s))
	if err == nil || !strings.Contains(err.Error(), "unsupported save version") {
		t.Fatalf("expected version error, got %v", err)
	}
}

func TestReadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.save.zst")
	if err := os.WriteFile(path, []byte("not zstd at all"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Read(path); err == nil {
		t.Fatalf("expected error for garbage file")
	}
}

// writeRaw encodes without any validation so Read sees the bad body.
func writeRaw(t *testing.T, s SaveV1) string {
	t.Helper()
	var buf bytes.Buffer
	if err := encode(&buf, s); err != nil {
		t.Fatalf("encode: %v", err)
	}
	path := filepath.Join(t.TempDir(), "raw.save.zst")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
