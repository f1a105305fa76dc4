package snapshot

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

const Version = 1

type Header struct {
	Version int    `json:"version"`
	RunID   string `json:"run_id"`
	Tick    uint64 `json:"tick"`
}

// SaveV1 is the persisted farm. Everything is a scalar, a string enum or a
// list of coordinate pairs.
type SaveV1 struct {
	Header Header `json:"header"`

	Player    PlayerV1       `json:"player"`
	Inventory map[string]int `json:"inventory"`
	Hotbar    []*string      `json:"hotbar"`
	Time      TimeV1         `json:"time"`
	Plots     PlotsV1        `json:"plots"`

	// Optional: absent in minimal saves, in which case the world keeps its
	// freshly generated state for these parts.
	SimClock float64    `json:"sim_clock,omitempty"`
	Tiles    []TileV1   `json:"tiles,omitempty"`
	Crops    []CropV1   `json:"crops,omitempty"`
	Animals  []AnimalV1 `json:"animals,omitempty"`
}

type PlayerV1 struct {
	Pos          [2]float64 `json:"pos"`
	Money        int        `json:"money"`
	Energy       float64    `json:"energy"`
	Tool         string     `json:"tool,omitempty"`
	SelectedSlot int        `json:"selected_slot,omitempty"`
}

type TimeV1 struct {
	Time   float64 `json:"time"` // hour of day
	Day    int     `json:"day"`
	Season string  `json:"season"`
}

type PlotsV1 struct {
	Claimed [][2]int `json:"claimed"`
	Locked  [][2]int `json:"locked"`
}

type TileV1 struct {
	Pos     [2]int `json:"pos"`
	Kind    string `json:"kind"`
	Watered bool   `json:"watered,omitempty"`
}

type CropV1 struct {
	Pos        [2]int  `json:"pos"`
	Type       string  `json:"type"`
	Stage      int     `json:"stage"`
	Planted    float64 `json:"planted"`
	Watered    bool    `json:"watered"`
	NeedsWater bool    `json:"needs_water"`
}

type AnimalV1 struct {
	Type         string     `json:"type"`
	State        string     `json:"state"`
	ProductTimer float64    `json:"product_timer"`
	FeedCooldown int        `json:"feed_cooldown"`
	Happiness    float64    `json:"happiness"`
	Pos          [2]float64 `json:"pos"`
	Home         [2]float64 `json:"home"`
}

// Write stores the save as a zstd stream: one JSON header line, then the JSON body.
// The file is written next to path and renamed into place.
func Write(path string, save SaveV1) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if err := encode(f, save); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

func encode(w io.Writer, save SaveV1) error {
	normalize(&save)
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(enc, 64*1024)

	hb, err := json.Marshal(save.Header)
	if err != nil {
		_ = enc.Close()
		return err
	}
	if _, err := bw.Write(hb); err != nil {
		_ = enc.Close()
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		_ = enc.Close()
		return err
	}
	if err := json.NewEncoder(bw).Encode(&save); err != nil {
		_ = enc.Close()
		return fmt.Errorf("json encode: %w", err)
	}
	if err := bw.Flush(); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

// Read loads a save written by Write. The body is schema-checked before it is
// decoded. A missing file returns an error satisfying os.IsNotExist.
func Read(path string) (SaveV1, error) {
	f, err := os.Open(path)
	if err != nil {
		return SaveV1{}, err
	}
	defer f.Close()
	return decode(f)
}

// ReadHeader returns only the header line.
func ReadHeader(path string) (Header, error) {
	var h Header
	f, err := os.Open(path)
	if err != nil {
		return h, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return h, err
	}
	defer dec.Close()

	line, err := bufio.NewReader(dec).ReadBytes('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return h, err
	}
	if err := json.Unmarshal(bytes.TrimSpace(line), &h); err != nil {
		return h, fmt.Errorf("header: %w", err)
	}
	return h, nil
}

func decode(r io.Reader) (SaveV1, error) {
	var save SaveV1
	dec, err := zstd.NewReader(r)
	if err != nil {
		return save, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 64*1024)
	line, err := br.ReadBytes('\n')
	if err != nil {
		return save, fmt.Errorf("header: %w", err)
	}
	var h Header
	if err := json.Unmarshal(bytes.TrimSpace(line), &h); err != nil {
		return save, fmt.Errorf("header: %w", err)
	}
	if h.Version != Version {
		return save, fmt.Errorf("unsupported save version %d", h.Version)
	}

	body, err := io.ReadAll(br)
	if err != nil {
		return save, err
	}
	if err := validateBody(body); err != nil {
		return save, fmt.Errorf("save schema: %w", err)
	}
	if err := json.Unmarshal(body, &save); err != nil {
		return save, fmt.Errorf("json decode: %w", err)
	}
	if save.Header != h {
		return save, fmt.Errorf("header line %+v does not match body %+v", h, save.Header)
	}
	return save, nil
}

// normalize replaces nil collections so required fields encode as [] or {}, not null.
func normalize(s *SaveV1) {
	if s.Inventory == nil {
		s.Inventory = map[string]int{}
	}
	if s.Hotbar == nil {
		s.Hotbar = make([]*string, 5)
	}
	if s.Plots.Claimed == nil {
		s.Plots.Claimed = [][2]int{}
	}
	if s.Plots.Locked == nil {
		s.Plots.Locked = [][2]int{}
	}
}
