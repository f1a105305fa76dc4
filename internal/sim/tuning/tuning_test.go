package tuning

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaults(t *testing.T) {
	d := Defaults()
	if d.TickRateHz != 60 || d.Map.Width != 30 || d.Map.Height != 17 || d.Map.TileSize != 32 {
		t.Fatalf("unexpected defaults: %+v", d)
	}
	if d.Claims.Cost != 50 || d.RefundValue() != 40 {
		t.Fatalf("claim cost=%d refund=%d", d.Claims.Cost, d.RefundValue())
	}
	if len(d.Animals) != 3 || d.StarterInventory["wheat_seed"] != 10 {
		t.Fatalf("animals=%v inv=%v", d.Animals, d.StarterInventory)
	}
	if len(d.NPCs) != 2 || d.NPCs[0].Kind != "shopkeeper" || d.NPCs[1].Pos != [2]float64{-100, 150} {
		t.Fatalf("npcs=%v", d.NPCs)
	}
	if d.Digest() == "" {
		t.Fatalf("missing digest")
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	p := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(p, []byte("claims:\n  cost: 80\n  refund_percent: 50\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.RefundValue() != 40 || got.TickRateHz != 60 {
		t.Fatalf("overlay: refund=%d tick=%d", got.RefundValue(), got.TickRateHz)
	}
}

func TestLoadRejects(t *testing.T) {
	cases := map[string]string{
		"refund":  "claims:\n  refund_percent: 120\n",
		"unknown": "bogus_key: 1\n",
		"animal":  "animals:\n  - {type: dragon, pos: [1, 1]}\n",
		"npc":     "npcs:\n  - {kind: blacksmith, pos: [1, 1]}\n",
		"map":     "map:\n  width: 0\n",
	}
	for name, body := range cases {
		p := filepath.Join(t.TempDir(), name+".yaml")
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if _, err := Load(p); err == nil || !strings.Contains(err.Error(), "tuning.yaml") {
			t.Fatalf("%s: expected error, got %v", name, err)
		}
	}
}
