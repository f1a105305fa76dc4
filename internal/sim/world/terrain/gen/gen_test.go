package gen

import (
	"testing"

	"harvestvalley.farm/internal/sim/world/kernel/model"
)

func TestDefaultLayoutRules(t *testing.T) {
	l := Default(30, 17)
	cases := []struct {
		x, y int
		want model.TileKind
	}{
		{0, 0, model.TileTree},
		{1, 0, model.TileGrass},
		{0, 5, model.TileFence},
		{28, 5, model.TileFence},
		{5, 15, model.TileWater},
		{10, 10, model.TileSoil},
		{4, 4, model.TileRock},
		{5, 3, model.TilePath},
		{5, 5, model.TileGrass},
	}
	for _, c := range cases {
		if got := l.At(c.x, c.y); got != c.want {
			t.Fatalf("At(%d,%d)=%s want %s", c.x, c.y, got, c.want)
		}
	}
}

func TestParseRowsRoundTrip(t *testing.T) {
	l := Default(12, 6)
	back, err := ParseRows(l.Rows())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if back.Width != l.Width || back.Height != l.Height {
		t.Fatalf("size mismatch: %dx%d", back.Width, back.Height)
	}
	for i := range l.Kinds {
		if back.Kinds[i] != l.Kinds[i] {
			t.Fatalf("kind %d: got %s want %s", i, back.Kinds[i], l.Kinds[i])
		}
	}
}

func TestParseRowsRejectsRaggedAndUnknown(t *testing.T) {
	if _, err := ParseRows([]string{"GGG", "GG"}); err == nil {
		t.Fatalf("expected ragged rows rejected")
	}
	if _, err := ParseRows([]string{"GXG"}); err == nil {
		t.Fatalf("expected unknown letter rejected")
	}
	if _, err := ParseRows(nil); err == nil {
		t.Fatalf("expected empty map rejected")
	}
}
