package store

import (
	"testing"

	"harvestvalley.farm/internal/sim/world/kernel/model"
	"harvestvalley.farm/internal/sim/world/terrain/gen"
)

type fakeCrops struct{ watered []model.Vec2i }

func (f *fakeCrops) WaterAt(p model.Vec2i) bool {
	f.watered = append(f.watered, p)
	return true
}

func newTestGrid(t *testing.T, rows ...string) *Grid {
	t.Helper()
	l, err := gen.ParseRows(rows)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	return New(l)
}

func TestTillOnlyGrassOnce(t *testing.T) {
	g := newTestGrid(t, "GSWPTRF")
	for x := 0; x < 7; x++ {
		p := model.Vec2i{X: x}
		kind, _ := g.KindAt(p)
		ok := g.Till(p)
		if ok != (kind == model.TileGrass) {
			t.Fatalf("till %s on %s: ok=%v", p, kind, ok)
		}
		if g.Till(p) {
			t.Fatalf("second till at %s succeeded", p)
		}
	}
	if k, _ := g.KindAt(model.Vec2i{}); k != model.TileSoil {
		t.Fatalf("grass not tilled: %s", k)
	}
}

func TestWaterPropagatesToCrop(t *testing.T) {
	g := newTestGrid(t, "GS")
	crops := &fakeCrops{}
	if g.Water(model.Vec2i{X: 0}, crops) {
		t.Fatalf("watered grass")
	}
	p := model.Vec2i{X: 1}
	if !g.Water(p, crops) {
		t.Fatalf("water soil failed")
	}
	if g.Water(p, crops) {
		t.Fatalf("watering wet soil should be a no-op")
	}
	if len(crops.watered) != 1 || crops.watered[0] != p {
		t.Fatalf("crop watering calls: %v", crops.watered)
	}
	if !g.Dry(p) || g.Dry(p) {
		t.Fatalf("dry should succeed once")
	}
	if !g.Water(p, nil) {
		t.Fatalf("re-water after dry failed")
	}
}

func TestQueryOutOfBounds(t *testing.T) {
	g := newTestGrid(t, "GG", "GG")
	for _, p := range []model.Vec2i{{X: -1}, {X: 2}, {Y: 2}, {X: 0, Y: -1}} {
		if _, ok := g.Query(p); ok {
			t.Fatalf("expected %s absent", p)
		}
		if g.Till(p) || g.Water(p, nil) {
			t.Fatalf("mutation outside map at %s", p)
		}
	}
}

func TestDiffApplyRoundTrip(t *testing.T) {
	layout := gen.Default(30, 17)
	g := New(layout)
	g.Till(model.Vec2i{X: 5, Y: 5})
	g.Water(model.Vec2i{X: 5, Y: 5}, nil)
	g.Water(model.Vec2i{X: 10, Y: 10}, nil)

	diff := g.Diff(layout)
	if len(diff) != 2 {
		t.Fatalf("expected 2 changed cells, got %d: %+v", len(diff), diff)
	}

	fresh := New(layout)
	if err := fresh.Apply(diff); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if fresh.Digest() != g.Digest() {
		t.Fatalf("digest mismatch after apply")
	}
	if err := fresh.Apply([]Cell{{Pos: model.Vec2i{X: 99}, Kind: model.TileGrass}}); err == nil {
		t.Fatalf("expected out-of-map cell rejected")
	}
	if err := fresh.Apply([]Cell{{Pos: model.Vec2i{X: 5, Y: 6}, Kind: model.TileGrass, Watered: true}}); err == nil {
		t.Fatalf("expected watered grass rejected")
	}
}

func TestCellAt(t *testing.T) {
	if got := CellAt(65, 31.9, 32); got != (model.Vec2i{X: 2, Y: 0}) {
		t.Fatalf("CellAt=%s", got)
	}
	if got := CellAt(-1, 0, 32); got != (model.Vec2i{X: -1, Y: 0}) {
		t.Fatalf("negative CellAt=%s", got)
	}
}
