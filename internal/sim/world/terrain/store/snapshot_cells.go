package store

import (
	"fmt"

	"harvestvalley.farm/internal/sim/world/kernel/model"
	"harvestvalley.farm/internal/sim/world/terrain/gen"
)

// Diff lists every cell whose state differs from the generated layout, row-major.
func (g *Grid) Diff(base gen.Layout) []Cell {
	var out []Cell
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			t := g.tiles[x+y*g.width]
			if t.Kind == base.At(x, y) && !t.Watered {
				continue
			}
			out = append(out, Cell{Pos: model.Vec2i{X: x, Y: y}, Kind: t.Kind, Watered: t.Watered})
		}
	}
	return out
}

// Apply overwrites cells from a snapshot diff. Watered non-soil cells are rejected.
func (g *Grid) Apply(cells []Cell) error {
	for _, c := range cells {
		if !g.InBounds(c.Pos) {
			return fmt.Errorf("tile %s outside %dx%d map", c.Pos, g.width, g.height)
		}
		if !c.Kind.Valid() {
			return fmt.Errorf("tile %s: bad kind %d", c.Pos, c.Kind)
		}
		if c.Watered && c.Kind != model.TileSoil {
			return fmt.Errorf("tile %s: only soil can be watered", c.Pos)
		}
	}
	for _, c := range cells {
		g.tiles[g.index(c.Pos)] = Tile{Kind: c.Kind, Watered: c.Watered}
	}
	g.dirty = true
	return nil
}
