package store

import (
	"math"

	"harvestvalley.farm/internal/sim/world/kernel/model"
)

func (g *Grid) InBounds(c model.Vec2i) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < g.width && c.Y < g.height
}

// Query returns the tile at c, or false for coordinates outside the map.
func (g *Grid) Query(c model.Vec2i) (Tile, bool) {
	if !g.InBounds(c) {
		return Tile{}, false
	}
	return g.tiles[g.index(c)], true
}

func (g *Grid) KindAt(c model.Vec2i) (model.TileKind, bool) {
	t, ok := g.Query(c)
	return t.Kind, ok
}

// Set replaces the tile kind and clears moisture.
func (g *Grid) Set(c model.Vec2i, kind model.TileKind) bool {
	if !g.InBounds(c) || !kind.Valid() {
		return false
	}
	i := g.index(c)
	if g.tiles[i] == (Tile{Kind: kind}) {
		return false
	}
	g.tiles[i] = Tile{Kind: kind}
	g.dirty = true
	return true
}

// Till turns unwatered grass into soil.
func (g *Grid) Till(c model.Vec2i) bool {
	t, ok := g.Query(c)
	if !ok || t.Kind != model.TileGrass || t.Watered {
		return false
	}
	g.tiles[g.index(c)] = Tile{Kind: model.TileSoil}
	g.dirty = true
	return true
}

// Water wets dry soil and passes the watering on to any crop at c.
// crops may be nil.
func (g *Grid) Water(c model.Vec2i, crops CropWaterer) bool {
	t, ok := g.Query(c)
	if !ok || t.Kind != model.TileSoil || t.Watered {
		return false
	}
	g.tiles[g.index(c)].Watered = true
	g.dirty = true
	if crops != nil {
		crops.WaterAt(c)
	}
	return true
}

// Dry clears moisture on a watered soil tile.
func (g *Grid) Dry(c model.Vec2i) bool {
	t, ok := g.Query(c)
	if !ok || t.Kind != model.TileSoil || !t.Watered {
		return false
	}
	g.tiles[g.index(c)].Watered = false
	g.dirty = true
	return true
}

// CellAt maps a pixel position to the tile containing it.
func CellAt(px, py float64, tileSize int) model.Vec2i {
	ts := float64(tileSize)
	return model.Vec2i{X: int(math.Floor(px / ts)), Y: int(math.Floor(py / ts))}
}
