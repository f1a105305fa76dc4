package store

import (
	"crypto/sha256"

	"harvestvalley.farm/internal/sim/world/kernel/model"
	"harvestvalley.farm/internal/sim/world/terrain/gen"
)

type Tile struct {
	Kind    model.TileKind
	Watered bool // only meaningful on soil
}

// Cell is a tile with its coordinate, used for diffs and snapshots.
type Cell struct {
	Pos     model.Vec2i    `json:"pos"`
	Kind    model.TileKind `json:"kind"`
	Watered bool           `json:"watered,omitempty"`
}

// CropWaterer receives watering for whatever crop occupies a cell.
type CropWaterer interface {
	WaterAt(pos model.Vec2i) bool
}

// Grid owns tile state for a fixed-size map. It knows nothing about claims.
type Grid struct {
	width  int
	height int
	tiles  []Tile

	dirty bool
	hash  [32]byte
}

func New(layout gen.Layout) *Grid {
	g := &Grid{
		width:  layout.Width,
		height: layout.Height,
		tiles:  make([]Tile, layout.Width*layout.Height),
		dirty:  true,
	}
	for i, k := range layout.Kinds {
		g.tiles[i] = Tile{Kind: k}
	}
	return g
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

func (g *Grid) index(c model.Vec2i) int { return c.X + c.Y*g.width }

func (g *Grid) Clone() *Grid {
	out := *g
	out.tiles = append([]Tile(nil), g.tiles...)
	return &out
}

func (g *Grid) Digest() [32]byte {
	if g.dirty || g.hash == ([32]byte{}) {
		h := sha256.New()
		buf := make([]byte, 0, len(g.tiles))
		for _, t := range g.tiles {
			b := byte(t.Kind) << 1
			if t.Watered {
				b |= 1
			}
			buf = append(buf, b)
		}
		h.Write(buf)
		copy(g.hash[:], h.Sum(nil))
		g.dirty = false
	}
	return g.hash
}
