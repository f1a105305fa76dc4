package gen

import (
	"fmt"
	"strings"

	"harvestvalley.farm/internal/sim/world/kernel/model"
)

// Layout is the starting tile map, row-major.
type Layout struct {
	Width  int
	Height int
	Kinds  []model.TileKind
}

func (l Layout) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < l.Width && y < l.Height
}

func (l Layout) At(x, y int) model.TileKind {
	if !l.InBounds(x, y) {
		return model.TileGrass
	}
	return l.Kinds[y*l.Width+x]
}

// KindAt is the rule-based default terrain for one cell.
func KindAt(x, y, width, height int) model.TileKind {
	switch {
	case y < 3:
		if x%3 == 0 {
			return model.TileTree
		}
		return model.TileGrass
	case x < 2 || x > width-3:
		return model.TileFence
	case y > height-3:
		return model.TileWater
	case x >= 8 && x <= 12 && y >= 8 && y <= 12:
		return model.TileSoil
	case x%4 == 0 && y%4 == 0:
		return model.TileRock
	case (x+y)%8 == 0:
		return model.TilePath
	default:
		return model.TileGrass
	}
}

func Default(width, height int) Layout {
	l := Layout{Width: width, Height: height, Kinds: make([]model.TileKind, width*height)}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			l.Kinds[y*width+x] = KindAt(x, y, width, height)
		}
	}
	return l
}

// ParseRows reads a map drawn with one letter per tile (G S W P T R F).
// Blank lines are ignored; every row must have the same width.
func ParseRows(rows []string) (Layout, error) {
	var kept []string
	for _, r := range rows {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		kept = append(kept, r)
	}
	if len(kept) == 0 {
		return Layout{}, fmt.Errorf("map: no rows")
	}
	w := len(kept[0])
	l := Layout{Width: w, Height: len(kept), Kinds: make([]model.TileKind, 0, w*len(kept))}
	for y, r := range kept {
		if len(r) != w {
			return Layout{}, fmt.Errorf("map: row %d has width %d, want %d", y, len(r), w)
		}
		for x := 0; x < len(r); x++ {
			k, ok := model.TileKindFromLetter(r[x])
			if !ok {
				return Layout{}, fmt.Errorf("map: unknown tile %q at (%d,%d)", r[x], x, y)
			}
			l.Kinds = append(l.Kinds, k)
		}
	}
	return l, nil
}

func (l Layout) Rows() []string {
	out := make([]string, l.Height)
	buf := make([]byte, l.Width)
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			buf[x] = l.At(x, y).Letter()
		}
		out[y] = string(buf)
	}
	return out
}
