package model

type TileKind uint8

const (
	TileGrass TileKind = iota
	TileSoil
	TileWater
	TilePath
	TileTree
	TileRock
	TileFence
)

var tileKindNames = [...]string{
	TileGrass: "GRASS",
	TileSoil:  "SOIL",
	TileWater: "WATER",
	TilePath:  "PATH",
	TileTree:  "TREE",
	TileRock:  "ROCK",
	TileFence: "FENCE",
}

// Map-file letters.
var tileKindLetters = [...]byte{
	TileGrass: 'G',
	TileSoil:  'S',
	TileWater: 'W',
	TilePath:  'P',
	TileTree:  'T',
	TileRock:  'R',
	TileFence: 'F',
}

func (k TileKind) Valid() bool { return int(k) < len(tileKindNames) }

func (k TileKind) String() string {
	if !k.Valid() {
		return "UNKNOWN"
	}
	return tileKindNames[k]
}

func (k TileKind) Letter() byte {
	if !k.Valid() {
		return '?'
	}
	return tileKindLetters[k]
}

func ParseTileKind(s string) (TileKind, bool) {
	for i, n := range tileKindNames {
		if n == s {
			return TileKind(i), true
		}
	}
	return 0, false
}

func TileKindFromLetter(b byte) (TileKind, bool) {
	for i, l := range tileKindLetters {
		if l == b {
			return TileKind(i), true
		}
	}
	return 0, false
}
