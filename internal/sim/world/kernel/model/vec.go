package model

import "fmt"

// Vec2i is a grid coordinate (tile units).
type Vec2i struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (v Vec2i) Add(o Vec2i) Vec2i { return Vec2i{X: v.X + o.X, Y: v.Y + o.Y} }

func (v Vec2i) String() string { return fmt.Sprintf("(%d,%d)", v.X, v.Y) }

// Pair is the persisted [x,y] form.
func (v Vec2i) Pair() [2]int { return [2]int{v.X, v.Y} }

func FromPair(p [2]int) Vec2i { return Vec2i{X: p[0], Y: p[1]} }

// Axis-aligned neighbour offsets in top, bottom, left, right order.
var (
	Up    = Vec2i{X: 0, Y: -1}
	Down  = Vec2i{X: 0, Y: 1}
	Left  = Vec2i{X: -1, Y: 0}
	Right = Vec2i{X: 1, Y: 0}
)

func (v Vec2i) Neighbors4() [4]Vec2i {
	return [4]Vec2i{v.Add(Up), v.Add(Down), v.Add(Left), v.Add(Right)}
}

// Less orders coordinates row-major, used wherever output must be deterministic.
func Less(a, b Vec2i) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
}
