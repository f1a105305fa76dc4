package animals

import (
	"fmt"

	"harvestvalley.farm/internal/protocol"
	"harvestvalley.farm/internal/sim/world/kernel/model"
	"harvestvalley.farm/internal/sim/world/logic/mathx"
)

// Herd is the ordered animal list. Indices are stable for a session.
type Herd struct {
	animals []*Animal
}

func NewHerd() *Herd { return &Herd{} }

func (h *Herd) Add(a *Animal) int {
	h.animals = append(h.animals, a)
	return len(h.animals) - 1
}

func (h *Herd) Len() int { return len(h.animals) }

func (h *Herd) Get(i int) (*Animal, bool) {
	if i < 0 || i >= len(h.animals) {
		return nil, false
	}
	return h.animals[i], true
}

func (h *Herd) Each(fn func(i int, a *Animal)) {
	for i, a := range h.animals {
		fn(i, a)
	}
}

// Nearest returns the closest animal within maxDist of p. Ties go to the lower index.
func (h *Herd) Nearest(p mathx.Vec2, maxDist float64) (int, bool) {
	best := -1
	bestD := 0.0
	for i, a := range h.animals {
		d := a.Pos.DistanceTo(p)
		if d > maxDist {
			continue
		}
		if best < 0 || d < bestD {
			best, bestD = i, d
		}
	}
	return best, best >= 0
}

type Produced struct {
	Index   int
	Type    model.AnimalType
	Product string
}

// Update ticks every animal in index order.
func (h *Herd) Update(dt float64, b Bounds, r mathx.Source) []Produced {
	var out []Produced
	for i, a := range h.animals {
		if a.Update(dt, b, r) {
			out = append(out, Produced{Index: i, Type: a.Type, Product: a.Type.Def().Product})
		}
	}
	return out
}

type Collected struct {
	Product string
	Value   int
}

func (h *Herd) Collect(i int) (c Collected, ok bool, code string, msg string) {
	a, found := h.Get(i)
	if !found {
		return Collected{}, false, protocol.ErrInvalidTarget, "no such animal"
	}
	product, value, ok := a.Collect()
	if !ok {
		return Collected{}, false, protocol.ErrWrongState, fmt.Sprintf("%s: %s", a.Type, a.Info())
	}
	return Collected{Product: product, Value: value}, true, "", ""
}

func (h *Herd) Feed(i int) (ok bool, code string, msg string) {
	a, found := h.Get(i)
	if !found {
		return false, protocol.ErrInvalidTarget, "no such animal"
	}
	if !a.Feed() {
		return false, protocol.ErrWrongState, fmt.Sprintf("%s: %s", a.Type, a.Info())
	}
	return true, "", ""
}
