package npcs

import "harvestvalley.farm/internal/sim/world/logic/mathx"

// Town is every NPC on the map in spawn order.
type Town struct {
	npcs []*NPC
}

func NewTown() *Town { return &Town{} }

func (t *Town) Add(n *NPC) int {
	t.npcs = append(t.npcs, n)
	return len(t.npcs) - 1
}

func (t *Town) Len() int { return len(t.npcs) }

func (t *Town) Get(i int) (*NPC, bool) {
	if i < 0 || i >= len(t.npcs) {
		return nil, false
	}
	return t.npcs[i], true
}

func (t *Town) Each(fn func(i int, n *NPC)) {
	for i, n := range t.npcs {
		fn(i, n)
	}
}

// Nearby returns the first NPC in spawn order within maxDist of p.
func (t *Town) Nearby(p mathx.Vec2, maxDist float64) (int, bool) {
	for i, n := range t.npcs {
		if n.Pos.DistanceTo(p) <= maxDist {
			return i, true
		}
	}
	return -1, false
}

// HasShop reports whether any NPC runs a shop.
func (t *Town) HasShop() bool {
	for _, n := range t.npcs {
		if n.Shop() {
			return true
		}
	}
	return false
}

// NearShop reports whether a shop NPC stands within maxDist of p.
func (t *Town) NearShop(p mathx.Vec2, maxDist float64) bool {
	for _, n := range t.npcs {
		if n.Shop() && n.Pos.DistanceTo(p) <= maxDist {
			return true
		}
	}
	return false
}
