package claims

import (
	"sort"

	"harvestvalley.farm/internal/sim/world/kernel/model"
)

// Region is a maximal 4-connected set of claimed cells.
type Region struct {
	Cells []model.Vec2i // row-major
	set   map[model.Vec2i]struct{}
}

func (g Region) Size() int { return len(g.Cells) }

func (g Region) Contains(p model.Vec2i) bool {
	_, ok := g.set[p]
	return ok
}

// Edges marks the sides of a cell that border something outside the region.
type Edges struct {
	Top    bool
	Bottom bool
	Left   bool
	Right  bool
}

func (g Region) Edges(p model.Vec2i) Edges {
	n := p.Neighbors4()
	return Edges{
		Top:    !g.Contains(n[0]),
		Bottom: !g.Contains(n[1]),
		Left:   !g.Contains(n[2]),
		Right:  !g.Contains(n[3]),
	}
}

// Regions partitions the claimed set by breadth-first traversal. The result is
// cached until the claimed set changes. Regions are ordered by their first cell.
func (r *Registry) Regions() []Region {
	if r.regionsValid {
		return r.regions
	}
	r.regions = floodFill(r.claimed)
	r.regionsValid = true
	return r.regions
}

func floodFill(claimed map[model.Vec2i]struct{}) []Region {
	visited := make(map[model.Vec2i]struct{}, len(claimed))
	var out []Region
	for _, start := range sortedKeys(claimed) {
		if _, seen := visited[start]; seen {
			continue
		}
		reg := Region{set: map[model.Vec2i]struct{}{}}
		queue := []model.Vec2i{start}
		visited[start] = struct{}{}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			reg.set[cur] = struct{}{}
			reg.Cells = append(reg.Cells, cur)
			for _, nb := range cur.Neighbors4() {
				if _, ok := claimed[nb]; !ok {
					continue
				}
				if _, seen := visited[nb]; seen {
					continue
				}
				visited[nb] = struct{}{}
				queue = append(queue, nb)
			}
		}
		sort.Slice(reg.Cells, func(i, j int) bool { return model.Less(reg.Cells[i], reg.Cells[j]) })
		out = append(out, reg)
	}
	return out
}

// RegionOf returns the region containing p.
func (r *Registry) RegionOf(p model.Vec2i) (Region, bool) {
	for _, g := range r.Regions() {
		if g.Contains(p) {
			return g, true
		}
	}
	return Region{}, false
}
