package crops

import (
	"fmt"
	"sort"

	"harvestvalley.farm/internal/protocol"
	"harvestvalley.farm/internal/sim/world/kernel/model"
)

// Ground is the tile view planting needs.
type Ground interface {
	KindAt(pos model.Vec2i) (model.TileKind, bool)
}

// Field holds at most one crop per coordinate.
type Field struct {
	crops map[model.Vec2i]*Crop
}

func NewField() *Field {
	return &Field{crops: map[model.Vec2i]*Crop{}}
}

func (f *Field) Len() int { return len(f.crops) }

func (f *Field) Occupied(pos model.Vec2i) bool {
	_, ok := f.crops[pos]
	return ok
}

// At returns a copy of the crop at pos.
func (f *Field) At(pos model.Vec2i) (Crop, bool) {
	c, ok := f.crops[pos]
	if !ok {
		return Crop{}, false
	}
	return *c, true
}

func (f *Field) Plant(g Ground, pos model.Vec2i, t model.CropType, now float64) (ok bool, code string, msg string) {
	if !t.Valid() {
		return false, protocol.ErrBadRequest, "unknown crop type"
	}
	kind, in := g.KindAt(pos)
	if !in {
		return false, protocol.ErrInvalidTarget, "outside the map"
	}
	if kind != model.TileSoil {
		return false, protocol.ErrInvalidTarget, "Can only plant on tilled soil!"
	}
	if f.Occupied(pos) {
		return false, protocol.ErrConflict, "Something is already planted here!"
	}
	f.crops[pos] = New(t, now)
	return true, "", ""
}

type Harvest struct {
	Type  model.CropType
	Price int
}

// Harvest removes a ready crop and reports its sell price.
func (f *Field) Harvest(pos model.Vec2i) (h Harvest, ok bool, code string, msg string) {
	c, found := f.crops[pos]
	if !found {
		return Harvest{}, false, protocol.ErrInvalidTarget, "Nothing to harvest here!"
	}
	if !c.Ready {
		return Harvest{}, false, protocol.ErrWrongState, fmt.Sprintf("%s is not ready yet!", c.Type)
	}
	delete(f.crops, pos)
	return Harvest{Type: c.Type, Price: c.Type.Def().SellPrice}, true, "", ""
}

// WaterAt satisfies store.CropWaterer.
func (f *Field) WaterAt(pos model.Vec2i) bool {
	c, ok := f.crops[pos]
	if !ok {
		return false
	}
	return c.Water()
}

type Event struct {
	Pos model.Vec2i
	Transition
}

// Update advances every crop and returns stage changes in row-major order.
func (f *Field) Update(now float64) []Event {
	var out []Event
	for _, pos := range f.Positions() {
		if tr, changed := f.crops[pos].Update(now); changed {
			out = append(out, Event{Pos: pos, Transition: tr})
		}
	}
	return out
}

func (f *Field) Positions() []model.Vec2i {
	out := make([]model.Vec2i, 0, len(f.crops))
	for p := range f.crops {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return model.Less(out[i], out[j]) })
	return out
}
