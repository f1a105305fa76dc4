package crops

import (
	"fmt"

	"harvestvalley.farm/internal/sim/world/kernel/model"
)

type Snapshot struct {
	Pos        [2]int  `json:"pos"`
	Type       string  `json:"type"`
	Stage      int     `json:"stage"`
	Planted    float64 `json:"planted"`
	Watered    bool    `json:"watered"`
	NeedsWater bool    `json:"needs_water"`
}

func (f *Field) Export() []Snapshot {
	out := make([]Snapshot, 0, len(f.crops))
	for _, pos := range f.Positions() {
		c := f.crops[pos]
		out = append(out, Snapshot{
			Pos:        pos.Pair(),
			Type:       c.Type.String(),
			Stage:      c.Stage,
			Planted:    c.Planted,
			Watered:    c.Watered,
			NeedsWater: c.NeedsWater,
		})
	}
	return out
}

// Restore replaces the field contents. Nothing changes on error.
func (f *Field) Restore(in []Snapshot) error {
	next := make(map[model.Vec2i]*Crop, len(in))
	for i, s := range in {
		t, ok := model.ParseCropType(s.Type)
		if !ok {
			return fmt.Errorf("crop %d: unknown type %q", i, s.Type)
		}
		if s.Stage < 0 || s.Stage > model.MaxCropStage {
			return fmt.Errorf("crop %d: stage %d out of range", i, s.Stage)
		}
		pos := model.FromPair(s.Pos)
		if _, dup := next[pos]; dup {
			return fmt.Errorf("crop %d: duplicate position %s", i, pos)
		}
		next[pos] = &Crop{
			Type:       t,
			Stage:      s.Stage,
			Planted:    s.Planted,
			Watered:    s.Watered,
			NeedsWater: s.NeedsWater,
			Ready:      s.Stage == model.MaxCropStage,
		}
	}
	f.crops = next
	return nil
}
