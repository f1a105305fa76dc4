package animals

import (
	"fmt"

	"harvestvalley.farm/internal/sim/world/kernel/model"
	"harvestvalley.farm/internal/sim/world/logic/mathx"
)

// Snapshot keeps the production cycle and anchor points. Movement timers are
// re-drawn on restore.
type Snapshot struct {
	Type         string     `json:"type"`
	State        string     `json:"state"`
	ProductTimer float64    `json:"product_timer"`
	FeedCooldown int        `json:"feed_cooldown"`
	Happiness    float64    `json:"happiness"`
	Pos          [2]float64 `json:"pos"`
	Home         [2]float64 `json:"home"`
}

func (h *Herd) Export() []Snapshot {
	out := make([]Snapshot, 0, len(h.animals))
	for _, a := range h.animals {
		out = append(out, Snapshot{
			Type:         a.Type.String(),
			State:        a.State.String(),
			ProductTimer: a.ProductTimer,
			FeedCooldown: a.FeedCooldown,
			Happiness:    a.Happiness,
			Pos:          [2]float64{a.Pos.X, a.Pos.Y},
			Home:         [2]float64{a.Home.X, a.Home.Y},
		})
	}
	return out
}

// Restore replaces the herd. Nothing changes on error.
func (h *Herd) Restore(in []Snapshot, r mathx.Source) error {
	next := make([]*Animal, 0, len(in))
	for i, s := range in {
		t, ok := model.ParseAnimalType(s.Type)
		if !ok {
			return fmt.Errorf("animal %d: unknown type %q", i, s.Type)
		}
		st, ok := ParseState(s.State)
		if !ok {
			return fmt.Errorf("animal %d: unknown state %q", i, s.State)
		}
		if s.FeedCooldown < 0 || s.ProductTimer < 0 {
			return fmt.Errorf("animal %d: negative timer", i)
		}
		if s.Happiness < 0 || s.Happiness > MaxHappiness {
			return fmt.Errorf("animal %d: happiness %v out of range", i, s.Happiness)
		}
		a := New(t, mathx.Vec2{X: s.Home[0], Y: s.Home[1]}, r)
		a.Pos = mathx.Vec2{X: s.Pos[0], Y: s.Pos[1]}
		a.State = st
		a.ProductTimer = s.ProductTimer
		a.FeedCooldown = s.FeedCooldown
		a.Happiness = s.Happiness
		next = append(next, a)
	}
	h.animals = next
	return nil
}
