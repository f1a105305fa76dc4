package main

import (
	"fmt"
	"math"

	"harvestvalley.farm/internal/protocol"
)

const (
	seedSlot  = 0
	emptySlot = 4

	shopReach = 45.0 // inside the server's interaction distance
	stepPx    = 3.0
	maxSteps  = 32
)

// farmer plans one ACT per decision from the latest observation. It keeps a
// small memory of tiles it has tilled since OBS carries crops but not tiles.
type farmer struct {
	bed    [][2]int
	tilled map[[2]int]bool
	seq    int
	minE   float64
}

func newFarmer(bed [][2]int) *farmer {
	return &farmer{bed: bed, tilled: map[[2]int]bool{}, minE: 10}
}

// observe updates memory from the action results carried by obs.
func (f *farmer) observe(obs *protocol.ObsMsg) {
	for _, c := range obs.Crops {
		f.tilled[c.Pos] = true
	}
	for _, r := range obs.Results {
		// A noop till means the tile is already soil.
		if r.Type == protocol.ActUseTool && (r.OK || r.Code == protocol.ErrNoop) {
			if pos, ok := parseTillID(r.ID); ok {
				f.tilled[pos] = true
			}
		}
	}
}

// plan returns the next batch of actions, or nil when there is nothing to do.
func (f *farmer) plan(obs *protocol.ObsMsg) []protocol.Action {
	var out []protocol.Action

	for _, a := range obs.Animals {
		idx := a.Index
		switch a.State {
		case "HAS_PRODUCT":
			out = append(out, f.action(protocol.Action{Type: protocol.ActCollect, Animal: &idx}))
		case "NEEDS_FEED":
			out = append(out, f.action(protocol.Action{Type: protocol.ActFeed, Animal: &idx}))
		}
	}

	if hasSellable(obs.Inventory) {
		acts, there := f.trade(obs, protocol.Action{Type: protocol.ActSellAll})
		out = append(out, acts...)
		if !there {
			return out
		}
	}

	if obs.Player.Energy >= f.minE {
		if step := f.tend(obs); step != nil {
			out = append(out, step...)
		}
	}
	return out
}

// tend works the first bed tile that needs something.
func (f *farmer) tend(obs *protocol.ObsMsg) []protocol.Action {
	claimed := map[[2]int]bool{}
	for _, c := range obs.Plots.Claimed {
		claimed[c] = true
	}
	crops := map[[2]int]protocol.CropObs{}
	for _, c := range obs.Crops {
		crops[c.Pos] = c
	}

	for _, pos := range f.bed {
		p := pos
		crop, planted := crops[p]
		switch {
		case !claimed[p]:
			if obs.Player.Money < 50 {
				continue
			}
			return []protocol.Action{
				f.setTool("hoe"),
				f.action(protocol.Action{Type: protocol.ActClaim, Target: &p}),
			}
		case !planted && !f.tilled[p]:
			till := f.action(protocol.Action{Type: protocol.ActUseTool, Target: &p})
			till.ID = tillID(p)
			return []protocol.Action{f.setTool("hoe"), till}
		case !planted:
			if seedCount(obs) == 0 {
				acts, _ := f.trade(obs, protocol.Action{Type: protocol.ActBuy, Item: "wheat_seed", Count: 1})
				return acts
			}
			return []protocol.Action{
				f.selectSlot(seedSlot),
				f.setTool("hand"),
				f.action(protocol.Action{Type: protocol.ActUseTool, Target: &p}),
			}
		case crop.Ready:
			return []protocol.Action{
				f.selectSlot(emptySlot),
				f.setTool("hand"),
				f.action(protocol.Action{Type: protocol.ActUseTool, Target: &p}),
			}
		case crop.NeedsWater || !crop.Watered:
			return []protocol.Action{
				f.setTool("watering_can"),
				f.action(protocol.Action{Type: protocol.ActUseTool, Target: &p}),
			}
		}
	}
	return nil
}

// trade returns a when the shopkeeper is in reach. Otherwise it returns a walk
// towards the shopkeeper and false.
func (f *farmer) trade(obs *protocol.ObsMsg, a protocol.Action) ([]protocol.Action, bool) {
	shop, ok := shopPos(obs)
	if !ok {
		return []protocol.Action{f.action(a)}, true
	}
	dx, dy := shop[0]-obs.Player.Pos[0], shop[1]-obs.Player.Pos[1]
	dist := math.Hypot(dx, dy)
	if dist <= shopReach {
		return []protocol.Action{f.action(a)}, true
	}
	steps := int(math.Ceil((dist - shopReach/2) / stepPx))
	if steps > maxSteps {
		steps = maxSteps
	}
	out := make([]protocol.Action, 0, steps)
	for i := 0; i < steps; i++ {
		out = append(out, f.action(protocol.Action{Type: protocol.ActMove, DX: dx / dist, DY: dy / dist}))
	}
	return out, false
}

// shopPos is where the first shop NPC stands. Without one the shop is open anywhere.
func shopPos(obs *protocol.ObsMsg) ([2]float64, bool) {
	for _, n := range obs.NPCs {
		if n.Shop {
			return n.Pos, true
		}
	}
	return [2]float64{}, false
}

func (f *farmer) action(a protocol.Action) protocol.Action {
	f.seq++
	a.ID = fmt.Sprintf("B%d", f.seq)
	return a
}

func (f *farmer) setTool(tool string) protocol.Action {
	return f.action(protocol.Action{Type: protocol.ActSetTool, Tool: tool})
}

func (f *farmer) selectSlot(slot int) protocol.Action {
	return f.action(protocol.Action{Type: protocol.ActSelectSlot, Slot: &slot})
}

func tillID(p [2]int) string { return fmt.Sprintf("TILL_%d_%d", p[0], p[1]) }

func parseTillID(id string) ([2]int, bool) {
	var p [2]int
	if _, err := fmt.Sscanf(id, "TILL_%d_%d", &p[0], &p[1]); err != nil {
		return p, false
	}
	return p, true
}

func seedCount(obs *protocol.ObsMsg) int {
	if seedSlot >= len(obs.Hotbar) || obs.Hotbar[seedSlot] == nil {
		return 0
	}
	id := *obs.Hotbar[seedSlot]
	for _, s := range obs.Inventory {
		if s.Item == id {
			return s.Count
		}
	}
	return 0
}

var sellable = map[string]bool{
	"wheat": true, "carrot": true, "tomato": true, "corn": true,
	"egg": true, "milk": true, "wool": true,
}

func hasSellable(inv []protocol.ItemStack) bool {
	for _, s := range inv {
		if s.Count > 0 && sellable[s.Item] {
			return true
		}
	}
	return false
}
