package world

import (
	"fmt"

	"harvestvalley.farm/internal/protocol"
	"harvestvalley.farm/internal/sim/world/feature/entities/animals"
	"harvestvalley.farm/internal/sim/world/feature/entities/npcs"
)

// Observe renders the player's view of the farm.
func (w *World) Observe() protocol.ObsMsg {
	obs := protocol.ObsMsg{
		Type:            protocol.TypeObs,
		ProtocolVersion: protocol.Version,
		Tick:            w.tick.Load(),
		Clock:           w.Clock(),
		Player: protocol.PlayerObs{
			Pos:          [2]float64{w.player.Pos.X, w.player.Pos.Y},
			Money:        w.wallet.Balance(),
			Energy:       w.player.Energy,
			MaxEnergy:    w.player.MaxEnergy,
			Tool:         string(w.player.Tool),
			SelectedSlot: w.hotbar.Selected(),
		},
		Time: protocol.TimeObs{
			Hour:   w.calendar.Hour,
			Day:    w.calendar.Day,
			Season: w.calendar.Season.String(),
			Night:  w.calendar.IsNight(),
			Label:  fmt.Sprintf("%s - %s", w.calendar.DayString(), w.calendar.TimeString()),
		},
		Inventory: []protocol.ItemStack{},
		Hotbar:    w.hotbar.Export(),
		Plots: protocol.PlotsObs{
			Claimed: [][2]int{},
			Locked:  [][2]int{},
			Regions: []protocol.RegionObs{},
		},
		Crops:   []protocol.CropObs{},
		Animals: []protocol.AnimalObs{},
		NPCs:    []protocol.NPCObs{},
	}

	for _, s := range w.inv.Stacks() {
		obs.Inventory = append(obs.Inventory, protocol.ItemStack{Item: s.Item, Count: s.Count})
	}
	for _, p := range w.plots.Claimed() {
		obs.Plots.Claimed = append(obs.Plots.Claimed, p.Pair())
	}
	for _, p := range w.plots.Locked() {
		obs.Plots.Locked = append(obs.Plots.Locked, p.Pair())
	}
	for _, r := range w.plots.Regions() {
		ro := protocol.RegionObs{Cells: make([]protocol.CellEdgesObs, 0, r.Size())}
		for _, c := range r.Cells {
			e := r.Edges(c)
			ro.Cells = append(ro.Cells, protocol.CellEdgesObs{
				Pos: c.Pair(), Top: e.Top, Bottom: e.Bottom, Left: e.Left, Right: e.Right,
			})
		}
		obs.Plots.Regions = append(obs.Plots.Regions, ro)
	}
	for _, pos := range w.field.Positions() {
		c, _ := w.field.At(pos)
		obs.Crops = append(obs.Crops, protocol.CropObs{
			Pos:        pos.Pair(),
			Type:       c.Type.String(),
			Stage:      c.Stage,
			Watered:    c.Watered,
			NeedsWater: c.NeedsWater,
			Ready:      c.Ready,
		})
	}
	w.herd.Each(func(i int, a *animals.Animal) {
		obs.Animals = append(obs.Animals, protocol.AnimalObs{
			Index: i,
			Type:  a.Type.String(),
			State: a.State.String(),
			Pos:   [2]float64{a.Pos.X, a.Pos.Y},
			Info:  a.Info(),
		})
	})
	w.town.Each(func(i int, n *npcs.NPC) {
		obs.NPCs = append(obs.NPCs, protocol.NPCObs{
			Index: i,
			Kind:  n.Kind.String(),
			Pos:   [2]float64{n.Pos.X, n.Pos.Y},
			Shop:  n.Shop(),
		})
	})
	return obs
}
