package world

import (
	"fmt"

	"harvestvalley.farm/internal/protocol"
	"harvestvalley.farm/internal/sim/world/kernel/model"
	"harvestvalley.farm/internal/sim/world/terrain/store"
)

// SetTool equips t.
func (w *World) SetTool(t model.Tool) (ok bool, code string, msg string) {
	if !t.Valid() {
		return false, protocol.ErrBadRequest, fmt.Sprintf("unknown tool %q", t)
	}
	w.player.Tool = t
	return true, "", fmt.Sprintf("Tool: %s", t)
}

// UseTool applies the equipped tool to cell c. Energy is spent before the
// tile is touched, so a tool swung at the wrong tile still tires the player.
func (w *World) UseTool(c model.Vec2i) (ok bool, code string, msg string) {
	if !w.grid.InBounds(c) {
		return false, protocol.ErrInvalidTarget, "outside the map"
	}
	switch w.player.Tool {
	case model.ToolHoe:
		return w.useHoe(c)
	case model.ToolWateringCan:
		return w.useWateringCan(c)
	case model.ToolHand:
		return w.useHand(c)
	case model.ToolAxe:
		return w.useAxe(c)
	case model.ToolScythe:
		return w.useScythe(c)
	default:
		return false, protocol.ErrWrongTool, fmt.Sprintf("unknown tool %q", w.player.Tool)
	}
}

// UseToolAt targets the tile under a pixel position.
func (w *World) UseToolAt(px, py float64) (ok bool, code string, msg string) {
	return w.UseTool(store.CellAt(px, py, w.cfg.TileSize))
}

func (w *World) spend(t model.Tool) bool {
	return w.player.UseEnergy(w.cfg.EnergyCosts.For(t))
}

func tooTired() (bool, string, string) {
	return false, protocol.ErrNoEnergy, "Too tired!"
}

func (w *World) useHoe(c model.Vec2i) (bool, string, string) {
	// The grid has no notion of ownership; the claim gate lives here.
	if !w.plots.IsClaimed(c) {
		return false, protocol.ErrNoPermission, "Must claim plot first! (Right-click grass)"
	}
	if !w.spend(model.ToolHoe) {
		return tooTired()
	}
	if !w.grid.Till(c) {
		return false, protocol.ErrNoop, "Nothing to till here"
	}
	w.auditEvent(AuditTill, c, "", nil)
	return true, "", "Soil tilled!"
}

func (w *World) useWateringCan(c model.Vec2i) (bool, string, string) {
	if !w.spend(model.ToolWateringCan) {
		return tooTired()
	}
	if !w.grid.Water(c, w.field) {
		return false, protocol.ErrNoop, "Nothing to water here"
	}
	w.auditEvent(AuditWater, c, "", nil)
	return true, "", "Watered!"
}

// useHand plants the selected seed, or harvests when no seed is selected.
func (w *World) useHand(c model.Vec2i) (bool, string, string) {
	if seed, ok := w.hotbar.SelectedSeed(w.inv); ok {
		item := seed.SeedItem()
		if !w.inv.Remove(item, 1) {
			return false, protocol.ErrNoResource, fmt.Sprintf("No %s left", item)
		}
		if ok, code, msg := w.field.Plant(w.grid, c, seed, w.Clock()); !ok {
			w.inv.Add(item, 1)
			return false, code, msg
		}
		w.auditEvent(AuditPlant, c, "", map[string]any{"crop": seed.String()})
		return true, "", fmt.Sprintf("Planted %s!", seed)
	}

	h, ok, code, msg := w.field.Harvest(c)
	if !ok {
		return false, code, msg
	}
	w.inv.Add(h.Type.Item(), 1)
	w.auditEvent(AuditHarvest, c, "", map[string]any{"crop": h.Type.String(), "value": h.Price})
	return true, "", fmt.Sprintf("Harvested %s! Sell to shopkeeper! ($%d)", h.Type, h.Price)
}

func (w *World) useAxe(c model.Vec2i) (bool, string, string) {
	if kind, _ := w.grid.KindAt(c); kind != model.TileTree {
		return false, protocol.ErrInvalidTarget, "Nothing to chop here"
	}
	if !w.spend(model.ToolAxe) {
		return tooTired()
	}
	w.inv.Add(model.ItemWood, w.cfg.AxeWoodYield)
	w.auditEvent(AuditChop, c, "", map[string]any{"wood": w.cfg.AxeWoodYield})
	return true, "", fmt.Sprintf("Chopped wood! +%d wood", w.cfg.AxeWoodYield)
}

func (w *World) useScythe(c model.Vec2i) (bool, string, string) {
	if kind, _ := w.grid.KindAt(c); kind != model.TileGrass {
		return false, protocol.ErrInvalidTarget, "Nothing to cut here"
	}
	if !w.spend(model.ToolScythe) {
		return tooTired()
	}
	return true, "", "Cleared grass!"
}
