package world

import (
	"fmt"

	"harvestvalley.farm/internal/protocol"
	"harvestvalley.farm/internal/sim/world/feature/economy/inventory"
	"harvestvalley.farm/internal/sim/world/feature/work/craft"
	"harvestvalley.farm/internal/sim/world/kernel/model"
)

// shopOpen requires the player to stand by a shop NPC. A town without one
// trades from anywhere.
func (w *World) shopOpen() (ok bool, code string, msg string) {
	if !w.town.HasShop() || w.town.NearShop(w.player.Pos, w.cfg.InteractionDistance) {
		return true, "", ""
	}
	return false, protocol.ErrNoPermission, "Press F near Shopkeeper to trade"
}

func (w *World) Buy(item string, count int) (ok bool, code string, msg string) {
	if ok, code, msg := w.shopOpen(); !ok {
		return false, code, msg
	}
	ok, code, msg = w.shop.Buy(w.wallet, w.inv, item, count)
	if ok {
		w.auditEvent(AuditBuy, model.Vec2i{}, "", map[string]any{"item": item, "count": count})
	}
	return ok, code, msg
}

func (w *World) Sell(item string, count int) (ok bool, code string, msg string) {
	if ok, code, msg := w.shopOpen(); !ok {
		return false, code, msg
	}
	earned, ok, code, msg := w.shop.Sell(w.wallet, w.inv, item, count)
	if ok {
		w.auditEvent(AuditSell, model.Vec2i{}, "", map[string]any{"item": item, "count": count, "earned": earned})
	}
	return ok, code, msg
}

// SellAll sells every sellable stack; each stack is its own sale.
func (w *World) SellAll() (ok bool, code string, msg string) {
	if ok, code, msg := w.shopOpen(); !ok {
		return false, code, msg
	}
	sales := w.shop.SellAll(w.wallet, w.inv)
	if len(sales) == 0 {
		return false, protocol.ErrNoop, "Nothing to sell!"
	}
	total := 0
	for _, s := range sales {
		total += s.Earned
		w.auditEvent(AuditSell, model.Vec2i{}, "sell_all", map[string]any{"item": s.Item, "count": s.Count, "earned": s.Earned})
	}
	return true, "", fmt.Sprintf("Sold everything for $%d!", total)
}

func (w *World) Sellable() []inventory.Stack { return w.shop.Sellable(w.inv) }

func (w *World) Craft(recipeID string) (ok bool, code string, msg string) {
	res, ok, code, msg := craft.Craft(w.catalogs, w.inv, recipeID)
	if ok {
		w.auditEvent(AuditCraft, model.Vec2i{}, "", map[string]any{"recipe": res.RecipeID})
	}
	return ok, code, msg
}

func (w *World) Craftable() []string { return craft.Craftable(w.catalogs, w.inv) }

func (w *World) SelectSlot(slot int) (ok bool, code string, msg string) {
	if !w.hotbar.Select(slot) {
		return false, protocol.ErrBadRequest, fmt.Sprintf("slot %d out of range", slot)
	}
	return true, "", ""
}

// SetHotbar assigns item to slot; an empty item clears the slot.
func (w *World) SetHotbar(slot int, item string) (ok bool, code string, msg string) {
	if item != "" && !w.catalogs.HasItem(item) {
		return false, protocol.ErrInvalidTarget, w.catalogs.UnknownItemMessage(item)
	}
	if !w.hotbar.Set(slot, item) {
		return false, protocol.ErrBadRequest, fmt.Sprintf("slot %d out of range", slot)
	}
	return true, "", ""
}
