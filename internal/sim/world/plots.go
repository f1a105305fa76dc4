package world

import (
	"harvestvalley.farm/internal/sim/world/feature/governance/claims"
	"harvestvalley.farm/internal/sim/world/kernel/model"
)

// Claim buys cell c. The hoe must be equipped.
func (w *World) Claim(c model.Vec2i) (ok bool, code string, msg string) {
	ok, code, msg = w.plots.Claim(c, w.player.Tool, w.grid, w.wallet)
	if ok {
		w.auditEvent(AuditClaim, c, "", map[string]any{"cost": w.plots.Cost()})
	}
	return ok, code, msg
}

// SellPlot returns cell c for the refund.
func (w *World) SellPlot(c model.Vec2i) (ok bool, code string, msg string) {
	ok, code, msg = w.plots.Sell(c, w.grid, w.field, w.wallet)
	if ok {
		w.auditEvent(AuditSellPlot, c, "", map[string]any{"refund": w.plots.RefundValue()})
	}
	return ok, code, msg
}

func (w *World) ToggleLock(c model.Vec2i) (ok bool, code string, msg string) {
	ok, code, msg = w.plots.ToggleLock(c)
	if ok {
		action := AuditUnlock
		if w.plots.IsLocked(c) {
			action = AuditLock
		}
		w.auditEvent(action, c, "", nil)
	}
	return ok, code, msg
}

// Regions are the connected claimed areas, cached until the claim set changes.
func (w *World) Regions() []claims.Region { return w.plots.Regions() }
