package world

import (
	"fmt"

	"harvestvalley.farm/internal/protocol"
	"harvestvalley.farm/internal/sim/world/kernel/model"
)

// Apply runs one protocol action against the world and reports the outcome.
func (w *World) Apply(a protocol.Action) protocol.ActionResult {
	ok, code, msg := w.dispatch(a)
	if ok {
		code = ""
	}
	return protocol.ActionResult{ID: a.ID, Type: a.Type, OK: ok, Code: code, Message: msg}
}

func (w *World) dispatch(a protocol.Action) (ok bool, code string, msg string) {
	switch a.Type {
	case protocol.ActUseTool:
		c, ok := target(a)
		if !ok {
			return missing("target")
		}
		return w.UseTool(c)
	case protocol.ActSetTool:
		return w.SetTool(model.Tool(a.Tool))
	case protocol.ActNextTool:
		t := w.player.NextTool()
		return true, "", fmt.Sprintf("Tool: %s", t)
	case protocol.ActSelectSlot:
		if a.Slot == nil {
			return missing("slot")
		}
		return w.SelectSlot(*a.Slot)
	case protocol.ActSetHotbar:
		if a.Slot == nil {
			return missing("slot")
		}
		return w.SetHotbar(*a.Slot, a.Item)
	case protocol.ActClaim:
		c, ok := target(a)
		if !ok {
			return missing("target")
		}
		return w.Claim(c)
	case protocol.ActSellPlot:
		c, ok := target(a)
		if !ok {
			return missing("target")
		}
		return w.SellPlot(c)
	case protocol.ActToggleLock:
		c, ok := target(a)
		if !ok {
			return missing("target")
		}
		return w.ToggleLock(c)
	case protocol.ActInteract:
		return w.InteractNearest()
	case protocol.ActFeed:
		if a.Animal == nil {
			return missing("animal")
		}
		return w.Feed(*a.Animal)
	case protocol.ActCollect:
		if a.Animal == nil {
			return missing("animal")
		}
		return w.Collect(*a.Animal)
	case protocol.ActBuy:
		return w.Buy(a.Item, countOrOne(a.Count))
	case protocol.ActSell:
		return w.Sell(a.Item, countOrOne(a.Count))
	case protocol.ActSellAll:
		return w.SellAll()
	case protocol.ActCraft:
		return w.Craft(a.Recipe)
	case protocol.ActMove:
		p := w.Move(a.DX, a.DY)
		return true, "", fmt.Sprintf("at (%.0f,%.0f)", p.X, p.Y)
	case protocol.ActSave:
		return w.queueSave()
	default:
		return false, protocol.ErrBadRequest, fmt.Sprintf("unknown action type %q", a.Type)
	}
}

func target(a protocol.Action) (model.Vec2i, bool) {
	if a.Target == nil {
		return model.Vec2i{}, false
	}
	return model.FromPair(*a.Target), true
}

func missing(field string) (bool, string, string) {
	return false, protocol.ErrBadRequest, "missing " + field
}

func countOrOne(n int) int {
	if n == 0 {
		return 1
	}
	return n
}
