package world

import (
	"fmt"
	"strings"

	"harvestvalley.farm/internal/protocol"
	"harvestvalley.farm/internal/sim/world/feature/entities/animals"
	"harvestvalley.farm/internal/sim/world/kernel/model"
	"harvestvalley.farm/internal/sim/world/terrain/store"
)

// InteractNearest talks to an NPC in reach, or else collects from, feeds, or
// inspects the closest animal in reach.
func (w *World) InteractNearest() (ok bool, code string, msg string) {
	if i, found := w.town.Nearby(w.player.Pos, w.cfg.InteractionDistance); found {
		return w.Talk(i)
	}
	i, found := w.herd.Nearest(w.player.Pos, w.cfg.InteractionDistance)
	if !found {
		return false, protocol.ErrInvalidTarget, "No animal nearby"
	}
	a, _ := w.herd.Get(i)
	switch {
	case a.CanCollect():
		return w.Collect(i)
	case a.CanFeed():
		return w.Feed(i)
	default:
		return false, protocol.ErrNoop, fmt.Sprintf("%s: %s", titleCase(a.Type.String()), a.Info())
	}
}

// Talk advances NPC i's dialogue.
func (w *World) Talk(i int) (ok bool, code string, msg string) {
	n, found := w.town.Get(i)
	if !found {
		return false, protocol.ErrInvalidTarget, "no such npc"
	}
	line := n.Talk()
	w.auditEvent(AuditTalk, store.CellAt(n.Pos.X, n.Pos.Y, w.cfg.TileSize), "", map[string]any{"npc": n.Kind.String()})
	return true, "", fmt.Sprintf("%s: %s", n.Kind.Def().Title, line)
}

// Collect takes the product from animal i into the inventory.
func (w *World) Collect(i int) (ok bool, code string, msg string) {
	c, ok, code, msg := w.herd.Collect(i)
	if !ok {
		return false, code, msg
	}
	w.inv.Add(c.Product, 1)
	w.auditEvent(AuditCollect, w.animalCell(i), "", map[string]any{"animal": i, "product": c.Product})
	return true, "", fmt.Sprintf("Collected %s! You can now feed the animal again!", c.Product)
}

func (w *World) Feed(i int) (ok bool, code string, msg string) {
	if ok, code, msg := w.herd.Feed(i); !ok {
		return false, code, msg
	}
	a, _ := w.herd.Get(i)
	w.auditEvent(AuditFeed, w.animalCell(i), "", map[string]any{"animal": i})
	return true, "", fmt.Sprintf("Fed %s! Wait for digestion.", a.Type)
}

func (w *World) animalCell(i int) model.Vec2i {
	a, ok := w.herd.Get(i)
	if !ok {
		return model.Vec2i{}
	}
	return store.CellAt(a.Pos.X, a.Pos.Y, w.cfg.TileSize)
}

func (w *World) animalBounds() animals.Bounds {
	return animals.Bounds{Width: w.cfg.widthPx(), Height: w.cfg.heightPx()}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
