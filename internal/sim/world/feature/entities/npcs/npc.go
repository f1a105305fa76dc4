// Package npcs holds the villagers standing on the farm: where they are and
// what they say next.
package npcs

import (
	"harvestvalley.farm/internal/sim/world/kernel/model"
	"harvestvalley.farm/internal/sim/world/logic/mathx"
)

type NPC struct {
	Kind model.NPCKind
	Pos  mathx.Vec2

	next int // index of the next dialogue line
}

func New(kind model.NPCKind, pos mathx.Vec2) *NPC {
	return &NPC{Kind: kind, Pos: pos}
}

// Talk returns what the NPC says. Shop NPCs always greet; the others walk
// their dialogue list and wrap around.
func (n *NPC) Talk() string {
	def := n.Kind.Def()
	if def.Shop {
		return def.Greeting
	}
	if len(def.Dialogues) == 0 {
		return ""
	}
	line := def.Dialogues[n.next%len(def.Dialogues)]
	n.next = (n.next + 1) % len(def.Dialogues)
	return line
}

// NextLine is the cursor Talk will read from.
func (n *NPC) NextLine() int { return n.next }

func (n *NPC) Shop() bool { return n.Kind.Def().Shop }
