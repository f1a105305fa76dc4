package model

type Tool string

const (
	ToolHand        Tool = "hand"
	ToolHoe         Tool = "hoe"
	ToolWateringCan Tool = "watering_can"
	ToolAxe         Tool = "axe"
	ToolScythe      Tool = "scythe"
)

// ToolCycle is the order the player steps through tools.
var ToolCycle = []Tool{ToolHand, ToolHoe, ToolWateringCan, ToolAxe, ToolScythe}

func (t Tool) Valid() bool {
	for _, c := range ToolCycle {
		if c == t {
			return true
		}
	}
	return false
}

func (t Tool) Next() Tool {
	for i, c := range ToolCycle {
		if c == t {
			return ToolCycle[(i+1)%len(ToolCycle)]
		}
	}
	return ToolHand
}

func ParseTool(s string) (Tool, bool) {
	t := Tool(s)
	return t, t.Valid()
}
