package world

import (
	"testing"

	"harvestvalley.farm/internal/sim/world/kernel/model"
)

// prepareBed claims, tills and waters c, then plants the selected seed.
func prepareBed(t *testing.T, w *World, c model.Vec2i, water bool) {
	t.Helper()
	setTool(t, w, model.ToolHoe)
	expectOK(t, "claim")(w.Claim(c))
	expectOK(t, "till")(w.UseTool(c))
	if water {
		setTool(t, w, model.ToolWateringCan)
		expectOK(t, "water")(w.UseTool(c))
	}
	setTool(t, w, model.ToolHand)
	expectOK(t, "plant")(w.UseTool(c))
}

func TestWheatFromClaimToHarvest(t *testing.T) {
	w := newTestWorld(t, atShop)
	audit := &recordingAudit{}
	w.SetAuditLogger(audit)
	prepareBed(t, w, grassA, true)

	if w.Wallet().Balance() != 50 || w.Inventory().Count("wheat_seed") != 9 {
		t.Fatalf("after planting: money=%d seeds=%d", w.Wallet().Balance(), w.Inventory().Count("wheat_seed"))
	}

	stages := []int{}
	for tick := 1; tick <= 900; tick++ {
		w.Advance(1)
		c, ok := w.Field().At(grassA)
		if !ok {
			t.Fatalf("crop vanished at tick %d", tick)
		}
		if len(stages) == 0 || stages[len(stages)-1] != c.Stage {
			stages = append(stages, c.Stage)
		}
		if tick < 900 && c.Ready {
			t.Fatalf("ready too early at tick %d", tick)
		}
		if c.NeedsWater {
			if tile, _ := w.Grid().Query(grassA); tile.Watered {
				t.Fatalf("tick %d: crop needs water but soil is still wet", tick)
			}
			setTool(t, w, model.ToolWateringCan)
			expectOK(t, "rewater")(w.UseTool(grassA))
			setTool(t, w, model.ToolHand)
		}
	}
	if len(stages) != 4 {
		t.Fatalf("stages seen: %v", stages)
	}
	c, _ := w.Field().At(grassA)
	if !c.Ready || c.Stage != model.MaxCropStage {
		t.Fatalf("not ready at clock %.2f: %+v", w.Clock(), c)
	}
	if w.Clock() != 15 {
		t.Fatalf("clock: got %v want 15", w.Clock())
	}

	expectOK(t, "select empty slot")(w.SelectSlot(4))
	ok, code, msg := w.UseTool(grassA)
	mustOK(t, "harvest", ok, code, msg)
	if msg != "Harvested wheat! Sell to shopkeeper! ($15)" {
		t.Fatalf("harvest message: %q", msg)
	}
	if w.Inventory().Count("wheat") != 1 || w.Field().Occupied(grassA) {
		t.Fatalf("after harvest: wheat=%d occupied=%v", w.Inventory().Count("wheat"), w.Field().Occupied(grassA))
	}
	if k, _ := w.Grid().KindAt(grassA); k != model.TileSoil {
		t.Fatalf("harvest should leave soil, got %s", k)
	}

	expectOK(t, "sell")(w.Sell("wheat", 1))
	if w.Wallet().Balance() != 65 {
		t.Fatalf("money after sale: %d", w.Wallet().Balance())
	}

	stageEvents := 0
	for _, e := range audit.entries {
		if e.Action == AuditCropStage {
			stageEvents++
			if e.Actor != systemActor {
				t.Fatalf("crop stage audited as %q", e.Actor)
			}
		}
	}
	if stageEvents != 3 {
		t.Fatalf("crop stage audits: got %d want 3", stageEvents)
	}
}

func TestUnwateredWheatGrowsAtHalfSpeed(t *testing.T) {
	w := newTestWorld(t)
	expectOK(t, "plant")(w.UseTool(soilA))
	for i := 0; i < 900; i++ {
		w.Advance(1)
	}
	c, _ := w.Field().At(soilA)
	if c.Ready || c.Stage != 1 || !c.NeedsWater {
		t.Fatalf("at 15s without water: %+v", c)
	}
	for i := 0; i < 900; i++ {
		w.Advance(1)
	}
	c, _ = w.Field().At(soilA)
	if !c.Ready {
		t.Fatalf("at 30s without water: %+v", c)
	}
}

func TestLateWateringKeepsEarlierProgress(t *testing.T) {
	w := newTestWorld(t)
	expectOK(t, "plant")(w.UseTool(soilA))
	for i := 0; i < 600; i++ {
		w.Advance(1)
	}
	c, _ := w.Field().At(soilA)
	if c.Stage != 1 {
		t.Fatalf("dry crop at 10s: stage %d", c.Stage)
	}
	setTool(t, w, model.ToolWateringCan)
	expectOK(t, "water")(w.UseTool(soilA))
	w.Advance(1)
	c, _ = w.Field().At(soilA)
	if c.Stage != 2 {
		t.Fatalf("watered crop should jump to stage 2, got %d", c.Stage)
	}
}
