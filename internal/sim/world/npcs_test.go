package world

import (
	"encoding/json"
	"testing"

	"harvestvalley.farm/internal/protocol"
	"harvestvalley.farm/internal/sim/tuning"
	"harvestvalley.farm/internal/sim/world/feature/entities/animals"
	"harvestvalley.farm/internal/sim/world/kernel/model"
	"harvestvalley.farm/internal/sim/world/logic/mathx"
	"harvestvalley.farm/internal/sim/world/terrain/gen"
)

func TestConfigPlacesNPCsFromEdges(t *testing.T) {
	cfg, err := ConfigFromTuning(tuning.Defaults(), gen.Layout{})
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if len(cfg.NPCs) != 2 {
		t.Fatalf("npcs: %+v", cfg.NPCs)
	}
	if s := cfg.NPCs[0]; s.Kind != model.NPCShopkeeper || s.Pos != (mathx.Vec2{X: 100, Y: 150}) {
		t.Fatalf("shopkeeper: %+v", s)
	}
	if m := cfg.NPCs[1]; m.Kind != model.NPCMayor || m.Pos != (mathx.Vec2{X: 860, Y: 150}) {
		t.Fatalf("mayor: %+v", m)
	}

	tune := tuning.Defaults()
	tune.NPCs = []tuning.NPCSpawn{{Kind: "mayor", Pos: [2]float64{5000, 10}}}
	if _, err := ConfigFromTuning(tune, gen.Layout{}); err == nil {
		t.Fatalf("expected off-map npc to be rejected")
	}
}

func TestInteractPrefersNPCOverAnimal(t *testing.T) {
	w := newTestWorld(t, atShop)
	a, _ := w.Herd().Get(0)
	a.Pos = w.Player().Pos.Add(mathx.Vec2{X: 5})
	a.State = animals.StateHasProduct

	ok, code, msg := w.InteractNearest()
	mustOK(t, "talk", ok, code, msg)
	if msg != "Shopkeeper: Hello! What can I do for you today?" {
		t.Fatalf("talk message: %q", msg)
	}
	if a.State != animals.StateHasProduct || w.Inventory().Count("egg") != 0 {
		t.Fatalf("animal was used instead of the npc: state=%s eggs=%d", a.State, w.Inventory().Count("egg"))
	}
}

func TestTalkRotatesMayorDialogue(t *testing.T) {
	w := newTestWorld(t)
	audit := &recordingAudit{}
	w.SetAuditLogger(audit)
	w.Player().Pos = w.Config().NPCs[1].Pos

	lines := model.NPCMayor.Def().Dialogues
	for i := 0; i < len(lines)+1; i++ {
		ok, code, msg := w.InteractNearest()
		mustOK(t, "talk", ok, code, msg)
		if want := "Mayor: " + lines[i%len(lines)]; msg != want {
			t.Fatalf("line %d: got %q want %q", i, msg, want)
		}
	}
	if len(audit.entries) != len(lines)+1 || audit.entries[0].Action != AuditTalk {
		t.Fatalf("audit: %+v", audit.entries)
	}
}

func TestShopNeedsShopkeeper(t *testing.T) {
	w := newTestWorld(t)
	w.Inventory().Add("wheat", 2)

	ok, code, msg := w.Buy("wheat_seed", 1)
	mustFail(t, "buy away from shop", protocol.ErrNoPermission, ok, code, msg)
	if msg != "Press F near Shopkeeper to trade" {
		t.Fatalf("message: %q", msg)
	}
	ok, code, msg = w.Sell("wheat", 1)
	mustFail(t, "sell away from shop", protocol.ErrNoPermission, ok, code, msg)
	ok, code, msg = w.SellAll()
	mustFail(t, "sell all away from shop", protocol.ErrNoPermission, ok, code, msg)
	if w.Wallet().Balance() != 100 || w.Inventory().Count("wheat") != 2 || w.Inventory().Count("wheat_seed") != 10 {
		t.Fatalf("rejected trades changed state: money=%d inv=%v", w.Wallet().Balance(), w.Inventory().Snapshot())
	}

	w.Player().Pos = w.Config().NPCs[0].Pos.Add(mathx.Vec2{X: 40})
	expectOK(t, "buy at shop")(w.Buy("wheat_seed", 1))

	// Standing by the mayor does not open the shop.
	w.Player().Pos = w.Config().NPCs[1].Pos
	ok, code, msg = w.SellAll()
	mustFail(t, "sell all at mayor", protocol.ErrNoPermission, ok, code, msg)

	open := newTestWorld(t, func(c *Config) { c.NPCs = nil })
	expectOK(t, "buy without a shopkeeper")(open.Buy("wheat_seed", 1))
}

func TestHugeBuyIsRejected(t *testing.T) {
	w := newTestWorld(t, atShop)
	raw := []byte(`{"type":"ACT","protocol_version":"1.0","actions":[{"id":"b","type":"BUY","item":"wheat_seed","count":368934881474191033}]}`)
	if err := protocol.Validate(raw); err == nil {
		t.Fatalf("schema accepted an absurd count")
	}

	res := w.Apply(protocol.Action{ID: "b", Type: protocol.ActBuy, Item: "wheat_seed", Count: 368934881474191033})
	if res.OK || res.Code != protocol.ErrBadRequest {
		t.Fatalf("huge buy: %+v", res)
	}
	if w.Wallet().Balance() != 100 || w.Inventory().Count("wheat_seed") != 10 {
		t.Fatalf("huge buy changed state: money=%d seeds=%d", w.Wallet().Balance(), w.Inventory().Count("wheat_seed"))
	}
}

func TestObserveListsNPCs(t *testing.T) {
	w := newTestWorld(t)
	obs := w.Observe()
	if len(obs.NPCs) != 2 {
		t.Fatalf("npcs: %+v", obs.NPCs)
	}
	if n := obs.NPCs[0]; n.Kind != "shopkeeper" || !n.Shop || n.Pos != [2]float64{100, 150} {
		t.Fatalf("shopkeeper: %+v", n)
	}
	if n := obs.NPCs[1]; n.Kind != "mayor" || n.Shop || n.Index != 1 {
		t.Fatalf("mayor: %+v", n)
	}
	raw, _ := json.Marshal(obs)
	if err := protocol.Validate(raw); err != nil {
		t.Fatalf("obs fails schema: %v", err)
	}
}

func TestAnimalProduceIsAudited(t *testing.T) {
	w := newTestWorld(t)
	audit := &recordingAudit{}
	w.SetAuditLogger(audit)
	for i := 0; i < 60; i++ {
		w.Advance(1)
	}
	produced := 0
	for _, e := range audit.entries {
		if e.Action != AuditProduce {
			continue
		}
		produced++
		if e.Actor != systemActor || e.Details["product"] != "egg" {
			t.Fatalf("produce audit: %+v", e)
		}
	}
	if produced != 2 {
		t.Fatalf("produce audits after 60 ticks: got %d want 2 (one per chicken)", produced)
	}
}
