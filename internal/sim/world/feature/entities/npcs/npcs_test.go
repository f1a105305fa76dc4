package npcs

import (
	"testing"

	"harvestvalley.farm/internal/sim/world/kernel/model"
	"harvestvalley.farm/internal/sim/world/logic/mathx"
)

func TestDialogueRotates(t *testing.T) {
	m := New(model.NPCMayor, mathx.Vec2{X: 860, Y: 150})
	lines := model.NPCMayor.Def().Dialogues
	for round := 0; round < 2; round++ {
		for i, want := range lines {
			if got := m.Talk(); got != want {
				t.Fatalf("round %d line %d: got %q want %q", round, i, got, want)
			}
		}
	}
	if m.NextLine() != 0 {
		t.Fatalf("cursor after two full rounds: %d", m.NextLine())
	}
}

func TestShopkeeperGreets(t *testing.T) {
	s := New(model.NPCShopkeeper, mathx.Vec2{X: 100, Y: 150})
	for i := 0; i < 3; i++ {
		if got := s.Talk(); got != "Hello! What can I do for you today?" {
			t.Fatalf("talk %d: %q", i, got)
		}
	}
	if !s.Shop() || s.NextLine() != 0 {
		t.Fatalf("shop=%v cursor=%d", s.Shop(), s.NextLine())
	}
}

func TestTownNearbyAndShop(t *testing.T) {
	town := NewTown()
	if town.HasShop() {
		t.Fatalf("empty town has a shop")
	}
	town.Add(New(model.NPCShopkeeper, mathx.Vec2{X: 100, Y: 150}))
	town.Add(New(model.NPCMayor, mathx.Vec2{X: 130, Y: 150}))

	if i, ok := town.Nearby(mathx.Vec2{X: 120, Y: 150}, 60); !ok || i != 0 {
		t.Fatalf("nearby should pick the first spawned in reach: i=%d ok=%v", i, ok)
	}
	if i, ok := town.Nearby(mathx.Vec2{X: 185, Y: 150}, 60); !ok || i != 1 {
		t.Fatalf("nearby mayor: i=%d ok=%v", i, ok)
	}
	if _, ok := town.Nearby(mathx.Vec2{X: 500, Y: 500}, 60); ok {
		t.Fatalf("found an npc out of reach")
	}

	if !town.HasShop() {
		t.Fatalf("shopkeeper not counted as shop")
	}
	if !town.NearShop(mathx.Vec2{X: 140, Y: 150}, 60) {
		t.Fatalf("40px from the shopkeeper should be near")
	}
	if town.NearShop(mathx.Vec2{X: 185, Y: 150}, 60) {
		t.Fatalf("near the mayor is not near the shop")
	}
}

func TestParseNPCKind(t *testing.T) {
	for _, name := range []string{"shopkeeper", "mayor", "fisherman"} {
		k, ok := model.ParseNPCKind(name)
		if !ok || k.String() != name {
			t.Fatalf("%s: kind=%v ok=%v", name, k, ok)
		}
	}
	if _, ok := model.ParseNPCKind("blacksmith"); ok {
		t.Fatalf("unknown npc parsed")
	}
}
