package craft

import (
	"reflect"
	"testing"

	"harvestvalley.farm/internal/protocol"
	"harvestvalley.farm/internal/sim/catalogs"
	"harvestvalley.farm/internal/sim/world/feature/economy/inventory"
)

func TestCraftTransactional(t *testing.T) {
	cat, err := catalogs.Default()
	if err != nil {
		t.Fatalf("catalogs: %v", err)
	}
	inv := inventory.NewLedger()
	inv.Add("wood", 12)
	inv.Add("wheat", 4)

	before := inv.Snapshot()
	if _, ok, code, _ := Craft(cat, inv, "scarecrow"); ok || code != protocol.ErrNoResource {
		t.Fatalf("scarecrow with 4 wheat: ok=%v code=%s", ok, code)
	}
	if !reflect.DeepEqual(before, inv.Snapshot()) {
		t.Fatalf("failed craft removed ingredients: %v", inv.Snapshot())
	}

	if got := Craftable(cat, inv); !reflect.DeepEqual(got, []string{"fence"}) {
		t.Fatalf("craftable=%v", got)
	}
	res, ok, _, _ := Craft(cat, inv, "fence")
	if !ok || res.RecipeID != "fence" || inv.Count("fence") != 1 || inv.Count("wood") != 7 {
		t.Fatalf("fence: ok=%v inv=%v", ok, inv.Snapshot())
	}
	if _, ok, code, _ := Craft(cat, inv, "rocket"); ok || code != protocol.ErrInvalidTarget {
		t.Fatalf("unknown recipe: ok=%v code=%s", ok, code)
	}
}
