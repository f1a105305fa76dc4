package craft

import (
	"fmt"

	"harvestvalley.farm/internal/protocol"
	"harvestvalley.farm/internal/sim/catalogs"
	"harvestvalley.farm/internal/sim/world/feature/economy/inventory"
)

type Result struct {
	RecipeID string
	Outputs  []catalogs.ItemCount
}

// Craft consumes every input and adds every output, or changes nothing.
func Craft(cat *catalogs.Catalogs, inv *inventory.Ledger, recipeID string) (res Result, ok bool, code string, msg string) {
	rec, found := cat.Recipes.ByID[recipeID]
	if !found {
		return Result{}, false, protocol.ErrInvalidTarget, fmt.Sprintf("unknown recipe %s", recipeID)
	}
	cost := rec.Cost()
	if !inv.HasAll(cost) {
		return Result{}, false, protocol.ErrNoResource, fmt.Sprintf("Missing ingredients for %s", recipeID)
	}
	if !inv.RemoveAll(cost) {
		return Result{}, false, protocol.ErrInternal, "ingredient removal failed"
	}
	for _, out := range rec.Outputs {
		inv.Add(out.Item, out.Count)
	}
	return Result{RecipeID: recipeID, Outputs: rec.Outputs}, true, "", fmt.Sprintf("Crafted %s!", recipeID)
}

// Craftable lists recipes whose inputs the ledger currently covers, in catalog order.
func Craftable(cat *catalogs.Catalogs, inv *inventory.Ledger) []string {
	var out []string
	for _, id := range cat.Recipes.Order {
		if inv.HasAll(cat.Recipes.ByID[id].Cost()) {
			out = append(out, id)
		}
	}
	return out
}
