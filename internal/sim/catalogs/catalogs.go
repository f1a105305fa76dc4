package catalogs

import (
	"crypto/sha256"
	"encoding/hex"
)

type Catalogs struct {
	Items   ItemCatalog
	Recipes RecipeCatalog
	Shop    ShopCatalog
}

type ItemCatalog struct {
	Palette []string // sorted ids
	Defs    map[string]ItemDef
	Digest  string
}

type ItemDef struct {
	ID       string `json:"id"`
	Category string `json:"category"` // seed, crop, resource, product, crafted
}

type RecipeCatalog struct {
	ByID   map[string]RecipeDef
	Order  []string // file order, for listings
	Digest string
}

type RecipeDef struct {
	RecipeID string      `json:"recipe_id"`
	Inputs   []ItemCount `json:"inputs"`
	Outputs  []ItemCount `json:"outputs"`
}

type ItemCount struct {
	Item  string `json:"item"`
	Count int    `json:"count"`
}

// Cost folds the inputs into a single item->count map.
func (r RecipeDef) Cost() map[string]int {
	out := make(map[string]int, len(r.Inputs))
	for _, in := range r.Inputs {
		out[in.Item] += in.Count
	}
	return out
}

type ShopCatalog struct {
	// BuyPrice is what the player pays per unit; SellPrice is what the player receives.
	BuyPrice  map[string]int
	SellPrice map[string]int
	SellOrder []string // file order; sell-all walks it
	Digest    string
}

type shopFile struct {
	Buy  []shopPrice `json:"buy"`
	Sell []shopPrice `json:"sell"`
}

type shopPrice struct {
	Item  string `json:"item"`
	Price int    `json:"price"`
}

func (c *Catalogs) HasItem(id string) bool {
	_, ok := c.Items.Defs[id]
	return ok
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
