package catalogs

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"harvestvalley.farm/internal/sim/world/kernel/model"
)

//go:embed defaults/*.json
var defaultFS embed.FS

const (
	itemsFile   = "items.json"
	recipesFile = "recipes.json"
	shopJSON    = "shop.json"
)

// Default loads the embedded catalogs.
func Default() (*Catalogs, error) {
	sub, err := fs.Sub(defaultFS, "defaults")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub)
}

// Load reads catalogs from configDir; an empty dir means the embedded defaults.
func Load(configDir string) (*Catalogs, error) {
	if configDir == "" {
		return Default()
	}
	return LoadFS(os.DirFS(configDir))
}

func LoadFS(fsys fs.FS) (*Catalogs, error) {
	var c Catalogs
	if err := loadItems(fsys, &c.Items); err != nil {
		return nil, err
	}
	if err := loadRecipes(fsys, &c.Recipes); err != nil {
		return nil, err
	}
	if err := loadShop(fsys, &c.Shop); err != nil {
		return nil, err
	}
	if err := c.crossCheck(); err != nil {
		return nil, err
	}
	return &c, nil
}

func readValidated(fsys fs.FS, name string) ([]byte, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}
	if err := validate(name, raw); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return raw, nil
}

func loadItems(fsys fs.FS, out *ItemCatalog) error {
	raw, err := readValidated(fsys, itemsFile)
	if err != nil {
		return err
	}
	out.Digest = sha256Hex(raw)

	var defs []ItemDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("items.json: %w", err)
	}
	out.Defs = make(map[string]ItemDef, len(defs))
	for _, d := range defs {
		if _, dup := out.Defs[d.ID]; dup {
			return fmt.Errorf("items.json: duplicate id %s", d.ID)
		}
		out.Defs[d.ID] = d
	}
	ids := make([]string, 0, len(out.Defs))
	for id := range out.Defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out.Palette = ids
	return nil
}

func loadRecipes(fsys fs.FS, out *RecipeCatalog) error {
	raw, err := readValidated(fsys, recipesFile)
	if err != nil {
		return err
	}
	out.Digest = sha256Hex(raw)

	var defs []RecipeDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("recipes.json: %w", err)
	}
	out.ByID = make(map[string]RecipeDef, len(defs))
	out.Order = out.Order[:0]
	for _, r := range defs {
		if _, dup := out.ByID[r.RecipeID]; dup {
			return fmt.Errorf("recipes.json: duplicate recipe_id %s", r.RecipeID)
		}
		out.ByID[r.RecipeID] = r
		out.Order = append(out.Order, r.RecipeID)
	}
	return nil
}

func loadShop(fsys fs.FS, out *ShopCatalog) error {
	raw, err := readValidated(fsys, shopJSON)
	if err != nil {
		return err
	}
	out.Digest = sha256Hex(raw)

	var f shopFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("shop.json: %w", err)
	}
	out.BuyPrice = make(map[string]int, len(f.Buy))
	for _, p := range f.Buy {
		if _, dup := out.BuyPrice[p.Item]; dup {
			return fmt.Errorf("shop.json: duplicate buy entry %s", p.Item)
		}
		out.BuyPrice[p.Item] = p.Price
	}
	out.SellPrice = make(map[string]int, len(f.Sell))
	out.SellOrder = out.SellOrder[:0]
	for _, p := range f.Sell {
		if _, dup := out.SellPrice[p.Item]; dup {
			return fmt.Errorf("shop.json: duplicate sell entry %s", p.Item)
		}
		out.SellPrice[p.Item] = p.Price
		out.SellOrder = append(out.SellOrder, p.Item)
	}
	return nil
}

// crossCheck ties the catalogs to the static crop and animal tables.
func (c *Catalogs) crossCheck() error {
	for _, ct := range model.CropTypes() {
		for _, id := range []string{ct.Item(), ct.SeedItem()} {
			if !c.HasItem(id) {
				return fmt.Errorf("items.json: missing %s for crop %s", id, ct)
			}
		}
	}
	for _, at := range model.AnimalTypes() {
		if p := at.Def().Product; !c.HasItem(p) {
			return fmt.Errorf("items.json: missing product %s for %s", p, at)
		}
	}
	for _, id := range []string{model.ItemWood, model.ItemStone} {
		if !c.HasItem(id) {
			return fmt.Errorf("items.json: missing %s", id)
		}
	}
	for _, rid := range c.Recipes.Order {
		r := c.Recipes.ByID[rid]
		for _, ic := range append(append([]ItemCount(nil), r.Inputs...), r.Outputs...) {
			if !c.HasItem(ic.Item) {
				return fmt.Errorf("recipes.json: %s references unknown item %s", rid, ic.Item)
			}
		}
	}
	for id := range c.Shop.BuyPrice {
		if !c.HasItem(id) {
			return fmt.Errorf("shop.json: unknown buy item %s", id)
		}
	}
	for _, id := range c.Shop.SellOrder {
		if !c.HasItem(id) {
			return fmt.Errorf("shop.json: unknown sell item %s", id)
		}
	}
	return nil
}
