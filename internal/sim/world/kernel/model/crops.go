package model

import "strings"

type CropType uint8

const (
	CropWheat CropType = iota
	CropCarrot
	CropTomato
	CropCorn
)

// MaxCropStage is the harvestable stage; stages run 0..MaxCropStage.
const MaxCropStage = 3

// SeedSuffix turns a crop name into its seed item id.
const SeedSuffix = "_seed"

type CropDef struct {
	Name       string
	GrowthTime float64 // seconds of simulation clock from planting to MaxCropStage
	SellPrice  int
	SeedCost   int
}

var cropDefs = [...]CropDef{
	CropWheat:  {Name: "wheat", GrowthTime: 15, SellPrice: 15, SeedCost: 50},
	CropCarrot: {Name: "carrot", GrowthTime: 20, SellPrice: 25, SeedCost: 125},
	CropTomato: {Name: "tomato", GrowthTime: 25, SellPrice: 40, SeedCost: 150},
	CropCorn:   {Name: "corn", GrowthTime: 30, SellPrice: 50, SeedCost: 200},
}

func CropTypes() []CropType {
	out := make([]CropType, len(cropDefs))
	for i := range cropDefs {
		out[i] = CropType(i)
	}
	return out
}

func (c CropType) Valid() bool { return int(c) < len(cropDefs) }

func (c CropType) Def() CropDef {
	if !c.Valid() {
		return CropDef{}
	}
	return cropDefs[c]
}

func (c CropType) String() string { return c.Def().Name }

// Item is the harvested produce id.
func (c CropType) Item() string { return c.Def().Name }

func (c CropType) SeedItem() string { return c.Def().Name + SeedSuffix }

func ParseCropType(s string) (CropType, bool) {
	for i, d := range cropDefs {
		if d.Name == s {
			return CropType(i), true
		}
	}
	return 0, false
}

func CropFromSeedItem(item string) (CropType, bool) {
	name, ok := strings.CutSuffix(item, SeedSuffix)
	if !ok {
		return 0, false
	}
	return ParseCropType(name)
}
