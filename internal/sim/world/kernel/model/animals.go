package model

type AnimalType uint8

const (
	AnimalChicken AnimalType = iota
	AnimalCow
	AnimalSheep
)

type AnimalDef struct {
	Name         string
	Product      string
	ProductTime  float64 // accumulated dt units while producing
	ProductValue int
	FeedCooldown int // ticks spent digesting after a feed

	Speed        float64 // px per tick at multiplier 1
	WanderRadius float64 // px
	Width        int
	Height       int
}

var animalDefs = [...]AnimalDef{
	AnimalChicken: {Name: "chicken", Product: "egg", ProductTime: 60, ProductValue: 25, FeedCooldown: 180, Speed: 1.2, WanderRadius: 100, Width: 20, Height: 18},
	AnimalCow:     {Name: "cow", Product: "milk", ProductTime: 120, ProductValue: 30, FeedCooldown: 300, Speed: 0.8, WanderRadius: 80, Width: 28, Height: 24},
	AnimalSheep:   {Name: "sheep", Product: "wool", ProductTime: 50, ProductValue: 30, FeedCooldown: 240, Speed: 1.0, WanderRadius: 90, Width: 24, Height: 20},
}

func AnimalTypes() []AnimalType {
	out := make([]AnimalType, len(animalDefs))
	for i := range animalDefs {
		out[i] = AnimalType(i)
	}
	return out
}

func (a AnimalType) Valid() bool { return int(a) < len(animalDefs) }

func (a AnimalType) Def() AnimalDef {
	if !a.Valid() {
		return AnimalDef{}
	}
	return animalDefs[a]
}

func (a AnimalType) String() string { return a.Def().Name }

func ParseAnimalType(s string) (AnimalType, bool) {
	for i, d := range animalDefs {
		if d.Name == s {
			return AnimalType(i), true
		}
	}
	return 0, false
}
