package model

// Raw resources that are not produced by crops or animals.
const (
	ItemWood  = "wood"
	ItemStone = "stone"
)

const HotbarSize = 5
