package crops

import (
	"math"

	"harvestvalley.farm/internal/sim/world/kernel/model"
)

// Crop is one planted crop. Position is owned by the Field.
type Crop struct {
	Type       model.CropType
	Stage      int
	Planted    float64 // simulation clock at planting
	Watered    bool
	NeedsWater bool
	Ready      bool
}

// New crops start watered with no outstanding water requirement.
func New(t model.CropType, now float64) *Crop {
	return &Crop{Type: t, Planted: now, Watered: true}
}

// GrowthMultiplier halves growth for a dry crop past the seedling stage.
func (c *Crop) GrowthMultiplier() float64 {
	if c.Watered || c.Stage == 0 {
		return 1.0
	}
	return 0.5
}

// Water only takes effect on a dry crop.
func (c *Crop) Water() bool {
	if c.Watered {
		return false
	}
	c.Watered = true
	c.NeedsWater = false
	return true
}

// Transition describes a stage change produced by Update.
type Transition struct {
	From       int
	To         int
	NeedsWater bool
	Ready      bool
}

// Update advances the stage from the clock. Stages never go backwards and
// Ready is permanent.
func (c *Crop) Update(now float64) (Transition, bool) {
	if c.Ready {
		return Transition{}, false
	}
	def := c.Type.Def()
	if def.GrowthTime <= 0 {
		return Transition{}, false
	}
	progress := (now - c.Planted) * c.GrowthMultiplier()
	// floor(progress / (growth/max)) without the inexact per-stage division
	stage := int(math.Floor(progress * model.MaxCropStage / def.GrowthTime))
	if stage > model.MaxCropStage {
		stage = model.MaxCropStage
	}
	if stage <= c.Stage {
		return Transition{}, false
	}

	tr := Transition{From: c.Stage, To: stage}
	c.Stage = stage
	if stage < model.MaxCropStage {
		c.NeedsWater = true
		c.Watered = false
		tr.NeedsWater = true
	} else {
		c.Ready = true
		tr.Ready = true
	}
	return tr, true
}
