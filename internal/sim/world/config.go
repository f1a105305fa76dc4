package world

import (
	"fmt"

	"harvestvalley.farm/internal/sim/tuning"
	"harvestvalley.farm/internal/sim/world/feature/governance/claims"
	"harvestvalley.farm/internal/sim/world/kernel/model"
	"harvestvalley.farm/internal/sim/world/logic/mathx"
	"harvestvalley.farm/internal/sim/world/terrain/gen"
)

type Config struct {
	TickRateHz         int
	ObsEveryTicks      int
	AutosaveEveryTicks int
	Seed               int64

	Layout   gen.Layout
	TileSize int

	StartPos    mathx.Vec2
	StartMoney  int
	MaxEnergy   float64
	EnergyRegen float64
	Speed       float64

	EnergyCosts  tuning.EnergyCosts
	AxeWoodYield int
	Claims       claims.Config

	StartHour     float64
	TimeSpeed     float64
	DaysPerSeason int

	InteractionDistance float64

	Animals          []AnimalSpawn
	NPCs             []NPCSpawn
	StarterInventory map[string]int
	Hotbar           []string
}

type AnimalSpawn struct {
	Type model.AnimalType
	Pos  mathx.Vec2
}

type NPCSpawn struct {
	Kind model.NPCKind
	Pos  mathx.Vec2
}

// ConfigFromTuning builds a world config. An empty layout means the default map
// generated from the tuning's map size.
func ConfigFromTuning(t tuning.Tuning, layout gen.Layout) (Config, error) {
	if err := t.Validate(); err != nil {
		return Config{}, err
	}
	if len(layout.Kinds) == 0 {
		layout = gen.Default(t.Map.Width, t.Map.Height)
	}
	cfg := Config{
		TickRateHz:          t.TickRateHz,
		ObsEveryTicks:       t.ObsEveryTicks,
		AutosaveEveryTicks:  t.AutosaveEveryTicks,
		Seed:                t.Seed,
		Layout:              layout,
		TileSize:            t.Map.TileSize,
		StartPos:            mathx.Vec2{X: t.Player.StartPos[0], Y: t.Player.StartPos[1]},
		StartMoney:          t.Player.StartMoney,
		MaxEnergy:           t.Player.MaxEnergy,
		EnergyRegen:         t.Player.EnergyRegen,
		Speed:               t.Player.Speed,
		EnergyCosts:         t.EnergyCosts,
		AxeWoodYield:        t.AxeWoodYield,
		Claims:              claims.Config{Cost: t.Claims.Cost, RefundPercent: t.Claims.RefundPercent},
		StartHour:           t.Time.StartHour,
		TimeSpeed:           t.Time.Speed,
		DaysPerSeason:       t.Time.DaysPerSeason,
		InteractionDistance: t.InteractionDistance,
		StarterInventory:    t.StarterInventory,
		Hotbar:              t.Hotbar,
	}
	for i, a := range t.Animals {
		at, ok := model.ParseAnimalType(a.Type)
		if !ok {
			return Config{}, fmt.Errorf("animals[%d]: unknown type %q", i, a.Type)
		}
		cfg.Animals = append(cfg.Animals, AnimalSpawn{Type: at, Pos: mathx.Vec2{X: a.Pos[0], Y: a.Pos[1]}})
	}
	for i, n := range t.NPCs {
		kind, ok := model.ParseNPCKind(n.Kind)
		if !ok {
			return Config{}, fmt.Errorf("npcs[%d]: unknown kind %q", i, n.Kind)
		}
		pos := mathx.Vec2{X: fromEdge(n.Pos[0], cfg.widthPx()), Y: fromEdge(n.Pos[1], cfg.heightPx())}
		if pos.X < 0 || pos.Y < 0 || pos.X > cfg.widthPx() || pos.Y > cfg.heightPx() {
			return Config{}, fmt.Errorf("npcs[%d]: %s at %v is off the %vx%v map", i, n.Kind, n.Pos, cfg.widthPx(), cfg.heightPx())
		}
		cfg.NPCs = append(cfg.NPCs, NPCSpawn{Kind: kind, Pos: pos})
	}
	return cfg, nil
}

func fromEdge(v, size float64) float64 {
	if v < 0 {
		return size + v
	}
	return v
}

func (c Config) widthPx() float64  { return float64(c.Layout.Width * c.TileSize) }
func (c Config) heightPx() float64 { return float64(c.Layout.Height * c.TileSize) }
