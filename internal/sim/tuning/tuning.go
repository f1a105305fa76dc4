package tuning

import (
	"bytes"
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"harvestvalley.farm/internal/sim/world/kernel/model"
)

//go:embed tuning.yaml
var defaultYAML []byte

type Tuning struct {
	ProtocolVersion string `yaml:"protocol_version"`

	TickRateHz         int   `yaml:"tick_rate_hz"`
	ObsEveryTicks      int   `yaml:"obs_every_ticks"`
	AutosaveEveryTicks int   `yaml:"autosave_every_ticks"`
	Seed               int64 `yaml:"seed"`

	Map    MapTuning    `yaml:"map"`
	Player PlayerTuning `yaml:"player"`

	EnergyCosts  EnergyCosts `yaml:"energy_costs"`
	AxeWoodYield int         `yaml:"axe_wood_yield"`

	Claims ClaimTuning `yaml:"claims"`
	Time   TimeTuning  `yaml:"time"`

	InteractionDistance float64 `yaml:"interaction_distance"`

	Animals          []AnimalSpawn  `yaml:"animals"`
	NPCs             []NPCSpawn     `yaml:"npcs"`
	StarterInventory map[string]int `yaml:"starter_inventory"`
	Hotbar           []string       `yaml:"hotbar"`

	digest string
}

type MapTuning struct {
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	TileSize int    `yaml:"tile_size"`
	File     string `yaml:"file,omitempty"` // optional letter-row map
}

type PlayerTuning struct {
	StartPos    [2]float64 `yaml:"start_pos"`
	StartMoney  int        `yaml:"start_money"`
	MaxEnergy   float64    `yaml:"max_energy"`
	EnergyRegen float64    `yaml:"energy_regen"` // per dt unit
	Speed       float64    `yaml:"speed"`        // px per tick
}

type EnergyCosts struct {
	Hoe         float64 `yaml:"hoe"`
	WateringCan float64 `yaml:"watering_can"`
	Axe         float64 `yaml:"axe"`
	Scythe      float64 `yaml:"scythe"`
}

func (e EnergyCosts) For(t model.Tool) float64 {
	switch t {
	case model.ToolHoe:
		return e.Hoe
	case model.ToolWateringCan:
		return e.WateringCan
	case model.ToolAxe:
		return e.Axe
	case model.ToolScythe:
		return e.Scythe
	default:
		return 0
	}
}

type ClaimTuning struct {
	Cost          int `yaml:"cost"`
	RefundPercent int `yaml:"refund_percent"`
}

type TimeTuning struct {
	StartHour     float64 `yaml:"start_hour"`
	Speed         float64 `yaml:"speed"` // hours per dt unit
	DaysPerSeason int     `yaml:"days_per_season"`
}

type AnimalSpawn struct {
	Type string     `yaml:"type"`
	Pos  [2]float64 `yaml:"pos"`
}

// NPCSpawn places a villager. A negative coordinate counts back from the far
// edge of the map, so -100 on x is 100px left of the right edge.
type NPCSpawn struct {
	Kind string     `yaml:"kind"`
	Pos  [2]float64 `yaml:"pos"`
}

// Defaults returns the embedded tuning.
func Defaults() Tuning {
	t, err := parse(Tuning{}, defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded tuning.yaml: %v", err))
	}
	return t
}

// Load overlays path onto the defaults. Keys absent from the file keep their default.
func Load(path string) (Tuning, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, err
	}
	return parse(Defaults(), raw)
}

func parse(base Tuning, raw []byte) (Tuning, error) {
	t := base
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return Tuning{}, fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, fmt.Errorf("tuning.yaml: %w", err)
	}
	sum := sha256.Sum256(raw)
	t.digest = hex.EncodeToString(sum[:])
	return t, nil
}

// Digest is the sha256 of the file the tuning was parsed from.
func (t Tuning) Digest() string { return t.digest }

// RefundValue is the money returned when a claimed plot is sold.
func (t Tuning) RefundValue() int {
	return t.Claims.Cost * t.Claims.RefundPercent / 100
}

func (t Tuning) Validate() error {
	switch {
	case t.TickRateHz <= 0:
		return fmt.Errorf("tick_rate_hz must be > 0")
	case t.ObsEveryTicks <= 0:
		return fmt.Errorf("obs_every_ticks must be > 0")
	case t.AutosaveEveryTicks < 0:
		return fmt.Errorf("autosave_every_ticks must be >= 0")
	case t.Map.Width <= 0 || t.Map.Height <= 0 || t.Map.TileSize <= 0:
		return fmt.Errorf("map width/height/tile_size must be > 0")
	case t.Player.StartMoney < 0:
		return fmt.Errorf("player.start_money must be >= 0")
	case t.Player.MaxEnergy <= 0 || t.Player.EnergyRegen < 0 || t.Player.Speed < 0:
		return fmt.Errorf("player energy/speed out of range")
	case t.EnergyCosts.Hoe < 0 || t.EnergyCosts.WateringCan < 0 || t.EnergyCosts.Axe < 0 || t.EnergyCosts.Scythe < 0:
		return fmt.Errorf("energy_costs must be >= 0")
	case t.AxeWoodYield < 0:
		return fmt.Errorf("axe_wood_yield must be >= 0")
	case t.Claims.Cost < 0:
		return fmt.Errorf("claims.cost must be >= 0")
	case t.Claims.RefundPercent < 0 || t.Claims.RefundPercent > 100:
		return fmt.Errorf("claims.refund_percent must be within 0..100")
	case t.Time.StartHour < 0 || t.Time.StartHour >= 24:
		return fmt.Errorf("time.start_hour must be within [0,24)")
	case t.Time.Speed < 0:
		return fmt.Errorf("time.speed must be >= 0")
	case t.Time.DaysPerSeason <= 0:
		return fmt.Errorf("time.days_per_season must be > 0")
	case t.InteractionDistance < 0:
		return fmt.Errorf("interaction_distance must be >= 0")
	case len(t.Hotbar) > model.HotbarSize:
		return fmt.Errorf("hotbar has %d slots, max %d", len(t.Hotbar), model.HotbarSize)
	}
	for i, a := range t.Animals {
		if _, ok := model.ParseAnimalType(a.Type); !ok {
			return fmt.Errorf("animals[%d]: unknown type %q", i, a.Type)
		}
	}
	for i, n := range t.NPCs {
		if _, ok := model.ParseNPCKind(n.Kind); !ok {
			return fmt.Errorf("npcs[%d]: unknown kind %q", i, n.Kind)
		}
	}
	for id, n := range t.StarterInventory {
		if n < 0 {
			return fmt.Errorf("starter_inventory.%s must be >= 0", id)
		}
	}
	return nil
}
