package animals

import (
	"fmt"

	"harvestvalley.farm/internal/sim/world/kernel/model"
	"harvestvalley.farm/internal/sim/world/logic/mathx"
)

const (
	FeedPauseTicks    = 20
	ProducePauseTicks = 30

	MaxHappiness = 100.0
)

// Animal couples a production cycle with a wander sub-model. The two never
// read each other's state except for the forced pauses after feed and produce.
type Animal struct {
	Type model.AnimalType

	State        State
	ProductTimer float64 // dt accumulated while producing
	FeedCooldown int     // ticks left while digesting
	Happiness    float64

	Motion
}

func New(t model.AnimalType, pos mathx.Vec2, r mathx.Source) *Animal {
	a := &Animal{
		Type:      t,
		State:     StateProducing,
		Happiness: MaxHappiness,
	}
	a.Motion.init(t.Def(), pos, r)
	return a
}

func (a *Animal) CanCollect() bool { return a.State == StateHasProduct }
func (a *Animal) CanFeed() bool    { return a.State == StateNeedsFeed }

// Collect takes the product. Outside HasProduct it changes nothing.
func (a *Animal) Collect() (product string, value int, ok bool) {
	if a.State != StateHasProduct {
		return "", 0, false
	}
	def := a.Type.Def()
	a.State = StateNeedsFeed
	return def.Product, def.ProductValue, true
}

// Feed starts digestion. Outside NeedsFeed it changes nothing.
func (a *Animal) Feed() bool {
	if a.State != StateNeedsFeed {
		return false
	}
	a.State = StateCooldown
	a.FeedCooldown = a.Type.Def().FeedCooldown
	a.Happiness = min(MaxHappiness, a.Happiness+20)
	a.forcePause(FeedPauseTicks)
	return true
}

// Update advances movement then production by one tick. It reports whether a
// product became ready this tick.
func (a *Animal) Update(dt float64, b Bounds, r mathx.Source) bool {
	def := a.Type.Def()
	a.Motion.step(def, b, r)

	produced := false
	switch a.State {
	case StateCooldown:
		a.FeedCooldown--
		if a.FeedCooldown <= 0 {
			a.FeedCooldown = 0
			a.State = StateProducing
			a.ProductTimer = 0
		}
	case StateProducing:
		a.ProductTimer += dt
		if a.ProductTimer >= def.ProductTime {
			a.State = StateHasProduct
			a.ProductTimer = 0
			a.forcePause(ProducePauseTicks)
			produced = true
		}
	case StateNeedsFeed:
		if a.Happiness > 0 {
			a.Happiness = max(0, a.Happiness-0.1*dt)
			if a.Happiness < 50 {
				a.Speed = def.Speed * 0.5
			}
		}
	}
	return produced
}

// Info is a one-line status for players.
func (a *Animal) Info() string {
	def := a.Type.Def()
	switch a.State {
	case StateHasProduct:
		return fmt.Sprintf("Ready to collect %s!", def.Product)
	case StateNeedsFeed:
		return "Hungry! Feed me."
	case StateCooldown:
		return fmt.Sprintf("Digesting... (%d ticks left)", a.FeedCooldown)
	default:
		pct := 0
		if def.ProductTime > 0 {
			pct = int(a.ProductTimer / def.ProductTime * 100)
		}
		return fmt.Sprintf("Producing %s... %d%%", def.Product, pct)
	}
}
