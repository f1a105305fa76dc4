package animals

import (
	"math/rand"
	"testing"

	"harvestvalley.farm/internal/sim/world/kernel/model"
	"harvestvalley.farm/internal/sim/world/logic/mathx"
)

var testBounds = Bounds{Width: 960, Height: 544}

func newTestAnimal(t model.AnimalType) (*Animal, *rand.Rand) {
	r := rand.New(rand.NewSource(42))
	return New(t, mathx.Vec2{X: 300, Y: 300}, r), r
}

func TestFullProductionCycle(t *testing.T) {
	a, r := newTestAnimal(model.AnimalChicken)
	if a.State != StateProducing {
		t.Fatalf("initial state=%s", a.State)
	}

	ticks := 0
	for a.State == StateProducing {
		a.Update(1, testBounds, r)
		ticks++
		if ticks > 1000 {
			t.Fatalf("never produced")
		}
	}
	if a.State != StateHasProduct || ticks != 60 {
		t.Fatalf("state=%s after %d ticks", a.State, ticks)
	}
	if !a.Paused || a.PauseFor != ProducePauseTicks {
		t.Fatalf("expected post-produce pause, got paused=%v for=%d", a.Paused, a.PauseFor)
	}

	product, value, ok := a.Collect()
	if !ok || product != "egg" || value != 25 || a.State != StateNeedsFeed {
		t.Fatalf("collect: %s %d %v state=%s", product, value, ok, a.State)
	}
	if !a.Feed() || a.State != StateCooldown || a.FeedCooldown != 180 {
		t.Fatalf("feed: state=%s cooldown=%d", a.State, a.FeedCooldown)
	}
	if !a.Paused || a.PauseFor != FeedPauseTicks {
		t.Fatalf("expected post-feed pause")
	}

	// cooldown counts ticks and ignores dt
	for i := 0; i < 179; i++ {
		a.Update(5, testBounds, r)
	}
	if a.State != StateCooldown || a.FeedCooldown != 1 {
		t.Fatalf("state=%s cooldown=%d after 179 ticks", a.State, a.FeedCooldown)
	}
	a.Update(5, testBounds, r)
	if a.State != StateProducing || a.ProductTimer != 0 {
		t.Fatalf("expected producing with reset timer, got %s %v", a.State, a.ProductTimer)
	}
}

func TestWrongActionNeverChangesState(t *testing.T) {
	for _, st := range []State{StateProducing, StateHasProduct, StateNeedsFeed, StateCooldown} {
		a, _ := newTestAnimal(model.AnimalCow)
		a.State = st
		a.FeedCooldown = 7
		a.ProductTimer = 3
		if st != StateHasProduct {
			if _, _, ok := a.Collect(); ok || a.State != st {
				t.Fatalf("collect in %s: ok=%v state=%s", st, ok, a.State)
			}
		}
		if st != StateNeedsFeed {
			if a.Feed() || a.State != st || a.FeedCooldown != 7 {
				t.Fatalf("feed in %s changed state to %s", st, a.State)
			}
		}
		if a.ProductTimer != 3 {
			t.Fatalf("timer touched in %s", st)
		}
	}
}

func TestMovementStaysInBounds(t *testing.T) {
	for _, at := range model.AnimalTypes() {
		r := rand.New(rand.NewSource(int64(at) + 1))
		a := New(at, mathx.Vec2{X: 100, Y: 100}, r)
		def := at.Def()
		for i := 0; i < 5000; i++ {
			a.Update(1.0/60, testBounds, r)
			hw, hh := float64(def.Width/2), float64(def.Height/2)
			if a.Pos.X < hw || a.Pos.X > testBounds.Width-hw || a.Pos.Y < hh || a.Pos.Y > testBounds.Height-hh {
				t.Fatalf("%s escaped bounds at tick %d: %+v", at, i, a.Pos)
			}
		}
	}
}

func TestHomingPullsBack(t *testing.T) {
	a, r := newTestAnimal(model.AnimalSheep)
	a.Pos = mathx.Vec2{X: 300 + 500, Y: 300}
	for i := 0; i < 20; i++ {
		a.chooseDirection(a.Type.Def(), r)
		if a.Dir.X >= 0 {
			t.Fatalf("expected heading back toward home, dir=%+v", a.Dir)
		}
	}
}

func TestHerdNearestAndActions(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	h := NewHerd()
	h.Add(New(model.AnimalChicken, mathx.Vec2{X: 300, Y: 300}, r))
	h.Add(New(model.AnimalChicken, mathx.Vec2{X: 350, Y: 320}, r))
	h.Add(New(model.AnimalCow, mathx.Vec2{X: 500, Y: 400}, r))

	if i, ok := h.Nearest(mathx.Vec2{X: 340, Y: 320}, 60); !ok || i != 1 {
		t.Fatalf("nearest=%d ok=%v", i, ok)
	}
	if _, ok := h.Nearest(mathx.Vec2{X: 0, Y: 0}, 60); ok {
		t.Fatalf("expected nothing in range")
	}
	if ok, _, _ := h.Feed(0); ok {
		t.Fatalf("feeding a producing animal succeeded")
	}
	if _, ok, _, _ := h.Collect(9); ok {
		t.Fatalf("collect on missing index succeeded")
	}

	a, _ := h.Get(2)
	a.State = StateHasProduct
	c, ok, _, _ := h.Collect(2)
	if !ok || c.Product != "milk" || c.Value != 30 {
		t.Fatalf("collect cow: %+v ok=%v", c, ok)
	}
}

func TestExportRestore(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	h := NewHerd()
	a := New(model.AnimalSheep, mathx.Vec2{X: 100, Y: 120}, r)
	a.State = StateCooldown
	a.FeedCooldown = 44
	h.Add(a)

	g := NewHerd()
	if err := g.Restore(h.Export(), r); err != nil {
		t.Fatalf("restore: %v", err)
	}
	b, _ := g.Get(0)
	if b.State != StateCooldown || b.FeedCooldown != 44 || b.Home != a.Home || b.Type != model.AnimalSheep {
		t.Fatalf("restored: %+v", b)
	}
	if err := g.Restore([]Snapshot{{Type: "goat", State: "PRODUCING"}}, r); err == nil {
		t.Fatalf("expected unknown type rejected")
	}
	if g.Len() != 1 {
		t.Fatalf("failed restore changed herd")
	}
}
