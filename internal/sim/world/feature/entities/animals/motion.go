package animals

import (
	"harvestvalley.farm/internal/sim/world/kernel/model"
	"harvestvalley.farm/internal/sim/world/logic/mathx"
)

// Bounds is the roamable area in pixels, origin at the top-left.
type Bounds struct {
	Width  float64
	Height float64
}

// Motion is the wander/pause/roam sub-model.
type Motion struct {
	Pos   mathx.Vec2
	Home  mathx.Vec2
	Dir   mathx.Vec2
	Speed float64

	Mode      Mode
	ModeTimer int

	DirTimer int
	DirDelay int

	Paused     bool
	PauseTimer int
	PauseFor   int
}

func (m *Motion) init(def model.AnimalDef, pos mathx.Vec2, r mathx.Source) {
	m.Pos = pos
	m.Home = pos
	m.Speed = def.Speed
	m.Dir = mathx.Vec2{X: mathx.Uniform(r, -1, 1), Y: mathx.Uniform(r, -1, 1)}.Normalize()
	m.DirDelay = mathx.IntRange(r, 60, 180)
	m.Paused = r.Intn(2) == 0
	if m.Paused {
		m.PauseFor = mathx.IntRange(r, 30, 120)
	}
	m.Mode = Mode(r.Intn(3))
	m.ModeTimer = mathx.IntRange(r, 120, 300)
}

func (m *Motion) forcePause(ticks int) {
	m.Paused = true
	m.PauseFor = ticks
	m.PauseTimer = 0
}

func (m *Motion) chooseDirection(def model.AnimalDef, r mathx.Source) {
	if m.Pos.DistanceTo(m.Home) > def.WanderRadius*1.5 {
		toHome := m.Home.Sub(m.Pos).Normalize()
		toHome.X += mathx.Uniform(r, -0.3, 0.3)
		toHome.Y += mathx.Uniform(r, -0.3, 0.3)
		m.Dir = toHome.Normalize()
		return
	}
	m.Dir = mathx.Vec2{X: mathx.Uniform(r, -1, 1), Y: mathx.Uniform(r, -1, 1)}.Normalize()
}

func (m *Motion) changeMode(def model.AnimalDef, r mathx.Source) {
	m.Mode = modeDraw[r.Intn(len(modeDraw))]
	switch m.Mode {
	case ModePause:
		m.forcePause(mathx.IntRange(r, 30, 120))
		m.Speed = 0
	case ModeWander:
		m.Paused = false
		m.Speed = def.Speed * mathx.Uniform(r, 0.5, 1.0)
		m.chooseDirection(def, r)
	default:
		m.Paused = false
		m.Speed = def.Speed * mathx.Uniform(r, 0.7, 1.3)
		m.chooseDirection(def, r)
	}
	m.ModeTimer = mathx.IntRange(r, 120, 300)
}

func (m *Motion) step(def model.AnimalDef, b Bounds, r mathx.Source) {
	m.ModeTimer--
	if m.ModeTimer <= 0 {
		m.changeMode(def, r)
	}

	if m.Paused {
		m.PauseTimer++
		if m.PauseTimer >= m.PauseFor {
			m.Paused = false
			m.Speed = def.Speed * mathx.Uniform(r, 0.7, 1.2)
			m.chooseDirection(def, r)
		}
		return
	}

	m.DirTimer++
	if m.DirTimer >= m.DirDelay {
		m.chooseDirection(def, r)
		m.DirTimer = 0
		m.DirDelay = mathx.IntRange(r, 60, 180)
		if r.Float64() < 0.2 {
			m.forcePause(mathx.IntRange(r, 20, 60))
			m.Speed = 0
		}
	}

	m.Pos = m.Pos.Add(m.Dir.Scale(m.Speed))
	m.bounce(def, b, r)
}

// bounce keeps the body inside b, reflecting the velocity component that
// would carry it out.
func (m *Motion) bounce(def model.AnimalDef, b Bounds, r mathx.Source) {
	if b.Width <= 0 || b.Height <= 0 {
		return
	}
	hw := float64(def.Width / 2)
	hh := float64(def.Height / 2)

	if m.Pos.X-hw < 0 {
		m.Pos.X = hw
		m.Dir.X = abs(m.Dir.X)
	} else if m.Pos.X+hw > b.Width {
		m.Pos.X = b.Width - hw
		m.Dir.X = -abs(m.Dir.X)
	}
	if m.Pos.Y-hh < 0 {
		m.Pos.Y = hh
		m.Dir.Y = abs(m.Dir.Y)
	} else if m.Pos.Y+hh > b.Height {
		m.Pos.Y = b.Height - hh
		m.Dir.Y = -abs(m.Dir.Y)
	}

	touching := m.Pos.X-hw <= 0 || m.Pos.X+hw >= b.Width || m.Pos.Y-hh <= 0 || m.Pos.Y+hh >= b.Height
	if touching && r.Float64() < 0.5 {
		m.chooseDirection(def, r)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
