package world

import (
	"fmt"

	"harvestvalley.farm/internal/sim/world/kernel/model"
	"harvestvalley.farm/internal/sim/world/logic/mathx"
	"harvestvalley.farm/internal/sim/world/terrain/store"
)

const diagonalScale = 0.7071

// Player is the farmer: a pixel position, an energy pool and the equipped tool.
// Money lives in the world's wallet.
type Player struct {
	Pos       mathx.Vec2
	Energy    float64
	MaxEnergy float64
	Tool      model.Tool
}

func newPlayer(cfg Config) Player {
	return Player{
		Pos:       cfg.StartPos,
		Energy:    cfg.MaxEnergy,
		MaxEnergy: cfg.MaxEnergy,
		Tool:      model.ToolHand,
	}
}

// UseEnergy spends n when the pool holds at least n.
func (p *Player) UseEnergy(n float64) bool {
	if p.Energy < n {
		return false
	}
	p.Energy -= n
	return true
}

func (p *Player) regen(rate, dt float64) {
	if p.Energy < p.MaxEnergy {
		p.Energy = mathx.Clamp(p.Energy+rate*dt, 0, p.MaxEnergy)
	}
}

func (p *Player) NextTool() model.Tool {
	p.Tool = p.Tool.Next()
	return p.Tool
}

func (p *Player) validate() error {
	if p.Energy < 0 || p.Energy > p.MaxEnergy {
		return fmt.Errorf("energy %v outside 0..%v", p.Energy, p.MaxEnergy)
	}
	if !p.Tool.Valid() {
		return fmt.Errorf("unknown tool %q", p.Tool)
	}
	return nil
}

// Move steps the player by one tick of walking in direction (dx, dy). Each
// component is clamped to [-1, 1]; diagonals are slowed so speed stays even.
func (w *World) Move(dx, dy float64) mathx.Vec2 {
	dx = mathx.Clamp(dx, -1, 1) * w.cfg.Speed
	dy = mathx.Clamp(dy, -1, 1) * w.cfg.Speed
	if dx != 0 && dy != 0 {
		dx *= diagonalScale
		dy *= diagonalScale
	}
	p := &w.player
	p.Pos.X = mathx.Clamp(p.Pos.X+dx, 0, w.cfg.widthPx())
	p.Pos.Y = mathx.Clamp(p.Pos.Y+dy, 0, w.cfg.heightPx())
	return p.Pos
}

// PlayerCell is the tile under the player.
func (w *World) PlayerCell() model.Vec2i {
	return store.CellAt(w.player.Pos.X, w.player.Pos.Y, w.cfg.TileSize)
}
