package claims

import (
	"fmt"
	"sort"

	"harvestvalley.farm/internal/protocol"
	"harvestvalley.farm/internal/sim/world/kernel/model"
	"harvestvalley.farm/internal/sim/world/logic/invariant"
)

// Ground is the tile view claim and sell checks need.
type Ground interface {
	KindAt(pos model.Vec2i) (model.TileKind, bool)
}

// Occupancy reports whether a crop sits on a cell.
type Occupancy interface {
	Occupied(pos model.Vec2i) bool
}

// Purse is the money side of a claim or sale.
type Purse interface {
	CanAfford(n int) bool
	Debit(n int) (ok bool, code string, msg string)
	CanCredit(n int) bool
	Credit(n int) bool
}

type Config struct {
	Cost          int
	RefundPercent int
}

// Registry tracks claimed and locked cells. Locked is always a subset of claimed.
type Registry struct {
	cfg     Config
	claimed map[model.Vec2i]struct{}
	locked  map[model.Vec2i]struct{}

	regions      []Region
	regionsValid bool
}

func New(cfg Config) *Registry {
	return &Registry{
		cfg:     cfg,
		claimed: map[model.Vec2i]struct{}{},
		locked:  map[model.Vec2i]struct{}{},
	}
}

func (r *Registry) Cost() int { return r.cfg.Cost }

// RefundValue is floor(cost * refund%).
func (r *Registry) RefundValue() int {
	return r.cfg.Cost * r.cfg.RefundPercent / 100
}

func (r *Registry) IsClaimed(pos model.Vec2i) bool {
	_, ok := r.claimed[pos]
	return ok
}

func (r *Registry) IsLocked(pos model.Vec2i) bool {
	_, ok := r.locked[pos]
	return ok
}

func (r *Registry) CanClaim(pos model.Vec2i, tool model.Tool, g Ground) bool {
	if tool != model.ToolHoe {
		return false
	}
	kind, ok := g.KindAt(pos)
	return ok && kind == model.TileGrass && !r.IsClaimed(pos)
}

func (r *Registry) Claim(pos model.Vec2i, tool model.Tool, g Ground, p Purse) (ok bool, code string, msg string) {
	if tool != model.ToolHoe {
		return false, protocol.ErrWrongTool, "Must have HOE equipped to claim plots!"
	}
	if !r.CanClaim(pos, tool, g) {
		return false, protocol.ErrInvalidTarget, "Cannot claim this tile!"
	}
	if !p.CanAfford(r.cfg.Cost) {
		return false, protocol.ErrNoFunds, fmt.Sprintf("Need $%d to claim plot!", r.cfg.Cost)
	}
	if ok, code, msg := p.Debit(r.cfg.Cost); !ok {
		return false, code, msg
	}
	r.claimed[pos] = struct{}{}
	r.regionsValid = false
	return true, "", fmt.Sprintf("Plot claimed! (-$%d)", r.cfg.Cost)
}

func (r *Registry) CanSell(pos model.Vec2i, g Ground, crops Occupancy) (ok bool, code string, msg string) {
	if !r.IsClaimed(pos) {
		return false, protocol.ErrInvalidTarget, "Plot not claimed!"
	}
	if r.IsLocked(pos) {
		return false, protocol.ErrNoPermission, "Plot is locked! Unlock first"
	}
	if crops != nil && crops.Occupied(pos) {
		return false, protocol.ErrConflict, "Remove crops first!"
	}
	if kind, ok := g.KindAt(pos); ok && kind == model.TileSoil {
		return false, protocol.ErrWrongState, "Tile is tilled! Can't sell."
	}
	return true, "", ""
}

func (r *Registry) Sell(pos model.Vec2i, g Ground, crops Occupancy, p Purse) (ok bool, code string, msg string) {
	if ok, code, msg := r.CanSell(pos, g, crops); !ok {
		return false, code, msg
	}
	refund := r.RefundValue()
	if !p.CanCredit(refund) {
		return false, protocol.ErrBadRequest, "refund would overflow the wallet"
	}
	delete(r.claimed, pos)
	delete(r.locked, pos)
	r.regionsValid = false
	p.Credit(refund)
	if !r.Consistent() {
		return false, protocol.ErrInternal, "claim registry inconsistent"
	}
	return true, "", fmt.Sprintf("Plot sold! (+$%d)", refund)
}

func (r *Registry) ToggleLock(pos model.Vec2i) (ok bool, code string, msg string) {
	if !r.IsClaimed(pos) {
		return false, protocol.ErrInvalidTarget, "Plot not claimed!"
	}
	msg = "Plot locked!"
	if r.IsLocked(pos) {
		delete(r.locked, pos)
		msg = "Plot unlocked!"
	} else {
		r.locked[pos] = struct{}{}
	}
	if !r.Consistent() {
		return false, protocol.ErrInternal, "claim registry inconsistent"
	}
	return true, "", msg
}

func sortedKeys(m map[model.Vec2i]struct{}) []model.Vec2i {
	out := make([]model.Vec2i, 0, len(m))
	for p := range m {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return model.Less(out[i], out[j]) })
	return out
}

func (r *Registry) Claimed() []model.Vec2i { return sortedKeys(r.claimed) }
func (r *Registry) Locked() []model.Vec2i  { return sortedKeys(r.locked) }

// Consistent reports whether locked is a subset of claimed.
func (r *Registry) Consistent() bool {
	for p := range r.locked {
		if !invariant.Check(r.IsClaimed(p), "locked plot %s is not claimed", p) {
			return false
		}
	}
	return true
}

// Restore replaces both sets. Nothing changes on error.
func (r *Registry) Restore(claimed, locked []model.Vec2i) error {
	nc := make(map[model.Vec2i]struct{}, len(claimed))
	for _, p := range claimed {
		nc[p] = struct{}{}
	}
	nl := make(map[model.Vec2i]struct{}, len(locked))
	for _, p := range locked {
		if _, ok := nc[p]; !ok {
			return fmt.Errorf("locked plot %s is not claimed", p)
		}
		nl[p] = struct{}{}
	}
	r.claimed, r.locked = nc, nl
	r.regionsValid = false
	return nil
}
