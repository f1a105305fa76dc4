package world

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
	"sort"

	"harvestvalley.farm/internal/sim/world/logic/invariant"
)

// Advance moves every timer forward by dt nominal ticks (1.0 at the
// configured rate). Tool actions must already be applied for this tick.
func (w *World) Advance(dt float64) {
	if dt <= 0 {
		return
	}
	if w.calendar.Advance(dt) {
		w.logf("day %d (%s)", w.calendar.Day, w.calendar.Season)
	}
	w.elapsed += dt

	for _, ev := range w.field.Update(w.Clock()) {
		// A stage that wants water again needs dry soil under it, or the
		// watering can has nothing to act on.
		if ev.NeedsWater {
			w.grid.Dry(ev.Pos)
		}
		w.auditAs(systemActor, AuditCropStage, ev.Pos, "", map[string]any{"from": ev.From, "to": ev.To, "ready": ev.Ready})
	}

	for _, p := range w.herd.Update(dt, w.animalBounds(), w.rng) {
		w.auditAs(systemActor, AuditProduce, w.animalCell(p.Index), "", map[string]any{"animal": p.Index, "type": p.Type.String(), "product": p.Product})
	}
	w.player.regen(w.cfg.EnergyRegen, dt)

	if invariant.Enabled {
		w.plots.Consistent()
	}
}

// StepOnce applies actions then advances one tick, the same ordering Run uses.
func (w *World) StepOnce(actions []ActionEnvelope) (tick uint64, digest string) {
	tick = w.tick.Load()
	w.step(nil, nil, actions)
	return tick, w.stateDigest()
}

// stateDigest hashes the simulation state that saves carry, for replay checks.
func (w *World) stateDigest() string {
	h := sha256.New()
	g := w.grid.Digest()
	h.Write(g[:])

	var buf [8]byte
	putF := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		h.Write(buf[:])
	}
	putI := func(i int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(i)))
		h.Write(buf[:])
	}

	putF(w.elapsed)
	putF(w.player.Pos.X)
	putF(w.player.Pos.Y)
	putF(w.player.Energy)
	putI(w.wallet.Balance())
	for _, s := range w.inv.Stacks() {
		h.Write([]byte(s.Item))
		putI(s.Count)
	}
	for _, c := range w.field.Export() {
		putI(c.Pos[0])
		putI(c.Pos[1])
		h.Write([]byte(c.Type))
		putI(c.Stage)
	}
	for _, p := range w.plots.Claimed() {
		putI(p.X)
		putI(p.Y)
	}
	for _, p := range w.plots.Locked() {
		putI(p.X)
		putI(p.Y)
	}
	for _, a := range w.herd.Export() {
		h.Write([]byte(a.State))
		putF(a.Pos[0])
		putF(a.Pos[1])
	}
	return hex.EncodeToString(h.Sum(nil))
}

func sortedSessionIDs(m map[string]*clientState) []string {
	out := make([]string, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
