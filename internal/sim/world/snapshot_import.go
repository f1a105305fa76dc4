package world

import (
	"fmt"
	"math/rand"
	"os"

	"harvestvalley.farm/internal/persistence/snapshot"
	"harvestvalley.farm/internal/sim/world/feature/economy"
	"harvestvalley.farm/internal/sim/world/feature/economy/inventory"
	"harvestvalley.farm/internal/sim/world/feature/entities/animals"
	"harvestvalley.farm/internal/sim/world/feature/farming/crops"
	"harvestvalley.farm/internal/sim/world/feature/governance/claims"
	"harvestvalley.farm/internal/sim/world/kernel/model"
	"harvestvalley.farm/internal/sim/world/logic/clock"
	"harvestvalley.farm/internal/sim/world/logic/mathx"
	"harvestvalley.farm/internal/sim/world/terrain/store"
)

// ImportSave replaces the farm with s. Either every part is restored or the
// world is left untouched.
func (w *World) ImportSave(s snapshot.SaveV1) error {
	if s.Header.Version != snapshot.Version {
		return fmt.Errorf("unsupported save version %d", s.Header.Version)
	}

	p := newPlayer(w.cfg)
	p.Pos = mathx.Vec2{X: s.Player.Pos[0], Y: s.Player.Pos[1]}
	p.Energy = s.Player.Energy
	if s.Player.Tool != "" {
		p.Tool = model.Tool(s.Player.Tool)
	}
	if err := p.validate(); err != nil {
		return fmt.Errorf("player: %w", err)
	}
	if p.Pos.X < 0 || p.Pos.Y < 0 || p.Pos.X > w.cfg.widthPx() || p.Pos.Y > w.cfg.heightPx() {
		return fmt.Errorf("player: position (%v,%v) outside the map", p.Pos.X, p.Pos.Y)
	}

	wallet := economy.NewWallet(0)
	if err := wallet.Set(s.Player.Money); err != nil {
		return fmt.Errorf("player: %w", err)
	}

	inv := inventory.NewLedger()
	if err := inv.Restore(s.Inventory); err != nil {
		return fmt.Errorf("inventory: %w", err)
	}
	for id := range s.Inventory {
		if !w.catalogs.HasItem(id) {
			return fmt.Errorf("inventory: %s", w.catalogs.UnknownItemMessage(id))
		}
	}

	hotbar := inventory.NewHotbar()
	if err := hotbar.Restore(s.Hotbar); err != nil {
		return err
	}
	for i, id := range s.Hotbar {
		if id != nil && *id != "" && !w.catalogs.HasItem(*id) {
			return fmt.Errorf("hotbar slot %d: %s", i, w.catalogs.UnknownItemMessage(*id))
		}
	}
	if !hotbar.Select(s.Player.SelectedSlot) {
		return fmt.Errorf("hotbar: selected slot %d out of range", s.Player.SelectedSlot)
	}

	cal := clock.New(w.cfg.StartHour, w.cfg.TimeSpeed, w.cfg.DaysPerSeason)
	if err := cal.Restore(s.Time.Time, s.Time.Day, s.Time.Season); err != nil {
		return fmt.Errorf("time: %w", err)
	}

	grid := store.New(w.cfg.Layout)
	cells := make([]store.Cell, 0, len(s.Tiles))
	for _, t := range s.Tiles {
		kind, ok := model.ParseTileKind(t.Kind)
		if !ok {
			return fmt.Errorf("tiles: unknown kind %q", t.Kind)
		}
		cells = append(cells, store.Cell{Pos: model.FromPair(t.Pos), Kind: kind, Watered: t.Watered})
	}
	if err := grid.Apply(cells); err != nil {
		return fmt.Errorf("tiles: %w", err)
	}

	plots := claims.New(w.cfg.Claims)
	claimed, err := cellsInMap(grid, s.Plots.Claimed)
	if err != nil {
		return fmt.Errorf("plots.claimed: %w", err)
	}
	locked, err := cellsInMap(grid, s.Plots.Locked)
	if err != nil {
		return fmt.Errorf("plots.locked: %w", err)
	}
	if err := plots.Restore(claimed, locked); err != nil {
		return fmt.Errorf("plots: %w", err)
	}

	field := crops.NewField()
	in := make([]crops.Snapshot, 0, len(s.Crops))
	for _, c := range s.Crops {
		pos := model.FromPair(c.Pos)
		if kind, ok := grid.KindAt(pos); !ok || kind != model.TileSoil {
			return fmt.Errorf("crops: %s at %s is not on soil", c.Type, pos)
		}
		in = append(in, crops.Snapshot(c))
	}
	if err := field.Restore(in); err != nil {
		return fmt.Errorf("crops: %w", err)
	}

	rng := rand.New(rand.NewSource(w.cfg.Seed ^ int64(s.Header.Tick)))
	herd := animals.NewHerd()
	if len(s.Animals) > 0 {
		as := make([]animals.Snapshot, 0, len(s.Animals))
		for _, a := range s.Animals {
			as = append(as, animals.Snapshot(a))
		}
		if err := herd.Restore(as, rng); err != nil {
			return fmt.Errorf("animals: %w", err)
		}
	} else {
		for _, sp := range w.cfg.Animals {
			herd.Add(animals.New(sp.Type, sp.Pos, rng))
		}
	}

	w.player = p
	w.wallet = wallet
	w.inv = inv
	w.hotbar = hotbar
	w.calendar = cal
	w.grid = grid
	w.plots = plots
	w.field = field
	w.herd = herd
	w.rng = rng
	w.elapsed = s.SimClock * float64(w.cfg.TickRateHz)
	w.tick.Store(s.Header.Tick)
	if s.Header.RunID != "" {
		w.runID = s.Header.RunID
	}
	return nil
}

func cellsInMap(g *store.Grid, pairs [][2]int) ([]model.Vec2i, error) {
	out := make([]model.Vec2i, 0, len(pairs))
	for _, p := range pairs {
		c := model.FromPair(p)
		if !g.InBounds(c) {
			return nil, fmt.Errorf("cell %s outside the map", c)
		}
		out = append(out, c)
	}
	return out, nil
}

// LoadSave restores the farm from path. A missing file keeps the fresh world
// and returns (false, nil). Any other failure also keeps the fresh world; the
// error is returned so the caller can log it.
func (w *World) LoadSave(path string) (loaded bool, err error) {
	s, err := snapshot.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		w.auditAs(systemActor, AuditLoadFailed, model.Vec2i{}, err.Error(), map[string]any{"path": path})
		return false, fmt.Errorf("read save: %w", err)
	}
	if err := w.ImportSave(s); err != nil {
		w.auditAs(systemActor, AuditLoadFailed, model.Vec2i{}, err.Error(), map[string]any{"path": path})
		return false, fmt.Errorf("import save: %w", err)
	}
	return true, nil
}
