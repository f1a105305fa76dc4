package world

import (
	"harvestvalley.farm/internal/persistence/snapshot"
)

// ExportSave captures the whole farm. Must be called from the loop goroutine
// (or with the loop stopped).
func (w *World) ExportSave() snapshot.SaveV1 {
	s := snapshot.SaveV1{
		Header: snapshot.Header{Version: snapshot.Version, RunID: w.runID, Tick: w.tick.Load()},
		Player: snapshot.PlayerV1{
			Pos:          [2]float64{w.player.Pos.X, w.player.Pos.Y},
			Money:        w.wallet.Balance(),
			Energy:       w.player.Energy,
			Tool:         string(w.player.Tool),
			SelectedSlot: w.hotbar.Selected(),
		},
		Inventory: w.inv.Snapshot(),
		Hotbar:    w.hotbar.Export(),
		Time: snapshot.TimeV1{
			Time:   w.calendar.Hour,
			Day:    w.calendar.Day,
			Season: w.calendar.Season.String(),
		},
		Plots: snapshot.PlotsV1{
			Claimed: [][2]int{},
			Locked:  [][2]int{},
		},
		SimClock: w.Clock(),
	}
	for _, p := range w.plots.Claimed() {
		s.Plots.Claimed = append(s.Plots.Claimed, p.Pair())
	}
	for _, p := range w.plots.Locked() {
		s.Plots.Locked = append(s.Plots.Locked, p.Pair())
	}
	for _, c := range w.grid.Diff(w.cfg.Layout) {
		s.Tiles = append(s.Tiles, snapshot.TileV1{Pos: c.Pos.Pair(), Kind: c.Kind.String(), Watered: c.Watered})
	}
	for _, c := range w.field.Export() {
		s.Crops = append(s.Crops, snapshot.CropV1(c))
	}
	for _, a := range w.herd.Export() {
		s.Animals = append(s.Animals, snapshot.AnimalV1(a))
	}
	return s
}
