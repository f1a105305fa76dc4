package world

import (
	"path/filepath"
	"reflect"
	"testing"

	"harvestvalley.farm/internal/persistence/snapshot"
	"harvestvalley.farm/internal/sim/world/kernel/model"
)

func playedWorld(t *testing.T) *World {
	t.Helper()
	w := newTestWorld(t)
	prepareBed(t, w, grassA, true)
	setTool(t, w, model.ToolHoe)
	expectOK(t, "claim")(w.Claim(grassB))
	expectOK(t, "lock")(w.ToggleLock(grassB))
	setTool(t, w, model.ToolAxe)
	expectOK(t, "chop")(w.UseTool(treeA))
	expectOK(t, "select")(w.SelectSlot(2))
	for i := 0; i < 120; i++ {
		w.StepOnce(nil)
	}
	return w
}

func TestSaveLoadRoundTrip(t *testing.T) {
	src := playedWorld(t)
	want := src.ExportSave()
	path := filepath.Join(t.TempDir(), "farm.save.zst")
	if err := snapshot.Write(path, want); err != nil {
		t.Fatalf("write: %v", err)
	}

	dst := newTestWorld(t)
	loaded, err := dst.LoadSave(path)
	if err != nil || !loaded {
		t.Fatalf("LoadSave: loaded=%v err=%v", loaded, err)
	}
	got := dst.ExportSave()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("reloaded farm differs:\n got=%+v\nwant=%+v", got, want)
	}
	if dst.CurrentTick() != 120 || dst.Clock() != 2 {
		t.Fatalf("tick=%d clock=%v", dst.CurrentTick(), dst.Clock())
	}
	if !dst.Plots().IsLocked(grassB) || dst.Hotbar().Selected() != 2 {
		t.Fatalf("plots or hotbar not restored")
	}
	if dst.stateDigest() != src.stateDigest() {
		t.Fatalf("digest differs after reload")
	}
}

func TestLoadSaveMissingFileKeepsFreshWorld(t *testing.T) {
	w := newTestWorld(t)
	before := w.stateDigest()
	loaded, err := w.LoadSave(filepath.Join(t.TempDir(), "none.save.zst"))
	if err != nil || loaded {
		t.Fatalf("missing save: loaded=%v err=%v", loaded, err)
	}
	if w.stateDigest() != before {
		t.Fatalf("fresh world changed")
	}
}

func TestLoadSaveRejectsImpossibleState(t *testing.T) {
	cases := map[string]func(*snapshot.SaveV1){
		"energy over max": func(s *snapshot.SaveV1) { s.Player.Energy = 150 },
		"unknown item":    func(s *snapshot.SaveV1) { s.Inventory["diamond"] = 1 },
		"crop on grass": func(s *snapshot.SaveV1) {
			s.Crops = append(s.Crops, snapshot.CropV1{Pos: grassC.Pair(), Type: "corn"})
		},
		"lock without claim": func(s *snapshot.SaveV1) { s.Plots.Locked = append(s.Plots.Locked, grassC.Pair()) },
		"player off map":     func(s *snapshot.SaveV1) { s.Player.Pos = [2]float64{5000, 10} },
		"unknown hotbar item": func(s *snapshot.SaveV1) {
			bad := "diamond"
			s.Hotbar[4] = &bad
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			s := playedWorld(t).ExportSave()
			mutate(&s)
			path := filepath.Join(t.TempDir(), "bad.save.zst")
			if err := snapshot.Write(path, s); err != nil {
				t.Fatalf("write: %v", err)
			}

			w := newTestWorld(t)
			audit := &recordingAudit{}
			w.SetAuditLogger(audit)
			before := w.stateDigest()
			loaded, err := w.LoadSave(path)
			if err == nil || loaded {
				t.Fatalf("expected rejection, loaded=%v err=%v", loaded, err)
			}
			if w.stateDigest() != before || w.RunID() != "test-run" {
				t.Fatalf("world changed by a rejected load")
			}
			if len(audit.entries) != 1 || audit.entries[0].Action != AuditLoadFailed {
				t.Fatalf("audit: %+v", audit.entries)
			}
		})
	}
}

func TestMinimalSaveKeepsGeneratedParts(t *testing.T) {
	w := newTestWorld(t)
	s := snapshot.SaveV1{
		Header:    snapshot.Header{Version: snapshot.Version, RunID: "old-run", Tick: 10},
		Player:    snapshot.PlayerV1{Pos: [2]float64{100, 100}, Money: 500, Energy: 20},
		Inventory: map[string]int{"corn_seed": 4},
		Time:      snapshot.TimeV1{Time: 20, Day: 12, Season: "Summer"},
		Plots:     snapshot.PlotsV1{Claimed: [][2]int{grassC.Pair()}},
	}
	if err := w.ImportSave(s); err != nil {
		t.Fatalf("import: %v", err)
	}
	if w.Herd().Len() != 3 {
		t.Fatalf("animals should be respawned, got %d", w.Herd().Len())
	}
	if w.Wallet().Balance() != 500 || w.Player().Energy != 20 || w.Player().Tool != model.ToolHand {
		t.Fatalf("player: money=%d energy=%v tool=%s", w.Wallet().Balance(), w.Player().Energy, w.Player().Tool)
	}
	if !w.Calendar().IsNight() || w.Calendar().Season.String() != "Summer" {
		t.Fatalf("calendar: %+v", w.Calendar())
	}
	if w.RunID() != "old-run" || w.CurrentTick() != 10 {
		t.Fatalf("run=%s tick=%d", w.RunID(), w.CurrentTick())
	}
}
