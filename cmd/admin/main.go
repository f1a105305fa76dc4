package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"harvestvalley.farm/internal/persistence/archive"
	"harvestvalley.farm/internal/persistence/indexdb"
	persistlog "harvestvalley.farm/internal/persistence/log"
	"harvestvalley.farm/internal/persistence/snapshot"
	"harvestvalley.farm/internal/sim/catalogs"
	"harvestvalley.farm/internal/sim/tuning"
	"harvestvalley.farm/internal/sim/world"
	"harvestvalley.farm/internal/sim/world/kernel/model"
	"harvestvalley.farm/internal/sim/world/terrain/gen"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "save":
			saveCmd(os.Args[2:])
			return
		case "check":
			checkCmd(os.Args[2:])
			return
		case "audits":
			auditsCmd(os.Args[2:])
			return
		case "db":
			dbCmd(os.Args[2:])
			return
		case "seasons":
			seasonsCmd(os.Args[2:])
			return
		case "state":
			stateCmd(os.Args[2:])
			return
		}
	}
	listCmd(os.Args[1:])
}

func listCmd(args []string) {
	fs := flag.NewFlagSet("admin", flag.ExitOnError)
	dataDir := fs.String("data", "./data", "runtime data directory")
	_ = fs.Parse(args)

	entries, err := os.ReadDir(*dataDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read:", err)
		os.Exit(1)
	}
	for _, e := range entries {
		if e.IsDir() {
			fmt.Println(e.Name())
		}
	}
}

func farmPaths(fs *flag.FlagSet) (dataDir, farmID *string) {
	return fs.String("data", "./data", "runtime data directory"),
		fs.String("farm", "farm_1", "farm id")
}

func savePathFor(dataDir, farmID, explicit string) string {
	if p := strings.TrimSpace(explicit); p != "" {
		return p
	}
	return filepath.Join(dataDir, farmID, "save.zst")
}

type saveSummary struct {
	Path      string          `json:"path"`
	Header    snapshot.Header `json:"header"`
	Money     int             `json:"money"`
	Energy    float64         `json:"energy"`
	Day       int             `json:"day"`
	Season    string          `json:"season"`
	Hour      float64         `json:"hour"`
	Claimed   int             `json:"claimed"`
	Locked    int             `json:"locked"`
	Tiles     int             `json:"modified_tiles"`
	Crops     map[string]int  `json:"crops"`
	Ready     int             `json:"ready_crops"`
	Animals   map[string]int  `json:"animals"`
	Inventory map[string]int  `json:"inventory"`
}

func summarizeSave(path string, s snapshot.SaveV1) saveSummary {
	out := saveSummary{
		Path:      path,
		Header:    s.Header,
		Money:     s.Player.Money,
		Energy:    s.Player.Energy,
		Day:       s.Time.Day,
		Season:    s.Time.Season,
		Hour:      s.Time.Time,
		Claimed:   len(s.Plots.Claimed),
		Locked:    len(s.Plots.Locked),
		Tiles:     len(s.Tiles),
		Crops:     map[string]int{},
		Animals:   map[string]int{},
		Inventory: map[string]int{},
	}
	for _, c := range s.Crops {
		out.Crops[c.Type]++
		if c.Stage >= model.MaxCropStage {
			out.Ready++
		}
	}
	for _, a := range s.Animals {
		out.Animals[a.State]++
	}
	for id, n := range s.Inventory {
		if n > 0 {
			out.Inventory[id] = n
		}
	}
	return out
}

func saveCmd(args []string) {
	fs := flag.NewFlagSet("save", flag.ExitOnError)
	dataDir, farmID := farmPaths(fs)
	path := fs.String("save", "", "save path (default: <data>/<farm>/save.zst)")
	headerOnly := fs.Bool("header", false, "print only the header line")
	_ = fs.Parse(args)

	p := savePathFor(*dataDir, *farmID, *path)
	if *headerOnly {
		h, err := snapshot.ReadHeader(p)
		if err != nil {
			fmt.Fprintln(os.Stderr, "read header:", err)
			os.Exit(1)
		}
		printJSON(h)
		return
	}
	s, err := snapshot.Read(p)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read save:", err)
		os.Exit(1)
	}
	printJSON(summarizeSave(p, s))
}

// checkCmd loads a save into a fresh farm built from the given catalogs and
// tuning, the same way the server would on startup.
func checkCmd(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	dataDir, farmID := farmPaths(fs)
	path := fs.String("save", "", "save path (default: <data>/<farm>/save.zst)")
	configDir := fs.String("configs", "", "catalog override directory")
	tuningPath := fs.String("tuning", "", "tuning.yaml path")
	_ = fs.Parse(args)

	if err := checkSave(savePathFor(*dataDir, *farmID, *path), *configDir, *tuningPath); err != nil {
		fmt.Fprintln(os.Stderr, "check:", err)
		os.Exit(1)
	}
	fmt.Println("ok")
}

func checkSave(path, configDir, tuningPath string) error {
	cats, err := catalogs.Default()
	if strings.TrimSpace(configDir) != "" {
		cats, err = catalogs.Load(configDir)
	}
	if err != nil {
		return fmt.Errorf("catalogs: %w", err)
	}
	tune := tuning.Defaults()
	if strings.TrimSpace(tuningPath) != "" {
		if tune, err = tuning.Load(tuningPath); err != nil {
			return fmt.Errorf("tuning: %w", err)
		}
	}
	cfg, err := world.ConfigFromTuning(tune, gen.Layout{})
	if err != nil {
		return err
	}
	w, err := world.New(cfg, cats)
	if err != nil {
		return err
	}
	s, err := snapshot.Read(path)
	if err != nil {
		return err
	}
	return w.ImportSave(s)
}

func auditsCmd(args []string) {
	fs := flag.NewFlagSet("audits", flag.ExitOnError)
	dataDir, farmID := farmPaths(fs)
	source := fs.String("source", "index", "index or logs")
	action := fs.String("action", "", "action filter (e.g. HARVEST)")
	actor := fs.String("actor", "", "actor filter (session id or WORLD)")
	limit := fs.Int("limit", 20, "result limit")
	_ = fs.Parse(args)

	farmDir := filepath.Join(*dataDir, *farmID)
	var out []world.AuditEntry
	switch *source {
	case "index":
		r, err := indexdb.OpenReader(indexPath(farmDir))
		if err != nil {
			fmt.Fprintln(os.Stderr, "open index:", err)
			os.Exit(1)
		}
		defer r.Close()
		out, err = r.RecentAudits(context.Background(), indexdb.AuditFilter{Action: *action, Actor: *actor, Limit: *limit})
		if err != nil {
			fmt.Fprintln(os.Stderr, "query:", err)
			os.Exit(1)
		}
	case "logs":
		all, err := persistlog.ReadAudits(farmDir)
		if err != nil {
			fmt.Fprintln(os.Stderr, "read audit logs:", err)
			os.Exit(1)
		}
		out = filterAudits(all, *action, *actor, *limit)
	default:
		fmt.Fprintln(os.Stderr, "unknown -source:", *source)
		os.Exit(2)
	}
	enc := json.NewEncoder(os.Stdout)
	for _, e := range out {
		_ = enc.Encode(e)
	}
}

// filterAudits keeps the newest matching entries, newest first.
func filterAudits(entries []world.AuditEntry, action, actor string, limit int) []world.AuditEntry {
	if limit <= 0 {
		limit = 20
	}
	var out []world.AuditEntry
	for i := len(entries) - 1; i >= 0 && len(out) < limit; i-- {
		e := entries[i]
		if action != "" && e.Action != action {
			continue
		}
		if actor != "" && e.Actor != actor {
			continue
		}
		out = append(out, e)
	}
	return out
}

// seasonsCmd lists the season archives written by the server.
func seasonsCmd(args []string) {
	fs := flag.NewFlagSet("seasons", flag.ExitOnError)
	dataDir, farmID := farmPaths(fs)
	_ = fs.Parse(args)

	dirs, err := archive.List(filepath.Join(*dataDir, *farmID))
	if err != nil {
		fmt.Fprintln(os.Stderr, "list:", err)
		os.Exit(1)
	}
	for _, d := range dirs {
		m, err := archive.ReadMeta(d)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", filepath.Base(d), err)
			continue
		}
		fmt.Printf("%s %-6s day=%d tick=%d money=%d\n", filepath.Base(d), m.Name, m.Day, m.Tick, m.Money)
	}
}

func indexPath(farmDir string) string {
	return filepath.Join(farmDir, "index", "farm.sqlite")
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
