package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"harvestvalley.farm/internal/persistence/archive"
	"harvestvalley.farm/internal/persistence/indexdb"
	persistlog "harvestvalley.farm/internal/persistence/log"
	"harvestvalley.farm/internal/persistence/snapshot"
	"harvestvalley.farm/internal/sim/catalogs"
	"harvestvalley.farm/internal/sim/tuning"
	"harvestvalley.farm/internal/sim/world"
	"harvestvalley.farm/internal/sim/world/terrain/gen"
	"harvestvalley.farm/internal/transport/observer"
	"harvestvalley.farm/internal/transport/ws"
)

func main() {
	var (
		addr       = flag.String("addr", ":8080", "http listen address")
		farmID     = flag.String("farm", "farm_1", "farm id (data subdirectory)")
		configDir  = flag.String("configs", "", "catalog override directory (default: embedded catalogs)")
		tuningPath = flag.String("tuning", "", "path to tuning.yaml (default: embedded tuning)")
		mapPath    = flag.String("map", "", "letter-row map file (overrides tuning map.file)")
		dataDir    = flag.String("data", "./data", "runtime data directory")
		savePath   = flag.String("save", "", "save file (default: <data>/<farm>/save.zst)")
		disableDB  = flag.Bool("disable_db", false, "disable the sqlite index (tick/audit/saves + catalogs)")
		observe    = flag.Bool("observer", true, "serve loopback observer endpoints")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	cats, err := loadCatalogs(*configDir)
	if err != nil {
		logger.Fatalf("load catalogs: %v", err)
	}
	tune := tuning.Defaults()
	if tp := strings.TrimSpace(*tuningPath); tp != "" {
		tune, err = tuning.Load(tp)
		if err != nil {
			logger.Fatalf("load tuning: %v", err)
		}
	}
	layout, err := loadLayout(*mapPath, *tuningPath, tune)
	if err != nil {
		logger.Fatalf("load map: %v", err)
	}
	cfg, err := world.ConfigFromTuning(tune, layout)
	if err != nil {
		logger.Fatalf("config: %v", err)
	}

	farmDir := filepath.Join(*dataDir, *farmID)
	if err := os.MkdirAll(farmDir, 0o755); err != nil {
		logger.Fatalf("data dir: %v", err)
	}
	save := strings.TrimSpace(*savePath)
	if save == "" {
		save = filepath.Join(farmDir, "save.zst")
	}

	// Optional read-model index (does not affect the simulation).
	var idx *indexdb.SQLiteIndex
	if !*disableDB {
		idx, err = indexdb.OpenSQLite(filepath.Join(farmDir, "index", "farm.sqlite"))
		if err != nil {
			logger.Fatalf("open index: %v", err)
		}
		defer idx.Close()
		if err := idx.UpsertCatalogs(cats, tune); err != nil {
			logger.Printf("index: upsert catalogs: %v", err)
		}
	}

	w, err := world.New(cfg, cats, world.WithLogger(logger), world.WithTuningDigest(tune.Digest()))
	if err != nil {
		logger.Fatalf("world: %v", err)
	}

	tickLog := persistlog.NewTickLogger(farmDir)
	auditLog := persistlog.NewAuditLogger(farmDir)
	defer tickLog.Close()
	defer auditLog.Close()
	w.SetTickLogger(multiTickLogger{a: tickLog, b: idx})
	w.SetAuditLogger(multiAuditLogger{a: auditLog, b: idx})

	// Loaded after the loggers are attached so a rejected save leaves a LOAD_FAILED audit.
	loaded, err := w.LoadSave(save)
	switch {
	case err != nil:
		logger.Printf("save %s unusable, starting a fresh farm: %v", save, err)
	case loaded:
		logger.Printf("resumed from %s tick=%d run=%s", save, w.CurrentTick(), w.RunID())
	default:
		logger.Printf("no save at %s, starting a fresh farm run=%s", save, w.RunID())
	}

	ctx, cancel := signalContext()
	defer cancel()

	sv := saver{log: logger, path: save, farmDir: farmDir, daysPerSeason: cfg.DaysPerSeason, idx: idx}
	saveCh := make(chan snapshot.SaveV1, 2)
	w.SetSaveSink(saveCh)
	saverDone := make(chan struct{})
	go func() {
		defer close(saverDone)
		for {
			select {
			case <-ctx.Done():
				return
			case s := <-saveCh:
				sv.write(s)
			}
		}
	}()

	worldDone := make(chan struct{})
	go func() {
		defer close(worldDone)
		if err := w.Run(ctx); err != nil && err != context.Canceled {
			logger.Printf("world stopped: %v", err)
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(200)
		_, _ = rw.Write([]byte("ok"))
	})

	var obsSrv *observer.Server
	if *observe {
		obsSrv = observer.NewServer(w, logger)
		if err := obsSrv.Start(ctx); err != nil {
			logger.Fatalf("observer: %v", err)
		}
		mux.HandleFunc("/v1/observer/state", obsSrv.StateHandler())
		mux.HandleFunc("/v1/observer/ws", obsSrv.WSHandler())
	} else {
		logger.Printf("observer endpoints disabled")
	}
	mux.HandleFunc("/metrics", func(rw http.ResponseWriter, r *http.Request) {
		rw.Header().Set("Content-Type", "text/plain; version=0.0.4")
		m := farmMetrics{Farm: *farmID, Tick: w.CurrentTick()}
		if obsSrv != nil {
			m.Obs = obsSrv.Latest()
		}
		if idx != nil {
			st := idx.Stats()
			m.Index = &st
		}
		writeMetrics(rw, m)
	})
	mux.HandleFunc("/v1/ws", ws.NewServer(w, logger).Handler())

	srv := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel2()
		_ = srv.Shutdown(ctx2)
	}()

	logger.Printf("listening on %s", *addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("ListenAndServe: %v", err)
	}
	<-shutdownDone
	<-worldDone
	<-saverDone

	// The loop has stopped, so the world can be read directly for the final save.
	sv.write(w.ExportSave())
}

func loadCatalogs(dir string) (*catalogs.Catalogs, error) {
	if strings.TrimSpace(dir) == "" {
		return catalogs.Default()
	}
	return catalogs.Load(dir)
}

// loadLayout returns an empty layout (the generated default map) unless a map
// file is named by flag or by the tuning. Tuning paths are relative to the tuning file.
func loadLayout(mapFlag, tuningPath string, tune tuning.Tuning) (gen.Layout, error) {
	path := strings.TrimSpace(mapFlag)
	if path == "" && tune.Map.File != "" {
		path = tune.Map.File
		if !filepath.IsAbs(path) && tuningPath != "" {
			path = filepath.Join(filepath.Dir(tuningPath), path)
		}
	}
	if path == "" {
		return gen.Layout{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return gen.Layout{}, err
	}
	return gen.ParseRows(strings.Split(string(raw), "\n"))
}

type saver struct {
	log           *log.Logger
	path          string
	farmDir       string
	daysPerSeason int
	idx           *indexdb.SQLiteIndex
}

// write stores the save, indexes it and refreshes the season archive.
func (sv saver) write(s snapshot.SaveV1) {
	if err := snapshot.Write(sv.path, s); err != nil {
		sv.log.Printf("save write: %v", err)
		return
	}
	sv.log.Printf("saved tick=%d money=%d", s.Header.Tick, s.Player.Money)
	if sv.idx != nil {
		sv.idx.RecordSave(sv.path, s)
	}
	if _, _, err := archive.ArchiveSeasonSave(sv.farmDir, sv.path, s, sv.daysPerSeason); err != nil {
		sv.log.Printf("archive season save: %v", err)
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()
	return ctx, cancel
}

// The index is held as a concrete pointer so a disabled index stays nil.
type multiTickLogger struct {
	a world.TickLogger
	b *indexdb.SQLiteIndex
}

func (m multiTickLogger) WriteTick(entry world.TickLogEntry) error {
	if m.a != nil {
		_ = m.a.WriteTick(entry)
	}
	if m.b != nil {
		_ = m.b.WriteTick(entry)
	}
	return nil
}

type multiAuditLogger struct {
	a world.AuditLogger
	b *indexdb.SQLiteIndex
}

func (m multiAuditLogger) WriteAudit(entry world.AuditEntry) error {
	if m.a != nil {
		_ = m.a.WriteAudit(entry)
	}
	if m.b != nil {
		_ = m.b.WriteAudit(entry)
	}
	return nil
}

type farmMetrics struct {
	Farm  string
	Tick  uint64
	Obs   []byte
	Index *indexdb.Stats
}

// writeMetrics emits a minimal Prometheus text exposition.
func writeMetrics(rw http.ResponseWriter, m farmMetrics) {
	fmt.Fprintf(rw, "# HELP harvestvalley_farm_tick Current farm tick.\n")
	fmt.Fprintf(rw, "# TYPE harvestvalley_farm_tick gauge\n")
	fmt.Fprintf(rw, "harvestvalley_farm_tick{farm=%q} %d\n", m.Farm, m.Tick)

	if len(m.Obs) > 0 {
		var obs struct {
			Player struct {
				Money  int     `json:"money"`
				Energy float64 `json:"energy"`
			} `json:"player"`
			Plots struct {
				Claimed [][2]int `json:"claimed"`
			} `json:"plots"`
			Crops   []json.RawMessage `json:"crops"`
			Animals []json.RawMessage `json:"animals"`
		}
		if err := json.Unmarshal(m.Obs, &obs); err == nil {
			fmt.Fprintf(rw, "# HELP harvestvalley_farm_state Farm state from the latest observation.\n")
			fmt.Fprintf(rw, "# TYPE harvestvalley_farm_state gauge\n")
			fmt.Fprintf(rw, "harvestvalley_farm_state{farm=%q,metric=%q} %d\n", m.Farm, "money", obs.Player.Money)
			fmt.Fprintf(rw, "harvestvalley_farm_state{farm=%q,metric=%q} %.3f\n", m.Farm, "energy", obs.Player.Energy)
			fmt.Fprintf(rw, "harvestvalley_farm_state{farm=%q,metric=%q} %d\n", m.Farm, "claimed_tiles", len(obs.Plots.Claimed))
			fmt.Fprintf(rw, "harvestvalley_farm_state{farm=%q,metric=%q} %d\n", m.Farm, "crops", len(obs.Crops))
			fmt.Fprintf(rw, "harvestvalley_farm_state{farm=%q,metric=%q} %d\n", m.Farm, "animals", len(obs.Animals))
		}
	}

	if m.Index == nil {
		return
	}
	s := m.Index
	fmt.Fprintf(rw, "# HELP harvestvalley_index_queue_depth Current index queue depth.\n")
	fmt.Fprintf(rw, "# TYPE harvestvalley_index_queue_depth gauge\n")
	fmt.Fprintf(rw, "harvestvalley_index_queue_depth{farm=%q} %d\n", m.Farm, s.QueueDepth)

	fmt.Fprintf(rw, "# HELP harvestvalley_index_queue_capacity Index queue capacity.\n")
	fmt.Fprintf(rw, "# TYPE harvestvalley_index_queue_capacity gauge\n")
	fmt.Fprintf(rw, "harvestvalley_index_queue_capacity{farm=%q} %d\n", m.Farm, s.QueueCapacity)

	fmt.Fprintf(rw, "# HELP harvestvalley_index_dropped_total Index writes dropped because the queue was full.\n")
	fmt.Fprintf(rw, "# TYPE harvestvalley_index_dropped_total counter\n")
	fmt.Fprintf(rw, "harvestvalley_index_dropped_total{farm=%q,kind=%q} %d\n", m.Farm, "tick", s.DropTickTotal)
	fmt.Fprintf(rw, "harvestvalley_index_dropped_total{farm=%q,kind=%q} %d\n", m.Farm, "audit", s.DropAuditTotal)
	fmt.Fprintf(rw, "harvestvalley_index_dropped_total{farm=%q,kind=%q} %d\n", m.Farm, "save", s.DropSaveTotal)
}
