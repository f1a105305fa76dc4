package world

import (
	"fmt"
	"log"
	"math/rand"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"harvestvalley.farm/internal/persistence/snapshot"
	"harvestvalley.farm/internal/protocol"
	"harvestvalley.farm/internal/sim/catalogs"
	"harvestvalley.farm/internal/sim/world/feature/economy"
	"harvestvalley.farm/internal/sim/world/feature/economy/inventory"
	"harvestvalley.farm/internal/sim/world/feature/economy/trade"
	"harvestvalley.farm/internal/sim/world/feature/entities/animals"
	"harvestvalley.farm/internal/sim/world/feature/entities/npcs"
	"harvestvalley.farm/internal/sim/world/feature/farming/crops"
	"harvestvalley.farm/internal/sim/world/feature/governance/claims"
	"harvestvalley.farm/internal/sim/world/logic/clock"
	"harvestvalley.farm/internal/sim/world/terrain/store"
)

type JoinRequest struct {
	Name string
	Out  chan []byte
	Resp chan JoinResponse
}

type JoinResponse struct {
	Welcome protocol.WelcomeMsg
}

type ActionEnvelope struct {
	SessionID string
	Act       protocol.ActMsg
}

// World is the single-player farm. All state is owned by the loop goroutine
// while Run is active; without Run, callers drive it directly and must not
// share it between goroutines.
type World struct {
	cfg      Config
	catalogs *catalogs.Catalogs
	log      *log.Logger

	runID        string
	tuningDigest string

	tick    atomic.Uint64
	elapsed float64 // nominal ticks advanced so far

	grid     *store.Grid
	field    *crops.Field
	herd     *animals.Herd
	town     *npcs.Town
	plots    *claims.Registry
	wallet   *economy.Wallet
	inv      *inventory.Ledger
	hotbar   *inventory.Hotbar
	shop     *trade.Shop
	calendar *clock.Clock
	player   Player
	rng      *rand.Rand

	clients     map[string]*clientState
	nextSession atomic.Uint64
	actor       string // session whose actions are being applied

	inbox    chan ActionEnvelope
	join     chan JoinRequest
	leave    chan string
	saveReq  chan saveRequest
	stop     chan struct{}
	stopOnce sync.Once

	// Optional sinks (may be nil). Implemented in internal/persistence/*.
	tickLogger  TickLogger
	auditLogger AuditLogger
	saveSink    chan<- snapshot.SaveV1
}

type clientState struct {
	Name    string
	Out     chan []byte
	Results []protocol.ActionResult
}

type Option func(*World)

func WithLogger(l *log.Logger) Option { return func(w *World) { w.log = l } }

// WithRunID pins the run id instead of generating one.
func WithRunID(id string) Option { return func(w *World) { w.runID = id } }

func WithTuningDigest(d string) Option { return func(w *World) { w.tuningDigest = d } }

func New(cfg Config, cats *catalogs.Catalogs, opts ...Option) (*World, error) {
	if cats == nil {
		return nil, fmt.Errorf("nil catalogs")
	}
	if cfg.TickRateHz <= 0 {
		return nil, fmt.Errorf("tick rate must be > 0")
	}
	if cfg.TileSize <= 0 || cfg.Layout.Width <= 0 || cfg.Layout.Height <= 0 {
		return nil, fmt.Errorf("map %dx%d tile %d is empty", cfg.Layout.Width, cfg.Layout.Height, cfg.TileSize)
	}
	if cfg.ObsEveryTicks <= 0 {
		cfg.ObsEveryTicks = 1
	}
	for id := range cfg.StarterInventory {
		if !cats.HasItem(id) {
			return nil, fmt.Errorf("starter inventory: %s", cats.UnknownItemMessage(id))
		}
	}
	for i, id := range cfg.Hotbar {
		if id != "" && !cats.HasItem(id) {
			return nil, fmt.Errorf("hotbar slot %d: %s", i, cats.UnknownItemMessage(id))
		}
	}

	w := &World{
		cfg:      cfg,
		catalogs: cats,
		clients:  map[string]*clientState{},
		inbox:    make(chan ActionEnvelope, 1024),
		join:     make(chan JoinRequest, 16),
		leave:    make(chan string, 16),
		saveReq:  make(chan saveRequest, 4),
		stop:     make(chan struct{}),
	}
	for _, o := range opts {
		o(w)
	}
	if w.runID == "" {
		w.runID = uuid.NewString()
	}
	w.reset()
	return w, nil
}

// reset puts every component in its fresh-game state.
func (w *World) reset() {
	cfg := w.cfg
	w.tick.Store(0)
	w.elapsed = 0
	w.rng = rand.New(rand.NewSource(cfg.Seed))
	w.grid = store.New(cfg.Layout)
	w.field = crops.NewField()
	w.plots = claims.New(cfg.Claims)
	w.wallet = economy.NewWallet(cfg.StartMoney)
	w.inv = inventory.NewLedger()
	for id, n := range cfg.StarterInventory {
		w.inv.Add(id, n)
	}
	w.hotbar = inventory.NewHotbar(cfg.Hotbar...)
	w.shop = trade.NewShop(w.catalogs)
	w.calendar = clock.New(cfg.StartHour, cfg.TimeSpeed, cfg.DaysPerSeason)
	w.player = newPlayer(cfg)
	w.herd = animals.NewHerd()
	for _, s := range cfg.Animals {
		w.herd.Add(animals.New(s.Type, s.Pos, w.rng))
	}
	w.town = newTown(cfg)
}

func newTown(cfg Config) *npcs.Town {
	t := npcs.NewTown()
	for _, s := range cfg.NPCs {
		t.Add(npcs.New(s.Kind, s.Pos))
	}
	return t
}

func (w *World) SetTickLogger(l TickLogger)   { w.tickLogger = l }
func (w *World) SetAuditLogger(l AuditLogger) { w.auditLogger = l }

// SetSaveSink receives autosaves. Sends never block the loop.
func (w *World) SetSaveSink(ch chan<- snapshot.SaveV1) { w.saveSink = ch }

func (w *World) Inbox() chan<- ActionEnvelope { return w.inbox }
func (w *World) Join() chan<- JoinRequest     { return w.join }
func (w *World) Leave() chan<- string         { return w.leave }

func (w *World) CurrentTick() uint64 { return w.tick.Load() }
func (w *World) RunID() string       { return w.runID }
func (w *World) Config() Config      { return w.cfg }

// Clock is the simulation clock in seconds, the time base crops grow on.
func (w *World) Clock() float64 { return w.elapsed / float64(w.cfg.TickRateHz) }

func (w *World) Grid() *store.Grid            { return w.grid }
func (w *World) Field() *crops.Field          { return w.field }
func (w *World) Herd() *animals.Herd          { return w.herd }
func (w *World) Town() *npcs.Town             { return w.town }
func (w *World) Plots() *claims.Registry      { return w.plots }
func (w *World) Wallet() *economy.Wallet      { return w.wallet }
func (w *World) Inventory() *inventory.Ledger { return w.inv }
func (w *World) Hotbar() *inventory.Hotbar    { return w.hotbar }
func (w *World) Calendar() *clock.Clock       { return w.calendar }
func (w *World) Player() *Player              { return &w.player }

func (w *World) logf(format string, args ...any) {
	if w.log != nil {
		w.log.Printf(format, args...)
	}
}

func (w *World) welcome(sessionID string) protocol.WelcomeMsg {
	return protocol.WelcomeMsg{
		Type:            protocol.TypeWelcome,
		ProtocolVersion: protocol.Version,
		SessionID:       sessionID,
		RunID:           w.runID,
		WorldParams: protocol.WorldParams{
			TickRateHz: w.cfg.TickRateHz,
			MapWidth:   w.cfg.Layout.Width,
			MapHeight:  w.cfg.Layout.Height,
			TileSize:   w.cfg.TileSize,
			Seed:       w.cfg.Seed,
		},
		Catalogs: protocol.CatalogDigests{
			ItemsDigest:   w.catalogs.Items.Digest,
			RecipesDigest: w.catalogs.Recipes.Digest,
			ShopDigest:    w.catalogs.Shop.Digest,
			TuningDigest:  w.tuningDigest,
		},
	}
}
