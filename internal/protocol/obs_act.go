package protocol

// Action types carried by ACT.
const (
	ActUseTool    = "USE_TOOL"
	ActSetTool    = "SET_TOOL"
	ActNextTool   = "NEXT_TOOL"
	ActSelectSlot = "SELECT_SLOT"
	ActSetHotbar  = "SET_HOTBAR"
	ActClaim      = "CLAIM"
	ActSellPlot   = "SELL_PLOT"
	ActToggleLock = "TOGGLE_LOCK"
	ActInteract   = "INTERACT"
	ActFeed       = "FEED"
	ActCollect    = "COLLECT"
	ActBuy        = "BUY"
	ActSell       = "SELL"
	ActSellAll    = "SELL_ALL"
	ActCraft      = "CRAFT"
	ActMove       = "MOVE"
	ActSave       = "SAVE"
)

type ActMsg struct {
	Type            string   `json:"type"`
	ProtocolVersion string   `json:"protocol_version"`
	Tick            uint64   `json:"tick"`
	Actions         []Action `json:"actions"`
}

type Action struct {
	ID   string `json:"id"`
	Type string `json:"type"`

	Target *[2]int `json:"target,omitempty"`
	Tool   string  `json:"tool,omitempty"`
	Slot   *int    `json:"slot,omitempty"`
	Item   string  `json:"item,omitempty"`
	Count  int     `json:"count,omitempty"`
	Recipe string  `json:"recipe,omitempty"`
	Animal *int    `json:"animal,omitempty"`

	DX float64 `json:"dx,omitempty"`
	DY float64 `json:"dy,omitempty"`
}

type ActionResult struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	OK      bool   `json:"ok"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

type ObsMsg struct {
	Type            string  `json:"type"`
	ProtocolVersion string  `json:"protocol_version"`
	Tick            uint64  `json:"tick"`
	Clock           float64 `json:"clock"`

	Player    PlayerObs      `json:"player"`
	Time      TimeObs        `json:"time"`
	Inventory []ItemStack    `json:"inventory"`
	Hotbar    []*string      `json:"hotbar"`
	Plots     PlotsObs       `json:"plots"`
	Crops     []CropObs      `json:"crops"`
	Animals   []AnimalObs    `json:"animals"`
	NPCs      []NPCObs       `json:"npcs"`
	Results   []ActionResult `json:"results,omitempty"`
}

type PlayerObs struct {
	Pos          [2]float64 `json:"pos"`
	Money        int        `json:"money"`
	Energy       float64    `json:"energy"`
	MaxEnergy    float64    `json:"max_energy"`
	Tool         string     `json:"tool"`
	SelectedSlot int        `json:"selected_slot"`
}

type TimeObs struct {
	Hour   float64 `json:"hour"`
	Day    int     `json:"day"`
	Season string  `json:"season"`
	Night  bool    `json:"night"`
	Label  string  `json:"label"`
}

type ItemStack struct {
	Item  string `json:"item"`
	Count int    `json:"count"`
}

type PlotsObs struct {
	Claimed [][2]int    `json:"claimed"`
	Locked  [][2]int    `json:"locked"`
	Regions []RegionObs `json:"regions"`
}

type RegionObs struct {
	Cells []CellEdgesObs `json:"cells"`
}

// CellEdgesObs lists which outline edges are drawn for one claimed cell.
type CellEdgesObs struct {
	Pos    [2]int `json:"pos"`
	Top    bool   `json:"top,omitempty"`
	Bottom bool   `json:"bottom,omitempty"`
	Left   bool   `json:"left,omitempty"`
	Right  bool   `json:"right,omitempty"`
}

type CropObs struct {
	Pos        [2]int `json:"pos"`
	Type       string `json:"type"`
	Stage      int    `json:"stage"`
	Watered    bool   `json:"watered"`
	NeedsWater bool   `json:"needs_water"`
	Ready      bool   `json:"ready"`
}

type NPCObs struct {
	Index int        `json:"index"`
	Kind  string     `json:"kind"`
	Pos   [2]float64 `json:"pos"`
	Shop  bool       `json:"shop,omitempty"`
}

type AnimalObs struct {
	Index int        `json:"index"`
	Type  string     `json:"type"`
	State string     `json:"state"`
	Pos   [2]float64 `json:"pos"`
	Info  string     `json:"info,omitempty"`
}
