package animals

type State uint8

const (
	StateProducing State = iota
	StateHasProduct
	StateNeedsFeed
	StateCooldown
)

var stateNames = [...]string{
	StateProducing:  "PRODUCING",
	StateHasProduct: "HAS_PRODUCT",
	StateNeedsFeed:  "NEEDS_FEED",
	StateCooldown:   "COOLDOWN",
}

func (s State) String() string {
	if int(s) >= len(stateNames) {
		return "UNKNOWN"
	}
	return stateNames[s]
}

func ParseState(s string) (State, bool) {
	for i, n := range stateNames {
		if n == s {
			return State(i), true
		}
	}
	return 0, false
}

type Mode uint8

const (
	ModeWander Mode = iota
	ModePause
	ModeRoam
)

var modeNames = [...]string{
	ModeWander: "wander",
	ModePause:  "pause",
	ModeRoam:   "roam",
}

func (m Mode) String() string {
	if int(m) >= len(modeNames) {
		return "unknown"
	}
	return modeNames[m]
}

func ParseMode(s string) (Mode, bool) {
	for i, n := range modeNames {
		if n == s {
			return Mode(i), true
		}
	}
	return 0, false
}

// modeDraw weights wander and roam over pause.
var modeDraw = [...]Mode{ModeWander, ModePause, ModeRoam, ModeWander, ModeRoam}
