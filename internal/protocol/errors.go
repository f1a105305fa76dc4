package protocol

const (
	// Protocol/transport validation.
	ErrProtoBadRequest = "E_PROTO_BAD_REQUEST"
	ErrWorldBusy       = "E_WORLD_BUSY"

	// Rule/action layer.
	ErrBadRequest    = "E_BAD_REQUEST"
	ErrNoPermission  = "E_NO_PERMISSION"
	ErrNoResource    = "E_NO_RESOURCE"
	ErrInvalidTarget = "E_INVALID_TARGET"
	ErrConflict      = "E_CONFLICT"
	ErrBlocked       = "E_BLOCKED"
	ErrInternal      = "E_INTERNAL"

	// Farm policy rejections.
	ErrNoFunds    = "E_NO_FUNDS"
	ErrWrongTool  = "E_WRONG_TOOL"
	ErrWrongState = "E_WRONG_STATE"
	ErrNoEnergy   = "E_NO_ENERGY"

	// Nothing changed; not an error for callers.
	ErrNoop = "E_NOOP"
)

var knownCodes = map[string]struct{}{
	ErrProtoBadRequest: {},
	ErrWorldBusy:       {},
	ErrBadRequest:      {},
	ErrNoPermission:    {},
	ErrNoResource:      {},
	ErrInvalidTarget:   {},
	ErrConflict:        {},
	ErrBlocked:         {},
	ErrInternal:        {},
	ErrNoFunds:         {},
	ErrWrongTool:       {},
	ErrWrongState:      {},
	ErrNoEnergy:        {},
	ErrNoop:            {},
}

func IsKnownCode(code string) bool {
	if code == "" {
		return true
	}
	_, ok := knownCodes[code]
	return ok
}
