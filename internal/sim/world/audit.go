package world

import "harvestvalley.farm/internal/sim/world/kernel/model"

type TickLogger interface {
	WriteTick(entry TickLogEntry) error
}

type AuditLogger interface {
	WriteAudit(entry AuditEntry) error
}

// Audit action names.
const (
	AuditTill       = "TILL"
	AuditWater      = "WATER"
	AuditPlant      = "PLANT"
	AuditHarvest    = "HARVEST"
	AuditChop       = "CHOP"
	AuditClaim      = "CLAIM"
	AuditSellPlot   = "SELL_PLOT"
	AuditLock       = "LOCK"
	AuditUnlock     = "UNLOCK"
	AuditFeed       = "FEED"
	AuditCollect    = "COLLECT"
	AuditTalk       = "TALK"
	AuditBuy        = "BUY"
	AuditSell       = "SELL"
	AuditCraft      = "CRAFT"
	AuditCropStage  = "CROP_STAGE"
	AuditProduce    = "PRODUCE"
	AuditLoadFailed = "LOAD_FAILED"
)

type TickLogEntry struct {
	Tick    uint64           `json:"tick"`
	Joins   []string         `json:"joins,omitempty"`
	Leaves  []string         `json:"leaves,omitempty"`
	Actions []RecordedAction `json:"actions,omitempty"`
	Digest  string           `json:"digest"`
}

type RecordedAction struct {
	SessionID string `json:"session_id"`
	ActionID  string `json:"action_id,omitempty"`
	Type      string `json:"type"`
	OK        bool   `json:"ok"`
	Code      string `json:"code,omitempty"`
}

type AuditEntry struct {
	Tick    uint64         `json:"tick"`
	Actor   string         `json:"actor"`
	Action  string         `json:"action"`
	Pos     [2]int         `json:"pos"`
	Reason  string         `json:"reason,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

const systemActor = "WORLD"

func (w *World) auditEvent(action string, pos model.Vec2i, reason string, details map[string]any) {
	w.auditAs(w.currentActor(), action, pos, reason, details)
}

func (w *World) auditAs(actor, action string, pos model.Vec2i, reason string, details map[string]any) {
	if w.auditLogger == nil {
		return
	}
	_ = w.auditLogger.WriteAudit(AuditEntry{
		Tick:    w.tick.Load(),
		Actor:   actor,
		Action:  action,
		Pos:     pos.Pair(),
		Reason:  reason,
		Details: details,
	})
}

func (w *World) currentActor() string {
	if w.actor == "" {
		return "player"
	}
	return w.actor
}
