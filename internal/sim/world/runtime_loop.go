package world

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"harvestvalley.farm/internal/persistence/snapshot"
	"harvestvalley.farm/internal/protocol"
)

type saveRequest struct {
	Resp chan snapshot.SaveV1
}

// Run drives ticks until ctx ends or Stop is called. Requests that arrive
// between ticks are applied at the next tick boundary, in arrival order.
func (w *World) Run(ctx context.Context) error {
	interval := time.Second / time.Duration(w.cfg.TickRateHz)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var pendingActions []ActionEnvelope
	var pendingJoins []JoinRequest
	var pendingLeaves []string
	var pendingSaves []saveRequest

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stop:
			return nil
		case req := <-w.join:
			pendingJoins = append(pendingJoins, req)
		case id := <-w.leave:
			pendingLeaves = append(pendingLeaves, id)
		case req := <-w.saveReq:
			pendingSaves = append(pendingSaves, req)
		case env := <-w.inbox:
			pendingActions = append(pendingActions, env)
		case <-ticker.C:
			w.step(pendingJoins, pendingLeaves, pendingActions)
			for _, req := range pendingSaves {
				req.Resp <- w.ExportSave()
			}
			pendingJoins = pendingJoins[:0]
			pendingLeaves = pendingLeaves[:0]
			pendingActions = pendingActions[:0]
			pendingSaves = pendingSaves[:0]
		}
	}
}

func (w *World) Stop() { w.stopOnce.Do(func() { close(w.stop) }) }

// RequestSave captures a save at the next tick boundary.
func (w *World) RequestSave(ctx context.Context) (snapshot.SaveV1, error) {
	resp := make(chan snapshot.SaveV1, 1)
	select {
	case w.saveReq <- saveRequest{Resp: resp}:
	case <-ctx.Done():
		return snapshot.SaveV1{}, ctx.Err()
	}
	select {
	case s := <-resp:
		return s, nil
	case <-ctx.Done():
		return snapshot.SaveV1{}, ctx.Err()
	}
}

func (w *World) step(joins []JoinRequest, leaves []string, actions []ActionEnvelope) {
	tick := w.tick.Load()
	entry := TickLogEntry{Tick: tick}

	for _, req := range joins {
		id := w.handleJoin(req)
		entry.Joins = append(entry.Joins, id)
	}
	for _, id := range leaves {
		delete(w.clients, id)
		entry.Leaves = append(entry.Leaves, id)
	}

	for _, env := range actions {
		w.actor = env.SessionID
		for _, a := range env.Act.Actions {
			res := w.Apply(a)
			if c := w.clients[env.SessionID]; c != nil {
				c.Results = append(c.Results, res)
			}
			entry.Actions = append(entry.Actions, RecordedAction{
				SessionID: env.SessionID,
				ActionID:  a.ID,
				Type:      a.Type,
				OK:        res.OK,
				Code:      res.Code,
			})
		}
	}
	w.actor = ""

	w.Advance(1)

	if w.tickLogger != nil {
		entry.Digest = w.stateDigest()
		_ = w.tickLogger.WriteTick(entry)
	}

	next := tick + 1
	w.tick.Store(next)

	if next%uint64(w.cfg.ObsEveryTicks) == 0 {
		w.pushObs()
	}
	if w.cfg.AutosaveEveryTicks > 0 && next%uint64(w.cfg.AutosaveEveryTicks) == 0 {
		w.autosave()
	}
}

func (w *World) handleJoin(req JoinRequest) string {
	n := w.nextSession.Add(1)
	id := fmt.Sprintf("S%06d", n)
	w.clients[id] = &clientState{Name: req.Name, Out: req.Out}
	if req.Resp != nil {
		req.Resp <- JoinResponse{Welcome: w.welcome(id)}
	}
	w.logf("session %s joined (%s)", id, req.Name)
	return id
}

func (w *World) pushObs() {
	for _, id := range sortedSessionIDs(w.clients) {
		c := w.clients[id]
		if c.Out == nil {
			continue
		}
		obs := w.Observe()
		obs.Results = c.Results
		b, err := json.Marshal(obs)
		if err != nil {
			w.logf("obs marshal: %v", err)
			continue
		}
		sendLatest(c.Out, b)
		c.Results = nil
	}
}

func (w *World) autosave() {
	if w.saveSink == nil {
		return
	}
	select {
	case w.saveSink <- w.ExportSave():
	default:
		w.logf("autosave dropped at tick %d: writer busy", w.tick.Load())
	}
}

// queueSave handles the SAVE action.
func (w *World) queueSave() (bool, string, string) {
	if w.saveSink == nil {
		return false, protocol.ErrInternal, "saving is not configured"
	}
	select {
	case w.saveSink <- w.ExportSave():
		return true, "", "Game saved!"
	default:
		return false, protocol.ErrWorldBusy, "save already in progress"
	}
}

func sendLatest(ch chan []byte, b []byte) {
	select {
	case ch <- b:
		return
	default:
	}
	// Drop one.
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- b:
	default:
	}
}
