package inventory

import (
	"fmt"
	"math"
	"sort"

	"harvestvalley.farm/internal/sim/world/logic/invariant"
)

// Ledger maps item ids to positive counts. Zero counts are not stored.
type Ledger struct {
	counts map[string]int
}

func NewLedger() *Ledger {
	return &Ledger{counts: map[string]int{}}
}

func (l *Ledger) Count(id string) int { return l.counts[id] }

func (l *Ledger) Has(id string, n int) bool {
	return n >= 0 && l.counts[id] >= n
}

// CanAdd reports whether n more of id fits without overflowing the count.
func (l *Ledger) CanAdd(id string, n int) bool {
	return id != "" && n > 0 && l.counts[id] <= math.MaxInt-n
}

// Add increments id by n. Non-positive n is ignored and an add that would
// overflow is refused.
func (l *Ledger) Add(id string, n int) bool {
	if id == "" || n <= 0 {
		return false
	}
	if !l.CanAdd(id, n) {
		return false
	}
	l.counts[id] += n
	return true
}

// Remove takes n of id or nothing.
func (l *Ledger) Remove(id string, n int) bool {
	if n <= 0 || l.counts[id] < n {
		return false
	}
	l.counts[id] -= n
	if l.counts[id] == 0 {
		delete(l.counts, id)
	}
	return invariant.Check(l.counts[id] >= 0, "item %s count %d", id, l.counts[id])
}

func (l *Ledger) HasAll(want map[string]int) bool {
	for id, n := range want {
		if !l.Has(id, n) {
			return false
		}
	}
	return true
}

// RemoveAll takes every entry of want, or nothing when any is short.
func (l *Ledger) RemoveAll(want map[string]int) bool {
	if !l.HasAll(want) {
		return false
	}
	for id, n := range want {
		if n == 0 {
			continue
		}
		if !l.Remove(id, n) {
			return false
		}
	}
	return true
}

type Stack struct {
	Item  string `json:"item"`
	Count int    `json:"count"`
}

// Stacks lists holdings sorted by item id.
func (l *Ledger) Stacks() []Stack {
	out := make([]Stack, 0, len(l.counts))
	for id, n := range l.counts {
		out = append(out, Stack{Item: id, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Item < out[j].Item })
	return out
}

func (l *Ledger) Snapshot() map[string]int {
	out := make(map[string]int, len(l.counts))
	for id, n := range l.counts {
		out[id] = n
	}
	return out
}

// Restore replaces holdings. Negative counts are rejected; zeros are dropped.
func (l *Ledger) Restore(in map[string]int) error {
	next := make(map[string]int, len(in))
	for id, n := range in {
		if id == "" {
			return fmt.Errorf("empty item id")
		}
		if n < 0 {
			return fmt.Errorf("item %s: negative count %d", id, n)
		}
		if n > 0 {
			next[id] = n
		}
	}
	l.counts = next
	return nil
}
