package inventory

import (
	"fmt"

	"harvestvalley.farm/internal/sim/world/kernel/model"
)

// Hotbar holds item references into a Ledger. It never stores counts.
type Hotbar struct {
	slots    [model.HotbarSize]string
	selected int
}

func NewHotbar(items ...string) *Hotbar {
	h := &Hotbar{}
	for i := 0; i < len(items) && i < model.HotbarSize; i++ {
		h.slots[i] = items[i]
	}
	return h
}

func (h *Hotbar) Selected() int { return h.selected }

func (h *Hotbar) Select(slot int) bool {
	if slot < 0 || slot >= model.HotbarSize {
		return false
	}
	h.selected = slot
	return true
}

// Set assigns item to slot; an empty item clears it.
func (h *Hotbar) Set(slot int, item string) bool {
	if slot < 0 || slot >= model.HotbarSize {
		return false
	}
	h.slots[slot] = item
	return true
}

func (h *Hotbar) Slot(slot int) (string, bool) {
	if slot < 0 || slot >= model.HotbarSize || h.slots[slot] == "" {
		return "", false
	}
	return h.slots[slot], true
}

// SelectedItem is the selected slot's item if the ledger holds at least one.
func (h *Hotbar) SelectedItem(l *Ledger) (string, bool) {
	item, ok := h.Slot(h.selected)
	if !ok || !l.Has(item, 1) {
		return "", false
	}
	return item, true
}

// SelectedSeed is the crop type of the selected item when it is a seed in stock.
func (h *Hotbar) SelectedSeed(l *Ledger) (model.CropType, bool) {
	item, ok := h.SelectedItem(l)
	if !ok {
		return 0, false
	}
	return model.CropFromSeedItem(item)
}

// Export returns the slots with nil for empty ones.
func (h *Hotbar) Export() []*string {
	out := make([]*string, model.HotbarSize)
	for i, s := range h.slots {
		if s != "" {
			v := s
			out[i] = &v
		}
	}
	return out
}

func (h *Hotbar) Restore(slots []*string) error {
	if len(slots) != model.HotbarSize {
		return fmt.Errorf("hotbar has %d slots, want %d", len(slots), model.HotbarSize)
	}
	var next [model.HotbarSize]string
	for i, s := range slots {
		if s != nil {
			next[i] = *s
		}
	}
	h.slots = next
	return nil
}
