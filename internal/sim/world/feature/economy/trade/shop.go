package trade

import (
	"fmt"
	"math"

	"harvestvalley.farm/internal/protocol"
	"harvestvalley.farm/internal/sim/catalogs"
	"harvestvalley.farm/internal/sim/world/feature/economy"
	"harvestvalley.farm/internal/sim/world/feature/economy/inventory"
)

// Shop prices come from the shop catalog; the shopkeeper has unlimited stock and cash.
type Shop struct {
	cat *catalogs.Catalogs
}

func NewShop(cat *catalogs.Catalogs) *Shop {
	return &Shop{cat: cat}
}

func (s *Shop) BuyPrice(item string) (int, bool) {
	p, ok := s.cat.Shop.BuyPrice[item]
	return p, ok
}

func (s *Shop) SellPrice(item string) (int, bool) {
	p, ok := s.cat.Shop.SellPrice[item]
	return p, ok
}

func (s *Shop) unknown(item string) (bool, string, string) {
	return false, protocol.ErrInvalidTarget, s.cat.UnknownItemMessage(item)
}

// Buy charges price*count and credits the items, or changes nothing.
func (s *Shop) Buy(w *economy.Wallet, inv *inventory.Ledger, item string, count int) (ok bool, code string, msg string) {
	if count <= 0 {
		return false, protocol.ErrBadRequest, "count must be > 0"
	}
	price, listed := s.BuyPrice(item)
	if !listed {
		if !s.cat.HasItem(item) {
			return s.unknown(item)
		}
		return false, protocol.ErrInvalidTarget, fmt.Sprintf("The shop does not sell %s", item)
	}
	if price > 0 && count > math.MaxInt/price {
		return false, protocol.ErrBadRequest, fmt.Sprintf("count %d is too large", count)
	}
	total := price * count
	if !inv.CanAdd(item, count) {
		return false, protocol.ErrBadRequest, fmt.Sprintf("Cannot hold %d more %s", count, item)
	}
	if !w.CanAfford(total) {
		return false, protocol.ErrNoFunds, fmt.Sprintf("Need $%d to buy %d %s!", total, count, item)
	}
	if ok, code, msg := w.Debit(total); !ok {
		return false, code, msg
	}
	if !inv.Add(item, count) {
		w.Credit(total)
		return false, protocol.ErrInternal, "inventory add failed"
	}
	return true, "", fmt.Sprintf("Bought %d %s for $%d", count, item, total)
}

// Sell removes count items and credits price*count, or changes nothing.
func (s *Shop) Sell(w *economy.Wallet, inv *inventory.Ledger, item string, count int) (earned int, ok bool, code string, msg string) {
	if count <= 0 {
		return 0, false, protocol.ErrBadRequest, "count must be > 0"
	}
	price, listed := s.SellPrice(item)
	if !listed {
		if !s.cat.HasItem(item) {
			ok, code, msg := s.unknown(item)
			return 0, ok, code, msg
		}
		return 0, false, protocol.ErrInvalidTarget, fmt.Sprintf("The shop does not buy %s", item)
	}
	if !inv.Has(item, count) {
		return 0, false, protocol.ErrNoResource, fmt.Sprintf("Not enough %s (have %d)", item, inv.Count(item))
	}
	if price > 0 && count > math.MaxInt/price {
		return 0, false, protocol.ErrBadRequest, fmt.Sprintf("count %d is too large", count)
	}
	earned = price * count
	if !w.CanCredit(earned) {
		return 0, false, protocol.ErrBadRequest, "sale would overflow the wallet"
	}
	if !inv.Remove(item, count) {
		return 0, false, protocol.ErrInternal, "inventory remove failed"
	}
	w.Credit(earned)
	return earned, true, "", fmt.Sprintf("Sold %d %s for $%d", count, item, earned)
}

type Sale struct {
	Item   string
	Count  int
	Earned int
}

// SellAll sells every held sellable item in catalog order. Each item is its
// own transaction; one failing never undoes the others.
func (s *Shop) SellAll(w *economy.Wallet, inv *inventory.Ledger) []Sale {
	var out []Sale
	for _, item := range s.cat.Shop.SellOrder {
		n := inv.Count(item)
		if n <= 0 {
			continue
		}
		earned, ok, _, _ := s.Sell(w, inv, item, n)
		if !ok {
			continue
		}
		out = append(out, Sale{Item: item, Count: n, Earned: earned})
	}
	return out
}

// Sellable lists held items the shop will buy, in catalog order.
func (s *Shop) Sellable(inv *inventory.Ledger) []inventory.Stack {
	var out []inventory.Stack
	for _, item := range s.cat.Shop.SellOrder {
		if n := inv.Count(item); n > 0 {
			out = append(out, inventory.Stack{Item: item, Count: n})
		}
	}
	return out
}
