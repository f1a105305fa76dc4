package economy

import (
	"fmt"
	"math"

	"harvestvalley.farm/internal/protocol"
)

// Wallet is the player's money. Only claims, plot sales and the shop move it.
type Wallet struct {
	balance int
}

func NewWallet(balance int) *Wallet {
	if balance < 0 {
		balance = 0
	}
	return &Wallet{balance: balance}
}

func (w *Wallet) Balance() int { return w.balance }

func (w *Wallet) CanAfford(n int) bool { return n >= 0 && w.balance >= n }

func (w *Wallet) CanCredit(n int) bool { return n >= 0 && w.balance <= math.MaxInt-n }

// Credit adds n. Negative amounts and overflowing credits are refused.
func (w *Wallet) Credit(n int) bool {
	if !w.CanCredit(n) {
		return false
	}
	w.balance += n
	return true
}

// Debit takes n or nothing.
func (w *Wallet) Debit(n int) (ok bool, code string, msg string) {
	if n < 0 {
		return false, protocol.ErrBadRequest, "negative amount"
	}
	if w.balance < n {
		return false, protocol.ErrNoFunds, fmt.Sprintf("Need $%d!", n)
	}
	w.balance -= n
	return true, "", ""
}

// Set is used by save restore.
func (w *Wallet) Set(n int) error {
	if n < 0 {
		return fmt.Errorf("negative balance %d", n)
	}
	w.balance = n
	return nil
}
