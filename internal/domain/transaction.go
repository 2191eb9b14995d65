package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ActionKind is the closed set of protocol events we score on.
type ActionKind string

const (
	ActionDeposit         ActionKind = "deposit"
	ActionBorrow          ActionKind = "borrow"
	ActionRepay           ActionKind = "repay"
	ActionRedeem          ActionKind = "redeemunderlying"
	ActionLiquidationCall ActionKind = "liquidationcall"
)

// ParseActionKind maps a raw action string onto the closed set. The bool
// reports whether the action is recognized.
func ParseActionKind(s string) (ActionKind, bool) {
	switch ActionKind(s) {
	case ActionDeposit, ActionBorrow, ActionRepay, ActionRedeem, ActionLiquidationCall:
		return ActionKind(s), true
	}
	return "", false
}

// Transaction is one validated on-chain event. Immutable once loaded.
type Transaction struct {
	Wallet    string
	Action    ActionKind
	Asset     string
	Amount    decimal.Decimal
	AmountUSD decimal.Decimal
	Timestamp time.Time
}
