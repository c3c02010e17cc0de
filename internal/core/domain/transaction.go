package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind distinguishes deposits from withdrawals.
type TransactionKind string

const (
	Deposit  TransactionKind = "Deposit"
	Withdraw TransactionKind = "Withdraw"
)

// IsValid reports whether the kind is one of the two recognized values.
func (k TransactionKind) IsValid() bool {
	return k == Deposit || k == Withdraw
}

// Transaction is one applied balance mutation, recorded for audit.
// Amount is always positive; the direction comes from Kind.
type Transaction struct {
	TransactionID  string
	AccountID      int64
	UserID         int64
	Kind           TransactionKind
	Amount         decimal.Decimal
	RunningBalance decimal.Decimal
	CreatedAt      time.Time
}

// SignedAmount returns the delta this transaction applies to the
// account balance: positive for deposits, negative for withdrawals.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Kind == Withdraw {
		return t.Amount.Neg()
	}
	return t.Amount
}
