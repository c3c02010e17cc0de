package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the database representation of one applied balance
// mutation. Rows are append-only.
type Transaction struct {
	TransactionID  string          `db:"transaction_id"`
	AccountID      int64           `db:"account_id"`
	UserID         int64           `db:"user_id"`
	Kind           string          `db:"kind"`
	Amount         decimal.Decimal `db:"amount"`
	RunningBalance decimal.Decimal `db:"running_balance"`
	CreatedAt      time.Time       `db:"created_at"`
}
