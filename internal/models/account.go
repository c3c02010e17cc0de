package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is the database representation of an account row.
// owner_user_id carries a UNIQUE constraint; balance is NUMERIC(15,2)
// with a CHECK (balance >= 0).
type Account struct {
	ID            int64           `db:"id"`
	OwnerUserID   int64           `db:"owner_user_id"`
	AccountNumber string          `db:"account_number"`
	AccountType   string          `db:"account_type"`
	Balance       decimal.Decimal `db:"balance"`
	CreatedAt     time.Time       `db:"created_at"`
}
