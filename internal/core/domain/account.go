package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType is the product type assigned to an account at creation.
// It is immutable afterwards.
type AccountType string

const (
	Savings  AccountType = "Savings"
	Checking AccountType = "Checking"
	Business AccountType = "Business"
)

// AccountTypes lists every valid account type, in the order used for
// random selection during provisioning.
var AccountTypes = []AccountType{Savings, Checking, Business}

// Account is the single financial record owned by one user.
// At most one account exists per owner; the balance is never negative
// and is only mutated inside the ledger's locked unit of work.
type Account struct {
	AccountID     int64
	OwnerUserID   int64
	AccountNumber string
	AccountType   AccountType
	Balance       decimal.Decimal
	CreatedAt     time.Time
}

// AccountWithOwner joins an account with its owner's display name for
// the admin listing.
type AccountWithOwner struct {
	Account
	OwnerName string
}
