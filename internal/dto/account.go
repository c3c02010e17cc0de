package dto

import (
	"time"

	"github.com/enpointe-io/bank_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     int64              `json:"accountID"`
	OwnerUserID   int64              `json:"ownerUserID"`
	AccountNumber string             `json:"accountNumber"`
	AccountType   domain.AccountType `json:"accountType"`
	Balance       decimal.Decimal    `json:"balance"`
	CreatedAt     time.Time          `json:"createdAt"`
}

// AccountWithOwnerResponse adds the owner's display name for the admin
// listing.
type AccountWithOwnerResponse struct {
	AccountResponse
	OwnerName string `json:"ownerName"`
}

// ListAccountsResponse wraps the admin listing.
type ListAccountsResponse struct {
	Accounts []AccountWithOwnerResponse `json:"accounts"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		OwnerUserID:   acc.OwnerUserID,
		AccountNumber: acc.AccountNumber,
		AccountType:   acc.AccountType,
		Balance:       acc.Balance,
		CreatedAt:     acc.CreatedAt,
	}
}

// ToListAccountsResponse converts the admin listing rows.
func ToListAccountsResponse(accounts []domain.AccountWithOwner) ListAccountsResponse {
	res := make([]AccountWithOwnerResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = AccountWithOwnerResponse{
			AccountResponse: ToAccountResponse(&acc.Account),
			OwnerName:       acc.OwnerName,
		}
	}
	return ListAccountsResponse{Accounts: res}
}
