package dto

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/enpointe-io/bank_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RawAmount accepts a JSON number or string and preserves its text
// form. Binding never rejects the value; the ledger service owns
// numeric validation, so a malformed amount maps to ErrInvalidAmount
// instead of a generic binding failure.
type RawAmount string

func (a *RawAmount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = RawAmount(s)
		return nil
	}
	*a = RawAmount(data)
	return nil
}

// CreateTransactionRequest defines the payload for a deposit or
// withdrawal. Type and Amount are validated by the ledger service, not
// here, so invalid values get the ledger's error taxonomy instead of a
// generic binding error.
type CreateTransactionRequest struct {
	Type   string    `json:"type" binding:"required"`
	Amount RawAmount `json:"amount" binding:"required"`
}

// TransactionResponse is returned after a successful apply.
type TransactionResponse struct {
	Message       string          `json:"message"`
	TransactionID string          `json:"transactionID"`
	NewBalance    decimal.Decimal `json:"newBalance"`
}

// TransactionRecord is one row of a user's transaction history.
type TransactionRecord struct {
	TransactionID  string          `json:"transactionID"`
	AccountID      int64           `json:"accountID"`
	Kind           string          `json:"kind"`
	Amount         decimal.Decimal `json:"amount"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ListTransactionsResponse wraps a user's transaction history.
type ListTransactionsResponse struct {
	Transactions []TransactionRecord `json:"transactions"`
}

// ToTransactionResponse converts an applied domain.Transaction.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		Message:       fmt.Sprintf("%s successful", txn.Kind),
		TransactionID: txn.TransactionID,
		NewBalance:    txn.RunningBalance,
	}
}

// ToListTransactionsResponse converts a transaction history.
func ToListTransactionsResponse(txns []domain.Transaction) ListTransactionsResponse {
	records := make([]TransactionRecord, len(txns))
	for i, txn := range txns {
		records[i] = TransactionRecord{
			TransactionID:  txn.TransactionID,
			AccountID:      txn.AccountID,
			Kind:           string(txn.Kind),
			Amount:         txn.Amount,
			RunningBalance: txn.RunningBalance,
			CreatedAt:      txn.CreatedAt,
		}
	}
	return ListTransactionsResponse{Transactions: records}
}
