package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/enpointe-io/bank_backend/internal/core/domain"
)

// GenerateAccountNumber returns a random 9-digit account number
// (100000000..999999999) from a CSPRNG.
func GenerateAccountNumber() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000000))
	if err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return fmt.Sprintf("%09d", n.Int64()+100000000), nil
}

// RandomAccountType picks an account type uniformly at random.
func RandomAccountType() (domain.AccountType, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(domain.AccountTypes))))
	if err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return domain.AccountTypes[n.Int64()], nil
}
