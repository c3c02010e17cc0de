package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller lacks the role required for the operation.
var ErrForbidden = errors.New("access denied")

// ErrInvalidTransactionKind indicates a transaction type outside Deposit/Withdraw.
var ErrInvalidTransactionKind = errors.New("invalid transaction type")

// ErrInvalidAmount indicates a transaction amount that is not a finite positive number.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrInsufficientBalance indicates a withdrawal larger than the account balance.
var ErrInsufficientBalance = errors.New("insufficient balance")
