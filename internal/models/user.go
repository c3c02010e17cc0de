package models

import "time"

// User is the database representation of a registered user.
// The users table is owned by the identity layer; the ledger only
// joins it for owner display names.
type User struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
}
