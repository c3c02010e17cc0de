package middleware

import (
	"context"

	"github.com/enpointe-io/bank_backend/internal/core/domain"
)

const (
	userIDKey   = contextKey("userID")
	userRoleKey = contextKey("userRole")
)

// GetUserIDFromCtx retrieves the authenticated user's ID from the
// request context. The boolean reports whether it was present.
func GetUserIDFromCtx(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// GetUserRoleFromCtx retrieves the authenticated user's role from the
// request context.
func GetUserRoleFromCtx(ctx context.Context) (domain.Role, bool) {
	role, ok := ctx.Value(userRoleKey).(domain.Role)
	return role, ok
}
