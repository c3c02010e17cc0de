package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/enpointe-io/bank_backend/internal/apperrors"
	portssvc "github.com/enpointe-io/bank_backend/internal/core/ports/services"
	"github.com/enpointe-io/bank_backend/internal/dto"
	"github.com/enpointe-io/bank_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles account provisioning and the admin listing.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{accountService: as}
}

// registerAccountRoutes registers the account routes on the
// authenticated group.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	rg.GET("/customer/account", h.getCustomerAccount)
	rg.GET("/accounts", h.listAccounts)
}

// getCustomerAccount godoc
// @Summary Get the caller's account
// @Description Returns the authenticated user's account, creating it on first access.
// @Tags accounts
// @Produce json
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /customer/account [get]
func (h *accountHandler) getCustomerAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	account, err := h.accountService.GetOrCreateAccount(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to get or create account", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List all accounts (admin)
// @Description Returns every account with its owner's name, newest first. Admin only.
// @Tags accounts
// @Produce json
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Caller is not an admin"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	role, ok := middleware.GetUserRoleFromCtx(c.Request.Context())
	if !ok {
		logger.Error("User role not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	accounts, err := h.accountService.ListAllAccounts(c.Request.Context(), role)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Access denied: Admins only"})
			return
		}
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Error fetching account details"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListAccountsResponse(accounts))
}
