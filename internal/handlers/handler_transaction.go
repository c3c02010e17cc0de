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

// transactionHandler handles deposits, withdrawals and history.
type transactionHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newTransactionHandler(ls portssvc.LedgerSvcFacade) *transactionHandler {
	return &transactionHandler{ledgerService: ls}
}

// registerTransactionRoutes registers the transaction routes on the
// authenticated group.
func registerTransactionRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newTransactionHandler(ledgerService)

	rg.POST("/customer/transaction", h.createTransaction)
	rg.GET("/customer/transactions", h.listTransactions)
}

// createTransaction godoc
// @Summary Apply a deposit or withdrawal
// @Description Atomically mutates the caller's account balance and records the transaction.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse "Invalid type, invalid amount, or insufficient balance"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Caller has no account yet"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /customer/transaction [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	txn, err := h.ledgerService.ApplyTransaction(c.Request.Context(), userID, req.Type, string(req.Amount))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidTransactionKind):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid transaction type"})
		case errors.Is(err, apperrors.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid amount"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
		case errors.Is(err, apperrors.ErrInsufficientBalance):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Insufficient balance"})
		default:
			logger.Error("Transaction failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Transaction failed"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List the caller's transactions
// @Description Returns the authenticated user's transaction history, newest first.
// @Tags transactions
// @Produce json
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /customer/transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	txns, err := h.ledgerService.ListTransactions(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Error fetching transactions"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(txns))
}
