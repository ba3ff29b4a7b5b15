package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoirulmuhlisin/unitproduksi/internal/services"
	"github.com/khoirulmuhlisin/unitproduksi/pkg/utils"
)

// TransactionHandler holds the transaction lifecycle service.
type TransactionHandler struct {
	txService services.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(ts services.TransactionService) *TransactionHandler {
	return &TransactionHandler{txService: ts}
}

// CreateTransaction commits a new sale and returns the receipt payload.
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req services.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	tx, err := h.txService.CreateTransaction(c.Request.Context(), req)
	if err != nil {
		respondTransactionError(c, err, "CreateTransaction")
		return
	}
	c.JSON(http.StatusCreated, tx)
}

// GetTransactions lists the full transaction history.
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	transactions, err := h.txService.GetTransactions(c.Request.Context())
	if err != nil {
		respondStorageOrInternal(c, err, "GetTransactions")
		return
	}
	c.JSON(http.StatusOK, transactions)
}

// GetTransactionByID retrieves one transaction for receipt display.
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	tx, err := h.txService.GetTransactionByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondTransactionError(c, err, "GetTransactionByID")
		return
	}
	c.JSON(http.StatusOK, tx)
}

// UpdateTransaction replaces a transaction's items and payment in place.
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	var req services.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	tx, err := h.txService.UpdateTransaction(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondTransactionError(c, err, "UpdateTransaction")
		return
	}
	c.JSON(http.StatusOK, tx)
}

// DeleteTransaction removes a transaction, restoring the stock it used.
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	if err := h.txService.DeleteTransaction(c.Request.Context(), c.Param("id")); err != nil {
		respondTransactionError(c, err, "DeleteTransaction")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}

// respondTransactionError gives each lifecycle failure its own status
// and code per the error taxonomy.
func respondTransactionError(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, services.ErrTransactionNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Transaction not found.", err.Error()))
	case errors.Is(err, services.ErrProductNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeNotFound, "A requested product does not exist.", err.Error()))
	case errors.Is(err, services.ErrEmptyCart):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeEmptyCart, "Cart is empty.", err.Error()))
	case errors.Is(err, services.ErrInvalidQuantity):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Item quantities must be positive.", err.Error()))
	case errors.Is(err, services.ErrInsufficientPayment):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeInsufficientPayment, "Cash received is less than the total.", err.Error()))
	case errors.Is(err, services.ErrInsufficientStock):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeInsufficientStock, "Insufficient stock for one or more items.", err.Error()))
	default:
		respondStorageOrInternal(c, err, op)
	}
}
