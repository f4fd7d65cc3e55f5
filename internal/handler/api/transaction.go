package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	resdto "ev-carbon-market/internal/handler/dto/response"
	"ev-carbon-market/internal/usecase/commands"
	"ev-carbon-market/internal/usecase/queries"
	"ev-carbon-market/internal/usecase/shared"
)

type TransactionHandler struct {
	transactionCommands commands.TransactionCommands
	transactionQueries  queries.TransactionQueries
}

func NewTransactionHandler(
	transactionCommands commands.TransactionCommands,
	transactionQueries queries.TransactionQueries,
) *TransactionHandler {
	return &TransactionHandler{
		transactionCommands: transactionCommands,
		transactionQueries:  transactionQueries,
	}
}

// @Summary Purchase listing
// @Description Buy a fixed-price listing; charges the buyer and settles the sale
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Success 201 {object} resdto.PurchaseResponse
// @Failure 400 {object} map[string]string
// @Failure 402 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /credit-listings/{id}/purchase [post]
func (h *TransactionHandler) Purchase(c *gin.Context) {
	userID, role, ok := requireIdentity(c)
	if !ok {
		return
	}
	listingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.transactionCommands.InitiatePurchase(c.Request.Context(), listingID, userID, role)
	if err != nil {
		switch {
		case errors.Is(err, shared.ErrPaymentDeclined):
			body := gin.H{"error": "Payment declined"}
			if result != nil {
				body["transactionId"] = result.TransactionID
			}
			c.JSON(http.StatusPaymentRequired, body)
		case errors.Is(err, commands.ErrListingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		case errors.Is(err, commands.ErrUnauthorizedOperation):
			c.JSON(http.StatusForbidden, gin.H{"error": "Role may not purchase listings"})
		case errors.Is(err, commands.ErrBuyerIsSeller):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot purchase your own listing"})
		case errors.Is(err, commands.ErrListingNotFixedPrice):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Listing is not fixed-price"})
		case errors.Is(err, commands.ErrListingNotActive),
			errors.Is(err, commands.ErrListingUnavailable):
			c.JSON(http.StatusConflict, gin.H{"error": "Listing is no longer available"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromPurchaseResult(result))
}

// @Summary Get transaction
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 200 {object} resdto.TransactionResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	userID, role, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	view, err := h.transactionQueries.GetByID(c.Request.Context(), userID, role, id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrTransactionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		case errors.Is(err, queries.ErrTransactionForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Transaction not visible"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromTransactionView(view))
}

// @Summary List own transactions
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.TransactionResponse
// @Router /transactions [get]
func (h *TransactionHandler) ListMyTransactions(c *gin.Context) {
	userID, _, ok := requireIdentity(c)
	if !ok {
		return
	}
	page, err := parsePageRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters"})
		return
	}

	views, err := h.transactionQueries.ListByUser(c.Request.Context(), userID, page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromTransactionViews(views))
}

// @Summary Cancel transaction
// @Description Cancel a pending transaction and release the listing
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /transactions/{id}/cancel [post]
func (h *TransactionHandler) CancelTransaction(c *gin.Context) {
	userID, role, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.transactionCommands.CancelTransaction(c.Request.Context(), id, userID, role); err != nil {
		switch {
		case errors.Is(err, commands.ErrTransactionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		case errors.Is(err, commands.ErrTransactionNotParty):
			c.JSON(http.StatusForbidden, gin.H{"error": "Not a party to this transaction"})
		case errors.Is(err, commands.ErrTransactionNotCancelled):
			c.JSON(http.StatusConflict, gin.H{"error": "Transaction can no longer be cancelled"})
		case isStateTransitionErr(err):
			c.JSON(http.StatusConflict, gin.H{"error": "Invalid transaction state"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
