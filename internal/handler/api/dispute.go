package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ev-carbon-market/internal/domain/trade"
	reqdto "ev-carbon-market/internal/handler/dto/request"
	resdto "ev-carbon-market/internal/handler/dto/response"
	"ev-carbon-market/internal/usecase/commands"
	"ev-carbon-market/internal/usecase/queries"
)

type DisputeHandler struct {
	disputeCommands commands.DisputeCommands
	disputeQueries  queries.DisputeQueries
}

func NewDisputeHandler(disputeCommands commands.DisputeCommands, disputeQueries queries.DisputeQueries) *DisputeHandler {
	return &DisputeHandler{
		disputeCommands: disputeCommands,
		disputeQueries:  disputeQueries,
	}
}

// @Summary Create dispute
// @Description Freeze a pending or completed transaction pending review
// @Tags disputes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateDisputeRequest true "Dispute request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /disputes [post]
func (h *DisputeHandler) CreateDispute(c *gin.Context) {
	userID, role, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req reqdto.CreateDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	disputeID, err := h.disputeCommands.CreateDispute(c.Request.Context(), req.TransactionID, userID, role, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrTransactionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		case errors.Is(err, commands.ErrUnauthorizedOperation),
			errors.Is(err, commands.ErrTransactionNotParty):
			c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to dispute this transaction"})
		case errors.Is(err, commands.ErrDisputeAlreadyOpen):
			c.JSON(http.StatusConflict, gin.H{"error": "Transaction already has an open dispute"})
		case errors.Is(err, trade.ErrEmptyDisputeReason):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Dispute reason cannot be empty"})
		case errors.Is(err, commands.ErrTransactionNotDisputable),
			isStateTransitionErr(err):
			c.JSON(http.StatusConflict, gin.H{"error": "Transaction cannot be disputed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: disputeID})
}

// @Summary Get dispute
// @Tags disputes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dispute ID"
// @Success 200 {object} resdto.DisputeResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /disputes/{id} [get]
func (h *DisputeHandler) GetDispute(c *gin.Context) {
	userID, role, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	view, err := h.disputeQueries.GetByID(c.Request.Context(), userID, role, id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrDisputeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Dispute not found"})
		case errors.Is(err, queries.ErrDisputeForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Dispute not visible"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromDisputeView(view))
}

// @Summary Resolve dispute
// @Description Record the resolution; wording decides completion or refund
// @Tags disputes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dispute ID"
// @Param request body reqdto.ResolveDisputeRequest true "Resolution text"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /disputes/{id}/resolve [post]
func (h *DisputeHandler) ResolveDispute(c *gin.Context) {
	userID, role, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req reqdto.ResolveDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.disputeCommands.ResolveDispute(c.Request.Context(), id, userID, role, req.Resolution); err != nil {
		switch {
		case errors.Is(err, trade.ErrEmptyResolution):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Resolution cannot be empty"})
		default:
			h.respondDisputeMutationError(c, err)
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Close dispute
// @Tags disputes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dispute ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /disputes/{id}/close [post]
func (h *DisputeHandler) CloseDispute(c *gin.Context) {
	userID, role, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.disputeCommands.CloseDispute(c.Request.Context(), id, userID, role); err != nil {
		h.respondDisputeMutationError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Reopen dispute
// @Tags disputes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dispute ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /disputes/{id}/reopen [post]
func (h *DisputeHandler) ReopenDispute(c *gin.Context) {
	userID, role, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.disputeCommands.ReopenDispute(c.Request.Context(), id, userID, role); err != nil {
		h.respondDisputeMutationError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List disputes for a transaction
// @Tags disputes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 200 {array} resdto.DisputeResponse
// @Router /transactions/{id}/disputes [get]
func (h *DisputeHandler) ListByTransaction(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	views, err := h.disputeQueries.ListByTransaction(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromDisputeViews(views))
}

func (h *DisputeHandler) respondDisputeMutationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrDisputeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Dispute not found"})
	case errors.Is(err, commands.ErrUnauthorizedOperation):
		c.JSON(http.StatusForbidden, gin.H{"error": "Operation not permitted"})
	case isStateTransitionErr(err):
		c.JSON(http.StatusConflict, gin.H{"error": "Invalid dispute state"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
