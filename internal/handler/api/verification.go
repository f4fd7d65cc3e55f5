package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ev-carbon-market/internal/domain/journey"
	reqdto "ev-carbon-market/internal/handler/dto/request"
	resdto "ev-carbon-market/internal/handler/dto/response"
	"ev-carbon-market/internal/usecase/commands"
)

type VerificationHandler struct {
	verificationCommands commands.VerificationCommands
}

func NewVerificationHandler(verificationCommands commands.VerificationCommands) *VerificationHandler {
	return &VerificationHandler{verificationCommands: verificationCommands}
}

// @Summary Approve journey
// @Description Verify a journey without inspection; promotes the credit and pays the owner
// @Tags verification
// @Produce json
// @Security BearerAuth
// @Param id path string true "Journey ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /journeys/{id}/approve [post]
func (h *VerificationHandler) ApproveJourney(c *gin.Context) {
	userID, role, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.verificationCommands.ApproveJourney(c.Request.Context(), id, userID, role); err != nil {
		h.respondVerificationError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Reject journey
// @Tags verification
// @Produce json
// @Security BearerAuth
// @Param id path string true "Journey ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /journeys/{id}/reject [post]
func (h *VerificationHandler) RejectJourney(c *gin.Context) {
	userID, role, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.verificationCommands.RejectJourney(c.Request.Context(), id, userID, role); err != nil {
		h.respondVerificationError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Request physical inspection
// @Description Escalate a pending journey to an in-person check
// @Tags verification
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Journey ID"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /journeys/{id}/request-inspection [post]
func (h *VerificationHandler) RequestInspection(c *gin.Context) {
	userID, role, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	appointmentID, err := h.verificationCommands.RequestInspection(c.Request.Context(), id, userID, role)
	if err != nil {
		h.respondVerificationError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: appointmentID})
}

// @Summary Schedule inspection appointment
// @Tags verification
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Param request body reqdto.ScheduleAppointmentRequest true "Station and time"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /inspections/{id}/schedule [post]
func (h *VerificationHandler) ScheduleAppointment(c *gin.Context) {
	userID, role, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req reqdto.ScheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	err := h.verificationCommands.ScheduleAppointment(c.Request.Context(), id, userID, role, req.StationID, req.AppointmentTime)
	if err != nil {
		switch {
		case errors.Is(err, journey.ErrAppointmentInPast):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Appointment time must be in the future"})
		case errors.Is(err, commands.ErrStationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Verification station not found"})
		case errors.Is(err, commands.ErrStationInactive):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Verification station is not active"})
		default:
			h.respondVerificationError(c, err)
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Complete inspection
// @Description Record the CVA findings and settle the journey
// @Tags verification
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Param request body reqdto.CompleteInspectionRequest true "Inspection outcome"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /inspections/{id}/complete [post]
func (h *VerificationHandler) CompleteInspection(c *gin.Context) {
	userID, role, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req reqdto.CompleteInspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	err := h.verificationCommands.CompleteInspection(c.Request.Context(), id, userID, role, req.Approved, req.Notes)
	if err != nil {
		h.respondVerificationError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *VerificationHandler) respondVerificationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrJourneyNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Journey not found"})
	case errors.Is(err, commands.ErrCreditNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Credit not found"})
	case errors.Is(err, commands.ErrAppointmentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
	case errors.Is(err, commands.ErrUnauthorizedOperation),
		errors.Is(err, commands.ErrNotAppointmentOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "Operation not permitted"})
	case errors.Is(err, commands.ErrJourneyNotReviewable),
		isStateTransitionErr(err):
		c.JSON(http.StatusConflict, gin.H{"error": "Journey is not in a reviewable state"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
