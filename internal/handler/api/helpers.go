package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ev-carbon-market/internal/domain/credit"
	"ev-carbon-market/internal/domain/journey"
	"ev-carbon-market/internal/domain/listing"
	"ev-carbon-market/internal/domain/trade"
	"ev-carbon-market/internal/domain/user"
	"ev-carbon-market/internal/handler/middleware"
)

func requireIdentity(c *gin.Context) (uuid.UUID, user.Role, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return uuid.Nil, "", false
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return uuid.Nil, "", false
	}
	return userID, role, true
}

// isStateTransitionErr catches any lifecycle violation regardless of which
// aggregate rejected it; they all map to 409.
func isStateTransitionErr(err error) bool {
	return errors.Is(err, credit.ErrInvalidStateTransition) ||
		errors.Is(err, listing.ErrInvalidStateTransition) ||
		errors.Is(err, trade.ErrInvalidStateTransition) ||
		errors.Is(err, journey.ErrInvalidStateTransition)
}
