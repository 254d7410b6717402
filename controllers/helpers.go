package controllers

import (
	"errors"
	"net/http"
	"servsphere-backend/services"
	"servsphere-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentPrincipal reads the authenticated actor the auth middleware
// put in the context.
func currentPrincipal(c *gin.Context) (services.Principal, bool) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return services.Principal{}, false
	}

	uid, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return services.Principal{}, false
	}

	return services.Principal{ID: uid, Role: c.GetString("role")}, true
}

// respondServiceError maps a domain error to its stable outward status.
// Storage faults get a generic message, no internal detail.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrSlotConflict),
		errors.Is(err, services.ErrDuplicateReview):
		utils.RespondWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrForbidden):
		utils.RespondWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrAlreadyCancelled),
		errors.Is(err, services.ErrInvalidArgument),
		errors.Is(err, services.ErrInvalidTransition):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
	}
}
