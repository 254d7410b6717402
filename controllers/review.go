package controllers

import (
	"net/http"
	"servsphere-backend/config"
	"servsphere-backend/services"
	"servsphere-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AddReviewInput struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment" binding:"required"`
}

// AddReview posts a review for a service and refreshes its aggregate
// rating
func AddReview(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}

	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var input AddReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	review, err := services.NewReviewService(config.DB).Add(principal, serviceID, input.Rating, input.Comment)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

// GetServiceReviews lists all reviews for a service (public)
func GetServiceReviews(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	reviews, err := services.NewReviewService(config.DB).ListForService(serviceID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}
