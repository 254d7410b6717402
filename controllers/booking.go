// controllers/booking.go
package controllers

import (
	"net/http"
	"servsphere-backend/config"
	"servsphere-backend/services"
	"servsphere-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CreateBookingInput struct {
	ServiceID      string `json:"serviceId" binding:"required"`
	Date           string `json:"date" binding:"required"` // "2006-01-02"
	Time           string `json:"time" binding:"required"` // "15:04"
	Address        string `json:"address" binding:"required"`
	City           string `json:"city" binding:"required"`
	PinCode        string `json:"pinCode"`
	AdditionalInfo string `json:"additionalInfo"`
	PaymentMethod  string `json:"paymentMethod"`
}

type UpdateBookingStatusInput struct {
	Status string `json:"status" binding:"required"`
}

type UpdatePaymentStatusInput struct {
	PaymentStatus string `json:"paymentStatus" binding:"required"`
}

// CreateBooking books a time slot with a service's provider
func CreateBooking(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}

	var input CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	serviceID, err := uuid.Parse(input.ServiceID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}
	date, err := utils.ParseDate(input.Date)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}
	if !utils.ValidateTimeSlot(input.Time) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid time slot, expected HH:MM")
		return
	}

	booking, err := services.NewBookingService(config.DB).Create(principal, services.CreateBookingInput{
		ServiceID:      serviceID,
		Date:           date,
		Time:           input.Time,
		Address:        input.Address,
		City:           input.City,
		PinCode:        input.PinCode,
		AdditionalInfo: input.AdditionalInfo,
		PaymentMethod:  input.PaymentMethod,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking created successfully",
		"booking": booking,
	})
}

// GetBookingsByCustomer lists a customer's own bookings
func GetBookingsByCustomer(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}

	customerID, err := uuid.Parse(c.Param("customerId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	bookings, err := services.NewBookingService(config.DB).ListForCustomer(principal, customerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "bookings": bookings})
}

// GetBookingsByProvider lists bookings assigned to a provider
func GetBookingsByProvider(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}

	providerID, err := uuid.Parse(c.Param("providerId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid provider ID format")
		return
	}

	bookings, err := services.NewBookingService(config.DB).ListForProvider(principal, providerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "bookings": bookings})
}

// UpdateBookingStatus moves a booking along its lifecycle
func UpdateBookingStatus(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	var input UpdateBookingStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	booking, err := services.NewBookingService(config.DB).UpdateStatus(principal, bookingID, input.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking updated successfully",
		"booking": booking,
	})
}

// CancelBooking cancels a booking (admin, the customer or the provider)
func CancelBooking(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	booking, err := services.NewBookingService(config.DB).Cancel(principal, bookingID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking cancelled successfully",
		"booking": booking,
	})
}

// UpdatePaymentStatus sets a booking's payment flag
func UpdatePaymentStatus(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	var input UpdatePaymentStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	booking, err := services.NewBookingService(config.DB).UpdatePaymentStatus(principal, bookingID, input.PaymentStatus)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking marked as " + input.PaymentStatus,
		"booking": booking,
	})
}
