package controllers

import (
	"net/http"
	"servsphere-backend/config"
	"servsphere-backend/models"
	"servsphere-backend/utils"

	"github.com/gin-gonic/gin"
)

type ProviderOverview struct {
	TotalBookings    int64            `json:"totalBookings"`
	BookingsByStatus map[string]int64 `json:"bookingsByStatus"`
	PaidEarnings     float64          `json:"paidEarnings"`
	RecentBookings   []models.Booking `json:"recentBookings"`
}

// GetProviderDashboard summarizes the calling provider's bookings:
// counts per lifecycle status, earnings from paid bookings and the
// most recent entries.
func GetProviderDashboard(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}

	overview := ProviderOverview{
		BookingsByStatus: map[string]int64{
			models.BookingPending:   0,
			models.BookingConfirmed: 0,
			models.BookingCompleted: 0,
			models.BookingCancelled: 0,
		},
	}

	// Counts per status
	var rows []struct {
		Status string
		Count  int64
	}
	err := config.DB.Model(&models.Booking{}).
		Select("status, COUNT(*) AS count").
		Where("provider_id = ?", principal.ID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	for _, row := range rows {
		overview.BookingsByStatus[row.Status] = row.Count
		overview.TotalBookings += row.Count
	}

	// Earnings: sum of service prices over paid bookings
	err = config.DB.Model(&models.Booking{}).
		Joins("JOIN services ON services.id = bookings.service_id").
		Where("bookings.provider_id = ? AND bookings.payment_status = ?", principal.ID, models.PaymentPaid).
		Select("COALESCE(SUM(services.price), 0)").
		Scan(&overview.PaidEarnings).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	// Last 5 bookings for display
	err = config.DB.Where("provider_id = ?", principal.ID).
		Preload("Service").
		Preload("Customer").
		Order("created_at DESC").
		Limit(5).
		Find(&overview.RecentBookings).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, overview)
}
