package services

import (
	"servsphere-backend/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUpcomingConfirmedBookings(t *testing.T) {
	db := setupTestDB(t)
	provider := createTestUser(t, db, "provider", models.RoleProvider)
	customer := createTestUser(t, db, "customer", models.RoleCustomer)
	service := createTestService(t, db, provider)
	bookingSvc := NewBookingService(db)

	confirmed := createTestBooking(t, db, bookingSvc, customer, service.ID, "2024-06-01", "10:00")
	_, err := bookingSvc.UpdateStatus(principalOf(provider), confirmed.ID, models.BookingConfirmed)
	assert.NoError(t, err)

	// Still pending, stays out of the batch
	createTestBooking(t, db, bookingSvc, customer, service.ID, "2024-06-01", "11:00")

	// Dates persist at UTC midnight; the window must match them even
	// when the process clock runs in a zone ahead of UTC, where local
	// "tomorrow" has already started.
	ist := time.FixedZone("IST", 19800)
	now := time.Date(2024, 5, 31, 23, 30, 0, 0, ist)

	svc := NewReminderService(db)
	bookings, err := svc.upcomingConfirmedBookings(now)
	assert.NoError(t, err)
	assert.Len(t, bookings, 1)
	assert.Equal(t, confirmed.ID, bookings[0].ID)
	assert.NotNil(t, bookings[0].Customer)
	assert.NotNil(t, bookings[0].Service)

	// Two days out is not in tomorrow's window
	utc := time.Date(2024, 5, 30, 12, 0, 0, 0, time.UTC)
	bookings, err = svc.upcomingConfirmedBookings(utc)
	assert.NoError(t, err)
	assert.Empty(t, bookings)
}
