package services

import (
	"servsphere-backend/config"
	"servsphere-backend/models"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func mustDate(t *testing.T, date string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("bad date %q: %v", date, err)
	}
	return d
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect test database: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name, role string) models.User {
	t.Helper()
	user := models.User{
		Name:     name,
		Email:    name + "@example.com",
		Phone:    "+15550001234",
		Password: "password123",
		Role:     role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", name, err)
	}
	return user
}

func createTestService(t *testing.T, db *gorm.DB, provider models.User) models.Service {
	t.Helper()
	service := models.Service{
		Title:       "Deep home cleaning",
		Category:    "home-cleaning",
		PinCode:     400001,
		Description: "Full apartment cleaning",
		Price:       49.99,
		Experience:  5,
		Available:   true,
		ProviderID:  provider.ID,
	}
	if err := db.Create(&service).Error; err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	return service
}

func principalOf(user models.User) Principal {
	return Principal{ID: user.ID, Role: user.Role}
}

func createTestBooking(t *testing.T, db *gorm.DB, svc *BookingService, customer models.User, serviceID uuid.UUID, date, slot string) *models.Booking {
	t.Helper()
	booking, err := svc.Create(principalOf(customer), CreateBookingInput{
		ServiceID:     serviceID,
		Date:          mustDate(t, date),
		Time:          slot,
		Address:       "12 Hill Road",
		City:          "Mumbai",
		PinCode:       "400001",
		PaymentMethod: models.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("failed to create booking: %v", err)
	}
	return booking
}
