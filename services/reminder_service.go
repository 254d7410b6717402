// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"servsphere-backend/models"
	"servsphere-backend/utils"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// ReminderService texts customers the day before a confirmed booking.
type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB) *ReminderService {
	// Initialize Twilio client
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 8 AM
	c.AddFunc("0 8 * * *", s.SendUpcomingBookingReminders)

	c.Start()
	log.Println("Booking reminder scheduler started")
}

// SendUpcomingBookingReminders notifies every customer with a confirmed
// booking tomorrow that was not already reminded.
func (s *ReminderService) SendUpcomingBookingReminders() {
	log.Println("Starting booking reminder processing...")

	bookings, err := s.upcomingConfirmedBookings(time.Now())
	if err != nil {
		log.Printf("Failed to fetch upcoming bookings: %v", err)
		return
	}

	for _, booking := range bookings {
		var alreadySent int64
		s.db.Model(&models.ReminderLog{}).
			Where("booking_id = ? AND status = ?", booking.ID, "sent").
			Count(&alreadySent)
		if alreadySent > 0 {
			continue
		}
		s.sendReminder(booking)
	}

	log.Println("Booking reminder processing completed")
}

// upcomingConfirmedBookings loads every confirmed booking for the day
// after now. Booking dates are stored at UTC midnight, so the window is
// anchored to the UTC day regardless of the host zone.
func (s *ReminderService) upcomingConfirmedBookings(now time.Time) ([]models.Booking, error) {
	tomorrow := utils.BeginningOfDay(now.UTC().AddDate(0, 0, 1))

	var bookings []models.Booking
	err := s.db.Where("date = ? AND status = ?", tomorrow, models.BookingConfirmed).
		Preload("Customer").
		Preload("Service").
		Find(&bookings).Error
	return bookings, err
}

func (s *ReminderService) sendReminder(booking models.Booking) {
	if booking.Customer == nil || booking.Customer.Phone == "" {
		return
	}

	serviceTitle := "your booked service"
	if booking.Service != nil {
		serviceTitle = booking.Service.Title
	}
	message := fmt.Sprintf("Hi %s, a reminder that %s is scheduled tomorrow at %s. See you then!",
		booking.Customer.Name, serviceTitle, booking.Time)

	// Determine channel (WhatsApp if available, else SMS)
	channel := "sms"
	var to string

	// Use WhatsApp if phone is in E.164 format and starts with '+'
	if strings.HasPrefix(booking.Customer.Phone, "+") {
		to = "whatsapp:" + booking.Customer.Phone
		channel = "whatsapp"
	} else {
		to = booking.Customer.Phone
	}

	// Send message via Twilio
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)

	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send reminder to %s: %v", booking.Customer.Phone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Reminder sent to %s, SID: %s", booking.Customer.Phone, *resp.Sid)
	} else {
		log.Printf("Reminder sent to %s, but no SID returned", booking.Customer.Phone)
	}

	// Log the reminder
	reminderLog := models.ReminderLog{
		BookingID:    booking.ID,
		CustomerID:   booking.CustomerID,
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		Channel:      channel,
		SentAt:       time.Now(),
	}

	if err := s.db.Create(&reminderLog).Error; err != nil {
		log.Printf("Failed to log reminder for booking %s: %v", booking.ID, err)
	}
}
