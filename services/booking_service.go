// services/booking_service.go
package services

import (
	"errors"
	"fmt"
	"servsphere-backend/models"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingService owns booking creation, the status lifecycle,
// cancellation and payment-status updates.
type BookingService struct {
	db *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{db: db}
}

type CreateBookingInput struct {
	ServiceID      uuid.UUID
	Date           time.Time
	Time           string
	Address        string
	City           string
	PinCode        string
	AdditionalInfo string
	PaymentMethod  string
}

// statusTransitions enumerates the legal edges for a provider-driven
// status update. Cancellation is not an edge here: it goes through
// Cancel, which also handles refund bookkeeping.
var statusTransitions = map[string][]string{
	models.BookingPending:   {models.BookingConfirmed},
	models.BookingConfirmed: {models.BookingCompleted},
}

// Create books a slot for the customer. The conflict check and the
// insert run in one transaction; the partial unique slot index catches
// whatever a concurrent writer slips past the check.
func (s *BookingService) Create(customer Principal, input CreateBookingInput) (*models.Booking, error) {
	if err := Authorize(OpCreateBooking, customer, nil, uuid.Nil); err != nil {
		return nil, err
	}
	if input.PaymentMethod == "" {
		input.PaymentMethod = models.PaymentMethodCash
	}
	if !models.ValidPaymentMethod(input.PaymentMethod) {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrInvalidArgument, input.PaymentMethod)
	}
	if input.Address == "" || input.City == "" {
		return nil, fmt.Errorf("%w: address and city are required", ErrInvalidArgument)
	}

	var service models.Service
	if err := s.db.First(&service, "id = ?", input.ServiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	booking := models.Booking{
		CustomerID:     customer.ID,
		ServiceID:      service.ID,
		ProviderID:     service.ProviderID,
		Date:           input.Date,
		Time:           input.Time,
		Address:        input.Address,
		City:           input.City,
		PinCode:        input.PinCode,
		AdditionalInfo: input.AdditionalInfo,
		Status:         models.BookingPending,
		PaymentStatus:  models.PaymentUnpaid,
		PaymentMethod:  input.PaymentMethod,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Booking
		err := tx.Where("provider_id = ? AND date = ? AND time = ? AND status IN ?",
			booking.ProviderID, booking.Date, booking.Time,
			[]string{models.BookingPending, models.BookingConfirmed}).
			Take(&existing).Error
		if err == nil {
			return ErrSlotConflict
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return tx.Create(&booking).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlotConflict
		}
		return nil, err
	}

	return &booking, nil
}

// UpdateStatus moves a booking along the status state machine. Only the
// assigned provider may call it.
func (s *BookingService) UpdateStatus(caller Principal, bookingID uuid.UUID, newStatus string) (*models.Booking, error) {
	if !models.ValidBookingStatus(newStatus) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, newStatus)
	}

	booking, err := s.byID(bookingID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(OpUpdateBookingStatus, caller, booking, uuid.Nil); err != nil {
		return nil, err
	}

	if !transitionAllowed(booking.Status, newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
	}

	booking.Status = newStatus
	if err := s.db.Save(booking).Error; err != nil {
		return nil, err
	}
	return booking, nil
}

// Cancel cancels a booking on behalf of an admin, the booking's
// customer or its provider. A paid booking is flagged refunded; no
// gateway call is made, this is bookkeeping only.
func (s *BookingService) Cancel(caller Principal, bookingID uuid.UUID) (*models.Booking, error) {
	booking, err := s.byID(bookingID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(OpCancelBooking, caller, booking, uuid.Nil); err != nil {
		return nil, err
	}

	if booking.Status == models.BookingCancelled {
		return nil, ErrAlreadyCancelled
	}

	booking.Status = models.BookingCancelled
	if booking.PaymentStatus == models.PaymentPaid {
		booking.PaymentStatus = models.PaymentRefunded
	}

	if err := s.db.Save(booking).Error; err != nil {
		return nil, err
	}
	return booking, nil
}

// UpdatePaymentStatus overwrites the payment flag. Any of the three
// values may replace any other; only the value set is validated.
func (s *BookingService) UpdatePaymentStatus(caller Principal, bookingID uuid.UUID, paymentStatus string) (*models.Booking, error) {
	if !models.ValidPaymentStatus(paymentStatus) {
		return nil, fmt.Errorf("%w: unknown payment status %q", ErrInvalidArgument, paymentStatus)
	}

	booking, err := s.byID(bookingID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(OpUpdatePaymentStatus, caller, booking, uuid.Nil); err != nil {
		return nil, err
	}

	booking.PaymentStatus = paymentStatus
	if err := s.db.Save(booking).Error; err != nil {
		return nil, err
	}
	return booking, nil
}

// ListForCustomer returns a customer's bookings, newest first, with the
// service and provider attached for display.
func (s *BookingService) ListForCustomer(caller Principal, customerID uuid.UUID) ([]models.Booking, error) {
	if err := Authorize(OpListCustomerBookings, caller, nil, customerID); err != nil {
		return nil, err
	}

	var bookings []models.Booking
	err := s.db.Where("customer_id = ?", customerID).
		Preload("Service").
		Preload("Provider").
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

// ListForProvider returns a provider's bookings, newest first, with the
// service and customer attached.
func (s *BookingService) ListForProvider(caller Principal, providerID uuid.UUID) ([]models.Booking, error) {
	if err := Authorize(OpListProviderBookings, caller, nil, providerID); err != nil {
		return nil, err
	}

	var bookings []models.Booking
	err := s.db.Where("provider_id = ?", providerID).
		Preload("Service").
		Preload("Customer").
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (s *BookingService) byID(id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.First(&booking, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func transitionAllowed(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
