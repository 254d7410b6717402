package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

const (
	PaymentUnpaid   = "unpaid"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

const (
	PaymentMethodCash   = "cash"
	PaymentMethodOnline = "online"
)

type Booking struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`
	Customer   *User     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	ServiceID uuid.UUID `gorm:"type:uuid;index;not null" json:"serviceId"`
	Service   *Service  `gorm:"foreignKey:ServiceID" json:"service,omitempty"`

	// Denormalized from the service at creation time; the slot key is
	// (ProviderID, Date, Time)
	ProviderID uuid.UUID `gorm:"type:uuid;index;not null" json:"providerId"`
	Provider   *User     `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`

	Date time.Time `gorm:"not null" json:"date"`
	Time string    `gorm:"type:varchar(10);not null" json:"time"` // "15:04" slot

	Address string `gorm:"not null" json:"address"`
	City    string `gorm:"not null" json:"city"`
	PinCode string `json:"pinCode"`

	AdditionalInfo string `gorm:"type:text" json:"additionalInfo"`

	Status        string `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaymentStatus string `gorm:"type:varchar(20);not null;default:'unpaid'" json:"paymentStatus"`
	PaymentMethod string `gorm:"type:varchar(20);not null;default:'cash'" json:"paymentMethod"`

	IsReviewed bool `gorm:"default:false" json:"isReviewed"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}

func ValidBookingStatus(status string) bool {
	switch status {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

func ValidPaymentStatus(status string) bool {
	switch status {
	case PaymentUnpaid, PaymentPaid, PaymentRefunded:
		return true
	}
	return false
}

func ValidPaymentMethod(method string) bool {
	switch method {
	case PaymentMethodCash, PaymentMethodOnline:
		return true
	}
	return false
}
