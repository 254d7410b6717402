package services

import (
	"servsphere-backend/models"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPolicyTable(t *testing.T) {
	customerID := uuid.New()
	providerID := uuid.New()
	adminID := uuid.New()
	strangerID := uuid.New()

	booking := &models.Booking{
		CustomerID: customerID,
		ProviderID: providerID,
	}

	tests := []struct {
		name    string
		op      Operation
		p       Principal
		booking *models.Booking
		ownerID uuid.UUID
		allowed bool
	}{
		{"customer creates booking", OpCreateBooking, Principal{customerID, models.RoleCustomer}, nil, uuid.Nil, true},
		{"provider creates booking", OpCreateBooking, Principal{providerID, models.RoleProvider}, nil, uuid.Nil, false},
		{"admin creates booking", OpCreateBooking, Principal{adminID, models.RoleAdmin}, nil, uuid.Nil, false},

		{"customer lists own bookings", OpListCustomerBookings, Principal{customerID, models.RoleCustomer}, nil, customerID, true},
		{"customer lists other's bookings", OpListCustomerBookings, Principal{customerID, models.RoleCustomer}, nil, strangerID, false},

		{"provider lists provider bookings", OpListProviderBookings, Principal{providerID, models.RoleProvider}, nil, providerID, true},
		{"customer lists provider bookings", OpListProviderBookings, Principal{customerID, models.RoleCustomer}, nil, providerID, false},

		{"assigned provider updates status", OpUpdateBookingStatus, Principal{providerID, models.RoleProvider}, booking, uuid.Nil, true},
		{"other provider updates status", OpUpdateBookingStatus, Principal{strangerID, models.RoleProvider}, booking, uuid.Nil, false},
		{"customer updates status", OpUpdateBookingStatus, Principal{customerID, models.RoleCustomer}, booking, uuid.Nil, false},

		{"admin cancels", OpCancelBooking, Principal{adminID, models.RoleAdmin}, booking, uuid.Nil, true},
		{"booking customer cancels", OpCancelBooking, Principal{customerID, models.RoleCustomer}, booking, uuid.Nil, true},
		{"booking provider cancels", OpCancelBooking, Principal{providerID, models.RoleProvider}, booking, uuid.Nil, true},
		{"stranger cancels", OpCancelBooking, Principal{strangerID, models.RoleCustomer}, booking, uuid.Nil, false},

		{"admin sets payment status", OpUpdatePaymentStatus, Principal{adminID, models.RoleAdmin}, booking, uuid.Nil, true},
		{"assigned provider sets payment status", OpUpdatePaymentStatus, Principal{providerID, models.RoleProvider}, booking, uuid.Nil, true},
		{"other provider sets payment status", OpUpdatePaymentStatus, Principal{strangerID, models.RoleProvider}, booking, uuid.Nil, false},
		{"booking customer sets payment status", OpUpdatePaymentStatus, Principal{customerID, models.RoleCustomer}, booking, uuid.Nil, false},

		{"any authenticated role reviews", OpAddReview, Principal{providerID, models.RoleProvider}, nil, uuid.Nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.op, tt.p, tt.booking, tt.ownerID)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrForbidden)
			}
		})
	}
}
