package services

import (
	"servsphere-backend/models"

	"github.com/google/uuid"
)

// Principal is the authenticated actor a request runs as.
type Principal struct {
	ID   uuid.UUID
	Role string
}

type Operation string

const (
	OpCreateBooking        Operation = "booking.create"
	OpListCustomerBookings Operation = "booking.list_customer"
	OpListProviderBookings Operation = "booking.list_provider"
	OpUpdateBookingStatus  Operation = "booking.update_status"
	OpCancelBooking        Operation = "booking.cancel"
	OpUpdatePaymentStatus  Operation = "booking.update_payment"
	OpAddReview            Operation = "review.add"
)

// ownership predicates a policy rule can demand on the target booking
const (
	ownsNothing    = ""
	ownsAsCustomer = "customer"
	ownsAsProvider = "provider"
	ownsAsEither   = "either"
)

type policyRule struct {
	role  string // "" matches any authenticated role
	owner string // ownership predicate over the target booking
}

// policyTable enumerates, per operation, the (role, ownership) pairs
// that are allowed. A request is authorized if any rule matches.
var policyTable = map[Operation][]policyRule{
	OpCreateBooking:        {{role: models.RoleCustomer}},
	OpListCustomerBookings: {{role: models.RoleCustomer, owner: ownsAsCustomer}},
	OpListProviderBookings: {{role: models.RoleProvider}},
	OpUpdateBookingStatus:  {{role: models.RoleProvider, owner: ownsAsProvider}},
	OpCancelBooking: {
		{role: models.RoleAdmin},
		{owner: ownsAsEither},
	},
	OpUpdatePaymentStatus: {
		{role: models.RoleAdmin},
		{role: models.RoleProvider, owner: ownsAsProvider},
	},
	OpAddReview: {{}}, // any authenticated principal
}

// Authorize checks the policy table for one operation. The booking is
// the target resource where the operation has one; list operations pass
// the target user id through ownerID instead.
func Authorize(op Operation, p Principal, booking *models.Booking, ownerID uuid.UUID) error {
	rules, ok := policyTable[op]
	if !ok {
		return ErrForbidden
	}

	for _, r := range rules {
		if r.role != "" && r.role != p.Role {
			continue
		}
		if !ownershipHolds(r.owner, p, booking, ownerID) {
			continue
		}
		return nil
	}
	return ErrForbidden
}

func ownershipHolds(owner string, p Principal, booking *models.Booking, ownerID uuid.UUID) bool {
	switch owner {
	case ownsNothing:
		return true
	case ownsAsCustomer:
		if booking != nil {
			return booking.CustomerID == p.ID
		}
		return ownerID == p.ID
	case ownsAsProvider:
		if booking != nil {
			return booking.ProviderID == p.ID
		}
		return ownerID == p.ID
	case ownsAsEither:
		return booking != nil && (booking.CustomerID == p.ID || booking.ProviderID == p.ID)
	}
	return false
}
