package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	CustomerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_service_customer,priority:2" json:"customerId"`
	Customer   *User     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	ServiceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_service_customer,priority:1" json:"serviceId"`
	Service   *Service  `gorm:"foreignKey:ServiceID" json:"service,omitempty"`

	Rating  int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment string `gorm:"type:text;not null" json:"comment"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
