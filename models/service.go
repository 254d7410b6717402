package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceCategories is the fixed set of offered service types
var ServiceCategories = []string{
	"maid",
	"electrician",
	"plumber",
	"carpenter",
	"ac-repair",
	"pest-control",
	"car-wash",
	"tuition",
	"baby-sitting",
	"home-cleaning",
	"tank-cleaning",
	"mechanic",
	"cooking",
	"painter",
	"salon",
}

type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Category    string    `gorm:"type:varchar(30);index;not null" json:"category"`
	PinCode     int       `gorm:"index;not null" json:"pinCode"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Experience  int       `json:"experience"` // years

	ServicePhotos StringArray `gorm:"type:text" json:"servicePhotos"`

	// Derived fields, always recomputed from the full review set
	Rating       float64 `gorm:"default:0" json:"rating"`
	ReviewsCount int     `gorm:"default:0" json:"reviewsCount"`

	Available  bool      `gorm:"default:true" json:"available"`
	ProviderID uuid.UUID `gorm:"type:uuid;index;not null" json:"providerId"`
	Provider   *User     `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

func ValidCategory(category string) bool {
	for _, c := range ServiceCategories {
		if c == category {
			return true
		}
	}
	return false
}

// StringArray stores an ordered list of strings as a JSON column
type StringArray []string

func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		a = StringArray{}
	}
	return json.Marshal(a)
}

func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = StringArray{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	}
	return errors.New("unsupported type for StringArray")
}
