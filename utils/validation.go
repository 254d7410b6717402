// utils/validation.go
package utils

import (
	"regexp"
	"strings"
	"time"
)

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	// Clean the phone number
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")

	// Regular expression for international phone numbers
	// Allows + prefix followed by 7-15 digits
	regex := `^\+?[1-9]\d{1,14}$`
	match, _ := regexp.MatchString(regex, cleaned)
	return match
}

// ValidateTimeSlot checks a 24h "HH:MM" slot key
func ValidateTimeSlot(slot string) bool {
	_, err := time.Parse("15:04", slot)
	return err == nil
}

// ParseDate parses a booking date in "YYYY-MM-DD" form
func ParseDate(date string) (time.Time, error) {
	return time.Parse("2006-01-02", date)
}
