package appointments

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Appointment is a booked slot as persisted in the appointments table.
type Appointment struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateAppointmentRequest is the request body for booking a slot.
type CreateAppointmentRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Date  string `json:"date"`
	Time  string `json:"time"`
}

var (
	// Hebrew block letters (including final forms) or Latin letters, plus spaces.
	namePattern = regexp.MustCompile(`^[A-Za-z\x{05D0}-\x{05EA} ]+$`)

	// Israeli mobile numbers only: leading 05, ten digits total.
	phonePattern = regexp.MustCompile(`^05[0-9]{8}$`)

	nonDigits = regexp.MustCompile(`[^0-9]`)
)

// NormalizePhone strips every non-digit character from raw.
func NormalizePhone(raw string) string {
	return nonDigits.ReplaceAllString(raw, "")
}

// Normalize trims the name and reduces the phone to digits. Called before
// Validate so validation and persistence see the same canonical values.
func (r *CreateAppointmentRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = NormalizePhone(r.Phone)
}

// Validate checks fields in order and stops at the first failure.
func (r *CreateAppointmentRequest) Validate() error {
	if utf8.RuneCountInString(r.Name) < 2 || !namePattern.MatchString(r.Name) {
		return ErrInvalidName
	}
	if !phonePattern.MatchString(r.Phone) {
		return ErrInvalidPhone
	}
	if r.Date == "" {
		return ErrMissingDate
	}
	if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		return ErrInvalidDate
	}
	if r.Time == "" {
		return ErrMissingTime
	}
	return nil
}
