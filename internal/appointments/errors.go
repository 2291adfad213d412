package appointments

import "errors"

var (
	// ErrInvalidName is returned when the name is missing, too short, or
	// contains characters outside Hebrew/Latin letters and spaces.
	ErrInvalidName = errors.New("name must be at least 2 letters (Hebrew or English)")

	// ErrInvalidPhone is returned when the phone is not an Israeli mobile
	// number (05 followed by 8 digits).
	ErrInvalidPhone = errors.New("invalid Israeli phone number")

	// ErrMissingDate is returned when no date was supplied
	ErrMissingDate = errors.New("date is required")

	// ErrInvalidDate is returned when the date is not a YYYY-MM-DD calendar date
	ErrInvalidDate = errors.New("date must be a valid YYYY-MM-DD date")

	// ErrMissingTime is returned when no time was supplied
	ErrMissingTime = errors.New("time is required")

	// ErrInvalidTime is returned when the time is not one of the bookable slots
	ErrInvalidTime = errors.New("time is not a bookable slot")

	// ErrSlotTaken is returned when the (date, time) slot already has an appointment
	ErrSlotTaken = errors.New("time slot already booked")

	// ErrNotFound is returned when an appointment does not exist
	ErrNotFound = errors.New("appointment not found")
)

// validationErrors are the failures callers can fix by changing their input.
// ErrSlotTaken is deliberately not here: it is a conflict, not bad input.
var validationErrors = []error{
	ErrInvalidName,
	ErrInvalidPhone,
	ErrMissingDate,
	ErrInvalidDate,
	ErrMissingTime,
	ErrInvalidTime,
}

// IsValidationError reports whether err is a client-input validation failure.
func IsValidationError(err error) bool {
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

// ErrorCode returns a stable machine-readable code for client error bodies.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidName):
		return "invalid_name"
	case errors.Is(err, ErrInvalidPhone):
		return "invalid_phone"
	case errors.Is(err, ErrMissingDate):
		return "missing_date"
	case errors.Is(err, ErrInvalidDate):
		return "invalid_date"
	case errors.Is(err, ErrMissingTime):
		return "missing_time"
	case errors.Is(err, ErrInvalidTime):
		return "invalid_time"
	case errors.Is(err, ErrSlotTaken):
		return "slot_taken"
	default:
		return "internal"
	}
}
