// Package availability computes which slot labels remain bookable for a date.
package availability

// DefaultSlots is the bookable half-hour grid, in chronological order.
// Results preserve this declaration order, so callers never need to sort.
var DefaultSlots = []string{"15:00", "15:30", "16:00", "16:30", "17:00", "17:30"}

// Available returns the candidates that do not appear in booked, preserving
// candidate order. Duplicate entries in booked are tolerated; an empty
// candidate list yields an empty (non-nil) result.
func Available(candidates []string, booked []string) []string {
	taken := make(map[string]struct{}, len(booked))
	for _, b := range booked {
		taken[b] = struct{}{}
	}

	free := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := taken[c]; !ok {
			free = append(free, c)
		}
	}
	return free
}

// Contains reports whether slot is one of the candidate labels.
func Contains(candidates []string, slot string) bool {
	for _, c := range candidates {
		if c == slot {
			return true
		}
	}
	return false
}
