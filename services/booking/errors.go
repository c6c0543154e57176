package booking

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSlotTaken signals a booking conflict: the requested interval
	// overlaps an existing non-cancelled reservation.
	ErrSlotTaken = errors.New("selected slot not available")

	// ErrNotFound is returned when a reservation id is unknown.
	ErrNotFound = errors.New("reservation not found")

	// ErrUpstream marks a required remote write that failed.
	ErrUpstream = errors.New("upstream service unavailable")
)

// ValidationError reports missing or malformed request fields. It is
// user-correctable and maps to a 4xx response.
type ValidationError struct {
	Missing []string
	Reason  string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
	}
	return e.Reason
}
