package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"beautybook/models"
)

// Slot sources reported alongside availability results.
const (
	SourceLive     = "live"     // existing reservations were consulted
	SourceFallback = "fallback" // store unreachable or unconfigured, hours only
)

// AvailabilityEngine computes bookable slots from business hours, the buffer
// rule and existing reservations. Results are recomputed fresh on every call.
type AvailabilityEngine struct {
	Store         ReservationStore
	Hours         models.BusinessHours
	BufferMinutes int
	Location      *time.Location
	Logger        *zap.Logger
}

// interval is a half-open booking window [Start, End).
type interval struct {
	Start time.Time
	End   time.Time
}

// AvailableSlots returns the ordered bookable slots for a calendar date. A
// closed or unconfigured weekday is a valid business state and yields an
// empty list. When the store cannot be read the engine fails open: the day is
// treated as fully available rather than blocking the storefront, and the
// returned source says so.
func (e *AvailabilityEngine) AvailableSlots(ctx context.Context, date string, durationMinutes int) ([]models.Slot, string, error) {
	day, err := time.ParseInLocation("2006-01-02", date, e.location())
	if err != nil {
		return nil, "", &ValidationError{Reason: fmt.Sprintf("invalid date %q, want YYYY-MM-DD", date)}
	}
	if durationMinutes <= 0 {
		durationMinutes = 60
	}

	weekday := strings.ToLower(day.Weekday().String())
	hours, ok := e.Hours[weekday]
	if !ok || hours.Closed {
		return []models.Slot{}, SourceLive, nil
	}

	open, err1 := e.clockOn(day, hours.Open)
	closeAt, err2 := e.clockOn(day, hours.Close)
	if err1 != nil || err2 != nil {
		return nil, "", fmt.Errorf("bad business hours for %s: open=%q close=%q", weekday, hours.Open, hours.Close)
	}

	step := durationMinutes
	if e.BufferMinutes > step {
		step = e.BufferMinutes
	}

	busy, source := e.dayIntervals(ctx, date)

	duration := time.Duration(durationMinutes) * time.Minute
	slots := []models.Slot{}
	// A candidate is offered whenever its start is before closing, even if
	// its end runs past it; callers wanting a hard end boundary must check
	// start+duration <= close themselves.
	for cur := open; cur.Before(closeAt); cur = cur.Add(time.Duration(step) * time.Minute) {
		if overlapsAny(cur, cur.Add(duration), busy) {
			continue
		}
		slots = append(slots, models.Slot{
			Time:    cur.Format("15:04"),
			ISO:     cur.Format(time.RFC3339),
			Display: cur.Format("3:04 PM"),
		})
	}
	return slots, source, nil
}

// IsSlotFree re-checks a single candidate interval against existing
// reservations, permissively: on a store read failure it reports the slot as
// free rather than blocking the booking.
func (e *AvailabilityEngine) IsSlotFree(ctx context.Context, startISO string, durationMinutes int) bool {
	start, err := time.Parse(time.RFC3339, startISO)
	if err != nil {
		return false
	}
	if durationMinutes <= 0 {
		durationMinutes = e.BufferMinutes
	}

	busy, _ := e.dayIntervals(ctx, start.In(e.location()).Format("2006-01-02"))
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	return !overlapsAny(start, end, busy)
}

// dayIntervals fetches the day's non-cancelled reservations once and converts
// them to busy intervals (batch-then-scan). A reservation without a usable
// duration is assumed to occupy the buffer size, conservatively.
func (e *AvailabilityEngine) dayIntervals(ctx context.Context, date string) ([]interval, string) {
	if e.Store == nil || !e.Store.Configured() {
		return nil, SourceFallback
	}

	reservations, err := e.Store.ListDayAppointments(ctx, date)
	if err != nil {
		e.Logger.Warn("availability check degraded, treating day as open",
			zap.String("date", date),
			zap.Error(err))
		return nil, SourceFallback
	}

	busy := make([]interval, 0, len(reservations))
	for _, res := range reservations {
		start, err := parseStart(res.StartISO)
		if err != nil {
			continue
		}
		minutes := res.DurationMinutes
		if minutes <= 0 {
			minutes = e.BufferMinutes
		}
		busy = append(busy, interval{Start: start, End: start.Add(time.Duration(minutes) * time.Minute)})
	}
	return busy, SourceLive
}

// overlapsAny tests [start, end) against every busy interval. Half-open
// semantics: back-to-back bookings never collide.
func overlapsAny(start, end time.Time, busy []interval) bool {
	for _, b := range busy {
		if start.Before(b.End) && b.Start.Before(end) {
			return true
		}
	}
	return false
}

func parseStart(iso string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, iso); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", iso)
}

func (e *AvailabilityEngine) clockOn(day time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, e.location()), nil
}

func (e *AvailabilityEngine) location() *time.Location {
	if e.Location != nil {
		return e.Location
	}
	return time.UTC
}
