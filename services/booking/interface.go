package booking

import (
	"context"

	"beautybook/models"
)

// ReservationStore is the persistence contract for appointment records. The
// production implementation talks to the remote document store; slot booking
// stays optimistic (check-then-write), so a transactional implementation can
// add real locking behind this interface without changing callers.
type ReservationStore interface {
	Configured() bool
	CreateAppointment(ctx context.Context, res models.Reservation) (string, error)
	UpdateAppointment(ctx context.Context, id string, fields map[string]any) error
	// GetAppointment returns (nil, nil) for an unknown id; errors are
	// reserved for transport and remote-side failures.
	GetAppointment(ctx context.Context, id string) (*models.Reservation, error)
	ListDayAppointments(ctx context.Context, date string) ([]models.Reservation, error)
}

// CustomerStore persists customer records, best-effort.
type CustomerStore interface {
	Configured() bool
	CreateCustomer(ctx context.Context, rec models.CustomerRecord) (string, error)
}

// PaymentProcessor creates and inspects provider checkout sessions.
type PaymentProcessor interface {
	CreateCheckoutSession(ctx context.Context, p CheckoutParams) (*CheckoutSession, error)
	GetSession(ctx context.Context, sessionID string) (*models.SessionState, error)
}

// BookingService orchestrates the reservation lifecycle:
// create -> pending payment -> paid, driven at the far end by provider
// webhook events.
type BookingService interface {
	Services(ctx context.Context) []models.ServiceType
	AvailableSlots(ctx context.Context, date string, durationMinutes int) ([]models.Slot, string, error)
	CreateReservation(ctx context.Context, req models.BookingRequest) (*models.BookingResult, error)
	CreateCheckoutSession(ctx context.Context, req models.BookingRequest) (*models.CheckoutResult, error)
	RetryPayment(ctx context.Context, reservationID string) (*models.CheckoutResult, error)
	SessionStatus(ctx context.Context, sessionID string) (*models.SessionState, error)
	RecordInquiry(ctx context.Context, rec models.CustomerRecord) (string, error)
	HandlePaymentConfirmed(ctx context.Context, ev PaymentConfirmation) error
	HandlePaymentExpired(ctx context.Context, reservationID string) error
}

// PaymentConfirmation carries the settlement facts from a completed checkout
// event. ReservationID comes from the session metadata.
type PaymentConfirmation struct {
	SessionID     string
	ReservationID string
	AmountCents   int64
	Currency      string
}
