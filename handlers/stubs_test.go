package handlers

import (
	"context"

	"beautybook/models"
	"beautybook/services/booking"
)

// fakeService scripts BookingService responses for handler tests.
type fakeService struct {
	services []models.ServiceType

	slots    []models.Slot
	source   string
	slotsErr error

	bookingResult *models.BookingResult
	bookingErr    error

	checkoutResult *models.CheckoutResult
	checkoutErr    error

	retryResult *models.CheckoutResult
	retryErr    error

	state    *models.SessionState
	stateErr error

	inquiryID  string
	inquiryErr error

	confirmed  []booking.PaymentConfirmation
	confirmErr error
	expired    []string
}

func (f *fakeService) Services(ctx context.Context) []models.ServiceType {
	return f.services
}

func (f *fakeService) AvailableSlots(ctx context.Context, date string, durationMinutes int) ([]models.Slot, string, error) {
	return f.slots, f.source, f.slotsErr
}

func (f *fakeService) CreateReservation(ctx context.Context, req models.BookingRequest) (*models.BookingResult, error) {
	return f.bookingResult, f.bookingErr
}

func (f *fakeService) CreateCheckoutSession(ctx context.Context, req models.BookingRequest) (*models.CheckoutResult, error) {
	return f.checkoutResult, f.checkoutErr
}

func (f *fakeService) RetryPayment(ctx context.Context, reservationID string) (*models.CheckoutResult, error) {
	return f.retryResult, f.retryErr
}

func (f *fakeService) SessionStatus(ctx context.Context, sessionID string) (*models.SessionState, error) {
	return f.state, f.stateErr
}

func (f *fakeService) RecordInquiry(ctx context.Context, rec models.CustomerRecord) (string, error) {
	return f.inquiryID, f.inquiryErr
}

func (f *fakeService) HandlePaymentConfirmed(ctx context.Context, ev booking.PaymentConfirmation) error {
	if f.confirmErr != nil {
		return f.confirmErr
	}
	f.confirmed = append(f.confirmed, ev)
	return nil
}

func (f *fakeService) HandlePaymentExpired(ctx context.Context, reservationID string) error {
	f.expired = append(f.expired, reservationID)
	return nil
}
