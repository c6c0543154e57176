package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"beautybook/models"
)

// DefaultBookingService is the production reservation lifecycle manager. All
// durable state lives in the remote document store; every method is a
// short-lived, stateless orchestration over it.
type DefaultBookingService struct {
	Store     ReservationStore
	Customers CustomerStore
	Payments  PaymentProcessor
	Engine    *AvailabilityEngine
	Catalog   []models.ServiceType
	Currency  string
	Logger    *zap.Logger
}

// Services returns the bookable service catalog.
func (s *DefaultBookingService) Services(ctx context.Context) []models.ServiceType {
	return s.Catalog
}

// AvailableSlots delegates to the availability engine.
func (s *DefaultBookingService) AvailableSlots(ctx context.Context, date string, durationMinutes int) ([]models.Slot, string, error) {
	return s.Engine.AvailableSlots(ctx, date, durationMinutes)
}

// CreateReservation validates the booking, re-checks the slot, writes a
// best-effort customer record and then the appointment. When the document
// store is not configured the booking is simulated so the storefront keeps
// working in demo deployments.
func (s *DefaultBookingService) CreateReservation(ctx context.Context, req models.BookingRequest) (*models.BookingResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	svc := s.resolveService(req.AppointmentType)
	duration := resolveDuration(req, svc)
	startISO, err := s.startISO(req.Date, req.Time)
	if err != nil {
		return nil, err
	}

	if s.Store == nil || !s.Store.Configured() {
		s.Logger.Info("document store not configured, simulating booking",
			zap.String("service", req.AppointmentType))
		return &models.BookingResult{
			AppointmentID: "simulated_" + uuid.New().String(),
			CustomerID:    "simulated_customer_" + uuid.New().String(),
			Simulated:     true,
		}, nil
	}

	if !s.Engine.IsSlotFree(ctx, startISO, duration) {
		return nil, ErrSlotTaken
	}

	customerID := s.createCustomerQuietly(ctx, req, "New Client")

	price := req.Price
	if price == "" && svc != nil {
		price = svc.Price
	}

	appointmentID, err := s.Store.CreateAppointment(ctx, models.Reservation{
		ClientName:      req.Name,
		Phone:           req.Phone,
		Email:           req.Email,
		ServiceType:     storeServiceName(req, svc),
		StartISO:        startISO,
		DurationMinutes: duration,
		PriceDisplay:    price,
		Status:          models.StatusPending,
		Notes:           req.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	return &models.BookingResult{AppointmentID: appointmentID, CustomerID: customerID}, nil
}

// CreateCheckoutSession creates a pending-payment reservation and opens a
// provider checkout session for 90% of the catalog price. If the reservation
// update after session creation fails, the session is authoritative: the
// pointer update is retried by the customer flow, never the session itself.
func (s *DefaultBookingService) CreateCheckoutSession(ctx context.Context, req models.BookingRequest) (*models.CheckoutResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	svc := s.resolveService(req.AppointmentType)
	duration := resolveDuration(req, svc)
	startISO, err := s.startISO(req.Date, req.Time)
	if err != nil {
		return nil, err
	}

	priceCents := req.PriceCents
	if priceCents == 0 && svc != nil {
		priceCents = ParsePriceCents(svc.Price)
	}
	discounted := DiscountedCents(priceCents)

	if !s.Engine.IsSlotFree(ctx, startISO, duration) {
		return nil, ErrSlotTaken
	}

	s.createCustomerQuietly(ctx, req, "New Client")

	reservationID, err := s.Store.CreateAppointment(ctx, models.Reservation{
		ClientName:      req.Name,
		Phone:           req.Phone,
		Email:           req.Email,
		ServiceType:     storeServiceName(req, svc),
		StartISO:        startISO,
		DurationMinutes: duration,
		PriceDisplay:    FormatCents(priceCents),
		Status:          models.StatusPendingPayment,
		Notes:           req.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	currency := strings.ToLower(req.Currency)
	if currency == "" {
		currency = s.Currency
	}

	sess, err := s.Payments.CreateCheckoutSession(ctx, CheckoutParams{
		ReservationID: reservationID,
		ServiceName:   req.AppointmentType,
		Description:   fmt.Sprintf("Appointment on %s at %s (10%% off for paying online)", req.Date, req.Time),
		AmountCents:   discounted,
		Currency:      currency,
		CustomerEmail: req.Email,
	})
	if err != nil {
		return nil, err
	}

	s.updateSessionPointer(ctx, reservationID, sess)

	return &models.CheckoutResult{URL: sess.URL, SessionID: sess.ID, ReservationID: reservationID}, nil
}

// RetryPayment opens a fresh checkout session for an existing reservation.
// The price is re-derived from the stored record, falling back to the catalog
// when the stored value is unparsable. Prior unexpired sessions are left
// alone.
func (s *DefaultBookingService) RetryPayment(ctx context.Context, reservationID string) (*models.CheckoutResult, error) {
	res, err := s.Store.GetAppointment(ctx, reservationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if res == nil {
		return nil, ErrNotFound
	}

	priceCents := ParsePriceCents(res.PriceDisplay)
	if priceCents == 0 {
		if svc := s.resolveService(res.ServiceType); svc != nil {
			priceCents = ParsePriceCents(svc.Price)
		}
	}
	discounted := DiscountedCents(priceCents)

	sess, err := s.Payments.CreateCheckoutSession(ctx, CheckoutParams{
		ReservationID: res.ID,
		ServiceName:   res.ServiceType,
		AmountCents:   discounted,
		Currency:      s.Currency,
		CustomerEmail: res.Email,
	})
	if err != nil {
		return nil, err
	}

	s.updateSessionPointer(ctx, res.ID, sess)

	return &models.CheckoutResult{URL: sess.URL, SessionID: sess.ID, ReservationID: res.ID}, nil
}

// SessionStatus surfaces the provider's view of a checkout session.
func (s *DefaultBookingService) SessionStatus(ctx context.Context, sessionID string) (*models.SessionState, error) {
	return s.Payments.GetSession(ctx, sessionID)
}

// RecordInquiry stores a contact-form submission as a customer record.
func (s *DefaultBookingService) RecordInquiry(ctx context.Context, rec models.CustomerRecord) (string, error) {
	if s.Customers == nil || !s.Customers.Configured() {
		return "", fmt.Errorf("%w: customer store not configured", ErrUpstream)
	}
	id, err := s.Customers.CreateCustomer(ctx, rec)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return id, nil
}

// HandlePaymentConfirmed transitions a reservation to paid. Webhook delivery
// is at-least-once, so a reservation that is already paid is left untouched
// and the event is acknowledged as a no-op.
func (s *DefaultBookingService) HandlePaymentConfirmed(ctx context.Context, ev PaymentConfirmation) error {
	if ev.ReservationID == "" {
		s.Logger.Warn("payment confirmation without reservation id in metadata",
			zap.String("sessionId", ev.SessionID))
		return nil
	}

	res, err := s.Store.GetAppointment(ctx, ev.ReservationID)
	if err != nil {
		return fmt.Errorf("load reservation %s: %w", ev.ReservationID, err)
	}
	if res == nil {
		s.Logger.Warn("payment confirmation for unknown reservation",
			zap.String("reservationId", ev.ReservationID))
		return nil
	}
	if strings.EqualFold(res.Status, models.StatusPaid) {
		s.Logger.Info("duplicate payment confirmation ignored",
			zap.String("reservationId", ev.ReservationID),
			zap.String("sessionId", ev.SessionID))
		return nil
	}

	fields := map[string]any{
		"Status":           models.StatusPaid,
		"Stripe Session":   ev.SessionID,
		"Payment Received": time.Now().UTC().Format(time.RFC3339),
		"Payment Amount":   FormatCents(ev.AmountCents),
		"Currency":         strings.ToUpper(ev.Currency),
	}
	if err := s.Store.UpdateAppointment(ctx, ev.ReservationID, fields); err != nil {
		return fmt.Errorf("mark reservation %s paid: %w", ev.ReservationID, err)
	}

	s.Logger.Info("reservation paid",
		zap.String("reservationId", ev.ReservationID),
		zap.String("sessionId", ev.SessionID),
		zap.Int64("amountCents", ev.AmountCents))
	return nil
}

// HandlePaymentExpired acknowledges an expired or failed checkout. The
// reservation deliberately stays pending_payment for manual follow-up; the
// customer can retry from the payment link.
func (s *DefaultBookingService) HandlePaymentExpired(ctx context.Context, reservationID string) error {
	s.Logger.Info("checkout session expired, reservation kept for follow-up",
		zap.String("reservationId", reservationID))
	return nil
}

func (s *DefaultBookingService) updateSessionPointer(ctx context.Context, reservationID string, sess *CheckoutSession) {
	fields := map[string]any{
		"Stripe Session":      sess.ID,
		"Stripe Checkout URL": sess.URL,
		"Status":              models.StatusPendingPayment,
	}
	if err := s.Store.UpdateAppointment(ctx, reservationID, fields); err != nil {
		// The session exists and will be reconciled by the webhook; do not
		// recreate it, that would risk a duplicate charge.
		s.Logger.Warn("failed to record checkout session on reservation",
			zap.String("reservationId", reservationID),
			zap.String("sessionId", sess.ID),
			zap.Error(err))
	}
}

func (s *DefaultBookingService) createCustomerQuietly(ctx context.Context, req models.BookingRequest, customerType string) string {
	if s.Customers == nil || !s.Customers.Configured() {
		return ""
	}
	id, err := s.Customers.CreateCustomer(ctx, models.CustomerRecord{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		CustomerType: customerType,
	})
	if err != nil {
		s.Logger.Warn("customer record write failed, continuing without it",
			zap.String("email", req.Email),
			zap.Error(err))
		return ""
	}
	return id
}

// resolveService matches a catalog entry by display name or by the remote
// field label stored reservations carry.
func (s *DefaultBookingService) resolveService(name string) *models.ServiceType {
	if name == "" {
		return nil
	}
	for i := range s.Catalog {
		if strings.EqualFold(s.Catalog[i].Name, name) || strings.EqualFold(s.Catalog[i].RemoteField, name) {
			return &s.Catalog[i]
		}
	}
	return nil
}

// storeServiceName is the service label written to the document store: the
// admin-chosen remote option name when the catalog defines one, the request's
// display name otherwise.
func storeServiceName(req models.BookingRequest, svc *models.ServiceType) string {
	if svc != nil && svc.RemoteField != "" {
		return svc.RemoteField
	}
	return req.AppointmentType
}

func (s *DefaultBookingService) startISO(date, clock string) (string, error) {
	loc := s.Engine.location()
	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02T15:04:05"} {
		if t, err := time.ParseInLocation(layout, date+"T"+clock, loc); err == nil {
			return t.Format(time.RFC3339), nil
		}
	}
	return "", &ValidationError{Reason: fmt.Sprintf("invalid date/time %q %q", date, clock)}
}

func validateRequest(req models.BookingRequest) error {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"name", req.Name},
		{"email", req.Email},
		{"phone", req.Phone},
		{"appointmentType", req.AppointmentType},
		{"date", req.Date},
		{"time", req.Time},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

func resolveDuration(req models.BookingRequest, svc *models.ServiceType) int {
	if req.DurationMinutes > 0 {
		return req.DurationMinutes
	}
	if svc != nil && svc.DurationMinutes > 0 {
		return svc.DurationMinutes
	}
	return 60
}
