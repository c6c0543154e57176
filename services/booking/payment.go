package booking

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/stripe/stripe-go/v76"
	checkoutsession "github.com/stripe/stripe-go/v76/checkout/session"
	"go.uber.org/zap"

	"beautybook/models"
)

// CheckoutParams describes one payment attempt for a reservation. AmountCents
// is the final charge, discount already applied.
type CheckoutParams struct {
	ReservationID string
	ServiceName   string
	Description   string
	AmountCents   int64
	Currency      string
	CustomerEmail string
}

// CheckoutSession is the provider-hosted payment flow handle.
type CheckoutSession struct {
	ID  string
	URL string
}

// StripeProcessor implements PaymentProcessor on Stripe Checkout. The
// reservation id rides along as session metadata so the webhook can find its
// way back.
type StripeProcessor struct {
	SuccessURL string
	CancelURL  string
	Logger     *zap.Logger
}

// CreateCheckoutSession opens a provider checkout session for a single
// card payment.
func (p *StripeProcessor) CreateCheckoutSession(ctx context.Context, cp CheckoutParams) (*CheckoutSession, error) {
	name := cp.ServiceName
	if name == "" {
		name = "Appointment"
	}

	productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
		Name: stripe.String(name),
	}
	if cp.Description != "" {
		productData.Description = stripe.String(cp.Description)
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:    stripe.String(cp.Currency),
					ProductData: productData,
					UnitAmount:  stripe.Int64(cp.AmountCents),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(withBookingID(p.SuccessURL, cp.ReservationID)),
		CancelURL:  stripe.String(withBookingID(p.CancelURL, cp.ReservationID)),
	}
	params.Context = ctx
	params.AddMetadata("reservationId", cp.ReservationID)
	if cp.CustomerEmail != "" {
		// Stripe sends the receipt itself when it knows the email.
		params.CustomerEmail = stripe.String(cp.CustomerEmail)
	}

	sess, err := checkoutsession.New(params)
	if err != nil {
		p.Logger.Error("stripe checkout session create failed",
			zap.String("reservationId", cp.ReservationID),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return &CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

// GetSession returns the non-sensitive state of a checkout session.
func (p *StripeProcessor) GetSession(ctx context.Context, sessionID string) (*models.SessionState, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	sess, err := checkoutsession.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	state := &models.SessionState{
		Status:        string(sess.Status),
		PaymentStatus: string(sess.PaymentStatus),
	}
	if sess.CustomerDetails != nil {
		state.CustomerEmail = sess.CustomerDetails.Email
	}
	return state, nil
}

func withBookingID(base, reservationID string) string {
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + "bookingId=" + url.QueryEscape(reservationID)
}
