package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"

	"beautybook/services/booking"
	"beautybook/utils"
)

const maxWebhookBody = 1 << 20

// WebhookHandler verifies and dispatches provider webhook events. Every
// event must carry a valid signature; unsigned or tampered payloads are
// rejected before any state is touched.
type WebhookHandler struct {
	Secret string
	Svc    booking.BookingService
}

func NewWebhookHandler(secret string, svc booking.BookingService) *WebhookHandler {
	return &WebhookHandler{Secret: secret, Svc: svc}
}

// HandleStripeEvent is the webhook endpoint.
func (h *WebhookHandler) HandleStripeEvent(c *gin.Context) {
	logger := utils.GetLogger()

	if h.Secret == "" {
		logger.Error("webhook received but no signing secret configured")
		utils.JSONError(c, http.StatusInternalServerError, "Webhook not configured", "")
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Unable to read request body", "")
		return
	}

	event, err := webhook.ConstructEvent(body, c.GetHeader("Stripe-Signature"), h.Secret)
	if err != nil {
		logger.Warn("webhook signature verification failed", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Invalid signature", "")
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			logger.Error("failed to decode checkout session payload",
				zap.String("eventId", event.ID),
				zap.Error(err))
			break
		}
		confirmation := booking.PaymentConfirmation{
			SessionID:     sess.ID,
			ReservationID: sess.Metadata["reservationId"],
			AmountCents:   sess.AmountTotal,
			Currency:      string(sess.Currency),
		}
		if err := h.Svc.HandlePaymentConfirmed(c.Request.Context(), confirmation); err != nil {
			logger.Error("payment confirmation failed",
				zap.String("sessionId", sess.ID),
				zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to process payment confirmation", "")
			return
		}

	case "checkout.session.expired":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			logger.Error("failed to decode expired session payload",
				zap.String("eventId", event.ID),
				zap.Error(err))
			break
		}
		if err := h.Svc.HandlePaymentExpired(c.Request.Context(), sess.Metadata["reservationId"]); err != nil {
			logger.Error("expired session handling failed",
				zap.String("sessionId", sess.ID),
				zap.Error(err))
		}

	case "payment_intent.payment_failed":
		logger.Warn("payment failed", zap.String("eventId", event.ID))

	default:
		logger.Debug("unhandled webhook event", zap.String("type", string(event.Type)))
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
