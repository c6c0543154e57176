package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"beautybook/handlers"
)

// HandlerBundle groups the HTTP handlers the router wires up.
type HandlerBundle struct {
	Booking  *handlers.BookingHandler
	Webhook  *handlers.WebhookHandler
	Business *handlers.BusinessHandler
}

// RegisterBookingRoutes registers the storefront booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/services", hb.Booking.GetServices)
		api.GET("/availability", hb.Booking.GetAvailability)
		api.POST("/booking", hb.Booking.CreateBooking)
		api.POST("/checkout-session", hb.Booking.CreateCheckoutSession)
		api.POST("/payment-retry", hb.Booking.RetryPayment)
		api.GET("/session-status", hb.Booking.SessionStatus)
		api.POST("/contact", hb.Booking.Contact)
	}
}

// RegisterWebhookRoute registers the payment provider webhook endpoint. It
// sits outside the booking group so future per-group middleware never
// touches the raw body the signature check needs.
func RegisterWebhookRoute(r *gin.Engine, hb *HandlerBundle) {
	r.POST("/api/webhook", hb.Webhook.HandleStripeEvent)
}

// RegisterBusinessRoutes registers public business metadata endpoints.
func RegisterBusinessRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.GET("/api/business-info", hb.Business.GetBusinessInfo)
}

// RegisterHealthRoute registers the liveness endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes wires global middleware and all route groups.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, hb)
	RegisterWebhookRoute(r, hb)
	RegisterBusinessRoutes(r, hb)
}
