package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"beautybook/models"
	"beautybook/services/booking"
	"beautybook/utils"
)

// BookingHandler exposes the reservation lifecycle over HTTP.
type BookingHandler struct {
	Svc booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Svc: svc}
}

// GetServices returns the bookable service catalog.
func (h *BookingHandler) GetServices(c *gin.Context) {
	services := h.Svc.Services(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"services": services,
	})
}

// GetAvailability lists open slots for a date. Availability reads degrade
// rather than fail: when the document store is unreachable the full grid is
// returned with source=fallback.
func (h *BookingHandler) GetAvailability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "Date parameter is required", "")
		return
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", "")
		return
	}

	duration := 60
	if raw := c.Query("duration"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			utils.JSONError(c, http.StatusBadRequest, "Invalid duration", "")
			return
		}
		duration = n
	}

	slots, source, err := h.Svc.AvailableSlots(c.Request.Context(), date, duration)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"date":           date,
		"availableSlots": slots,
		"count":          len(slots),
		"source":         source,
	})
}

// CreateBooking creates a pay-in-person reservation.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	result, err := h.Svc.CreateReservation(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := gin.H{
		"success":       true,
		"appointmentId": result.AppointmentID,
		"customerId":    result.CustomerID,
		"message":       "Booking created successfully!",
	}
	if result.Simulated {
		resp["simulated"] = true
		resp["message"] = "Booking simulated (document store not configured)"
	}
	c.JSON(http.StatusOK, resp)
}

// CreateCheckoutSession creates a pending-payment reservation and returns the
// hosted payment URL.
func (h *BookingHandler) CreateCheckoutSession(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	result, err := h.Svc.CreateCheckoutSession(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"url":           result.URL,
		"sessionId":     result.SessionID,
		"reservationId": result.ReservationID,
	})
}

type retryRequest struct {
	ReservationID string `json:"reservationId"`
}

// RetryPayment opens a fresh checkout session for an existing reservation.
func (h *BookingHandler) RetryPayment(c *gin.Context) {
	var req retryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ReservationID == "" {
		utils.JSONError(c, http.StatusBadRequest, "reservationId is required", "")
		return
	}

	result, err := h.Svc.RetryPayment(c.Request.Context(), req.ReservationID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"url":       result.URL,
		"sessionId": result.SessionID,
	})
}

// SessionStatus reports the provider-side state of a checkout session.
func (h *BookingHandler) SessionStatus(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		utils.JSONError(c, http.StatusBadRequest, "session_id parameter is required", "")
		return
	}

	state, err := h.Svc.SessionStatus(c.Request.Context(), sessionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"status":        state.Status,
		"paymentStatus": state.PaymentStatus,
		"customerEmail": state.CustomerEmail,
	})
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// Contact stores a contact-form submission as a customer record.
func (h *BookingHandler) Contact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if req.Name == "" || req.Email == "" {
		utils.JSONError(c, http.StatusUnprocessableEntity, "Name and email are required", "")
		return
	}

	notes := req.Message
	if notes != "" {
		notes = fmt.Sprintf("[%s] %s", time.Now().UTC().Format(time.RFC3339), notes)
	}

	id, err := h.Svc.RecordInquiry(c.Request.Context(), models.CustomerRecord{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		CustomerType: "Contact Inquiry",
		Notes:        notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"customerId": id,
		"message":    "Thanks for reaching out! We'll get back to you soon.",
	})
}

// respondServiceError maps booking-layer errors onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	var vErr *booking.ValidationError
	switch {
	case errors.As(err, &vErr):
		utils.JSONError(c, http.StatusUnprocessableEntity, vErr.Error(), "")
	case errors.Is(err, booking.ErrSlotTaken):
		utils.JSONError(c, http.StatusConflict, "This time slot is no longer available. Please pick another time.", "")
	case errors.Is(err, booking.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Reservation not found", "")
	default:
		utils.GetLogger().Error("booking request failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Something went wrong. Please try again.", "")
	}
}
