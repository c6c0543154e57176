package models

// Reservation status lifecycle. "cancelled" is terminal and only ever set by
// an administrator in the document store; the service never writes it.
const (
	StatusPending        = "pending"
	StatusPendingPayment = "pending_payment"
	StatusPaid           = "paid"
	StatusCancelled      = "cancelled"
)

// BookingRequest is the inbound payload shared by the booking and
// checkout-session endpoints.
type BookingRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	AppointmentType string `json:"appointmentType"`
	Date            string `json:"date"`               // "YYYY-MM-DD"
	Time            string `json:"time"`               // "HH:MM"
	DurationMinutes int    `json:"duration,omitempty"` // resolved from the catalog when zero
	Price           string `json:"price,omitempty"`    // display price, e.g. "$45.00"
	PriceCents      int64  `json:"priceCents,omitempty"`
	Currency        string `json:"currency,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// Reservation is an appointment record as held by the remote document store.
// The store's actual property names are admin-editable; this is the
// application-level view after tolerant property extraction.
type Reservation struct {
	ID              string `json:"id"`
	ClientName      string `json:"clientName"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	ServiceType     string `json:"serviceType"`
	StartISO        string `json:"startIso"`
	DurationMinutes int    `json:"durationMinutes"`
	PriceDisplay    string `json:"price,omitempty"`
	Status          string `json:"status"`
	Notes           string `json:"notes,omitempty"`
	PaymentSession  string `json:"paymentSessionId,omitempty"`
	CheckoutURL     string `json:"checkoutUrl,omitempty"`
}

// CustomerRecord is written best-effort alongside a reservation; its absence
// never blocks the appointment write.
type CustomerRecord struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	CustomerType string `json:"customerType"`
	Notes        string `json:"notes,omitempty"`
}
