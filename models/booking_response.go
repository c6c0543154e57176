package models

// BookingResult is returned after a reservation write.
type BookingResult struct {
	AppointmentID string `json:"appointmentId"`
	CustomerID    string `json:"customerId,omitempty"`
	Simulated     bool   `json:"simulated,omitempty"` // document store not configured
}

// CheckoutResult is returned after a payment checkout session is created.
type CheckoutResult struct {
	URL           string `json:"url"`
	SessionID     string `json:"sessionId"`
	ReservationID string `json:"reservationId"`
}

// SessionState is the non-sensitive status of a provider checkout session.
type SessionState struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	CustomerEmail string `json:"customer_email,omitempty"`
}
