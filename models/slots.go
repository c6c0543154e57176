package models

// Slot is a candidate bookable start time within business hours. Slots are
// computed on demand and never persisted.
type Slot struct {
	Time    string `json:"time"`    // start time of day, "HH:MM"
	ISO     string `json:"iso"`     // absolute start timestamp, RFC 3339
	Display string `json:"display"` // human label, e.g. "9:00 AM"
}
