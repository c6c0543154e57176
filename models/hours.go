package models

// DayHours describes opening hours for one weekday. A day is either open
// between Open and Close or marked Closed.
type DayHours struct {
	Open   string `json:"open,omitempty" mapstructure:"open"`   // "HH:MM"
	Close  string `json:"close,omitempty" mapstructure:"close"` // "HH:MM"
	Closed bool   `json:"closed,omitempty" mapstructure:"closed"`
}

// BusinessHours maps a lowercase weekday name ("monday" ... "sunday") to its
// hours. Immutable per deployment, loaded once from configuration.
type BusinessHours map[string]DayHours
