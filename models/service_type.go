package models

// ServiceType is one entry of the bookable service catalog. The catalog is
// static configuration; duration and price are used to fill in bookings that
// omit them.
type ServiceType struct {
	Name            string `json:"name" mapstructure:"name"`
	DurationMinutes int    `json:"duration" mapstructure:"duration"`
	Price           string `json:"price" mapstructure:"price"` // display price, e.g. "$45.00"
	RemoteField     string `json:"notionField,omitempty" mapstructure:"notion_field"`
}
