package notion

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"beautybook/models"
)

// AppointmentRepo persists reservations in the appointments collection. The
// collection schema is introspected fresh on every write: it is admin-editable
// and must never be cached across operations.
type AppointmentRepo struct {
	client     *Client
	databaseID string
	location   *time.Location
	logger     *zap.Logger
}

func NewAppointmentRepo(client *Client, databaseID string, loc *time.Location, logger *zap.Logger) *AppointmentRepo {
	return &AppointmentRepo{client: client, databaseID: databaseID, location: loc, logger: logger}
}

// Configured reports whether writes can reach the remote collection.
func (r *AppointmentRepo) Configured() bool {
	return r.client.Configured() && r.databaseID != ""
}

// CreateAppointment writes a reservation and returns the remote record id.
func (r *AppointmentRepo) CreateAppointment(ctx context.Context, res models.Reservation) (string, error) {
	schema, err := r.client.GetSchema(ctx, r.databaseID)
	if err != nil {
		return "", err
	}
	if err := ValidateSchema(schema); err != nil {
		return "", err
	}

	data := map[string]any{
		"Appointment":    fmt.Sprintf("Appointment – %s", res.ServiceType),
		"Client Name":    res.ClientName,
		"Phone Number":   res.Phone,
		"Email":          res.Email,
		"Service Type":   res.ServiceType,
		"Date":           res.StartISO,
		"Duration":       strconv.Itoa(res.DurationMinutes),
		"Price":          res.PriceDisplay,
		"Status":         res.Status,
		"Notes":          res.Notes,
		"Stripe Session": res.PaymentSession,
	}

	page, err := r.client.CreatePage(ctx, r.databaseID, BuildProperties(schema, data, r.logger))
	if err != nil {
		return "", err
	}
	return page.ID, nil
}

// UpdateAppointment patches semantic fields onto an existing reservation.
func (r *AppointmentRepo) UpdateAppointment(ctx context.Context, id string, fields map[string]any) error {
	schema, err := r.client.GetSchema(ctx, r.databaseID)
	if err != nil {
		return err
	}
	_, err = r.client.UpdatePage(ctx, id, BuildProperties(schema, fields, r.logger))
	return err
}

// GetAppointment reads one reservation back from the store. An unknown id
// yields (nil, nil).
func (r *AppointmentRepo) GetAppointment(ctx context.Context, id string) (*models.Reservation, error) {
	page, err := r.client.GetPage(ctx, id)
	if errors.Is(err, ErrPageNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	res := reservationFromPage(page)
	return &res, nil
}

// ListDayAppointments returns all non-cancelled reservations whose start
// falls on the given calendar date ("YYYY-MM-DD").
func (r *AppointmentRepo) ListDayAppointments(ctx context.Context, date string) ([]models.Reservation, error) {
	schema, err := r.client.GetSchema(ctx, r.databaseID)
	if err != nil {
		return nil, err
	}
	dateField, ok := schema.FirstOfKind(KindDate)
	if !ok {
		return nil, fmt.Errorf("%w: no field of type date", ErrInvalidSchema)
	}

	// The day window is anchored in the business timezone: a 19:30 local
	// reservation lands after midnight UTC in western zones and would fall
	// outside a UTC-computed window for its own calendar day.
	dayStart, err := time.ParseInLocation("2006-01-02", date, r.loc())
	if err != nil {
		return nil, fmt.Errorf("notion: bad date %q: %w", date, err)
	}
	dayEnd := dayStart.AddDate(0, 0, 1)

	filter := map[string]any{
		"and": []any{
			map[string]any{
				"property": dateField,
				"date":     map[string]any{"on_or_after": dayStart.Format(time.RFC3339)},
			},
			map[string]any{
				"property": dateField,
				"date":     map[string]any{"before": dayEnd.Format(time.RFC3339)},
			},
		},
	}

	pages, err := r.client.QueryDatabase(ctx, r.databaseID, filter)
	if err != nil {
		return nil, err
	}

	reservations := make([]models.Reservation, 0, len(pages))
	for i := range pages {
		res := reservationFromPage(&pages[i])
		if strings.EqualFold(res.Status, models.StatusCancelled) {
			continue
		}
		reservations = append(reservations, res)
	}
	return reservations, nil
}

func (r *AppointmentRepo) loc() *time.Location {
	if r.location != nil {
		return r.location
	}
	return time.UTC
}

// reservationFromPage extracts the application-level view of a reservation
// from whatever property names the admin chose.
func reservationFromPage(page *Page) models.Reservation {
	res := models.Reservation{ID: page.ID}

	if p, ok := page.firstOfType(KindDate); ok && p.Date != nil {
		res.StartISO = p.Date.Start
	}
	if p, ok := page.firstOfType(KindEmail); ok {
		res.Email = p.Email
	} else if p, ok := page.findProperty("Email"); ok {
		res.Email = p.text()
	}
	if p, ok := page.firstOfType(KindPhoneNumber); ok {
		res.Phone = p.PhoneNumber
	} else if p, ok := page.findProperty("Phone Number", "Phone"); ok {
		res.Phone = p.text()
	}
	if p, ok := page.findProperty("Client Name", "Customer Name", "Name"); ok {
		res.ClientName = p.text()
	}
	if p, ok := page.findProperty("Service Type", "Service", "Treatment", "Appointment Type"); ok {
		res.ServiceType = p.text()
	}
	if p, ok := page.findProperty("Status"); ok {
		res.Status = p.text()
	}
	if p, ok := page.findProperty("Price", "Cost", "Amount"); ok {
		if p.Number != nil {
			res.PriceDisplay = strconv.FormatFloat(*p.Number, 'f', 2, 64)
		} else {
			res.PriceDisplay = p.text()
		}
	}
	if p, ok := page.findProperty("Duration"); ok {
		switch {
		case p.Number != nil:
			res.DurationMinutes = int(*p.Number)
		default:
			if n, err := strconv.Atoi(strings.TrimSpace(p.text())); err == nil {
				res.DurationMinutes = n
			}
		}
	}
	if p, ok := page.findProperty("Notes", "Comments"); ok {
		res.Notes = p.text()
	}
	if p, ok := page.findProperty("Stripe Session"); ok {
		res.PaymentSession = p.text()
	}
	if p, ok := page.findProperty("Stripe Checkout URL", "Checkout URL"); ok {
		res.CheckoutURL = p.text()
	}
	return res
}
