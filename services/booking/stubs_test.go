package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"beautybook/models"
)

// stubStore is an in-memory ReservationStore for tests.
type stubStore struct {
	configured bool
	day        []models.Reservation
	dayErr     error
	records    map[string]*models.Reservation
	created    []models.Reservation
	updates    map[string]map[string]any
	createErr  error
	updateErr  error
	getErr     error
}

func (s *stubStore) Configured() bool { return s.configured }

func (s *stubStore) CreateAppointment(ctx context.Context, res models.Reservation) (string, error) {
	if s.createErr != nil {
		return "", s.createErr
	}
	s.created = append(s.created, res)
	return fmt.Sprintf("appt_%d", len(s.created)), nil
}

func (s *stubStore) UpdateAppointment(ctx context.Context, id string, fields map[string]any) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	if s.updates == nil {
		s.updates = make(map[string]map[string]any)
	}
	s.updates[id] = fields
	return nil
}

func (s *stubStore) GetAppointment(ctx context.Context, id string) (*models.Reservation, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.records[id], nil
}

func (s *stubStore) ListDayAppointments(ctx context.Context, date string) ([]models.Reservation, error) {
	if s.dayErr != nil {
		return nil, s.dayErr
	}
	out := append([]models.Reservation{}, s.day...)
	for _, res := range s.created {
		if strings.HasPrefix(res.StartISO, date) {
			out = append(out, res)
		}
	}
	return out, nil
}

type stubCustomers struct {
	configured bool
	created    []models.CustomerRecord
	err        error
}

func (c *stubCustomers) Configured() bool { return c.configured }

func (c *stubCustomers) CreateCustomer(ctx context.Context, rec models.CustomerRecord) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	c.created = append(c.created, rec)
	return fmt.Sprintf("cust_%d", len(c.created)), nil
}

type stubPayments struct {
	sessions int
	last     CheckoutParams
	err      error
	state    *models.SessionState
	stateErr error
}

func (p *stubPayments) CreateCheckoutSession(ctx context.Context, cp CheckoutParams) (*CheckoutSession, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.sessions++
	p.last = cp
	return &CheckoutSession{
		ID:  fmt.Sprintf("cs_test_%d", p.sessions),
		URL: fmt.Sprintf("https://checkout.example/%d", p.sessions),
	}, nil
}

func (p *stubPayments) GetSession(ctx context.Context, sessionID string) (*models.SessionState, error) {
	if p.stateErr != nil {
		return nil, p.stateErr
	}
	return p.state, nil
}

func testHours() models.BusinessHours {
	return models.BusinessHours{
		"monday":    {Open: "09:00", Close: "19:00"},
		"tuesday":   {Open: "09:00", Close: "19:00"},
		"wednesday": {Open: "09:00", Close: "19:00"},
		"thursday":  {Open: "09:00", Close: "19:00"},
		"friday":    {Open: "09:00", Close: "20:00"},
		"saturday":  {Open: "08:00", Close: "18:00"},
		"sunday":    {Closed: true},
	}
}

func testEngine(store ReservationStore) *AvailabilityEngine {
	return &AvailabilityEngine{
		Store:         store,
		Hours:         testHours(),
		BufferMinutes: 30,
		Location:      time.UTC,
		Logger:        zap.NewNop(),
	}
}

func testService(store *stubStore, customers *stubCustomers, payments *stubPayments) *DefaultBookingService {
	return &DefaultBookingService{
		Store:     store,
		Customers: customers,
		Payments:  payments,
		Engine:    testEngine(store),
		Catalog: []models.ServiceType{
			{Name: "Manicure", DurationMinutes: 45, Price: "$35.00"},
			{Name: "Pedicure", DurationMinutes: 60, Price: "$45.00"},
			{Name: "Facial", DurationMinutes: 90, Price: "$75.00"},
		},
		Currency: "usd",
		Logger:   zap.NewNop(),
	}
}
