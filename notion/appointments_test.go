package notion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"beautybook/models"
)

const schemaBody = `{
	"properties": {
		"Appointment": {"type": "title"},
		"Client Name": {"type": "rich_text"},
		"Email": {"type": "email"},
		"Date": {"type": "date"},
		"Status": {"type": "status"}
	}
}`

func TestGetAppointment_UnknownID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	repo := NewAppointmentRepo(testClient(srv), "db123", time.UTC, zap.NewNop())
	res, err := repo.GetAppointment(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unknown id must not error: %v", err)
	}
	if res != nil {
		t.Errorf("expected nil reservation, got %+v", res)
	}
}

func TestCreateAppointment_ResolvesSchemaFields(t *testing.T) {
	var createBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/v1/databases/db123":
			w.Write([]byte(schemaBody))
		case r.Method == http.MethodPost && r.URL.Path == "/v1/pages":
			if err := json.NewDecoder(r.Body).Decode(&createBody); err != nil {
				t.Errorf("decode create body: %v", err)
			}
			w.Write([]byte(`{"id": "page_1"}`))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	repo := NewAppointmentRepo(testClient(srv), "db123", time.UTC, zap.NewNop())
	id, err := repo.CreateAppointment(context.Background(), models.Reservation{
		ClientName:  "Dana Smith",
		Email:       "dana@example.com",
		ServiceType: "Manicure",
		StartISO:    "2026-09-07T10:00:00Z",
		Status:      models.StatusPending,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "page_1" {
		t.Errorf("id = %q, want page_1", id)
	}

	props, ok := createBody["properties"].(map[string]any)
	if !ok {
		t.Fatalf("create body = %v", createBody)
	}
	for _, field := range []string{"Appointment", "Client Name", "Email", "Date", "Status"} {
		if _, ok := props[field]; !ok {
			t.Errorf("property %q not written, got %v", field, props)
		}
	}
	// Fields the schema does not declare must not be sent.
	if _, ok := props["Duration"]; ok {
		t.Errorf("undeclared field sent to the store: %v", props)
	}
}

func TestCreateAppointment_InvalidSchema(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// No date field: the collection cannot hold appointments.
		w.Write([]byte(`{"properties": {"Name": {"type": "title"}}}`))
	}))
	defer srv.Close()

	repo := NewAppointmentRepo(testClient(srv), "db123", time.UTC, zap.NewNop())
	_, err := repo.CreateAppointment(context.Background(), models.Reservation{ClientName: "Dana"})
	if err == nil {
		t.Fatal("expected a schema validation error")
	}
}

// An evening reservation in a western timezone starts after midnight UTC; the
// query window must be anchored in the business timezone or the reservation
// falls outside its own calendar day and escapes the overlap check.
func TestListDayAppointments_EveningLocalReservationStaysInItsDay(t *testing.T) {
	loc := time.FixedZone("EST", -5*60*60)
	resStart, err := time.Parse(time.RFC3339, "2026-01-09T19:30:00-05:00")
	if err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.Write([]byte(schemaBody))
			return
		}

		// Apply the requested date filter the way the remote store would.
		var query struct {
			Filter struct {
				And []struct {
					Property string            `json:"property"`
					Date     map[string]string `json:"date"`
				} `json:"and"`
			} `json:"filter"`
		}
		if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
			t.Errorf("decode query: %v", err)
			w.Write([]byte(`{"results": []}`))
			return
		}
		within := len(query.Filter.And) > 0
		for _, cond := range query.Filter.And {
			if raw, ok := cond.Date["on_or_after"]; ok {
				bound, err := time.Parse(time.RFC3339, raw)
				if err != nil || resStart.Before(bound) {
					within = false
				}
			}
			if raw, ok := cond.Date["before"]; ok {
				bound, err := time.Parse(time.RFC3339, raw)
				if err != nil || !resStart.Before(bound) {
					within = false
				}
			}
		}
		if !within {
			w.Write([]byte(`{"results": []}`))
			return
		}
		w.Write([]byte(`{"results": [
			{"id": "p1", "properties": {
				"Date": {"type": "date", "date": {"start": "2026-01-09T19:30:00-05:00"}},
				"Status": {"type": "status", "status": {"name": "pending"}}
			}}
		]}`))
	}))
	defer srv.Close()

	repo := NewAppointmentRepo(testClient(srv), "db123", loc, zap.NewNop())
	reservations, err := repo.ListDayAppointments(context.Background(), "2026-01-09")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reservations) != 1 {
		t.Fatalf("the 19:30 local reservation must be inside its own day window, got %d reservations", len(reservations))
	}
	if reservations[0].StartISO != "2026-01-09T19:30:00-05:00" {
		t.Errorf("start = %q", reservations[0].StartISO)
	}
}

func TestListDayAppointments_SkipsCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			w.Write([]byte(schemaBody))
		case r.Method == http.MethodPost:
			var query struct {
				Filter map[string]any `json:"filter"`
			}
			if err := json.NewDecoder(r.Body).Decode(&query); err != nil || query.Filter == nil {
				t.Errorf("expected a date filter, got %v (err %v)", query.Filter, err)
			}
			w.Write([]byte(`{"results": [
				{"id": "p1", "properties": {
					"Date": {"type": "date", "date": {"start": "2026-09-07T10:00:00Z"}},
					"Status": {"type": "status", "status": {"name": "pending"}}
				}},
				{"id": "p2", "properties": {
					"Date": {"type": "date", "date": {"start": "2026-09-07T12:00:00Z"}},
					"Status": {"type": "status", "status": {"name": "cancelled"}}
				}}
			]}`))
		}
	}))
	defer srv.Close()

	repo := NewAppointmentRepo(testClient(srv), "db123", time.UTC, zap.NewNop())
	reservations, err := repo.ListDayAppointments(context.Background(), "2026-09-07")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reservations) != 1 {
		t.Fatalf("reservations = %+v, want the cancelled one dropped", reservations)
	}
	if reservations[0].StartISO != "2026-09-07T10:00:00Z" {
		t.Errorf("start = %q", reservations[0].StartISO)
	}
}
