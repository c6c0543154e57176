package config

import "testing"

// The example config.yaml sits next to this package and is picked up by Load.
func TestLoad(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AppPort == "" {
		t.Error("app port should default when unset")
	}
	if cfg.Stripe.Currency == "" {
		t.Error("currency should default when unset")
	}
	if cfg.Appointments.BufferMinutes <= 0 {
		t.Errorf("buffer minutes = %d, want positive", cfg.Appointments.BufferMinutes)
	}
	if cfg.Appointments.Timezone == "" {
		t.Error("timezone should default when unset")
	}

	hours, ok := cfg.Appointments.BusinessHours["monday"]
	if !ok {
		t.Fatal("expected monday hours in the example config")
	}
	if hours.Open == "" || hours.Close == "" {
		t.Errorf("monday hours = %+v", hours)
	}
	if sunday := cfg.Appointments.BusinessHours["sunday"]; !sunday.Closed {
		t.Error("sunday should be closed in the example config")
	}

	if len(cfg.Appointments.Types) == 0 {
		t.Fatal("expected a service catalog in the example config")
	}
	first := cfg.Appointments.Types[0]
	if first.Name == "" || first.DurationMinutes <= 0 || first.Price == "" {
		t.Errorf("catalog entry = %+v", first)
	}
}

func TestIsProduction(t *testing.T) {
	if (&Config{Env: "development"}).IsProduction() {
		t.Error("development is not production")
	}
	if !(&Config{Env: "production"}).IsProduction() {
		t.Error("production should be detected")
	}
}
