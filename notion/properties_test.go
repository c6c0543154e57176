package notion

import (
	"testing"

	"go.uber.org/zap"
)

func salonSchema() Schema {
	return Schema{
		"Appointment":  KindTitle,
		"Client Name":  KindRichText,
		"Phone Number": KindPhoneNumber,
		"Email":        KindEmail,
		"Service Type": KindSelect,
		"Date":         KindDate,
		"Duration":     KindRichText,
		"Price":        KindRichText,
		"Status":       KindStatus,
		"Notes":        KindRichText,
	}
}

func TestBuildProperties_ExactMatch(t *testing.T) {
	props := BuildProperties(salonSchema(), map[string]any{
		"Client Name": "Dana Smith",
	}, zap.NewNop())

	encoded, ok := props["Client Name"].(map[string]any)
	if !ok {
		t.Fatalf("Client Name missing or wrong shape: %v", props)
	}
	richText, ok := encoded["rich_text"].([]any)
	if !ok || len(richText) != 1 {
		t.Fatalf("rich_text shape = %v", encoded)
	}
	text := richText[0].(map[string]any)["text"].(map[string]any)
	if text["content"] != "Dana Smith" {
		t.Errorf("content = %v, want Dana Smith", text["content"])
	}
}

func TestBuildProperties_CaseInsensitiveMatch(t *testing.T) {
	props := BuildProperties(salonSchema(), map[string]any{
		"client name": "Dana Smith",
	}, zap.NewNop())

	if _, ok := props["Client Name"]; !ok {
		t.Errorf("case-insensitive key should resolve, got %v", props)
	}
}

func TestBuildProperties_SubstringMatch(t *testing.T) {
	schema := Schema{"Customer Phone Number": KindPhoneNumber}
	props := BuildProperties(schema, map[string]any{
		"Phone Number": "555-0100",
	}, zap.NewNop())

	encoded, ok := props["Customer Phone Number"].(map[string]any)
	if !ok {
		t.Fatalf("substring match failed: %v", props)
	}
	if encoded["phone_number"] != "555-0100" {
		t.Errorf("phone_number = %v", encoded["phone_number"])
	}
}

func TestBuildProperties_ExactWinsOverSubstring(t *testing.T) {
	schema := Schema{
		"Name":        KindTitle,
		"Client Name": KindRichText,
	}
	props := BuildProperties(schema, map[string]any{"Name": "Dana"}, zap.NewNop())

	if _, ok := props["Name"]; !ok {
		t.Errorf("exact match should win, got %v", props)
	}
	if _, ok := props["Client Name"]; ok {
		t.Errorf("substring candidate should not be used, got %v", props)
	}
}

func TestBuildProperties_DropsUnresolvedAndEmpty(t *testing.T) {
	props := BuildProperties(salonSchema(), map[string]any{
		"Nonexistent Field": "value",
		"Notes":             "",
		"Email":             nil,
	}, zap.NewNop())

	if len(props) != 0 {
		t.Errorf("expected all fields dropped, got %v", props)
	}
}

func TestBuildProperties_UnsupportedKindSkipped(t *testing.T) {
	schema := Schema{"Related": KindRelation, "Email": KindEmail}
	props := BuildProperties(schema, map[string]any{
		"Related": "some-page-id",
		"Email":   "dana@example.com",
	}, zap.NewNop())

	if _, ok := props["Related"]; ok {
		t.Errorf("relation field should be skipped, got %v", props)
	}
	if _, ok := props["Email"]; !ok {
		t.Error("supported field should survive the skip")
	}
}

func TestBuildProperties_Encodings(t *testing.T) {
	schema := Schema{
		"Title":  KindTitle,
		"Count":  KindNumber,
		"Tag":    KindSelect,
		"Tags":   KindMultiSelect,
		"Stage":  KindStatus,
		"Paid":   KindCheckbox,
		"Link":   KindURL,
		"Mobile": KindPhoneNumber,
	}
	props := BuildProperties(schema, map[string]any{
		"Title":  "Appointment",
		"Count":  "45",
		"Tag":    "Manicure",
		"Tags":   []string{"vip", "regular"},
		"Stage":  "paid",
		"Paid":   true,
		"Link":   "https://example.com",
		"Mobile": "555-0100",
	}, zap.NewNop())

	title := props["Title"].(map[string]any)["title"].([]any)
	if len(title) != 1 {
		t.Errorf("title shape = %v", props["Title"])
	}
	if n := props["Count"].(map[string]any)["number"].(float64); n != 45 {
		t.Errorf("number = %v, want 45", n)
	}
	tag := props["Tag"].(map[string]any)["select"].(map[string]any)
	if tag["name"] != "Manicure" {
		t.Errorf("select = %v", tag)
	}
	tags := props["Tags"].(map[string]any)["multi_select"].([]any)
	if len(tags) != 2 {
		t.Errorf("multi_select = %v", tags)
	}
	stage := props["Stage"].(map[string]any)["status"].(map[string]any)
	if stage["name"] != "paid" {
		t.Errorf("status = %v", stage)
	}
	if paid := props["Paid"].(map[string]any)["checkbox"].(bool); !paid {
		t.Error("checkbox should be true")
	}
	if u := props["Link"].(map[string]any)["url"]; u != "https://example.com" {
		t.Errorf("url = %v", u)
	}
}

func TestBuildProperties_DateNormalized(t *testing.T) {
	schema := Schema{"Date": KindDate}

	cases := []struct {
		in   string
		want string
	}{
		{"2026-09-07T10:00:00Z", "2026-09-07T10:00:00Z"},
		{"2026-09-07T10:00", "2026-09-07T10:00:00Z"},
		{"2026-09-07", "2026-09-07T00:00:00Z"},
	}
	for _, tc := range cases {
		props := BuildProperties(schema, map[string]any{"Date": tc.in}, zap.NewNop())
		date := props["Date"].(map[string]any)["date"].(map[string]any)
		if date["start"] != tc.want {
			t.Errorf("date %q encoded as %v, want start %q", tc.in, date, tc.want)
		}
	}
}

func TestBuildProperties_Deterministic(t *testing.T) {
	schema := salonSchema()
	data := map[string]any{
		"Client Name": "Dana Smith",
		"Email":       "dana@example.com",
		"Status":      "pending",
	}

	first := BuildProperties(schema, data, zap.NewNop())
	for i := 0; i < 20; i++ {
		next := BuildProperties(schema, data, zap.NewNop())
		if len(next) != len(first) {
			t.Fatalf("run %d resolved %d fields, first run resolved %d", i, len(next), len(first))
		}
		for k := range first {
			if _, ok := next[k]; !ok {
				t.Fatalf("run %d missing field %q", i, k)
			}
		}
	}
}
