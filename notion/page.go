package notion

import (
	"encoding/json"
	"sort"
	"strings"
)

// pageProperty is the union of property value shapes the booking flow reads
// back. Reads are tolerant: admins reshape collections, so a "price" may live
// in rich text today and a number field tomorrow.
type pageProperty struct {
	Type        string        `json:"type"`
	Title       []richText    `json:"title"`
	RichText    []richText    `json:"rich_text"`
	Number      *float64      `json:"number"`
	Select      *namedOption  `json:"select"`
	Status      *namedOption  `json:"status"`
	MultiSelect []namedOption `json:"multi_select"`
	Date        *dateValue    `json:"date"`
	Email       string        `json:"email"`
	PhoneNumber string        `json:"phone_number"`
	Checkbox    bool          `json:"checkbox"`
	URL         string        `json:"url"`
}

type richText struct {
	PlainText string `json:"plain_text"`
	Text      struct {
		Content string `json:"content"`
	} `json:"text"`
}

type namedOption struct {
	Name string `json:"name"`
}

type dateValue struct {
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
}

// text extracts a plain string from whichever shape the property carries.
func (p pageProperty) text() string {
	join := func(parts []richText) string {
		var b strings.Builder
		for _, rt := range parts {
			if rt.PlainText != "" {
				b.WriteString(rt.PlainText)
			} else {
				b.WriteString(rt.Text.Content)
			}
		}
		return b.String()
	}
	switch {
	case len(p.Title) > 0:
		return join(p.Title)
	case len(p.RichText) > 0:
		return join(p.RichText)
	case p.Select != nil:
		return p.Select.Name
	case p.Status != nil:
		return p.Status.Name
	case p.Email != "":
		return p.Email
	case p.PhoneNumber != "":
		return p.PhoneNumber
	case p.URL != "":
		return p.URL
	}
	return ""
}

// property decodes a named property off the page.
func (pg *Page) property(name string) (pageProperty, bool) {
	raw, ok := pg.Properties[name]
	if !ok {
		return pageProperty{}, false
	}
	var p pageProperty
	if err := json.Unmarshal(raw, &p); err != nil {
		return pageProperty{}, false
	}
	return p, true
}

// findProperty looks up the first candidate name present on the page, trying
// exact, case-insensitive and substring matches in that order.
func (pg *Page) findProperty(candidates ...string) (pageProperty, bool) {
	names := make([]string, 0, len(pg.Properties))
	for n := range pg.Properties {
		names = append(names, n)
	}
	sort.Strings(names)

	for _, want := range candidates {
		if p, ok := pg.property(want); ok {
			return p, true
		}
	}
	for _, want := range candidates {
		lower := strings.ToLower(want)
		for _, n := range names {
			if strings.ToLower(n) == lower {
				return pg.property(n)
			}
		}
	}
	for _, want := range candidates {
		lower := strings.ToLower(want)
		for _, n := range names {
			if strings.Contains(strings.ToLower(n), lower) {
				return pg.property(n)
			}
		}
	}
	return pageProperty{}, false
}

// firstOfType returns the first property on the page with the given declared
// type, in lexicographic name order.
func (pg *Page) firstOfType(kind FieldKind) (pageProperty, bool) {
	names := make([]string, 0, len(pg.Properties))
	for n := range pg.Properties {
		names = append(names, n)
	}
	sort.Strings(names)

	for _, n := range names {
		if p, ok := pg.property(n); ok && p.Type == string(kind) {
			return p, true
		}
	}
	return pageProperty{}, false
}
