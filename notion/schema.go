package notion

import (
	"context"
	"fmt"
	"net/http"
)

// FieldKind is a declared property type of a remote collection. The set is
// finite; anything else is treated as unsupported by the property builder.
type FieldKind string

const (
	KindTitle       FieldKind = "title"
	KindRichText    FieldKind = "rich_text"
	KindNumber      FieldKind = "number"
	KindSelect      FieldKind = "select"
	KindMultiSelect FieldKind = "multi_select"
	KindStatus      FieldKind = "status"
	KindDate        FieldKind = "date"
	KindEmail       FieldKind = "email"
	KindPhoneNumber FieldKind = "phone_number"
	KindCheckbox    FieldKind = "checkbox"
	KindURL         FieldKind = "url"
	KindRelation    FieldKind = "relation"
)

// Schema maps a collection's declared field names to their kinds. It is
// fetched live for every operation and never cached: the collection is
// admin-editable and may change between calls.
type Schema map[string]FieldKind

type databaseResponse struct {
	Properties map[string]struct {
		Type string `json:"type"`
	} `json:"properties"`
}

// GetSchema retrieves the live property definitions of a collection. All
// failures wrap ErrSchemaUnavailable.
func (c *Client) GetSchema(ctx context.Context, databaseID string) (Schema, error) {
	if databaseID == "" {
		return nil, fmt.Errorf("%w: empty database id", ErrSchemaUnavailable)
	}

	var resp databaseResponse
	if err := c.do(ctx, http.MethodGet, "/v1/databases/"+databaseID, nil, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaUnavailable, err)
	}

	schema := make(Schema, len(resp.Properties))
	for name, prop := range resp.Properties {
		schema[name] = FieldKind(prop.Type)
	}
	return schema, nil
}

// ValidateSchema checks that the collection can hold appointment records: it
// needs at least one title field (identifying name) and one date field
// (temporal anchor). Violations are configuration errors, distinct from
// transient fetch failures.
func ValidateSchema(s Schema) error {
	if len(s) == 0 {
		return fmt.Errorf("%w: empty schema", ErrInvalidSchema)
	}
	if !s.HasKind(KindTitle) {
		return fmt.Errorf("%w: no field of type title", ErrInvalidSchema)
	}
	if !s.HasKind(KindDate) {
		return fmt.Errorf("%w: no field of type date", ErrInvalidSchema)
	}
	return nil
}

// HasKind reports whether any field in the schema has the given kind.
func (s Schema) HasKind(kind FieldKind) bool {
	for _, k := range s {
		if k == kind {
			return true
		}
	}
	return false
}

// FirstOfKind returns the name of the first field with the given kind, in
// lexicographic field-name order for determinism.
func (s Schema) FirstOfKind(kind FieldKind) (string, bool) {
	for _, name := range sortedKeys(s) {
		if s[name] == kind {
			return name, true
		}
	}
	return "", false
}
