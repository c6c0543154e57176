package notion

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// BuildProperties converts semantic field data ("Client Name" -> value) into
// the wire representation the introspected schema requires. It is a pure
// function of its inputs: unresolved keys and empty values are silently
// dropped (required-field enforcement belongs to the caller), and fields with
// an unsupported declared kind are skipped with a warning rather than failing
// the whole write.
func BuildProperties(schema Schema, data map[string]any, logger *zap.Logger) map[string]any {
	props := make(map[string]any)
	schemaKeys := sortedKeys(schema)

	for _, key := range sortedAnyKeys(data) {
		value := data[key]
		if isEmpty(value) {
			continue
		}

		field, ok := resolveField(schemaKeys, key, logger)
		if !ok {
			continue
		}

		encoded, ok := encodeProperty(schema[field], value)
		if !ok {
			logger.Warn("unsupported property type, skipping field",
				zap.String("field", field),
				zap.String("type", string(schema[field])))
			continue
		}
		props[field] = encoded
	}
	return props
}

// resolveField maps a semantic key onto a schema field name: exact match,
// then case-insensitive, then substring containment. First hit wins; the
// schema keys arrive sorted so the heuristic is deterministic.
func resolveField(schemaKeys []string, key string, logger *zap.Logger) (string, bool) {
	for _, sk := range schemaKeys {
		if sk == key {
			return sk, true
		}
	}
	lower := strings.ToLower(key)
	for _, sk := range schemaKeys {
		if strings.ToLower(sk) == lower {
			return sk, true
		}
	}
	var hits []string
	for _, sk := range schemaKeys {
		if strings.Contains(strings.ToLower(sk), lower) {
			hits = append(hits, sk)
		}
	}
	if len(hits) == 0 {
		return "", false
	}
	if len(hits) > 1 {
		logger.Warn("ambiguous field name match, using first",
			zap.String("key", key),
			zap.Strings("candidates", hits))
	}
	return hits[0], true
}

// encodeProperty produces the fixed wire shape for one field kind. The second
// return is false for kinds the builder does not support (e.g. relation).
func encodeProperty(kind FieldKind, value any) (any, bool) {
	switch kind {
	case KindTitle:
		return map[string]any{"title": []any{textContent(stringify(value))}}, true
	case KindRichText:
		return map[string]any{"rich_text": []any{textContent(stringify(value))}}, true
	case KindNumber:
		return map[string]any{"number": toNumber(value)}, true
	case KindSelect:
		return map[string]any{"select": map[string]any{"name": stringify(value)}}, true
	case KindMultiSelect:
		return map[string]any{"multi_select": toNamedOptions(value)}, true
	case KindStatus:
		return map[string]any{"status": map[string]any{"name": stringify(value)}}, true
	case KindDate:
		if start, ok := parseDateStart(value); ok {
			return map[string]any{"date": map[string]any{"start": start}}, true
		}
		// Assume the caller already supplied a {start, end} shape.
		return value, true
	case KindEmail:
		return map[string]any{"email": stringify(value)}, true
	case KindPhoneNumber:
		return map[string]any{"phone_number": stringify(value)}, true
	case KindCheckbox:
		return map[string]any{"checkbox": toBool(value)}, true
	case KindURL:
		return map[string]any{"url": stringify(value)}, true
	default:
		return nil, false
	}
}

func textContent(s string) map[string]any {
	return map[string]any{"text": map[string]any{"content": s}}
}

func toNamedOptions(value any) []any {
	var names []string
	switch v := value.(type) {
	case []string:
		names = v
	case []any:
		for _, item := range v {
			names = append(names, stringify(item))
		}
	default:
		names = []string{stringify(value)}
	}
	opts := make([]any, 0, len(names))
	for _, n := range names {
		opts = append(opts, map[string]any{"name": n})
	}
	return opts
}

// parseDateStart normalizes date input to an RFC 3339 start timestamp.
// Accepted: time.Time, full RFC 3339, local datetimes without zone, and bare
// dates.
func parseDateStart(value any) (string, bool) {
	if t, ok := value.(time.Time); ok {
		return t.Format(time.RFC3339), true
	}
	s, ok := value.(string)
	if !ok {
		return "", false
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(time.RFC3339), true
		}
	}
	return "", false
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func toNumber(value any) float64 {
	switch v := value.(type) {
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case float64:
		return v
	case float32:
		return float64(v)
	case string:
		f, _ := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f
	default:
		return 0
	}
}

func toBool(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	default:
		return false
	}
}

func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	switch v := value.(type) {
	case string:
		return v == ""
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	default:
		return false
	}
}

func sortedKeys(s Schema) []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedAnyKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
