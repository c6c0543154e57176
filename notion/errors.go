package notion

import "errors"

var (
	// ErrUnavailable marks transient transport or remote-side failures.
	// Read paths degrade on it; write paths surface it.
	ErrUnavailable = errors.New("notion: service unavailable")

	// ErrPageNotFound is returned for an unknown record id.
	ErrPageNotFound = errors.New("notion: page not found")

	// ErrSchemaUnavailable means the collection's schema could not be
	// retrieved at all (network error, invalid id, revoked credential).
	ErrSchemaUnavailable = errors.New("notion: schema unavailable")

	// ErrInvalidSchema means the schema was retrieved but is unusable for
	// appointments: it is a configuration error, not a transient failure.
	ErrInvalidSchema = errors.New("notion: invalid schema")
)
