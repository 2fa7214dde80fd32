// Package requestid issues the identifiers that tie a request's log lines
// together.
package requestid

import (
	"github.com/google/uuid"
)

// New returns a time-ordered UUIDv7 string so ids sort by arrival. It falls
// back to a random UUIDv4 when the v7 generator fails.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Valid reports whether s is a well-formed UUID of any version.
func Valid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// Resolve returns the canonical form of a client-supplied id, or a fresh id
// when the header is empty or malformed.
func Resolve(header string) string {
	parsed, err := uuid.Parse(header)
	if err != nil {
		return New()
	}
	return parsed.String()
}
