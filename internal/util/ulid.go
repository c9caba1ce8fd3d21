package util

import (
	"math/rand"
	"regexp"
	"time"

	"github.com/oklog/ulid/v2"
)

var validULID = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)

// NewULID generates a new ULID string for use as a request identifier.
func NewULID() string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// IsValidULID reports whether s is a well-formed ULID (26 characters of
// Crockford's Base32). Used to reject malformed identifiers before they
// reach the store.
func IsValidULID(s string) bool {
	return len(s) == 26 && validULID.MatchString(s)
}
