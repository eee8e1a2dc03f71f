// Package ident handles the binary form of the identifiers used across the
// scheduler. Ids travel the wire as canonical hyphenated UUID strings and are
// persisted as fixed 16-byte values.
package ident

import (
	"fmt"

	"github.com/google/uuid"
)

// Size is the stored width of every identifier.
const Size = 16

// New returns a fresh random identifier in binary form.
func New() []byte {
	id := uuid.New()
	return id[:]
}

// Parse converts a canonical UUID string into its binary form.
func Parse(s string) ([]byte, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return id[:], nil
}

// String converts a stored binary identifier back to its canonical form.
// Malformed values (wrong width) render as an empty string rather than panic;
// they can only come from a corrupted row.
func String(b []byte) string {
	if len(b) != Size {
		return ""
	}
	id, err := uuid.FromBytes(b)
	if err != nil {
		return ""
	}
	return id.String()
}

// MustParse is Parse for fixtures and seeds where the input is a literal.
func MustParse(s string) []byte {
	b, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("ident: bad literal %q: %v", s, err))
	}
	return b
}
