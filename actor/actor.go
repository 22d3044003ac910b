package actor

import (
	"bytes"
	"encoding/hex"
	"errors"

	"github.com/google/uuid"
)

// ErrEmpty is returned when an identity is constructed from zero bytes.
var ErrEmpty = errors.New("actor: identity must be non-empty")

// ID is a replica identity. The zero value is the empty (invalid) identity.
type ID struct {
	b []byte
}

// Random returns a new 16-byte random identity.
func Random() ID {
	u := uuid.New()
	return ID{b: u[:]}
}

// FromBytes copies raw into a new identity. Raw must be non-empty.
func FromBytes(raw []byte) (ID, error) {
	if len(raw) == 0 {
		return ID{}, ErrEmpty
	}
	b := make([]byte, len(raw))
	copy(b, raw)
	return ID{b: b}, nil
}

// FromHex parses a hexadecimal identity string.
func FromHex(s string) (ID, error) {
	if s == "" {
		return ID{}, ErrEmpty
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return ID{}, err
	}
	return ID{b: raw}, nil
}

// Bytes returns a copy of the identity's raw bytes.
func (id ID) Bytes() []byte {
	if id.b == nil {
		return nil
	}
	b := make([]byte, len(id.b))
	copy(b, id.b)
	return b
}

// String returns the hexadecimal form of the identity.
func (id ID) String() string {
	return hex.EncodeToString(id.b)
}

// IsZero reports whether the identity is empty.
func (id ID) IsZero() bool {
	return len(id.b) == 0
}

// Equal reports whether two identities hold the same bytes.
func (id ID) Equal(other ID) bool {
	return bytes.Equal(id.b, other.b)
}

// Cmp orders identities lexicographically by their raw bytes.
func (id ID) Cmp(other ID) int {
	return bytes.Compare(id.b, other.b)
}
