// Package uuid generates and manipulates RFC 4122/9562 version 4 identifiers:
// secure random generation, canonical textual encoding and decoding,
// version/variant extraction and equality. All operations are pure functions
// of their inputs; the package holds no process-wide mutable state.
package uuid

import (
	"encoding/hex"
	"io"

	"github.com/pkg/errors"

	"github.com/clearwood/uuidgen/src/entropy"
)

// Size is the width of an identifier in bytes.
const Size = 16

// EncodedLen is the length of the canonical textual form: 32 lowercase hex
// digits grouped 8-4-4-4-12 with four hyphens.
const EncodedLen = 36

// UUID is a version 4 identifier: a flat 16-byte value with the version
// nibble of byte 6 and the top two bits of byte 8 carrying the fixed
// version/variant pattern. Copying the value copies the identifier.
type UUID [Size]byte

// NewV4 generates a fresh identifier from the OS entropy source: 16 random
// bytes with the version field (bits 48-51) forced to 0100 and the variant
// field (bits 64-65) forced to 10. The remaining 122 bits are untouched.
// An entropy failure is returned immediately, never retried.
func NewV4() (UUID, error) {
	return newV4From(entropy.Source())
}

func newV4From(r io.Reader) (UUID, error) {
	var u UUID
	if err := entropy.ReadFrom(r, u[:]); err != nil {
		return UUID{}, err
	}

	u[6] = (u[6] & 0x0f) | 0x40
	u[8] = (u[8] & 0x3f) | 0x80
	return u, nil
}

// FromBytes copies b into an identifier. Only the length is validated;
// version and variant bits are preserved exactly as supplied, never
// re-imposed. Any length other than 16 wraps ErrInvalidParameter.
func FromBytes(b []byte) (UUID, error) {
	var u UUID
	if len(b) != Size {
		return u, errors.Wrapf(ErrInvalidParameter, "identifier must be %d bytes, got %d", Size, len(b))
	}
	copy(u[:], b)
	return u, nil
}

// Parse decodes the canonical 8-4-4-4-12 form. Hex digits may be upper or
// lower case; the hyphen positions are fixed. Failures wrap
// ErrInvalidParameter.
func Parse(s string) (UUID, error) {
	if len(s) != EncodedLen {
		return UUID{}, errors.Wrapf(ErrInvalidParameter, "canonical form is %d characters, got %d", EncodedLen, len(s))
	}
	for _, i := range []int{8, 13, 18, 23} {
		if s[i] != '-' {
			return UUID{}, errors.Wrapf(ErrInvalidParameter, "expected hyphen at position %d", i)
		}
	}

	var u UUID
	hex32 := s[0:8] + s[9:13] + s[14:18] + s[19:23] + s[24:36]
	if _, err := hex.Decode(u[:], []byte(hex32)); err != nil {
		return UUID{}, errors.Wrapf(ErrInvalidParameter, "invalid hex digit: %v", err)
	}
	return u, nil
}

// Bytes returns the identifier as a fresh 16-byte slice.
func (u UUID) Bytes() []byte {
	return u[:]
}

// Version reports the 4-bit version field (bits 48-51) as an integer 0-15.
// A pure bit read; it makes no validity judgment.
func (u UUID) Version() uint8 {
	return u[6] >> 4
}

// Variant classifies the identifier per the RFC 4122 variant encoding in the
// top bits of byte 8: 0 for NCS (0xxx), 2 for RFC 4122 (10xx), 6 for
// Microsoft (110x), 7 for the reserved future family (111x).
func (u UUID) Variant() uint8 {
	switch {
	case u[8]&0x80 == 0:
		return 0
	case u[8]&0xc0 == 0x80:
		return 2
	case u[8]&0xe0 == 0xc0:
		return 6
	default:
		return 7
	}
}

// Equal reports byte-wise equality. Identifiers are not secrets, so no
// timing-safe comparison is needed.
func (u UUID) Equal(other UUID) bool {
	return u == other
}

// EncodeCanonical writes the 36-byte canonical lowercase form into dst.
// When dst is shorter than EncodedLen it wraps ErrBufferTooSmall and writes
// nothing.
func (u UUID) EncodeCanonical(dst []byte) error {
	if len(dst) < EncodedLen {
		return errors.Wrapf(ErrBufferTooSmall, "need %d bytes, have %d", EncodedLen, len(dst))
	}

	hex.Encode(dst[0:8], u[0:4])
	dst[8] = '-'
	hex.Encode(dst[9:13], u[4:6])
	dst[13] = '-'
	hex.Encode(dst[14:18], u[6:8])
	dst[18] = '-'
	hex.Encode(dst[19:23], u[8:10])
	dst[23] = '-'
	hex.Encode(dst[24:36], u[10:16])
	return nil
}

// String renders the canonical lowercase hyphenated form,
// e.g. 550e8400-e29b-41d4-a716-446655440000.
func (u UUID) String() string {
	var buf [EncodedLen]byte
	_ = u.EncodeCanonical(buf[:])
	return string(buf[:])
}
