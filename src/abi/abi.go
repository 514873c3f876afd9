// Package abi implements the foreign-call boundary contract at the raw
// pointer level: argument validation, buffer-capacity rules, status-code
// mapping and panic containment. The cgo shims in ffi/ are thin type
// conversions over this package, which keeps the contract itself testable
// from pure Go.
//
// Every function here follows the same rules: all buffers are caller-owned,
// nothing is allocated on the caller's behalf, no reference to caller memory
// outlives the call, and no input may cause a fault. Callers must not read
// output buffers unless the returned status is StatusOK.
package abi

import (
	"unsafe"

	"github.com/clearwood/uuidgen/src/uuid"
)

// StringBufLen is the minimum capacity for a ToString output buffer:
// 36 canonical characters plus a NUL terminator.
const StringBufLen = uuid.EncodedLen + 1

// GenerateV4 writes a freshly generated identifier into the 16-byte buffer
// at out.
func GenerateV4(out unsafe.Pointer) (st uuid.Status) {
	defer contain(&st)

	if out == nil {
		return uuid.StatusInvalidParameter
	}

	u, err := uuid.NewV4()
	if err != nil {
		return uuid.StatusOf(err)
	}

	copy(unsafe.Slice((*byte)(out), uuid.Size), u.Bytes())
	return uuid.StatusOK
}

// ToString renders the identifier at in into the character buffer at out,
// NUL-terminated. capacity is the caller-stated size of the out buffer;
// nothing is written unless capacity >= StringBufLen, and no write ever
// lands past capacity.
func ToString(in, out unsafe.Pointer, capacity uint64) (st uuid.Status) {
	defer contain(&st)

	if in == nil || out == nil {
		return uuid.StatusInvalidParameter
	}
	if capacity < StringBufLen {
		return uuid.StatusBufferTooSmall
	}

	u, err := uuid.FromBytes(unsafe.Slice((*byte)(in), uuid.Size))
	if err != nil {
		return uuid.StatusOf(err)
	}

	dst := unsafe.Slice((*byte)(out), StringBufLen)
	if err := u.EncodeCanonical(dst[:uuid.EncodedLen]); err != nil {
		return uuid.StatusOf(err)
	}
	dst[uuid.EncodedLen] = 0
	return uuid.StatusOK
}

// GetInfo writes the version and variant fields of the identifier at in into
// the single-byte buffers at outVersion and outVariant.
func GetInfo(in, outVersion, outVariant unsafe.Pointer) (st uuid.Status) {
	defer contain(&st)

	if in == nil || outVersion == nil || outVariant == nil {
		return uuid.StatusInvalidParameter
	}

	u, err := uuid.FromBytes(unsafe.Slice((*byte)(in), uuid.Size))
	if err != nil {
		return uuid.StatusOf(err)
	}

	*(*byte)(outVersion) = u.Version()
	*(*byte)(outVariant) = u.Variant()
	return uuid.StatusOK
}

// Compare writes 1 into the byte at outEqual when the identifiers at a and b
// match byte for byte, 0 otherwise.
func Compare(a, b, outEqual unsafe.Pointer) (st uuid.Status) {
	defer contain(&st)

	if a == nil || b == nil || outEqual == nil {
		return uuid.StatusInvalidParameter
	}

	ua, err := uuid.FromBytes(unsafe.Slice((*byte)(a), uuid.Size))
	if err != nil {
		return uuid.StatusOf(err)
	}
	ub, err := uuid.FromBytes(unsafe.Slice((*byte)(b), uuid.Size))
	if err != nil {
		return uuid.StatusOf(err)
	}

	if ua.Equal(ub) {
		*(*byte)(outEqual) = 1
	} else {
		*(*byte)(outEqual) = 0
	}
	return uuid.StatusOK
}

// contain converts a panic into StatusUnknown. The boundary must never let a
// fault propagate into a foreign runtime.
func contain(st *uuid.Status) {
	if r := recover(); r != nil {
		*st = uuid.StatusUnknown
	}
}
