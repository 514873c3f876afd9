package uuid

import (
	"github.com/pkg/errors"

	"github.com/clearwood/uuidgen/src/entropy"
)

// Status is the closed set of integer codes reported across the foreign-call
// boundary. The numeric values are a frozen contract: callers on the other
// side of the boundary hard-code them, so a value's meaning must never
// change and new codes must use previously unused values.
type Status int32

const (
	StatusOK               Status = 0
	StatusEntropyFailure   Status = 1
	StatusInvalidParameter Status = 2
	StatusBufferTooSmall   Status = 3
	StatusUnknown          Status = 99
)

// Sentinel errors for the failure kinds the library reports. Match with
// errors.Is; StatusOf collapses them onto the numeric contract.
var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrBufferTooSmall   = errors.New("output buffer too small")
)

// StatusOf maps an error onto the boundary status codes. Anything
// unrecognized maps to StatusUnknown so the boundary never reports a value
// outside the closed set.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, entropy.ErrUnavailable):
		return StatusEntropyFailure
	case errors.Is(err, ErrInvalidParameter):
		return StatusInvalidParameter
	case errors.Is(err, ErrBufferTooSmall):
		return StatusBufferTooSmall
	default:
		return StatusUnknown
	}
}

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusEntropyFailure:
		return "entropy failure"
	case StatusInvalidParameter:
		return "invalid parameter"
	case StatusBufferTooSmall:
		return "buffer too small"
	default:
		return "unknown error"
	}
}
