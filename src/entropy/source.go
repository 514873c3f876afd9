// Package entropy provides the OS-backed cryptographically secure random
// source used for identifier generation, plus a lightweight health monitor
// for service deployments.
//
// The backend is crypto/rand.Reader (getrandom(2) on Linux, the equivalent
// getentropy/arc4random interfaces elsewhere). There is no fallback source:
// an entropy fault is a correctness concern, so a failed read is reported
// immediately rather than retried or masked.
package entropy

import (
	"crypto/rand"
	"io"

	"github.com/pkg/errors"
)

// ErrUnavailable marks a failed or short read from the random source.
var ErrUnavailable = errors.New("entropy source unavailable")

// Source returns the OS CSPRNG stream. It is safe for any number of
// concurrent readers; wrapping it in a serializing lock would only create
// contention.
func Source() io.Reader { return rand.Reader }

// Read fills p from the OS CSPRNG.
func Read(p []byte) error { return ReadFrom(Source(), p) }

// ReadFrom fills p from r. A failed or short read wraps ErrUnavailable with
// the underlying cause. No retry is attempted; that policy belongs to the
// caller, if anywhere.
func ReadFrom(r io.Reader, p []byte) error {
	if _, err := io.ReadFull(r, p); err != nil {
		return errors.Wrapf(ErrUnavailable, "read %d random bytes: %v", len(p), err)
	}
	return nil
}
