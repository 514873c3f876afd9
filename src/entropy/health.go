package entropy

import (
	"encoding/binary"
	"io"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// Health is a concurrency-safe snapshot of the entropy source's last known
// state, maintained by CheckSource and PeriodicCheck.
type Health struct {
	mu            sync.RWMutex
	ok            bool
	lastErr       string
	lastCheckedAt time.Time
	lastSample32  uint32
	repeatCount32 int
}

func NewHealth() *Health { return &Health{} }

func (h *Health) Set(ok bool, errMsg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ok = ok
	h.lastErr = errMsg
	h.lastCheckedAt = time.Now()
}

func (h *Health) Snapshot() (ok bool, errMsg string, t time.Time) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.ok, h.lastErr, h.lastCheckedAt
}

// CheckSource performs a lightweight sanity check against r. It cannot prove
// randomness, but it catches a stuck or truncated source before it silently
// degrades every identifier generated from it.
func CheckSource(r io.Reader, h *Health) error {
	const sampleBytes = 256
	buf := make([]byte, sampleBytes)

	if err := ReadFrom(r, buf); err != nil {
		return err
	}

	if allIdentical(buf) {
		return errors.New("entropy source appears stuck (all sampled bytes identical)")
	}

	words, repeats, last := repeatingWords32(buf)
	if words > 1 && repeats > (words-1)*3/4 {
		return errors.New("entropy source appears stuck (32-bit words repeating excessively)")
	}
	if h != nil && words > 0 {
		h.mu.Lock()
		h.lastSample32 = last
		h.repeatCount32 = 0
		h.mu.Unlock()
	}

	if n := distinctValues(buf); n < 8 {
		return errors.Errorf("entropy sample has too few distinct byte values (%d); suspicious", n)
	}

	return nil
}

// PeriodicCheck samples r every interval and records the outcome in h.
// 20 identical 32-bit reads in a row is astronomically unlikely for a healthy
// source and marks it unhealthy.
func PeriodicCheck(r io.Reader, h *Health, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	var buf [4]byte
	for range ticker.C {
		if err := ReadFrom(r, buf[:]); err != nil {
			h.Set(false, err.Error())
			continue
		}

		w := binary.BigEndian.Uint32(buf[:])

		h.mu.Lock()
		if w == h.lastSample32 {
			h.repeatCount32++
		} else {
			h.repeatCount32 = 0
		}
		h.lastSample32 = w

		if h.repeatCount32 >= 20 {
			h.ok = false
			h.lastErr = "entropy source appears stuck (repeating identical 32-bit outputs)"
			h.lastCheckedAt = time.Now()
			h.mu.Unlock()
			continue
		}

		h.ok = true
		h.lastErr = ""
		h.lastCheckedAt = time.Now()
		h.mu.Unlock()
	}
}

func allIdentical(buf []byte) bool {
	for i := 1; i < len(buf); i++ {
		if buf[i] != buf[0] {
			return false
		}
	}
	return true
}

// repeatingWords32 walks buf as big-endian 32-bit words and counts
// consecutive repeats. Returns the word count, repeat count and last word.
func repeatingWords32(buf []byte) (words, repeats int, last uint32) {
	var prev uint32
	for i := 0; i+4 <= len(buf); i += 4 {
		w := binary.BigEndian.Uint32(buf[i : i+4])
		if words > 0 && w == prev {
			repeats++
		}
		prev = w
		words++
	}
	return words, repeats, prev
}

func distinctValues(buf []byte) int {
	var seen [256]bool
	n := 0
	for _, b := range buf {
		if !seen[b] {
			seen[b] = true
			n++
		}
	}
	return n
}
