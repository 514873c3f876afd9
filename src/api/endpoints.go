package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clearwood/uuidgen/src/uuid"
)

// GenerateUUID returns a freshly generated version 4 identifier.
func (h *Handlers) GenerateUUID(c *gin.Context) {
	h.handle(c, func() (string, gin.H, int, string) {
		u, err := uuid.NewV4()
		if err != nil {
			h.reportEntropyFailure("identifier", err)
			return "", nil, http.StatusInternalServerError, "Error generating identifier."
		}

		generatedTotal.Inc()
		s := u.String()
		return s, gin.H{"uuid": s, "version": u.Version(), "variant": u.Variant()}, 0, ""
	})
}

// UUIDInfo reports the version and variant fields of a caller-supplied
// identifier. A pure bit read: any parseable identifier is accepted, not
// only v4.
func (h *Handlers) UUIDInfo(c *gin.Context) {
	value := c.Query("uuid")

	h.handle(c, func() (string, gin.H, int, string) {
		u, err := uuid.Parse(value)
		if err != nil {
			return "", nil, http.StatusBadRequest, "Invalid uuid parameter."
		}

		text := fmt.Sprintf("version: %d\nvariant: %d", u.Version(), u.Variant())
		return text, gin.H{
			"uuid":    u.String(),
			"version": u.Version(),
			"variant": u.Variant(),
		}, 0, ""
	})
}

// CompareUUIDs reports byte-wise equality of two identifiers.
func (h *Handlers) CompareUUIDs(c *gin.Context) {
	aStr := c.Query("a")
	bStr := c.Query("b")

	h.handle(c, func() (string, gin.H, int, string) {
		a, err := uuid.Parse(aStr)
		if err != nil {
			return "", nil, http.StatusBadRequest, "Invalid a parameter."
		}

		b, err := uuid.Parse(bStr)
		if err != nil {
			return "", nil, http.StatusBadRequest, "Invalid b parameter."
		}

		equal := a.Equal(b)
		text := "Not equal"
		if equal {
			text = "Equal"
		}

		return text, gin.H{
			"a":     a.String(),
			"b":     b.String(),
			"equal": equal,
		}, 0, ""
	})
}

func (h *Handlers) Health(c *gin.Context) {
	if h.health == nil {
		respondErr(c, http.StatusServiceUnavailable, "UNHEALTHY: missing health monitor")
		return
	}

	ok, msg, t := h.health.Snapshot()
	if ok {
		respondOK(c,
			fmt.Sprintf("OK (last checked %s)", t.Format(time.RFC3339)),
			gin.H{"ok": true, "last_checked": t.Format(time.RFC3339)},
			"health-check",
		)
		return
	}

	respondErr(c, http.StatusServiceUnavailable,
		fmt.Sprintf("UNHEALTHY: %s (last checked %s)", msg, t.Format(time.RFC3339)))
}
