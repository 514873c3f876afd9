package api

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/clearwood/uuidgen/src/entropy"
	"github.com/clearwood/uuidgen/src/uuid"
)

type Handlers struct {
	health *entropy.Health
	log    *zap.SugaredLogger
}

func NewHandlers(h *entropy.Health, log *zap.SugaredLogger) *Handlers {
	return &Handlers{health: h, log: log}
}

func (h *Handlers) entropyOK(c *gin.Context) bool {
	if h.health == nil {
		respondErr(c, http.StatusServiceUnavailable, "Entropy unhealthy: missing health monitor")
		return false
	}

	ok, msg, _ := h.health.Snapshot()
	if ok {
		return true
	}

	respondErr(c, http.StatusServiceUnavailable, "Entropy unhealthy: "+msg)
	return false
}

/*
handle enforces:
1. Entropy health gate
2. Outcome computation
3. Error handling
4. Request id generation ONLY after success
5. JSON vs plaintext response
*/
func (h *Handlers) handle(
	c *gin.Context,
	work func() (text string, payload gin.H, status int, errMsg string),
) {
	if !h.entropyOK(c) {
		return
	}

	text, payload, status, errMsg := work()
	if errMsg != "" {
		respondErr(c, status, errMsg)
		return
	}

	requestID, err := uuid.NewV4()
	if err != nil {
		h.reportEntropyFailure("request id", err)
		respondErr(c, http.StatusInternalServerError, "Error generating request id.")
		return
	}

	respondOK(c, text, payload, requestID.String())
}

// reportEntropyFailure flags the monitor and counts the failure. Entropy
// faults are never masked; callers still see the error response.
func (h *Handlers) reportEntropyFailure(what string, err error) {
	entropyFailuresTotal.Inc()
	if h.health != nil {
		h.health.Set(false, "error fetching random bytes for "+what+": "+err.Error())
	}
	if h.log != nil {
		h.log.Error(err)
	}
}

func APIKeyFromEnv() string { return os.Getenv("API_KEY") }

func CheckHeader(headerName, expectedValue string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Auth disabled if not configured
		if expectedValue == "" {
			c.Next()
			return
		}

		if c.GetHeader(headerName) != expectedValue {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}
