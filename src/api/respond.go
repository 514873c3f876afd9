package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response format follows the Accept header, negotiated through gin:
// identifier payloads go out as JSON when the caller asks for it, otherwise
// as plain text. Identifiers are pure ASCII, so the text form needs no
// escaping.

func respondErr(c *gin.Context, status int, msg string) {
	switch c.NegotiateFormat(gin.MIMEPlain, gin.MIMEJSON) {
	case gin.MIMEJSON:
		c.JSON(status, gin.H{"error": msg})
	default:
		c.String(status, msg)
	}
}

// respondOK tags every successful response with the request id so callers
// can correlate text and JSON output the same way.
func respondOK(c *gin.Context, text string, payload gin.H, requestID string) {
	switch c.NegotiateFormat(gin.MIMEPlain, gin.MIMEJSON) {
	case gin.MIMEJSON:
		out := gin.H{"request_id": requestID}
		for k, v := range payload {
			out[k] = v
		}
		c.JSON(http.StatusOK, out)
	default:
		c.String(http.StatusOK, text+"\nrequest_id: "+requestID)
	}
}
