package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the error format of the JSON endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

var errInvalidID = errors.New("invalid book ID")

// --- Error Response Helpers ---
//
// HTML pages answer failures with plain text, mirroring what a browser shows
// for a bare error status.

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.String(http.StatusBadRequest, message)
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.String(http.StatusNotFound, resource+" not found")
}

// respondConflict sends a 409 Conflict response.
func respondConflict(c *gin.Context, message string) {
	c.String(http.StatusConflict, message)
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.String(http.StatusInternalServerError, "internal server error")
}

// --- Form Parsing ---

// requiredField trims a submitted value and reports whether it is usable.
// Absent and blank values are both treated as missing.
func requiredField(value string, present bool) (string, bool) {
	value = strings.TrimSpace(value)
	return value, present && value != ""
}

// parseBookID parses a book ID submitted in a form or query string.
func parseBookID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}
	return uint(id), nil
}
