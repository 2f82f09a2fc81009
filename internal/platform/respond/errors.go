package respond

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v5"
)

// ProblemDetails represents an RFC 9457 Problem Details response.
type ProblemDetails struct {
	Type     string        `json:"type"               cbor:"type"               example:"about:blank"`
	Title    string        `json:"title"              cbor:"title"              example:"Unprocessable Entity"`
	Status   int           `json:"status"             cbor:"status"             example:"422"`
	Detail   string        `json:"detail,omitempty"   cbor:"detail,omitempty"   example:"validation failed"`
	Instance string        `json:"instance,omitempty" cbor:"instance,omitempty" example:"/reorder-items"`
	Errors   []ErrorDetail `json:"errors,omitempty"   cbor:"errors,omitempty"`
}

// ErrorDetail represents a single field-level error within a Problem Details response.
type ErrorDetail struct {
	Message  string `json:"message"            cbor:"message"            example:"position is required"`
	Location string `json:"location,omitempty" cbor:"location,omitempty" example:"query.position"`
	Value    string `json:"value,omitempty"    cbor:"value,omitempty"    example:""`
}

// Error implements the error interface.
func (p *ProblemDetails) Error() string {
	if p.Detail != "" {
		return fmt.Sprintf("%d %s: %s", p.Status, p.Title, p.Detail)
	}
	return fmt.Sprintf("%d %s", p.Status, p.Title)
}

// StatusCode implements echo.HTTPStatusCoder for Echo's status code detection.
func (p *ProblemDetails) StatusCode() int {
	return p.Status
}

// NewError creates a ProblemDetails error with the given status code and detail message.
func NewError(status int, detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:   "about:blank",
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	}
}

// Error400 returns a 400 Bad Request ProblemDetails error.
func Error400(detail string) *ProblemDetails {
	return NewError(http.StatusBadRequest, detail)
}

// Error404 returns a 404 Not Found ProblemDetails error.
func Error404(detail string) *ProblemDetails {
	return NewError(http.StatusNotFound, detail)
}

// Error422 returns a 422 Unprocessable Entity ProblemDetails error with field-level errors.
func Error422(detail string, fields ...ErrorDetail) *ProblemDetails {
	p := NewError(http.StatusUnprocessableEntity, detail)
	p.Errors = fields
	return p
}

// Error500 returns a 500 Internal Server Error ProblemDetails error.
func Error500(detail string) *ProblemDetails {
	return NewError(http.StatusInternalServerError, detail)
}

// LegacyError is the {"error": "..."} body the reorder endpoint answers with.
// The browser client only checks the status, but the shape is kept for
// existing consumers.
type LegacyError struct {
	Error string `json:"error" example:"Item not found"`
}

// Legacy writes a LegacyError body with the given status.
func Legacy(c *echo.Context, status int, message string) error {
	return c.JSON(status, LegacyError{Error: message})
}
