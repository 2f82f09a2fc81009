package middleware

import (
	"strings"

	"github.com/labstack/echo/v5"
)

// Vary returns Echo middleware that lists headers in the Vary response
// header (RFC 9110 Section 12.5.5). With no arguments it adds Accept, which
// selects between JSON and CBOR. Headers already present are not repeated.
func Vary(headers ...string) echo.MiddlewareFunc {
	if len(headers) == 0 {
		headers = []string{"Accept"}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			h := c.Response().Header()
			for _, name := range headers {
				if !hasVary(h.Values("Vary"), name) {
					h.Add("Vary", name)
				}
			}
			return next(c)
		}
	}
}

func hasVary(values []string, name string) bool {
	for _, v := range values {
		for part := range strings.SplitSeq(v, ",") {
			if strings.EqualFold(strings.TrimSpace(part), name) {
				return true
			}
		}
	}
	return false
}
