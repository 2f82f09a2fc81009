package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/fxamacker/cbor/v2"
	"github.com/labstack/echo/v5"

	applog "github.com/janisto/echo-sortable/internal/platform/logging"
	"github.com/janisto/echo-sortable/internal/platform/validate"
)

// writeProblem writes problem as application/problem+json (RFC 9457), or as
// application/problem+cbor when the client prefers CBOR.
func writeProblem(w http.ResponseWriter, r *http.Request, problem ProblemDetails) {
	ensureVary(w.Header(), "Origin", "Accept")

	if prefersCBOR(r.Header.Get("Accept")) {
		w.Header().Set("Content-Type", "application/problem+cbor")
		w.WriteHeader(problem.Status)
		_ = cbor.NewEncoder(w).Encode(problem)
		return
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(problem.Status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(problem)
}

func committed(c *echo.Context) bool {
	resp, err := echo.UnwrapResponse(c.Response())
	return err == nil && resp.Committed
}

// problemFor maps a handler error to the Problem Details sent to the client.
// Anything unrecognised becomes a bare 500 so internals never leak.
func problemFor(err error, method string) ProblemDetails {
	var (
		pd *ProblemDetails
		ve *validate.ValidationError
		he *echo.HTTPError
	)

	switch {
	case errors.As(err, &pd):
		return *pd
	case errors.As(err, &ve):
		return *Error422(ve.Message, fieldErrors(ve)...)
	case errors.Is(err, echo.ErrNotFound):
		return *Error404("resource not found")
	case errors.Is(err, echo.ErrMethodNotAllowed):
		return *NewError(http.StatusMethodNotAllowed, fmt.Sprintf("method %s not allowed", method))
	case errors.As(err, &he):
		return *NewError(he.Code, he.Message)
	default:
		return *Error500("internal server error")
	}
}

func fieldErrors(ve *validate.ValidationError) []ErrorDetail {
	if len(ve.Fields) == 0 {
		return nil
	}
	out := make([]ErrorDetail, len(ve.Fields))
	for i, f := range ve.Fields {
		out[i] = ErrorDetail{Message: f.Message, Location: f.Field, Value: f.Value}
	}
	return out
}

// NewHTTPErrorHandler returns an Echo HTTPErrorHandler that produces RFC 9457
// Problem Details. Server errors are logged with the request logger.
func NewHTTPErrorHandler() echo.HTTPErrorHandler {
	return func(c *echo.Context, err error) {
		if committed(c) {
			return
		}

		problem := problemFor(err, c.Request().Method)
		if problem.Status >= http.StatusInternalServerError {
			applog.LogError(c.Request().Context(), "request failed", err,
				slog.Int("status", problem.Status),
				slog.String("route", c.Path()),
			)
		}
		writeProblem(c.Response(), c.Request(), problem)
	}
}

// Recoverer returns Echo middleware that turns panics into a 500 Problem
// Details response. http.ErrAbortHandler is re-panicked so net/http can
// abort the connection.
func Recoverer() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				applog.LogError(c.Request().Context(), "panic recovered", nil,
					slog.Any("panic", rec),
					slog.String("stack", string(debug.Stack())),
				)
				if committed(c) {
					return
				}
				writeProblem(c.Response(), c.Request(), *Error500("internal server error"))
			}()
			return next(c)
		}
	}
}
