package respond

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/labstack/echo/v5"

	applog "github.com/janisto/echo-sortable/internal/platform/logging"
	"github.com/janisto/echo-sortable/internal/platform/validate"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validate.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler()
	return e
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) ProblemDetails {
	t.Helper()
	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	return problem
}

// --- ProblemDetails constructors ---

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name   string
		fn     func(string) *ProblemDetails
		status int
	}{
		{"Error400", Error400, http.StatusBadRequest},
		{"Error404", Error404, http.StatusNotFound},
		{"Error500", Error500, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.fn("detail")
			if p.Status != tt.status || p.StatusCode() != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, p.Status)
			}
			if p.Title != http.StatusText(tt.status) {
				t.Fatalf("expected title %q, got %q", http.StatusText(tt.status), p.Title)
			}
			if p.Type != "about:blank" {
				t.Fatalf("expected type about:blank, got %q", p.Type)
			}
		})
	}
}

func TestError422WithFields(t *testing.T) {
	p := Error422("validation failed", ErrorDetail{Message: "position is required", Location: "query.position"})
	if p.Status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", p.Status)
	}
	if len(p.Errors) != 1 || p.Errors[0].Location != "query.position" {
		t.Fatalf("unexpected errors: %+v", p.Errors)
	}
}

func TestProblemDetailsError(t *testing.T) {
	var err error = Error404("item not found")
	if err.Error() != "404 Not Found: item not found" {
		t.Fatalf("unexpected Error(): %s", err.Error())
	}

	var pd *ProblemDetails
	if !errors.As(err, &pd) {
		t.Fatal("expected ProblemDetails to be extractable via errors.As")
	}

	bare := &ProblemDetails{Type: "about:blank", Title: "Not Found", Status: 404}
	if bare.Error() != "404 Not Found" {
		t.Fatalf("unexpected Error() without detail: %s", bare.Error())
	}
}

// --- content negotiation ---

func TestPrefersCBOR(t *testing.T) {
	tests := []struct {
		name       string
		accept     string
		expectCBOR bool
	}{
		{"empty accept defaults to JSON", "", false},
		{"wildcard defaults to JSON", "*/*", false},
		{"explicit CBOR", "application/cbor", true},
		{"equal q-values default to JSON", "application/json, application/cbor", false},
		{"CBOR preferred with quality", "application/json;q=0.9, application/cbor;q=1.0", true},
		{"problem+cbor explicit", "application/problem+cbor", true},
		{"CBOR excluded with q=0", "application/cbor;q=0, application/json", false},
		{"q-value wins over specificity", "application/problem+cbor;q=0.1, application/json;q=1.0", false},
		{"specificity breaks ties", "application/json;q=0.8, application/problem+cbor;q=0.8", true},
		{"malformed quality defaults to 1.0", "application/cbor;q=invalid", true},
		{"case insensitive", "Application/CBOR", true},
		{"structured suffix +cbor", "application/*+cbor", true},
		{"no matching type", "text/html, image/png", false},
		{"type without subtype", "application", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := prefersCBOR(tt.accept); got != tt.expectCBOR {
				t.Fatalf("prefersCBOR(%q) = %v, want %v", tt.accept, got, tt.expectCBOR)
			}
		})
	}
}

func TestEnsureVary(t *testing.T) {
	h := make(http.Header)
	h.Set("Vary", "Origin, Accept-Encoding")

	ensureVary(h, "Origin", "Accept", "Accept")

	values := h.Values("Vary")
	if len(values) != 2 {
		t.Fatalf("expected 2 Vary values, got %v", values)
	}
	if values[1] != "Accept" {
		t.Fatalf("expected Accept appended, got %v", values)
	}
}

func TestNegotiate(t *testing.T) {
	e := newTestEcho()
	e.GET("/items", func(c *echo.Context) error {
		return Negotiate(c, http.StatusOK, map[string]int{"total": 3})
	})

	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected JSON, got %q", ct)
	}

	req = httptest.NewRequest(http.MethodGet, "/items", nil)
	req.Header.Set("Accept", "application/cbor")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if ct := rec.Header().Get("Content-Type"); ct != "application/cbor" {
		t.Fatalf("expected application/cbor, got %q", ct)
	}
	var got map[string]int
	if err := cbor.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to unmarshal CBOR: %v", err)
	}
	if got["total"] != 3 {
		t.Fatalf("expected total 3, got %v", got)
	}
}

func TestNegotiateCBOR_MarshalError(t *testing.T) {
	e := newTestEcho()
	e.GET("/bad", func(c *echo.Context) error {
		return Negotiate(c, http.StatusOK, make(chan int))
	})

	req := httptest.NewRequest(http.MethodGet, "/bad", nil)
	req.Header.Set("Accept", "application/cbor")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

// --- legacy body ---

func TestLegacy(t *testing.T) {
	e := newTestEcho()
	e.POST("/reorder-items", func(c *echo.Context) error {
		return Legacy(c, http.StatusNotFound, "Item not found")
	})

	req := httptest.NewRequest(http.MethodPost, "/reorder-items", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != `{"error":"Item not found"}` {
		t.Fatalf("unexpected body %s", body)
	}
}

// --- HTTPErrorHandler ---

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		detail string
	}{
		{"problem details", Error404("item not found"), http.StatusNotFound, "item not found"},
		{"echo http error", echo.NewHTTPError(http.StatusBadRequest, "bad input"), http.StatusBadRequest, "bad input"},
		{"bare error", errors.New("database exploded"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho()
			e.GET("/test", func(c *echo.Context) error { return tt.err })

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rec.Code)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
				t.Fatalf("expected application/problem+json, got %q", ct)
			}
			if problem := decodeProblem(t, rec); problem.Detail != tt.detail {
				t.Fatalf("expected detail %q, got %q", tt.detail, problem.Detail)
			}
		})
	}
}

func TestHTTPErrorHandler_ValidationError(t *testing.T) {
	e := newTestEcho()

	type input struct {
		Position string `query:"position" validate:"required"`
	}
	e.POST("/test", func(c *echo.Context) error {
		var in input
		return c.Validate(&in)
	})

	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	problem := decodeProblem(t, rec)
	if len(problem.Errors) != 1 || problem.Errors[0].Location != "position" {
		t.Fatalf("unexpected errors: %+v", problem.Errors)
	}
}

func TestHTTPErrorHandler_RoutingErrors(t *testing.T) {
	e := newTestEcho()
	e.GET("/sortable-items", func(c *echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if problem := decodeProblem(t, rec); problem.Detail != "resource not found" {
		t.Fatalf("unexpected detail %q", problem.Detail)
	}

	req = httptest.NewRequest(http.MethodDelete, "/sortable-items", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
	if problem := decodeProblem(t, rec); problem.Detail != "method DELETE not allowed" {
		t.Fatalf("unexpected detail %q", problem.Detail)
	}
}

func TestHTTPErrorHandler_CBORResponse(t *testing.T) {
	e := newTestEcho()
	e.GET("/test", func(c *echo.Context) error { return Error404("item not found") })

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Accept", "application/cbor")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+cbor" {
		t.Fatalf("expected application/problem+cbor, got %q", ct)
	}
	var problem ProblemDetails
	if err := cbor.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("failed to unmarshal CBOR: %v", err)
	}
	if problem.Status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", problem.Status)
	}
	if vary := rec.Header().Values("Vary"); len(vary) < 2 {
		t.Fatalf("expected Origin and Accept in Vary, got %v", vary)
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := newTestEcho()
	e.GET("/test", func(c *echo.Context) error {
		_ = c.String(http.StatusOK, "partial")
		return errors.New("late failure")
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected committed 200 to survive, got %d", rec.Code)
	}
	if rec.Body.String() != "partial" {
		t.Fatalf("expected body untouched, got %q", rec.Body.String())
	}
}

func TestHTTPErrorHandler_LogsServerErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantLog bool
	}{
		{"plain error", errors.New("db exploded"), true},
		{"not found", Error404("missing"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))

			e := newTestEcho()
			e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
				return func(c *echo.Context) error {
					c.SetRequest(c.Request().WithContext(applog.WithLogger(c.Request().Context(), logger)))
					return next(c)
				}
			})
			e.GET("/fail", func(c *echo.Context) error { return tt.err })

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))

			logged := strings.Contains(buf.String(), "request failed")
			if logged != tt.wantLog {
				t.Fatalf("logged = %v, want %v (log: %s)", logged, tt.wantLog, buf.String())
			}
			if tt.wantLog && strings.Contains(rec.Body.String(), "db exploded") {
				t.Fatal("internal error leaked into response body")
			}
		})
	}
}

// --- Recoverer ---

func TestRecoverer(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"string panic", "boom"},
		{"error panic", errors.New("wrapped error")},
		{"non-error panic", 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho()
			e.Use(Recoverer())
			e.GET("/panic", func(c *echo.Context) error { panic(tt.value) })

			req := httptest.NewRequest(http.MethodGet, "/panic", nil)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != http.StatusInternalServerError {
				t.Fatalf("expected 500, got %d", rec.Code)
			}
			if problem := decodeProblem(t, rec); problem.Detail != "internal server error" {
				t.Fatalf("unexpected detail %q", problem.Detail)
			}
		})
	}
}

func TestRecovererReturnsCBOR(t *testing.T) {
	e := newTestEcho()
	e.Use(Recoverer())
	e.GET("/panic", func(c *echo.Context) error { panic("boom") })

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	req.Header.Set("Accept", "application/cbor")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+cbor" {
		t.Fatalf("expected application/problem+cbor, got %q", ct)
	}
}

func TestRecovererRePanicsOnErrAbortHandler(t *testing.T) {
	e := newTestEcho()
	e.Use(Recoverer())
	e.GET("/abort", func(c *echo.Context) error { panic(http.ErrAbortHandler) })

	defer func() {
		rec := recover()
		err, ok := rec.(error)
		if !ok || !errors.Is(err, http.ErrAbortHandler) {
			t.Fatalf("expected http.ErrAbortHandler re-panic, got %v", rec)
		}
	}()

	req := httptest.NewRequest(http.MethodGet, "/abort", nil)
	e.ServeHTTP(httptest.NewRecorder(), req)

	t.Fatal("expected panic to propagate")
}
