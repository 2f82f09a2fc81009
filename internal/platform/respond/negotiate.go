package respond

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/labstack/echo/v5"
)

// mediaRange is one entry of an Accept header.
type mediaRange struct {
	typ     string
	subtype string
	q       float64
}

// parseAccept splits an Accept header into media ranges (RFC 9110 Section 12.5.1).
// A type without subtype is read as type/*. Invalid q values are ignored.
func parseAccept(header string) []mediaRange {
	var ranges []mediaRange
	for part := range strings.SplitSeq(header, ",") {
		mediaType, params, _ := strings.Cut(part, ";")
		mediaType = strings.ToLower(strings.TrimSpace(mediaType))
		if mediaType == "" {
			continue
		}

		r := mediaRange{q: 1}
		typ, subtype, ok := strings.Cut(mediaType, "/")
		r.typ = strings.TrimSpace(typ)
		r.subtype = "*"
		if ok {
			r.subtype = strings.TrimSpace(subtype)
		}

		for param := range strings.SplitSeq(params, ";") {
			key, value, ok := strings.Cut(strings.TrimSpace(param), "=")
			if !ok || !strings.EqualFold(strings.TrimSpace(key), "q") {
				continue
			}
			if q, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil && q >= 0 && q <= 1 {
				r.q = q
			}
		}
		ranges = append(ranges, r)
	}
	return ranges
}

// ranks reports how specifically r names the JSON and the CBOR family.
// Zero means no match.
func (r mediaRange) ranks() (jsonRank, cborRank int) {
	switch {
	case r.typ == "*" && r.subtype == "*":
		return 1, 1
	case r.typ != "application":
		return 0, 0
	case r.subtype == "*":
		return 2, 2
	case r.subtype == "problem+json":
		return 4, 0
	case r.subtype == "problem+cbor":
		return 0, 4
	case r.subtype == "json", strings.HasSuffix(r.subtype, "+json"):
		return 3, 0
	case r.subtype == "cbor", strings.HasSuffix(r.subtype, "+cbor"):
		return 0, 3
	}
	return 0, 0
}

// preference keeps the q value of the most specific range seen for a format.
type preference struct {
	q    float64
	rank int
}

func (p *preference) offer(q float64, rank int) {
	if rank == 0 {
		return
	}
	if rank > p.rank || (rank == p.rank && q > p.q) {
		p.q, p.rank = q, rank
	}
}

// prefersCBOR reports whether the client ranks CBOR above JSON. The q value
// decides first and specificity breaks ties. JSON is the default.
func prefersCBOR(header string) bool {
	var js, cb preference
	for _, r := range parseAccept(header) {
		if r.q == 0 {
			continue
		}
		jsonRank, cborRank := r.ranks()
		js.offer(r.q, jsonRank)
		cb.offer(r.q, cborRank)
	}

	switch {
	case cb.q <= 0:
		return false
	case cb.q != js.q:
		return cb.q > js.q
	default:
		return cb.rank > js.rank
	}
}

// ensureVary adds values to the Vary header without duplicating existing entries.
func ensureVary(h http.Header, values ...string) {
	seen := make(map[string]bool)
	for _, v := range h.Values("Vary") {
		for part := range strings.SplitSeq(v, ",") {
			seen[strings.TrimSpace(part)] = true
		}
	}
	for _, v := range values {
		if !seen[v] {
			h.Add("Vary", v)
			seen[v] = true
		}
	}
}

// Negotiate writes data as CBOR when the Accept header prefers it, JSON otherwise.
func Negotiate(c *echo.Context, status int, data any) error {
	if !prefersCBOR(c.Request().Header.Get("Accept")) {
		return c.JSON(status, data)
	}
	b, err := cbor.Marshal(data)
	if err != nil {
		return err
	}
	return c.Blob(status, "application/cbor", b)
}
