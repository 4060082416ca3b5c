// Package api exposes the flight statistics over HTTP.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"flighttracker-service/pkg/localtime"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices go out as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// parseDateParam reads an optional YYYY-MM-DD query parameter. ok is false
// when the parameter is present but malformed.
func parseDateParam(r *http.Request, name string) (date *time.Time, ok bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}

	d, err := localtime.ParseDate(raw)
	if err != nil {
		return nil, false
	}
	return &d, true
}

// parseDayRange reads from/to as inclusive calendar days and returns the
// half-open instant range [from, to+1day).
func parseDayRange(w http.ResponseWriter, r *http.Request) (from, to *time.Time, ok bool) {
	from, ok = parseDateParam(r, "from")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid from format. Use YYYY-MM-DD.")
		return nil, nil, false
	}

	to, ok = parseDateParam(r, "to")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid to format. Use YYYY-MM-DD.")
		return nil, nil, false
	}
	if to != nil {
		next := to.AddDate(0, 0, 1)
		to = &next
	}

	return from, to, true
}
