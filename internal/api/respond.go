package api

import (
	"net/http"

	"github.com/blagoySimandov/synthdata/internal/errs"
	"github.com/blagoySimandov/synthdata/internal/logger"
	"github.com/blagoySimandov/synthdata/internal/logging"
	"github.com/goccy/go-json"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
	Kind    string `json:"kind"`
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to write JSON response", "error", err)
	}
}

// writeJSONError maps err to its status code and client summary and records
// it on the request's wide event.
func writeJSONError(w http.ResponseWriter, r *http.Request, err error) {
	kind := errs.KindOf(err)
	logging.EnrichError(r.Context(), err, string(kind), errs.StageOf(err))

	writeJSON(w, errs.HTTPStatus(kind), ErrorResponse{
		Error:   errs.Summary(kind),
		Details: err.Error(),
		Kind:    string(kind),
	})
}
