// Package httperr maps ledger errors onto HTTP responses so every handler
// reports the same shape for the same failure.
package httperr

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ajwalsh/piggy/internal/ledger"
)

type errorResponse struct {
	Error         string `json:"error"`
	Field         string `json:"field,omitempty"`
	TransactionID string `json:"transaction_id,omitempty"`
}

// Write renders err as JSON with the status its category demands:
// 400 for validation, 404 unknown goal, 422 insufficient funds, 503 remote
// store down, 500 with the persisted transaction id for a partial failure.
func Write(w http.ResponseWriter, err error) {
	var (
		validation   *ledger.ValidationError
		insufficient *ledger.InsufficientFundsError
		partial      *ledger.PartialFailureError
		unavailable  *ledger.RemoteUnavailableError
	)

	switch {
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: validation.Error(),
			Field: validation.Field,
		})
	case errors.Is(err, ledger.ErrGoalNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "goal not found"})
	case errors.As(err, &insufficient):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: insufficient.Error()})
	case errors.As(err, &partial):
		slog.Error("partial failure recording transaction",
			"transaction_id", partial.TransactionID, "goal_id", partial.GoalID, "error", partial.Err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:         "transaction recorded but goal update failed",
			TransactionID: partial.TransactionID.String(),
		})
	case errors.As(err, &unavailable):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "remote store unavailable"})
	default:
		slog.Error("unhandled error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body errorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}
