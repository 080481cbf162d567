package transactions

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ajwalsh/piggy/internal/http/httperr"
	"github.com/ajwalsh/piggy/internal/ledger"
	"github.com/ajwalsh/piggy/internal/session"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.record)
	r.Get("/recent", h.recent)
	r.Get("/summary", h.summary)
}

type recordTransactionRequest struct {
	GoalID      uuid.UUID       `json:"goal_id"`
	Kind        ledger.Kind     `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// record applies a deposit or withdrawal. A partial failure still responds
// with an error body carrying the persisted transaction id so the client can
// tell "nothing happened" from "money moved, balance is stale".
func (h *Handler) record(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req recordTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, goal, err := h.svc.RecordTransaction(r.Context(), sess.OwnerID, req.GoalID, req.Kind, req.Amount, req.Description)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toRecordResponse(tx, goal)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) recent(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	snap, err := h.svc.LoadAll(r.Context(), sess.OwnerID)
	if err != nil {
		if cached, cacheErr := h.svc.CachedSnapshot(sess.OwnerID); cacheErr == nil &&
			errors.As(err, new(*ledger.RemoteUnavailableError)) {
			writeRecent(w, cached.RecentTransactions, true)
			return
		}

		httperr.Write(w, err)

		return
	}

	writeRecent(w, snap.RecentTransactions, false)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	now := time.Now()
	month, year := now.Month(), now.Year()

	if s := r.URL.Query().Get("month"); s != "" {
		m, err := strconv.Atoi(s)
		if err != nil || m < 1 || m > 12 {
			http.Error(w, "invalid month", http.StatusBadRequest)
			return
		}

		month = time.Month(m)
	}

	if s := r.URL.Query().Get("year"); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "invalid year", http.StatusBadRequest)
			return
		}

		year = y
	}

	sum := h.svc.MonthlySummary(sess.OwnerID, month, year)

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(sum); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeRecent(w http.ResponseWriter, txs []*ledger.Transaction, stale bool) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(recentResponse{
		Transactions: toResponseList(txs),
		Stale:        stale,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
