package dashboard

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

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
	r.Get("/", h.get)
}

type response struct {
	Goals              []goalView        `json:"goals"`
	RecentTransactions []transactionView `json:"recent_transactions"`
	Overview           ledger.Overview   `json:"overview"`
	Stale              bool              `json:"stale,omitempty"`
	CachedAt           time.Time         `json:"cached_at,omitzero"`
}

type goalView struct {
	*ledger.Goal
	Progress float64 `json:"progress"`
}

type transactionView struct {
	*ledger.Transaction
}

// get loads the full dashboard. When the remote store is down it serves the
// last cached snapshot marked stale instead of failing outright.
func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	snap, err := h.svc.LoadAll(r.Context(), sess.OwnerID)
	if err != nil {
		var unavailable *ledger.RemoteUnavailableError
		if !errors.As(err, &unavailable) {
			httperr.Write(w, err)
			return
		}

		cached, cacheErr := h.svc.CachedSnapshot(sess.OwnerID)
		if cacheErr != nil {
			httperr.Write(w, err)
			return
		}

		slog.Warn("serving stale dashboard", "owner", sess.OwnerID, "cached_at", cached.CachedAt)
		writeResponse(w, toResponse(cached, overviewOf(cached), true))

		return
	}

	writeResponse(w, toResponse(snap, h.svc.Overview(sess.OwnerID), false))
}

func toResponse(snap *ledger.Snapshot, ov ledger.Overview, stale bool) response {
	resp := response{
		Goals:              make([]goalView, len(snap.Goals)),
		RecentTransactions: make([]transactionView, len(snap.RecentTransactions)),
		Overview:           ov,
		Stale:              stale,
	}

	if stale {
		resp.CachedAt = snap.CachedAt
	}

	for i, g := range snap.Goals {
		resp.Goals[i] = goalView{Goal: g, Progress: ledger.GoalProgress(g)}
	}

	for i, tx := range snap.RecentTransactions {
		resp.RecentTransactions[i] = transactionView{Transaction: tx}
	}

	return resp
}

// overviewOf recomputes the header numbers from a cached snapshot, since the
// in-memory state may be empty or older than the cache.
func overviewOf(snap *ledger.Snapshot) ledger.Overview {
	ov := ledger.Overview{TotalGoals: len(snap.Goals)}
	for _, g := range snap.Goals {
		ov.TotalSaved = ov.TotalSaved.Add(g.CurrentAmount)
		if g.IsCompleted {
			ov.CompletedGoals++
		}
	}

	if next, ok := ledger.NextDeadline(snap.Goals); ok {
		ov.NextDeadline = &next
	}

	return ov
}

func writeResponse(w http.ResponseWriter, resp response) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
