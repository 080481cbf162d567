package onboardinghttp

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/ajwalsh/piggy/internal/cache"
	"github.com/ajwalsh/piggy/internal/http/httperr"
	"github.com/ajwalsh/piggy/internal/onboarding"
	"github.com/ajwalsh/piggy/internal/session"
)

type Handler struct {
	svc   *onboarding.Service
	cache *cache.Store
}

func NewHandler(svc *onboarding.Service, c *cache.Store) *Handler {
	return &Handler{svc: svc, cache: c}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/route", h.route)
	r.Get("/profile", h.profile)
	r.Put("/profile", h.complete)
	r.Post("/bills", h.addBill)
	r.Delete("/bills/{id}", h.removeBill)
}

// route tells the client where to land after sign-in. Decided from the local
// cache alone.
func (h *Handler) route(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, map[string]onboarding.Route{
		"route": onboarding.DecidePostAuthRoute(h.cache, sess.OwnerID),
	})
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	p, err := h.svc.Load(sess.OwnerID)
	if err != nil {
		if errors.Is(err, onboarding.ErrNoProfile) {
			http.Error(w, "no onboarding profile", http.StatusNotFound)
			return
		}

		httperr.Write(w, err)

		return
	}

	writeJSON(w, http.StatusOK, toResponse(p))
}

type completeRequest struct {
	InitialBalance   decimal.Decimal `json:"initial_balance"`
	HasMonthlyIncome bool            `json:"has_monthly_income"`
	MonthlyIncome    decimal.Decimal `json:"monthly_income"`
}

// complete finishes the wizard: validates the figures, marks setup done and
// purges cache entries left behind by other accounts on this machine.
func (h *Handler) complete(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req completeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.svc.Load(sess.OwnerID)
	if err != nil {
		if !errors.Is(err, onboarding.ErrNoProfile) {
			httperr.Write(w, err)
			return
		}

		p = onboarding.NewProfile(sess.OwnerID)
	}

	p.InitialBalance = req.InitialBalance
	p.HasMonthlyIncome = req.HasMonthlyIncome
	p.MonthlyIncome = req.MonthlyIncome

	if err := h.svc.Complete(p); err != nil {
		httperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(p))
}

type addBillRequest struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

func (h *Handler) addBill(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req addBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.svc.Load(sess.OwnerID)
	if err != nil {
		if !errors.Is(err, onboarding.ErrNoProfile) {
			httperr.Write(w, err)
			return
		}

		p = onboarding.NewProfile(sess.OwnerID)
	}

	bill, err := p.AddBill(req.Name, req.Amount)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	if err := h.svc.Save(p); err != nil {
		httperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, bill)
}

func (h *Handler) removeBill(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	p, err := h.svc.Load(sess.OwnerID)
	if err != nil {
		if errors.Is(err, onboarding.ErrNoProfile) {
			http.Error(w, "no onboarding profile", http.StatusNotFound)
			return
		}

		httperr.Write(w, err)

		return
	}

	if !p.RemoveBill(id) {
		http.Error(w, "bill not found", http.StatusNotFound)
		return
	}

	if err := h.svc.Save(p); err != nil {
		httperr.Write(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
