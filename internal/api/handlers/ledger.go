package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/fintrackhq/fintrack-backend/internal/api/httpx"
	"github.com/fintrackhq/fintrack-backend/internal/api/validate"
	"github.com/fintrackhq/fintrack-backend/internal/models"
	"github.com/fintrackhq/fintrack-backend/internal/services"
)

// LedgerHandler serves one entry kind; the router mounts an income and an
// expense instance over the same code.
type LedgerHandler struct {
	svc  *services.LedgerService
	kind models.EntryKind
}

func NewLedgerHandler(svc *services.LedgerService, kind models.EntryKind) *LedgerHandler {
	return &LedgerHandler{svc: svc, kind: kind}
}

type entryReq struct {
	UserID      string          `json:"user_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Timestamp   *time.Time      `json:"timestamp,omitempty"`
}

func (h *LedgerHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req entryReq
	if err := decode(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Collect(
		validate.Required("user_id", req.UserID),
		validate.PositiveAmount("amount", req.Amount),
		validate.Required("category", req.Category),
	); err != nil {
		writeErr(w, err)
		return
	}
	e, err := h.svc.Add(r.Context(), h.kind, caller(r), req.UserID, services.EntryInput{
		Amount:      req.Amount,
		Description: req.Description,
		Category:    req.Category,
		OccurredAt:  req.Timestamp,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteData(w, http.StatusCreated, e)
}

func (h *LedgerHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	limit, offset := pagination(r)
	entries, err := h.svc.List(r.Context(), h.kind, caller(r), userID, limit, offset)
	if err != nil {
		writeErr(w, err)
		return
	}
	if entries == nil {
		entries = []models.Entry{}
	}
	httpx.WriteData(w, http.StatusOK, entries)
}

func (h *LedgerHandler) Update(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "entry_id")
	var req entryReq
	if err := decode(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Collect(
		validate.PositiveAmount("amount", req.Amount),
		validate.Required("category", req.Category),
	); err != nil {
		writeErr(w, err)
		return
	}
	e, err := h.svc.Update(r.Context(), h.kind, caller(r), entryID, services.EntryInput{
		Amount:      req.Amount,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, e)
}

func (h *LedgerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "entry_id")
	if err := h.svc.Delete(r.Context(), h.kind, caller(r), entryID); err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, map[string]string{"status": "deleted"})
}
