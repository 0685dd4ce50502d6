package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fintrackhq/fintrack-backend/internal/api/httpx"
	"github.com/fintrackhq/fintrack-backend/internal/models"
	"github.com/fintrackhq/fintrack-backend/internal/services"
)

type FinancialHandler struct {
	svc *services.LedgerService
}

func NewFinancialHandler(svc *services.LedgerService) *FinancialHandler {
	return &FinancialHandler{svc: svc}
}

func (h *FinancialHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	sum, err := h.svc.Summary(r.Context(), caller(r), userID)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, sum)
}

func (h *FinancialHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	limit, offset := pagination(r)
	records, err := h.svc.History(r.Context(), caller(r), userID, limit, offset)
	if err != nil {
		writeErr(w, err)
		return
	}
	if records == nil {
		records = []models.TransactionRecord{}
	}
	httpx.WriteData(w, http.StatusOK, records)
}
