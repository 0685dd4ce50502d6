package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fintrackhq/fintrack-backend/internal/api/httpx"
	"github.com/fintrackhq/fintrack-backend/internal/models"
	"github.com/fintrackhq/fintrack-backend/internal/services"
)

type AnalyticsHandler struct {
	svc *services.AnalyticsService
}

func NewAnalyticsHandler(svc *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

func windowParams(r *http.Request) services.WindowParams {
	q := r.URL.Query()
	return services.WindowParams{
		Date:  q.Get("date"),
		Month: q.Get("month"),
		Year:  q.Get("year"),
	}
}

func (h *AnalyticsHandler) byCategory(kind models.EntryKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "user_id")
		rows, err := h.svc.ByCategory(r.Context(), caller(r), userID, kind, windowParams(r))
		if err != nil {
			writeErr(w, err)
			return
		}
		// empty windows answer 200 with an empty list, unlike trends
		if rows == nil {
			rows = []models.CategoryBreakdown{}
		}
		httpx.WriteData(w, http.StatusOK, rows)
	}
}

func (h *AnalyticsHandler) ExpensesByCategory(w http.ResponseWriter, r *http.Request) {
	h.byCategory(models.KindExpense)(w, r)
}

func (h *AnalyticsHandler) IncomeByCategory(w http.ResponseWriter, r *http.Request) {
	h.byCategory(models.KindIncome)(w, r)
}

func (h *AnalyticsHandler) Trends(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	report, err := h.svc.Trends(r.Context(), caller(r), userID)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, report)
}

func (h *AnalyticsHandler) Savings(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	report, err := h.svc.Savings(r.Context(), caller(r), userID, r.URL.Query().Get("timeframe"))
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, report)
}

func (h *AnalyticsHandler) Budget(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	rows, err := h.svc.BudgetVsSpend(r.Context(), caller(r), userID)
	if err != nil {
		writeErr(w, err)
		return
	}
	if rows == nil {
		rows = []models.BudgetStatus{}
	}
	httpx.WriteData(w, http.StatusOK, rows)
}

func (h *AnalyticsHandler) Tags(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	kind := models.EntryKind(r.URL.Query().Get("type"))
	if kind == "" {
		kind = models.KindExpense
	}
	if !kind.Valid() {
		httpx.WriteError(w, http.StatusBadRequest, "type must be income or expense")
		return
	}
	rows, err := h.svc.CategoryUsage(r.Context(), caller(r), userID, kind)
	if err != nil {
		writeErr(w, err)
		return
	}
	if rows == nil {
		rows = []models.CategoryTotal{}
	}
	httpx.WriteData(w, http.StatusOK, rows)
}
