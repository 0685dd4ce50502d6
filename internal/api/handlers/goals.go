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

type GoalsHandler struct {
	svc *services.GoalService
}

func NewGoalsHandler(svc *services.GoalService) *GoalsHandler {
	return &GoalsHandler{svc: svc}
}

type goalReq struct {
	Title        string          `json:"title"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	TargetDate   *time.Time      `json:"target_date,omitempty"`
	Description  string          `json:"description"`
}

func (r goalReq) input() services.GoalInput {
	return services.GoalInput{
		Title:        r.Title,
		TargetAmount: r.TargetAmount,
		TargetDate:   r.TargetDate,
		Description:  r.Description,
	}
}

func (h *GoalsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req goalReq
	if err := decode(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Collect(
		validate.Required("title", req.Title),
		validate.PositiveAmount("target_amount", req.TargetAmount),
	); err != nil {
		writeErr(w, err)
		return
	}
	g, err := h.svc.Create(r.Context(), caller(r), req.input())
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteData(w, http.StatusCreated, g)
}

func (h *GoalsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	goals, err := h.svc.List(r.Context(), caller(r), userID)
	if err != nil {
		writeErr(w, err)
		return
	}
	if goals == nil {
		goals = []models.GoalProgress{}
	}
	httpx.WriteData(w, http.StatusOK, goals)
}

type contributeReq struct {
	GoalID string          `json:"goal_id"`
	Amount decimal.Decimal `json:"amount"`
}

func (h *GoalsHandler) Contribute(w http.ResponseWriter, r *http.Request) {
	var req contributeReq
	if err := decode(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Collect(
		validate.Required("goal_id", req.GoalID),
		validate.PositiveAmount("amount", req.Amount),
	); err != nil {
		writeErr(w, err)
		return
	}
	c, err := h.svc.Contribute(r.Context(), caller(r), req.GoalID, req.Amount)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteData(w, http.StatusCreated, c)
}

func (h *GoalsHandler) Update(w http.ResponseWriter, r *http.Request) {
	goalID := chi.URLParam(r, "goal_id")
	var req goalReq
	if err := decode(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	g, err := h.svc.Update(r.Context(), caller(r), goalID, req.input())
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, g)
}

func (h *GoalsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	goalID := chi.URLParam(r, "goal_id")
	if err := h.svc.Delete(r.Context(), caller(r), goalID); err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, map[string]string{"status": "deleted"})
}
