package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/fintrackhq/fintrack-backend/internal/api/httpx"
	"github.com/fintrackhq/fintrack-backend/internal/models"
	"github.com/fintrackhq/fintrack-backend/internal/services"
)

type CategoriesHandler struct {
	svc *services.CategoryService
}

func NewCategoriesHandler(svc *services.CategoryService) *CategoriesHandler {
	return &CategoriesHandler{svc: svc}
}

type categoryReq struct {
	Name        string           `json:"name"`
	Type        string           `json:"type"`
	Icon        string           `json:"icon"`
	Color       string           `json:"color"`
	Description string           `json:"description"`
	BudgetLimit *decimal.Decimal `json:"budget_limit,omitempty"`
}

func (h *CategoriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryReq
	if err := decode(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	c, err := h.svc.Create(r.Context(), models.Category{
		Name:        req.Name,
		Type:        models.EntryKind(req.Type),
		Icon:        req.Icon,
		Color:       req.Color,
		Description: req.Description,
		BudgetLimit: req.BudgetLimit,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteData(w, http.StatusCreated, c)
}

func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	cats, err := h.svc.List(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	if cats == nil {
		cats = []models.Category{}
	}
	httpx.WriteData(w, http.StatusOK, cats)
}

func (h *CategoriesHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, c)
}

func (h *CategoriesHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req categoryReq
	if err := decode(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	c, err := h.svc.Update(r.Context(), models.Category{
		ID:          chi.URLParam(r, "id"),
		Name:        req.Name,
		Icon:        req.Icon,
		Color:       req.Color,
		Description: req.Description,
		BudgetLimit: req.BudgetLimit,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, c)
}

func (h *CategoriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, map[string]string{"status": "deleted"})
}
