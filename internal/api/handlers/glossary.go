package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fintrackhq/fintrack-backend/internal/api/httpx"
	"github.com/fintrackhq/fintrack-backend/internal/models"
	"github.com/fintrackhq/fintrack-backend/internal/services"
)

type GlossaryHandler struct {
	svc *services.GlossaryService
}

func NewGlossaryHandler(svc *services.GlossaryService) *GlossaryHandler {
	return &GlossaryHandler{svc: svc}
}

func (h *GlossaryHandler) List(w http.ResponseWriter, r *http.Request) {
	terms, err := h.svc.List(r.Context(), r.URL.Query().Get("body_system"))
	if err != nil {
		writeErr(w, err)
		return
	}
	if terms == nil {
		terms = []models.GlossaryTerm{}
	}
	httpx.WriteData(w, http.StatusOK, terms)
}

func (h *GlossaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, t)
}
