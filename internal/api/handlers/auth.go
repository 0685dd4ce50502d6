package handlers

import (
	"net/http"

	"github.com/fintrackhq/fintrack-backend/internal/api/httpx"
	"github.com/fintrackhq/fintrack-backend/internal/api/validate"
	"github.com/fintrackhq/fintrack-backend/internal/services"
)

type AuthHandler struct {
	svc *services.AuthService
}

func NewAuthHandler(svc *services.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type signupReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupReq
	if err := decode(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Collect(
		validate.Required("name", req.Name),
		validate.Required("email", req.Email),
		validate.Email("email", req.Email),
		validate.MinLen("password", req.Password, 8),
	); err != nil {
		writeErr(w, err)
		return
	}
	res, err := h.svc.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteData(w, http.StatusCreated, res)
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := decode(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Collect(
		validate.Required("email", req.Email),
		validate.Required("password", req.Password),
	); err != nil {
		writeErr(w, err)
		return
	}
	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, res)
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshReq
	if err := decode(r, &req); err != nil || req.RefreshToken == "" {
		httpx.WriteError(w, http.StatusBadRequest, "refresh_token required")
		return
	}
	res, err := h.svc.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, res)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req refreshReq
	if err := decode(r, &req); err != nil || req.RefreshToken == "" {
		httpx.WriteError(w, http.StatusBadRequest, "refresh_token required")
		return
	}
	if err := h.svc.Logout(r.Context(), req.RefreshToken); err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, map[string]string{"status": "logged out"})
}

type checkEmailReq struct {
	Email string `json:"email"`
}

func (h *AuthHandler) CheckEmail(w http.ResponseWriter, r *http.Request) {
	var req checkEmailReq
	if err := decode(r, &req); err != nil || req.Email == "" {
		httpx.WriteError(w, http.StatusBadRequest, "email required")
		return
	}
	available, err := h.svc.CheckEmail(r.Context(), req.Email)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, map[string]bool{"available": available})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Profile(r.Context(), caller(r))
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, u)
}

type updateProfileReq struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *AuthHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req updateProfileReq
	if err := decode(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	u, err := h.svc.UpdateProfile(r.Context(), caller(r), req.Name, req.Email)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, u)
}
