package handler

import (
	"net/http"

	"github.com/mc-parking-api/internal/application/auth"
	"github.com/mc-parking-api/internal/domain"
)

// AuthHandler handles staff and vehicle-owner sign-in.
type AuthHandler struct {
	svc auth.Service
}

func NewAuthHandler(svc auth.Service) *AuthHandler { return &AuthHandler{svc: svc} }

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := h.svc.Login(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *AuthHandler) Google(w http.ResponseWriter, r *http.Request) {
	var req domain.GoogleLoginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := h.svc.GoogleLogin(r.Context(), req.IDToken)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
