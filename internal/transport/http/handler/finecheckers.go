package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mc-parking-api/internal/application/finechecker"
	"github.com/mc-parking-api/internal/domain"
	"github.com/mc-parking-api/internal/transport/http/middleware"
)

// FineCheckerHandler handles fine checker endpoints.
type FineCheckerHandler struct {
	svc finechecker.Service
}

func NewFineCheckerHandler(svc finechecker.Service) *FineCheckerHandler {
	return &FineCheckerHandler{svc: svc}
}

// List returns checkers of the council in the query string. Officers only
// see their own council.
func (h *FineCheckerHandler) List(w http.ResponseWriter, r *http.Request) {
	councilID := r.URL.Query().Get("council_id")
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok && claims.Role == domain.RoleMCOfficer {
		councilID = claims.CouncilID
	}
	checkers, err := h.svc.List(r.Context(), councilID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list(checkers))
}

func (h *FineCheckerHandler) Get(w http.ResponseWriter, r *http.Request) {
	fc, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fc)
}

func (h *FineCheckerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateFineCheckerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	fc, err := h.svc.Create(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, fc)
}

func (h *FineCheckerHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateFineCheckerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	fc, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fc)
}

func (h *FineCheckerHandler) SetDuty(w http.ResponseWriter, r *http.Request) {
	var req domain.DutyStatusInput
	if !decodeBody(w, r, &req) {
		return
	}
	fc, err := h.svc.SetDutyStatus(r.Context(), chi.URLParam(r, "id"), req.DutyStatus)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fc)
}

func (h *FineCheckerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "fine checker deleted"})
}
