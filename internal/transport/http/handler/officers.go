package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mc-parking-api/internal/application/officer"
	"github.com/mc-parking-api/internal/domain"
)

// OfficerHandler handles municipal council officer endpoints.
type OfficerHandler struct {
	svc officer.Service
}

func NewOfficerHandler(svc officer.Service) *OfficerHandler { return &OfficerHandler{svc: svc} }

func (h *OfficerHandler) List(w http.ResponseWriter, r *http.Request) {
	officers, err := h.svc.List(r.Context(), r.URL.Query().Get("council_id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list(officers))
}

func (h *OfficerHandler) Get(w http.ResponseWriter, r *http.Request) {
	o, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *OfficerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateMCOfficerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	o, err := h.svc.Create(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (h *OfficerHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateMCOfficerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	o, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *OfficerHandler) SetDuty(w http.ResponseWriter, r *http.Request) {
	var req domain.DutyStatusInput
	if !decodeBody(w, r, &req) {
		return
	}
	o, err := h.svc.SetDutyStatus(r.Context(), chi.URLParam(r, "id"), req.DutyStatus)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *OfficerHandler) AssignZone(w http.ResponseWriter, r *http.Request) {
	var req domain.AssignZoneRequest
	if !decodeBody(w, r, &req) {
		return
	}
	o, err := h.svc.AssignZone(r.Context(), chi.URLParam(r, "id"), req.ZoneID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *OfficerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "officer deleted"})
}
