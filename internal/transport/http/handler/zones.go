package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mc-parking-api/internal/application/zone"
	"github.com/mc-parking-api/internal/domain"
)

// ZoneHandler handles parking zone endpoints.
type ZoneHandler struct {
	svc zone.Service
}

func NewZoneHandler(svc zone.Service) *ZoneHandler { return &ZoneHandler{svc: svc} }

func (h *ZoneHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	zones, err := h.svc.List(r.Context(), domain.ZoneFilter{
		Status:    q.Get("status"),
		CouncilID: q.Get("council_id"),
	})
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list(zones))
}

func (h *ZoneHandler) Get(w http.ResponseWriter, r *http.Request) {
	z, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, z)
}

func (h *ZoneHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateParkingZoneRequest
	if !decodeBody(w, r, &req) {
		return
	}
	z, err := h.svc.Create(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, z)
}

func (h *ZoneHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateParkingZoneRequest
	if !decodeBody(w, r, &req) {
		return
	}
	z, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, z)
}

func (h *ZoneHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req domain.ZoneStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	z, err := h.svc.SetStatus(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, z)
}

func (h *ZoneHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "parking zone deleted"})
}
