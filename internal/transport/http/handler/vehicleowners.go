package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mc-parking-api/internal/application/vehicleowner"
	"github.com/mc-parking-api/internal/domain"
)

// VehicleOwnerHandler handles vehicle owner endpoints.
type VehicleOwnerHandler struct {
	svc vehicleowner.Service
}

func NewVehicleOwnerHandler(svc vehicleowner.Service) *VehicleOwnerHandler {
	return &VehicleOwnerHandler{svc: svc}
}

func (h *VehicleOwnerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateVehicleOwnerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	vo, err := h.svc.Create(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, vo)
}

func (h *VehicleOwnerHandler) List(w http.ResponseWriter, r *http.Request) {
	owners, err := h.svc.List(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list(owners))
}

func (h *VehicleOwnerHandler) Get(w http.ResponseWriter, r *http.Request) {
	vo, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vo)
}

func (h *VehicleOwnerHandler) GetByNIC(w http.ResponseWriter, r *http.Request) {
	vo, err := h.svc.GetByNIC(r.Context(), chi.URLParam(r, "nic"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vo)
}

func (h *VehicleOwnerHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateVehicleOwnerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	vo, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vo)
}

func (h *VehicleOwnerHandler) SetDuty(w http.ResponseWriter, r *http.Request) {
	var req domain.DutyStatusInput
	if !decodeBody(w, r, &req) {
		return
	}
	vo, err := h.svc.SetDutyStatus(r.Context(), chi.URLParam(r, "id"), req.DutyStatus)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vo)
}

func (h *VehicleOwnerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "vehicle owner deleted"})
}
