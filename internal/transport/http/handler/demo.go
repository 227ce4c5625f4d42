package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mc-parking-api/internal/application/demo"
	"github.com/mc-parking-api/internal/domain"
)

const maxDocumentSize = 10 << 20

// DemoHandler handles the NIC lookup, OTP and verified-user endpoints.
type DemoHandler struct {
	svc demo.Service
}

func NewDemoHandler(svc demo.Service) *DemoHandler { return &DemoHandler{svc: svc} }

func (h *DemoHandler) LookupNIC(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.LookupNIC(r.Context(), chi.URLParam(r, "nic"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *DemoHandler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.RequestOTPRequest
	if !decodeBody(w, r, &req) {
		return
	}
	txID, err := h.svc.RequestOTP(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, TransactionEnvelope{TransactionID: txID, Message: "otp sent"})
}

func (h *DemoHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyOTPRequest
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := h.svc.VerifyOTP(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *DemoHandler) ListVerified(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListVerified(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list(users))
}

func (h *DemoHandler) DeleteVerified(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteVerified(r.Context(), chi.URLParam(r, "nic")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "verified user deleted"})
}

// UploadDocument accepts a multipart form with the scan in the "document" field.
func (h *DemoHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxDocumentSize)
	if err := r.ParseMultipartForm(maxDocumentSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	f, header, err := r.FormFile("document")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing document field")
		return
	}
	defer f.Close()

	u, err := h.svc.UploadDocument(r.Context(), chi.URLParam(r, "nic"), header.Filename, header.Header.Get("Content-Type"), f)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (h *DemoHandler) DocumentURL(w http.ResponseWriter, r *http.Request) {
	url, err := h.svc.DocumentURL(r.Context(), chi.URLParam(r, "nic"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, URLEnvelope{URL: url})
}
