package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mc-parking-api/internal/domain"
)

// httpError maps a service error to a status code. Unrecognised errors are
// logged and reported as a generic 500 so store details never reach clients.
func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrUnavailable):
		slog.Error("store unavailable", "err", err)
		writeError(w, http.StatusServiceUnavailable, "service temporarily unavailable")
	default:
		slog.Error("request failed", "err", err)
		writeError(w, http.StatusInternalServerError, "something went wrong, please try again")
	}
}
