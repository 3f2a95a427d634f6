package server

import (
	"encoding/json"
	"errors"
	"net/http"

	coreerrors "github.com/charliesmith-boop/youtube-audit/internal/core/errors"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeDomainError maps sentinel errors onto HTTP statuses. Unknown errors
// become an opaque 500; the detail goes to the log, not the client.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, coreerrors.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, coreerrors.ErrChannelNotFound),
		errors.Is(err, coreerrors.ErrVideoNotFound),
		errors.Is(err, coreerrors.ErrNoUploads),
		errors.Is(err, coreerrors.ErrNoRetentionData),
		errors.Is(err, coreerrors.ErrLicenseNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, coreerrors.ErrNotOwnVideo),
		errors.Is(err, coreerrors.ErrNoChannelForAccount):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, coreerrors.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		s.log.Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
