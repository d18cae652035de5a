// internal/api/handler/preference.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"coursehub/internal/domain"
	"coursehub/internal/service"
	"coursehub/internal/util"
)

// PreferenceHandler handles HTTP requests related to user preferences.
type PreferenceHandler struct {
	service service.PreferenceService
	logger  *slog.Logger
}

// NewPreferenceHandler creates a new PreferenceHandler.
func NewPreferenceHandler(svc service.PreferenceService, logger *slog.Logger) *PreferenceHandler {
	return &PreferenceHandler{
		service: svc,
		logger:  logger,
	}
}

// Get handles the get preferences request.
// GET /preferences
func (h *PreferenceHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrUnauthenticated)
		return
	}

	preference, err := h.service.Get(r.Context(), identity.UserID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, preference)
}

// Update handles the update preferences request.
// PUT /preferences
func (h *PreferenceHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrUnauthenticated)
		return
	}

	var document domain.PreferenceDocument
	if err := json.NewDecoder(r.Body).Decode(&document); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	preference, err := h.service.Update(r.Context(), identity.UserID, document)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, preference)
}
