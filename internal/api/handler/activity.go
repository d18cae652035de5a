// internal/api/handler/activity.go
package handler

import (
	"log/slog"
	"net/http"

	"coursehub/internal/service"
	"coursehub/internal/util"
)

// ActivityHandler serves a user's activity trail.
type ActivityHandler struct {
	service service.ActivityService
	logger  *slog.Logger
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(svc service.ActivityService, logger *slog.Logger) *ActivityHandler {
	return &ActivityHandler{
		service: svc,
		logger:  logger,
	}
}

// List handles the list activities request.
// GET /activities
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrUnauthenticated)
		return
	}

	activities, err := h.service.List(r.Context(), identity.UserID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"data": activities,
	})
}
