// internal/api/handler/permission.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"coursehub/internal/domain"
	"coursehub/internal/service"
	"coursehub/internal/util"
)

// PermissionHandler handles HTTP requests related to user permissions.
type PermissionHandler struct {
	service service.PermissionService
	logger  *slog.Logger
}

// NewPermissionHandler creates a new PermissionHandler.
func NewPermissionHandler(svc service.PermissionService, logger *slog.Logger) *PermissionHandler {
	return &PermissionHandler{
		service: svc,
		logger:  logger,
	}
}

// Get handles the get permissions request.
// GET /permissions
func (h *PermissionHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrUnauthenticated)
		return
	}

	permission, err := h.service.GetByEmail(r.Context(), identity.Email)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, permission)
}

// Update handles the update permissions request.
// PUT /permissions
func (h *PermissionHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrUnauthenticated)
		return
	}

	var permissions domain.PermissionSet
	if err := json.NewDecoder(r.Body).Decode(&permissions); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	if len(permissions) == 0 {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	permission, err := h.service.Update(r.Context(), identity.UserID, permissions)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, permission)
}

// Delete handles the delete permissions request.
// DELETE /permissions
func (h *PermissionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrUnauthenticated)
		return
	}

	if err := h.service.Delete(r.Context(), identity.UserID); err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]string{"message": "Permissions removed"})
}
