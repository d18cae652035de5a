// internal/api/handler/enrollment.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"coursehub/internal/service"
	"coursehub/internal/util"
)

// EnrollmentHandler handles HTTP requests related to course enrollments.
type EnrollmentHandler struct {
	service service.EnrollmentService
	logger  *slog.Logger
}

// NewEnrollmentHandler creates a new EnrollmentHandler.
func NewEnrollmentHandler(svc service.EnrollmentService, logger *slog.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		service: svc,
		logger:  logger,
	}
}

// EnrollRequest represents the request body for enrolling in a course.
type EnrollRequest struct {
	CourseID int64 `json:"course_id"`
}

// Enroll handles the enroll request.
// POST /enrollments
func (h *EnrollmentHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrUnauthenticated)
		return
	}

	var req EnrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	if req.CourseID <= 0 {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	enrollment, err := h.service.Enroll(r.Context(), identity.UserID, req.CourseID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusCreated, map[string]interface{}{
		"message": "Enrollment successful",
		"courses": enrollment.Courses,
	})
}

// List handles the list enrollments request.
// GET /enrollments
func (h *EnrollmentHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrUnauthenticated)
		return
	}

	enrollment, err := h.service.Enrollments(r.Context(), identity.UserID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"courses": enrollment.Courses,
	})
}

// Unenroll handles the unenroll request.
// DELETE /enrollments/{courseID}
func (h *EnrollmentHandler) Unenroll(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrUnauthenticated)
		return
	}

	courseID, err := strconv.ParseInt(chi.URLParam(r, "courseID"), 10, 64)
	if err != nil || courseID <= 0 {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	enrollment, err := h.service.Unenroll(r.Context(), identity.UserID, courseID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message": "Unenrollment successful",
		"courses": enrollment.Courses,
	})
}
