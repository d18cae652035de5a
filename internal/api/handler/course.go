// internal/api/handler/course.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"coursehub/internal/domain"
	"coursehub/internal/eventbus"
	"coursehub/internal/events"
	"coursehub/internal/service"
	"coursehub/internal/util"
)

// CourseHandler handles HTTP requests related to the course catalog. It
// publishes createActivity for mutating catalog actions; the activity
// listener takes it from there.
type CourseHandler struct {
	service service.CourseService
	bus     *eventbus.Bus
	logger  *slog.Logger
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(svc service.CourseService, bus *eventbus.Bus, logger *slog.Logger) *CourseHandler {
	return &CourseHandler{
		service: svc,
		bus:     bus,
		logger:  logger,
	}
}

// CreateCourseRequest represents the request body for creating a course.
type CreateCourseRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// UpdateCourseRequest represents the request body for updating a course.
// Absent fields keep their stored value.
type UpdateCourseRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
}

// LessonRequest represents the request body for adding a lesson.
type LessonRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url"`
	Duration    int    `json:"duration"`
}

// UpdateLessonRequest represents the request body for updating a lesson.
// Absent fields keep their stored value.
type UpdateLessonRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	VideoURL    *string `json:"video_url"`
	Duration    *int    `json:"duration"`
}

// track publishes a createActivity event with the request context a browser
// hands us. Geolocation enrichment is an external collaborator and is not
// performed here.
func (h *CourseHandler) track(r *http.Request, userID int64, event string, detail domain.ActivityDetail) {
	if h.bus == nil {
		return
	}
	if detail == nil {
		detail = domain.ActivityDetail{}
	}
	detail["user_agent"] = r.UserAgent()
	detail["accept_language"] = r.Header.Get("Accept-Language")
	detail["referrer"] = r.Referer()
	h.bus.Publish(r.Context(), events.TopicCreateActivity, events.NewActivityRecorded(userID, event, detail))
}

// Create handles the create course request.
// POST /courses
func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrUnauthenticated)
		return
	}

	var req CreateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || req.Price.IsNegative() {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	course, err := h.service.Create(r.Context(), identity.UserID, req.Title, req.Description, req.Price)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	h.track(r, identity.UserID, "course-creation", domain.ActivityDetail{
		"course_id": strconv.FormatInt(course.ID, 10),
	})

	respondWithJSON(w, h.logger, http.StatusCreated, course)
}

// Get handles the get course request.
// GET /courses/{courseID}
func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	courseID, err := strconv.ParseInt(chi.URLParam(r, "courseID"), 10, 64)
	if err != nil || courseID <= 0 {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	course, err := h.service.GetByID(r.Context(), courseID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, course)
}

// List handles the list courses request.
// GET /courses?page=&limit=
func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = service.DefaultCoursePage
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 {
		limit = service.DefaultCourseLimit
	}

	courses, err := h.service.List(r.Context(), page, limit)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"data":  courses,
		"page":  page,
		"limit": limit,
	})
}

// Update handles the update course request.
// PUT /courses/{courseID}
func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	courseID, err := strconv.ParseInt(chi.URLParam(r, "courseID"), 10, 64)
	if err != nil || courseID <= 0 {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	var req UpdateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	course, err := h.service.Update(r.Context(), courseID, service.CourseUpdate{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, course)
}

// Delete handles the delete course request.
// DELETE /courses/{courseID}
func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	courseID, err := strconv.ParseInt(chi.URLParam(r, "courseID"), 10, 64)
	if err != nil || courseID <= 0 {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	if err := h.service.Delete(r.Context(), courseID); err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddLesson handles the add lesson request.
// POST /courses/{courseID}/lessons
func (h *CourseHandler) AddLesson(w http.ResponseWriter, r *http.Request) {
	courseID, err := strconv.ParseInt(chi.URLParam(r, "courseID"), 10, 64)
	if err != nil || courseID <= 0 {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	var req LessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	lesson, err := h.service.AddLesson(r.Context(), courseID, req.Title, req.Description, req.VideoURL, req.Duration)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusCreated, lesson)
}

// ListLessons handles the list lessons request. Video URLs are withheld from
// the listing.
// GET /courses/{courseID}/lessons
func (h *CourseHandler) ListLessons(w http.ResponseWriter, r *http.Request) {
	courseID, err := strconv.ParseInt(chi.URLParam(r, "courseID"), 10, 64)
	if err != nil || courseID <= 0 {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	lessons, err := h.service.ListLessons(r.Context(), courseID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"data": lessons,
	})
}

// UpdateLesson handles the update lesson request.
// PUT /courses/{courseID}/lessons/{lessonID}
func (h *CourseHandler) UpdateLesson(w http.ResponseWriter, r *http.Request) {
	courseID, err := strconv.ParseInt(chi.URLParam(r, "courseID"), 10, 64)
	if err != nil || courseID <= 0 {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	lessonID, err := strconv.ParseInt(chi.URLParam(r, "lessonID"), 10, 64)
	if err != nil || lessonID <= 0 {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	var req UpdateLessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	lesson, err := h.service.UpdateLesson(r.Context(), courseID, lessonID, service.LessonUpdate{
		Title:       req.Title,
		Description: req.Description,
		VideoURL:    req.VideoURL,
		Duration:    req.Duration,
	})
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, lesson)
}

// DeleteLesson handles the delete lesson request.
// DELETE /courses/{courseID}/lessons/{lessonID}
func (h *CourseHandler) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	courseID, err := strconv.ParseInt(chi.URLParam(r, "courseID"), 10, 64)
	if err != nil || courseID <= 0 {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	lessonID, err := strconv.ParseInt(chi.URLParam(r, "lessonID"), 10, 64)
	if err != nil || lessonID <= 0 {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	if err := h.service.DeleteLesson(r.Context(), courseID, lessonID); err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
