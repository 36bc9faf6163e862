package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jobsapi/jobs-api-go/internal/apperr"
	"github.com/jobsapi/jobs-api-go/internal/middleware"
	"github.com/jobsapi/jobs-api-go/internal/model"
	"github.com/jobsapi/jobs-api-go/internal/service"
)

// JobHandler handles HTTP requests for the authenticated user's jobs.
type JobHandler struct {
	service *service.JobService
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(svc *service.JobService) *JobHandler {
	return &JobHandler{service: svc}
}

// owner returns the caller's user ID, writing a 401 if the request did not
// pass through the auth middleware.
func owner(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apperr.Unauthenticated("Authentication invalid"))
		return "", false
	}
	return id.UserID, true
}

// jobID returns the {id} path parameter. Anything that is not a job ID can
// never match a stored job, so it is reported as not found.
func jobID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, apperr.NotFound("No job with id "+id))
		return "", false
	}
	return id, true
}

// HandleListJobs handles GET /api/v1/jobs requests.
func (h *JobHandler) HandleListJobs(w http.ResponseWriter, r *http.Request) {
	userID, ok := owner(w, r)
	if !ok {
		return
	}

	resp, err := h.service.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleCreateJob handles POST /api/v1/jobs requests.
func (h *JobHandler) HandleCreateJob(w http.ResponseWriter, r *http.Request) {
	userID, ok := owner(w, r)
	if !ok {
		return
	}

	var req model.CreateJobRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	job, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, model.JobResponse{Job: job})
}

// HandleGetJob handles GET /api/v1/jobs/{id} requests.
func (h *JobHandler) HandleGetJob(w http.ResponseWriter, r *http.Request) {
	userID, ok := owner(w, r)
	if !ok {
		return
	}
	id, ok := jobID(w, r)
	if !ok {
		return
	}

	job, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.JobResponse{Job: job})
}

// HandleUpdateJob handles PATCH /api/v1/jobs/{id} requests.
func (h *JobHandler) HandleUpdateJob(w http.ResponseWriter, r *http.Request) {
	userID, ok := owner(w, r)
	if !ok {
		return
	}
	id, ok := jobID(w, r)
	if !ok {
		return
	}

	var req model.UpdateJobRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	job, err := h.service.Update(r.Context(), userID, id, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.JobResponse{Job: job})
}

// HandleDeleteJob handles DELETE /api/v1/jobs/{id} requests.
func (h *JobHandler) HandleDeleteJob(w http.ResponseWriter, r *http.Request) {
	userID, ok := owner(w, r)
	if !ok {
		return
	}
	id, ok := jobID(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Delete(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
