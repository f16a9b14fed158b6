package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hackathon-manager/internal/domain/models"
	"hackathon-manager/internal/http/v1/mdlwr"
	"hackathon-manager/internal/lib/logger/sl"
	"hackathon-manager/internal/service"
)

type (
	SubmissionRequest struct {
		Team          string `json:"team"`
		Title         string `json:"title"`
		SubmissionURL string `json:"submission_url"`
		Description   string `json:"description"`
		// accepted in the payload for compatibility, never honored:
		// scores are assigned by reviewers
		Score int `json:"score"`
	}

	SubmissionResponse struct {
		Submission models.Submission `json:"submission"`
	}

	ListSubmissionsResponse struct {
		Submissions []models.Submission `json:"submissions"`
	}
)

type SubmissionHandler struct {
	submissionService *service.SubmissionService
	log               *slog.Logger
}

func NewSubmissionHandler(submissionService *service.SubmissionService, log *slog.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
		log:               log,
	}
}

func (h *SubmissionHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	const op = "handler.submission.ListSubmissions"

	log := h.log.With(slog.String("op", op))

	slug := chi.URLParam(r, "slug")

	actor := mdlwr.ActorFromContext(r.Context())

	submissions, err := h.submissionService.ListSubmissions(r.Context(), actor, slug)
	if err != nil {
		log.Error("failed to list submissions", sl.Err(err))
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ListSubmissionsResponse{Submissions: submissions})
}

func (h *SubmissionHandler) CreateSubmission(w http.ResponseWriter, r *http.Request) {
	const op = "handler.submission.CreateSubmission"

	log := h.log.With(slog.String("op", op))

	slug := chi.URLParam(r, "slug")

	var req SubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("invalid request body", sl.Err(err))
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	actor := mdlwr.ActorFromContext(r.Context())

	created, err := h.submissionService.CreateSubmission(r.Context(), actor, slug, service.SubmissionInput{
		TeamCode:      req.Team,
		Title:         req.Title,
		SubmissionURL: req.SubmissionURL,
		Description:   req.Description,
	})
	if err != nil {
		log.Error("failed to create submission", sl.Err(err))
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, SubmissionResponse{Submission: created})
	log.Info("submission created", slog.Int64("submission_id", created.ID))
}

func (h *SubmissionHandler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	const op = "handler.submission.GetSubmission"

	log := h.log.With(slog.String("op", op))

	id, ok := submissionID(w, r)
	if !ok {
		return
	}

	actor := mdlwr.ActorFromContext(r.Context())

	sub, err := h.submissionService.GetSubmission(r.Context(), actor, id)
	if err != nil {
		log.Error("failed to get submission", sl.Err(err))
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, SubmissionResponse{Submission: sub})
}

func (h *SubmissionHandler) UpdateSubmission(w http.ResponseWriter, r *http.Request) {
	const op = "handler.submission.UpdateSubmission"

	log := h.log.With(slog.String("op", op))

	id, ok := submissionID(w, r)
	if !ok {
		return
	}

	var req SubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("invalid request body", sl.Err(err))
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	actor := mdlwr.ActorFromContext(r.Context())

	updated, err := h.submissionService.UpdateSubmission(r.Context(), actor, id, service.SubmissionInput{
		TeamCode:      req.Team,
		Title:         req.Title,
		SubmissionURL: req.SubmissionURL,
		Description:   req.Description,
	})
	if err != nil {
		log.Error("failed to update submission", sl.Err(err))
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, SubmissionResponse{Submission: updated})
	log.Info("submission updated", slog.Int64("submission_id", id))
}

func (h *SubmissionHandler) DeleteSubmission(w http.ResponseWriter, r *http.Request) {
	const op = "handler.submission.DeleteSubmission"

	log := h.log.With(slog.String("op", op))

	id, ok := submissionID(w, r)
	if !ok {
		return
	}

	actor := mdlwr.ActorFromContext(r.Context())

	if err := h.submissionService.DeleteSubmission(r.Context(), actor, id); err != nil {
		log.Error("failed to delete submission", sl.Err(err))
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
	log.Info("submission deleted", slog.Int64("submission_id", id))
}

func submissionID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "submission id must be an integer")
		return 0, false
	}
	return id, true
}
