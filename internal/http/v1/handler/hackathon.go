package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hackathon-manager/internal/domain/models"
	"hackathon-manager/internal/http/v1/mdlwr"
	"hackathon-manager/internal/lib/logger/sl"
	"hackathon-manager/internal/service"
)

type (
	HackathonRequest struct {
		Title           string    `json:"title"`
		Tagline         string    `json:"tagline"`
		Description     string    `json:"description"`
		StartsAt        time.Time `json:"starts_at"`
		EndsAt          time.Time `json:"ends_at"`
		Image           string    `json:"image"`
		Thumbnail       string    `json:"thumbnail"`
		ResultsDeclared bool      `json:"results_declared"`
		MaxTeamSize     int       `json:"max_team_size"`
	}

	HackathonResponse struct {
		Hackathon models.Hackathon `json:"hackathon"`
	}

	ListHackathonsResponse struct {
		Hackathons []models.Hackathon `json:"hackathons"`
	}
)

type HackathonHandler struct {
	hackathonService *service.HackathonService
	log              *slog.Logger
}

func NewHackathonHandler(hackathonService *service.HackathonService, log *slog.Logger) *HackathonHandler {
	return &HackathonHandler{
		hackathonService: hackathonService,
		log:              log,
	}
}

func (h *HackathonHandler) ListHackathons(w http.ResponseWriter, r *http.Request) {
	const op = "handler.hackathon.ListHackathons"

	log := h.log.With(slog.String("op", op))

	filter := r.URL.Query().Get("query")

	hackathons, err := h.hackathonService.ListHackathons(r.Context(), filter)
	if err != nil {
		log.Error("failed to list hackathons", sl.Err(err))
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ListHackathonsResponse{Hackathons: hackathons})
}

func (h *HackathonHandler) CreateHackathon(w http.ResponseWriter, r *http.Request) {
	const op = "handler.hackathon.CreateHackathon"

	log := h.log.With(slog.String("op", op))

	var req HackathonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("invalid request body", sl.Err(err))
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	actor := mdlwr.ActorFromContext(r.Context())

	created, err := h.hackathonService.CreateHackathon(r.Context(), actor, req.toModel())
	if err != nil {
		log.Error("failed to create hackathon", sl.Err(err))
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, HackathonResponse{Hackathon: created})
	log.Info("hackathon created", slog.String("slug", created.Slug))
}

func (h *HackathonHandler) GetHackathon(w http.ResponseWriter, r *http.Request) {
	const op = "handler.hackathon.GetHackathon"

	log := h.log.With(slog.String("op", op))

	slug := chi.URLParam(r, "slug")

	hackathon, err := h.hackathonService.GetHackathon(r.Context(), slug)
	if err != nil {
		log.Error("failed to get hackathon", sl.Err(err))
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, HackathonResponse{Hackathon: hackathon})
}

func (h *HackathonHandler) UpdateHackathon(w http.ResponseWriter, r *http.Request) {
	const op = "handler.hackathon.UpdateHackathon"

	log := h.log.With(slog.String("op", op))

	slug := chi.URLParam(r, "slug")

	var req HackathonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("invalid request body", sl.Err(err))
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	actor := mdlwr.ActorFromContext(r.Context())

	updated, err := h.hackathonService.UpdateHackathon(r.Context(), actor, slug, req.toModel())
	if err != nil {
		log.Error("failed to update hackathon", sl.Err(err))
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, HackathonResponse{Hackathon: updated})
	log.Info("hackathon updated", slog.String("slug", slug))
}

func (h *HackathonHandler) DeleteHackathon(w http.ResponseWriter, r *http.Request) {
	const op = "handler.hackathon.DeleteHackathon"

	log := h.log.With(slog.String("op", op))

	slug := chi.URLParam(r, "slug")

	actor := mdlwr.ActorFromContext(r.Context())

	if err := h.hackathonService.DeleteHackathon(r.Context(), actor, slug); err != nil {
		log.Error("failed to delete hackathon", sl.Err(err))
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
	log.Info("hackathon deleted", slog.String("slug", slug))
}

func (req HackathonRequest) toModel() models.Hackathon {
	return models.Hackathon{
		Title:           req.Title,
		Tagline:         req.Tagline,
		Description:     req.Description,
		StartsAt:        req.StartsAt,
		EndsAt:          req.EndsAt,
		Image:           req.Image,
		Thumbnail:       req.Thumbnail,
		ResultsDeclared: req.ResultsDeclared,
		MaxTeamSize:     req.MaxTeamSize,
	}
}
