package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hackathon-manager/internal/domain/models"
	"hackathon-manager/internal/http/v1/mdlwr"
	"hackathon-manager/internal/lib/logger/sl"
	"hackathon-manager/internal/service"
)

type (
	CreateTeamRequest struct {
		Name string `json:"name"`
	}

	CreateTeamResponse struct {
		TeamID string `json:"team_id"`
	}

	UpdateTeamRequest struct {
		Name string `json:"name"`
	}

	TeamResponse struct {
		Team models.Team `json:"team"`
	}

	ListTeamsResponse struct {
		Teams []models.Team `json:"teams"`
	}
)

type TeamHandler struct {
	teamService *service.TeamService
	log         *slog.Logger
}

func NewTeamHandler(teamService *service.TeamService, log *slog.Logger) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
		log:         log,
	}
}

func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	const op = "handler.team.ListTeams"

	log := h.log.With(slog.String("op", op))

	slug := chi.URLParam(r, "slug")
	userSpecific := isUserSpecific(r.URL.Query().Get("user_specific"))

	actor := mdlwr.ActorFromContext(r.Context())

	teams, err := h.teamService.ListTeams(r.Context(), actor, slug, userSpecific)
	if err != nil {
		log.Error("failed to list teams", sl.Err(err))
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ListTeamsResponse{Teams: teams})
}

func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	const op = "handler.team.CreateTeam"

	log := h.log.With(slog.String("op", op))

	slug := chi.URLParam(r, "slug")

	var req CreateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("invalid request body", sl.Err(err))
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	actor := mdlwr.ActorFromContext(r.Context())

	created, err := h.teamService.CreateTeam(r.Context(), actor, slug, req.Name)
	if err != nil {
		log.Error("failed to create team", sl.Err(err))
		writeDomainError(w, err)
		return
	}

	// only the join code is returned, the leader hands it to teammates
	writeJSON(w, http.StatusCreated, CreateTeamResponse{TeamID: created.TeamCode})
	log.Info("team created", slog.String("team_code", created.TeamCode))
}

func (h *TeamHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	const op = "handler.team.GetTeam"

	log := h.log.With(slog.String("op", op))

	teamCode := chi.URLParam(r, "teamCode")

	team, err := h.teamService.GetTeam(r.Context(), teamCode)
	if err != nil {
		log.Error("failed to get team", sl.Err(err))
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, TeamResponse{Team: team})
}

func (h *TeamHandler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	const op = "handler.team.UpdateTeam"

	log := h.log.With(slog.String("op", op))

	teamCode := chi.URLParam(r, "teamCode")

	var req UpdateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("invalid request body", sl.Err(err))
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	actor := mdlwr.ActorFromContext(r.Context())

	updated, err := h.teamService.UpdateTeam(r.Context(), actor, teamCode, req.Name)
	if err != nil {
		log.Error("failed to update team", sl.Err(err))
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, TeamResponse{Team: updated})
	log.Info("team updated", slog.String("team_code", teamCode))
}

func (h *TeamHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	const op = "handler.team.DeleteTeam"

	log := h.log.With(slog.String("op", op))

	teamCode := chi.URLParam(r, "teamCode")

	actor := mdlwr.ActorFromContext(r.Context())

	if err := h.teamService.DeleteTeam(r.Context(), actor, teamCode); err != nil {
		log.Error("failed to delete team", sl.Err(err))
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
	log.Info("team deleted", slog.String("team_code", teamCode))
}

func (h *TeamHandler) JoinTeam(w http.ResponseWriter, r *http.Request) {
	const op = "handler.team.JoinTeam"

	log := h.log.With(slog.String("op", op))

	slug := chi.URLParam(r, "slug")
	teamCode := chi.URLParam(r, "teamCode")

	actor := mdlwr.ActorFromContext(r.Context())

	joined, err := h.teamService.JoinTeam(r.Context(), actor, slug, teamCode)
	if err != nil {
		log.Error("failed to join team", sl.Err(err))
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, TeamResponse{Team: joined})
	log.Info("user joined team", slog.String("team_code", teamCode))
}

func (h *TeamHandler) MemberExit(w http.ResponseWriter, r *http.Request) {
	const op = "handler.team.MemberExit"

	log := h.log.With(slog.String("op", op))

	teamCode := chi.URLParam(r, "teamCode")
	memberID := chi.URLParam(r, "userID")

	actor := mdlwr.ActorFromContext(r.Context())

	if err := h.teamService.RemoveMember(r.Context(), actor, teamCode, memberID); err != nil {
		log.Error("failed to remove member", sl.Err(err))
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"detail": "successfully removed from the team"})
	log.Info("member removed", slog.String("member_id", memberID))
}

func isUserSpecific(value string) bool {
	switch value {
	case "y", "Y", "True":
		return true
	default:
		return false
	}
}
