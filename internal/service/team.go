package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"hackathon-manager/internal/apperrors"
	"hackathon-manager/internal/domain/models"
	"hackathon-manager/internal/lib/logger/sl"
	"hackathon-manager/internal/policy"
)

type TeamService struct {
	log           *slog.Logger
	teamRepo      TeamProvider
	hackathonRepo HackathonProvider
}

type TeamProvider interface {
	CreateTeam(team models.Team) (models.Team, error)
	GetTeamByCode(teamCode string) (models.Team, error)
	ListTeamsByHackathon(hackathonID int64) ([]models.Team, error)
	ListTeamsForUser(hackathonID int64, userID string) ([]models.Team, error)
	UpdateTeamName(teamID int64, name string) (models.Team, error)
	DeleteTeam(teamID int64) error
	AddMember(teamID, hackathonID int64, userID string, maxTeamSize int) error
	RemoveMember(teamID int64, userID string) error
	GetUserTeam(hackathonID int64, userID string) (models.Team, error)
}

func NewTeamService(
	log *slog.Logger,
	teamRepo TeamProvider,
	hackathonRepo HackathonProvider) *TeamService {
	return &TeamService{
		log:           log,
		teamRepo:      teamRepo,
		hackathonRepo: hackathonRepo,
	}
}

// ListTeams returns the teams of a hackathon, or only the caller's teams
// when userSpecific is set.
func (s *TeamService) ListTeams(ctx context.Context, actor models.Actor, slug string, userSpecific bool) ([]models.Team, error) {
	const op = "service.team.ListTeams"

	log := s.log.With(
		slog.String("op", op),
		slog.String("slug", slug),
	)

	if userSpecific && !actor.Authenticated {
		return nil, fmt.Errorf("%s: %w", op, apperrors.ErrNotAuthenticated)
	}

	hackathon, err := s.hackathonRepo.GetHackathonBySlug(slug)
	if err != nil {
		log.Error("failed to get hackathon", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var teams []models.Team
	if userSpecific {
		teams, err = s.teamRepo.ListTeamsForUser(hackathon.ID, actor.UserID)
	} else {
		teams, err = s.teamRepo.ListTeamsByHackathon(hackathon.ID)
	}
	if err != nil {
		log.Error("failed to list teams", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return teams, nil
}

// CreateTeam registers a new team in the hackathon. The creator becomes the
// leader and the first member.
func (s *TeamService) CreateTeam(ctx context.Context, actor models.Actor, slug, name string) (models.Team, error) {
	const op = "service.team.CreateTeam"

	log := s.log.With(
		slog.String("op", op),
		slog.String("slug", slug),
		slog.String("team_name", name),
	)

	if err := policy.CanAccessTeam(actor, policy.ActionCreate, false); err != nil {
		log.Warn("team create denied", sl.Err(err))
		return models.Team{}, fmt.Errorf("%s: %w", op, err)
	}

	if strings.TrimSpace(name) == "" {
		log.Error("team name is required")
		return models.Team{}, fmt.Errorf("%s: %w", op, apperrors.ErrTeamNameRequired)
	}

	hackathon, err := s.hackathonRepo.GetHackathonBySlug(slug)
	if err != nil {
		log.Error("failed to get hackathon", sl.Err(err))
		return models.Team{}, fmt.Errorf("%s: %w", op, err)
	}

	team := models.Team{
		Name:        name,
		LeaderID:    actor.UserID,
		HackathonID: hackathon.ID,
	}

	// join codes are random; on the rare collision a fresh one is drawn
	var created models.Team
	for attempt := 0; ; attempt++ {
		team.TeamCode = newTeamCode()

		created, err = s.teamRepo.CreateTeam(team)
		if err == nil {
			break
		}
		if errors.Is(err, apperrors.ErrTeamCodeCollision) && attempt < 2 {
			continue
		}
		log.Error("failed to create team", sl.Err(err))
		return models.Team{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("team created", slog.String("team_code", created.TeamCode))

	return created, nil
}

func (s *TeamService) GetTeam(ctx context.Context, teamCode string) (models.Team, error) {
	const op = "service.team.GetTeam"

	log := s.log.With(
		slog.String("op", op),
		slog.String("team_code", teamCode),
	)

	team, err := s.teamRepo.GetTeamByCode(teamCode)
	if err != nil {
		log.Error("failed to get team", sl.Err(err))
		return models.Team{}, fmt.Errorf("%s: %w", op, err)
	}

	return team, nil
}

func (s *TeamService) UpdateTeam(ctx context.Context, actor models.Actor, teamCode, name string) (models.Team, error) {
	const op = "service.team.UpdateTeam"

	log := s.log.With(
		slog.String("op", op),
		slog.String("team_code", teamCode),
	)

	team, err := s.teamRepo.GetTeamByCode(teamCode)
	if err != nil {
		log.Error("failed to get team", sl.Err(err))
		return models.Team{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := policy.CanAccessTeam(actor, policy.ActionUpdate, team.LeaderID == actor.UserID); err != nil {
		log.Warn("team update denied", sl.Err(err))
		return models.Team{}, fmt.Errorf("%s: %w", op, err)
	}

	if strings.TrimSpace(name) == "" {
		log.Error("team name is required")
		return models.Team{}, fmt.Errorf("%s: %w", op, apperrors.ErrTeamNameRequired)
	}

	updated, err := s.teamRepo.UpdateTeamName(team.ID, name)
	if err != nil {
		log.Error("failed to update team", sl.Err(err))
		return models.Team{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("team updated")

	return updated, nil
}

func (s *TeamService) DeleteTeam(ctx context.Context, actor models.Actor, teamCode string) error {
	const op = "service.team.DeleteTeam"

	log := s.log.With(
		slog.String("op", op),
		slog.String("team_code", teamCode),
	)

	team, err := s.teamRepo.GetTeamByCode(teamCode)
	if err != nil {
		log.Error("failed to get team", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := policy.CanAccessTeam(actor, policy.ActionDelete, team.LeaderID == actor.UserID); err != nil {
		log.Warn("team delete denied", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.teamRepo.DeleteTeam(team.ID); err != nil {
		log.Error("failed to delete team", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("team deleted")

	return nil
}

// JoinTeam adds the caller to the team identified by its join code within
// the given hackathon. Capacity and the one-team-per-hackathon rule are
// re-validated by the storage layer inside the insert transaction.
func (s *TeamService) JoinTeam(ctx context.Context, actor models.Actor, slug, teamCode string) (models.Team, error) {
	const op = "service.team.JoinTeam"

	log := s.log.With(
		slog.String("op", op),
		slog.String("slug", slug),
		slog.String("team_code", teamCode),
	)

	if !actor.Authenticated {
		return models.Team{}, fmt.Errorf("%s: %w", op, apperrors.ErrNotAuthenticated)
	}
	if !actor.ProfileComplete {
		return models.Team{}, fmt.Errorf("%s: %w", op, apperrors.ErrProfileIncomplete)
	}

	hackathon, err := s.hackathonRepo.GetHackathonBySlug(slug)
	if err != nil {
		log.Error("failed to get hackathon", sl.Err(err))
		return models.Team{}, fmt.Errorf("%s: %w", op, err)
	}

	team, err := s.teamRepo.GetTeamByCode(teamCode)
	if err != nil {
		log.Error("failed to get team", sl.Err(err))
		return models.Team{}, fmt.Errorf("%s: %w", op, err)
	}
	if team.HackathonID != hackathon.ID {
		log.Warn("team code belongs to another hackathon")
		return models.Team{}, fmt.Errorf("%s: %w", op, apperrors.ErrTeamNotFound)
	}

	if err := s.teamRepo.AddMember(team.ID, hackathon.ID, actor.UserID, hackathon.MaxTeamSize); err != nil {
		log.Error("failed to join team", sl.Err(err))
		return models.Team{}, fmt.Errorf("%s: %w", op, err)
	}

	joined, err := s.teamRepo.GetTeamByCode(teamCode)
	if err != nil {
		log.Error("failed to reload team", sl.Err(err))
		return models.Team{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user joined team", slog.Int("member_count", len(joined.Members)))

	return joined, nil
}

// RemoveMember removes a member from a team. Members may remove themselves,
// the leader may remove anyone else, and the leader can never be removed:
// a leader who wants out deletes the team.
func (s *TeamService) RemoveMember(ctx context.Context, actor models.Actor, teamCode, memberID string) error {
	const op = "service.team.RemoveMember"

	log := s.log.With(
		slog.String("op", op),
		slog.String("team_code", teamCode),
		slog.String("member_id", memberID),
	)

	if !actor.Authenticated {
		return fmt.Errorf("%s: %w", op, apperrors.ErrNotAuthenticated)
	}

	team, err := s.teamRepo.GetTeamByCode(teamCode)
	if err != nil {
		log.Error("failed to get team", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if !team.HasMember(memberID) {
		log.Warn("user is not a member of the team")
		return fmt.Errorf("%s: %w", op, apperrors.ErrMemberNotFound)
	}
	if memberID == team.LeaderID {
		log.Warn("leader cannot be removed from the team")
		return fmt.Errorf("%s: %w", op, apperrors.ErrLeaderCannotExit)
	}
	if actor.UserID != memberID && actor.UserID != team.LeaderID && !actor.Superuser {
		log.Warn("member removal denied")
		return fmt.Errorf("%s: %w", op, apperrors.ErrNotTeamLeader)
	}

	if err := s.teamRepo.RemoveMember(team.ID, memberID); err != nil {
		log.Error("failed to remove member", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("member removed from team")

	return nil
}

// newTeamCode derives a short uppercase join code from a random UUID.
func newTeamCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
}
