package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"hackathon-manager/internal/apperrors"
	"hackathon-manager/internal/domain/models"
	"hackathon-manager/internal/lib/logger/sl"
	"hackathon-manager/internal/policy"
)

type SubmissionService struct {
	log            *slog.Logger
	submissionRepo SubmissionProvider
	teamRepo       TeamProvider
	hackathonRepo  HackathonProvider
	now            func() time.Time
}

type SubmissionProvider interface {
	CreateSubmission(sub models.Submission) (models.Submission, error)
	GetSubmission(id int64) (models.Submission, error)
	ListSubmissionsByHackathon(hackathonID int64) ([]models.Submission, error)
	ListSubmissionsByTeam(hackathonID, teamID int64) ([]models.Submission, error)
	SubmissionExistsForTeam(teamID int64) (bool, error)
	UpdateSubmission(sub models.Submission) (models.Submission, error)
	ApplyResult(id int64, review string, score int) (models.Submission, error)
	DeleteSubmission(id int64) error
}

// SubmissionInput is the participant-supplied part of a submission. A score
// field in the payload is deliberately absent here: scores are assigned by
// reviewers through ApplyResult only.
type SubmissionInput struct {
	TeamCode      string
	Title         string
	SubmissionURL string
	Description   string
}

func NewSubmissionService(
	log *slog.Logger,
	submissionRepo SubmissionProvider,
	teamRepo TeamProvider,
	hackathonRepo HackathonProvider) *SubmissionService {
	return &SubmissionService{
		log:            log,
		submissionRepo: submissionRepo,
		teamRepo:       teamRepo,
		hackathonRepo:  hackathonRepo,
		now:            time.Now,
	}
}

// ListSubmissions returns the hackathon's submissions the actor may see.
// While the hackathon is ongoing the list is scoped to the actor's own team
// unless the actor is a superuser; afterwards (and before) it is public.
func (s *SubmissionService) ListSubmissions(ctx context.Context, actor models.Actor, slug string) ([]models.Submission, error) {
	const op = "service.submission.ListSubmissions"

	log := s.log.With(
		slog.String("op", op),
		slog.String("slug", slug),
	)

	hackathon, err := s.hackathonRepo.GetHackathonBySlug(slug)
	if err != nil {
		log.Error("failed to get hackathon", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	scope, err := policy.SubmissionListScope(actor, hackathon.StatusAt(s.now()))
	if err != nil {
		log.Warn("submission list denied", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if scope == policy.ScopeAll {
		subs, err := s.submissionRepo.ListSubmissionsByHackathon(hackathon.ID)
		if err != nil {
			log.Error("failed to list submissions", sl.Err(err))
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return subs, nil
	}

	team, err := s.teamRepo.GetUserTeam(hackathon.ID, actor.UserID)
	if err != nil {
		log.Error("failed to resolve caller team", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	subs, err := s.submissionRepo.ListSubmissionsByTeam(hackathon.ID, team.ID)
	if err != nil {
		log.Error("failed to list team submissions", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return subs, nil
}

// CreateSubmission admits a new submission while the hackathon is ongoing.
// The caller must belong to a team in the hackathon, name their own team,
// and the team must not have submitted yet. The stored score is always 0.
func (s *SubmissionService) CreateSubmission(ctx context.Context, actor models.Actor, slug string, input SubmissionInput) (models.Submission, error) {
	const op = "service.submission.CreateSubmission"

	log := s.log.With(
		slog.String("op", op),
		slog.String("slug", slug),
		slog.String("team_code", input.TeamCode),
	)

	if !actor.Authenticated {
		return models.Submission{}, fmt.Errorf("%s: %w", op, apperrors.ErrNotAuthenticated)
	}

	hackathon, err := s.hackathonRepo.GetHackathonBySlug(slug)
	if err != nil {
		log.Error("failed to get hackathon", sl.Err(err))
		return models.Submission{}, fmt.Errorf("%s: %w", op, err)
	}

	if hackathon.StatusAt(s.now()) != models.StatusOngoing {
		log.Warn("hackathon is not ongoing")
		return models.Submission{}, fmt.Errorf("%s: %w", op, apperrors.ErrHackathonNotOngoing)
	}

	team, err := s.teamRepo.GetUserTeam(hackathon.ID, actor.UserID)
	if err != nil {
		log.Error("failed to resolve caller team", sl.Err(err))
		return models.Submission{}, fmt.Errorf("%s: %w", op, err)
	}

	if input.TeamCode != team.TeamCode {
		log.Warn("submission team does not match caller team")
		return models.Submission{}, fmt.Errorf("%s: %w", op, apperrors.ErrWrongTeam)
	}

	if err := validateSubmissionInput(input); err != nil {
		log.Error("invalid submission payload", sl.Err(err))
		return models.Submission{}, fmt.Errorf("%s: %w", op, err)
	}

	exists, err := s.submissionRepo.SubmissionExistsForTeam(team.ID)
	if err != nil {
		log.Error("failed to check existing submission", sl.Err(err))
		return models.Submission{}, fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		log.Warn("submission already exists for team")
		return models.Submission{}, fmt.Errorf("%s: %w", op, apperrors.ErrSubmissionExists)
	}

	sub := models.Submission{
		TeamID:        team.ID,
		HackathonID:   hackathon.ID,
		Title:         input.Title,
		SubmissionURL: input.SubmissionURL,
		Description:   input.Description,
		Score:         0,
	}

	created, err := s.submissionRepo.CreateSubmission(sub)
	if err != nil {
		log.Error("failed to create submission", sl.Err(err))
		return models.Submission{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("submission created", slog.Int64("submission_id", created.ID))

	return created, nil
}

func (s *SubmissionService) GetSubmission(ctx context.Context, actor models.Actor, id int64) (models.Submission, error) {
	const op = "service.submission.GetSubmission"

	log := s.log.With(
		slog.String("op", op),
		slog.Int64("submission_id", id),
	)

	sub, _, err := s.authorizeSubmission(actor, id, policy.ActionRead)
	if err != nil {
		log.Warn("submission read denied", sl.Err(err))
		return models.Submission{}, fmt.Errorf("%s: %w", op, err)
	}

	return sub, nil
}

// UpdateSubmission rewrites the participant-editable fields of a submission.
// Score and review never change on this path.
func (s *SubmissionService) UpdateSubmission(ctx context.Context, actor models.Actor, id int64, input SubmissionInput) (models.Submission, error) {
	const op = "service.submission.UpdateSubmission"

	log := s.log.With(
		slog.String("op", op),
		slog.Int64("submission_id", id),
	)

	sub, _, err := s.authorizeSubmission(actor, id, policy.ActionUpdate)
	if err != nil {
		log.Warn("submission update denied", sl.Err(err))
		return models.Submission{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := validateSubmissionInput(input); err != nil {
		log.Error("invalid submission payload", sl.Err(err))
		return models.Submission{}, fmt.Errorf("%s: %w", op, err)
	}

	sub.Title = input.Title
	sub.SubmissionURL = input.SubmissionURL
	sub.Description = input.Description

	updated, err := s.submissionRepo.UpdateSubmission(sub)
	if err != nil {
		log.Error("failed to update submission", sl.Err(err))
		return models.Submission{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("submission updated")

	return updated, nil
}

func (s *SubmissionService) DeleteSubmission(ctx context.Context, actor models.Actor, id int64) error {
	const op = "service.submission.DeleteSubmission"

	log := s.log.With(
		slog.String("op", op),
		slog.Int64("submission_id", id),
	)

	if _, _, err := s.authorizeSubmission(actor, id, policy.ActionDelete); err != nil {
		log.Warn("submission delete denied", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.submissionRepo.DeleteSubmission(id); err != nil {
		log.Error("failed to delete submission", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("submission deleted")

	return nil
}

// ApplyResult records a reviewer-assigned score and review text. It is the
// single write path for scores, shared by the results importer.
func (s *SubmissionService) ApplyResult(ctx context.Context, id int64, review string, score int) (models.Submission, error) {
	const op = "service.submission.ApplyResult"

	log := s.log.With(
		slog.String("op", op),
		slog.Int64("submission_id", id),
		slog.Int("score", score),
	)

	if score < 0 || score > 100 {
		log.Error("score out of range")
		return models.Submission{}, fmt.Errorf("%s: %w", op, apperrors.ErrScoreOutOfRange)
	}

	updated, err := s.submissionRepo.ApplyResult(id, review, score)
	if err != nil {
		log.Error("failed to apply result", sl.Err(err))
		return models.Submission{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("result applied")

	return updated, nil
}

// authorizeSubmission loads the submission and runs the item-level policy
// against the hackathon's current status and the actor's team membership.
func (s *SubmissionService) authorizeSubmission(actor models.Actor, id int64, action policy.Action) (models.Submission, models.Hackathon, error) {
	sub, err := s.submissionRepo.GetSubmission(id)
	if err != nil {
		return models.Submission{}, models.Hackathon{}, err
	}

	hackathon, err := s.hackathonRepo.GetHackathonByID(sub.HackathonID)
	if err != nil {
		return models.Submission{}, models.Hackathon{}, err
	}

	isMember := false
	if actor.Authenticated {
		team, err := s.teamRepo.GetUserTeam(hackathon.ID, actor.UserID)
		if err != nil && !errors.Is(err, apperrors.ErrTeamNotFound) {
			return models.Submission{}, models.Hackathon{}, err
		}
		isMember = err == nil && team.ID == sub.TeamID
	}

	if err := policy.CanAccessSubmission(actor, action, hackathon.StatusAt(s.now()), isMember); err != nil {
		return models.Submission{}, models.Hackathon{}, err
	}

	return sub, hackathon, nil
}

func validateSubmissionInput(input SubmissionInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return apperrors.ErrSubmissionTitleRequired
	}
	if strings.TrimSpace(input.SubmissionURL) == "" {
		return apperrors.ErrSubmissionURLRequired
	}
	return nil
}
