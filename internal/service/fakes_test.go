package service

import (
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"hackathon-manager/internal/apperrors"
	"hackathon-manager/internal/domain/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

func fixedNow(t *testing.T) time.Time {
	t.Helper()
	return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
}

// fakeHackathonRepo is an in-memory HackathonProvider.
type fakeHackathonRepo struct {
	seq        int64
	hackathons map[int64]models.Hackathon
}

func newFakeHackathonRepo() *fakeHackathonRepo {
	return &fakeHackathonRepo{hackathons: make(map[int64]models.Hackathon)}
}

func (f *fakeHackathonRepo) add(h models.Hackathon) models.Hackathon {
	f.seq++
	h.ID = f.seq
	f.hackathons[h.ID] = h
	return h
}

func (f *fakeHackathonRepo) CreateHackathon(h models.Hackathon) (models.Hackathon, error) {
	for _, existing := range f.hackathons {
		if existing.Title == h.Title {
			return models.Hackathon{}, apperrors.ErrHackathonExists
		}
	}
	return f.add(h), nil
}

func (f *fakeHackathonRepo) GetHackathonBySlug(slug string) (models.Hackathon, error) {
	for _, h := range f.hackathons {
		if h.Slug == slug {
			return h, nil
		}
	}
	return models.Hackathon{}, apperrors.ErrHackathonNotFound
}

func (f *fakeHackathonRepo) GetHackathonByID(id int64) (models.Hackathon, error) {
	h, ok := f.hackathons[id]
	if !ok {
		return models.Hackathon{}, apperrors.ErrHackathonNotFound
	}
	return h, nil
}

func (f *fakeHackathonRepo) ListHackathons(filter string, now time.Time) ([]models.Hackathon, error) {
	var out []models.Hackathon
	for _, h := range f.hackathons {
		switch filter {
		case "":
		case "ongoing":
			if h.StatusAt(now) != models.StatusOngoing {
				continue
			}
		case "completed":
			if h.StatusAt(now) != models.StatusCompleted {
				continue
			}
		case "upcoming":
			if h.StatusAt(now) != models.StatusUpcoming {
				continue
			}
		default:
			return nil, apperrors.ErrInvalidStatusFilter
		}
		out = append(out, h)
	}
	return out, nil
}

func (f *fakeHackathonRepo) UpdateHackathon(h models.Hackathon) (models.Hackathon, error) {
	if _, ok := f.hackathons[h.ID]; !ok {
		return models.Hackathon{}, apperrors.ErrHackathonNotFound
	}
	f.hackathons[h.ID] = h
	return h, nil
}

func (f *fakeHackathonRepo) DeleteHackathon(id int64) error {
	if _, ok := f.hackathons[id]; !ok {
		return apperrors.ErrHackathonNotFound
	}
	delete(f.hackathons, id)
	return nil
}

func (f *fakeHackathonRepo) SlugExists(slug string) (bool, error) {
	for _, h := range f.hackathons {
		if h.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

// fakeTeamRepo is an in-memory TeamProvider mirroring the storage
// constraints: unique (name, hackathon), one team per user per hackathon,
// capacity checked on insert.
type fakeTeamRepo struct {
	seq   int64
	teams map[int64]*models.Team
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: make(map[int64]*models.Team)}
}

func (f *fakeTeamRepo) CreateTeam(team models.Team) (models.Team, error) {
	for _, existing := range f.teams {
		if existing.HackathonID == team.HackathonID && existing.Name == team.Name {
			return models.Team{}, apperrors.ErrTeamNameTaken
		}
		if existing.HackathonID == team.HackathonID && existing.HasMember(team.LeaderID) {
			return models.Team{}, apperrors.ErrAlreadyInTeam
		}
	}
	f.seq++
	team.ID = f.seq
	team.Members = []string{team.LeaderID}
	f.teams[team.ID] = &team
	return team, nil
}

func (f *fakeTeamRepo) GetTeamByCode(teamCode string) (models.Team, error) {
	for _, team := range f.teams {
		if team.TeamCode == teamCode {
			return *team, nil
		}
	}
	return models.Team{}, apperrors.ErrTeamNotFound
}

func (f *fakeTeamRepo) ListTeamsByHackathon(hackathonID int64) ([]models.Team, error) {
	var out []models.Team
	for _, team := range f.teams {
		if team.HackathonID == hackathonID {
			out = append(out, *team)
		}
	}
	return out, nil
}

func (f *fakeTeamRepo) ListTeamsForUser(hackathonID int64, userID string) ([]models.Team, error) {
	var out []models.Team
	for _, team := range f.teams {
		if team.HackathonID == hackathonID && team.HasMember(userID) {
			out = append(out, *team)
		}
	}
	return out, nil
}

func (f *fakeTeamRepo) UpdateTeamName(teamID int64, name string) (models.Team, error) {
	team, ok := f.teams[teamID]
	if !ok {
		return models.Team{}, apperrors.ErrTeamNotFound
	}
	team.Name = name
	return *team, nil
}

func (f *fakeTeamRepo) DeleteTeam(teamID int64) error {
	if _, ok := f.teams[teamID]; !ok {
		return apperrors.ErrTeamNotFound
	}
	delete(f.teams, teamID)
	return nil
}

func (f *fakeTeamRepo) AddMember(teamID, hackathonID int64, userID string, maxTeamSize int) error {
	team, ok := f.teams[teamID]
	if !ok {
		return apperrors.ErrTeamNotFound
	}
	if len(team.Members) >= maxTeamSize {
		return apperrors.ErrTeamFull
	}
	for _, other := range f.teams {
		if other.HackathonID == hackathonID && other.HasMember(userID) {
			return apperrors.ErrAlreadyInTeam
		}
	}
	team.Members = append(team.Members, userID)
	return nil
}

func (f *fakeTeamRepo) RemoveMember(teamID int64, userID string) error {
	team, ok := f.teams[teamID]
	if !ok {
		return apperrors.ErrTeamNotFound
	}
	for i, m := range team.Members {
		if m == userID {
			team.Members = append(team.Members[:i], team.Members[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrMemberNotFound
}

func (f *fakeTeamRepo) GetUserTeam(hackathonID int64, userID string) (models.Team, error) {
	for _, team := range f.teams {
		if team.HackathonID == hackathonID && team.HasMember(userID) {
			return *team, nil
		}
	}
	return models.Team{}, apperrors.ErrTeamNotFound
}

// fakeSubmissionRepo is an in-memory SubmissionProvider with the
// one-submission-per-team constraint.
type fakeSubmissionRepo struct {
	seq  int64
	subs map[int64]models.Submission
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{subs: make(map[int64]models.Submission)}
}

func (f *fakeSubmissionRepo) CreateSubmission(sub models.Submission) (models.Submission, error) {
	for _, existing := range f.subs {
		if existing.TeamID == sub.TeamID {
			return models.Submission{}, apperrors.ErrSubmissionExists
		}
	}
	f.seq++
	sub.ID = f.seq
	f.subs[sub.ID] = sub
	return sub, nil
}

func (f *fakeSubmissionRepo) GetSubmission(id int64) (models.Submission, error) {
	sub, ok := f.subs[id]
	if !ok {
		return models.Submission{}, apperrors.ErrSubmissionNotFound
	}
	return sub, nil
}

func (f *fakeSubmissionRepo) ListSubmissionsByHackathon(hackathonID int64) ([]models.Submission, error) {
	var out []models.Submission
	for _, sub := range f.subs {
		if sub.HackathonID == hackathonID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (f *fakeSubmissionRepo) ListSubmissionsByTeam(hackathonID, teamID int64) ([]models.Submission, error) {
	var out []models.Submission
	for _, sub := range f.subs {
		if sub.HackathonID == hackathonID && sub.TeamID == teamID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (f *fakeSubmissionRepo) SubmissionExistsForTeam(teamID int64) (bool, error) {
	for _, sub := range f.subs {
		if sub.TeamID == teamID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSubmissionRepo) UpdateSubmission(sub models.Submission) (models.Submission, error) {
	existing, ok := f.subs[sub.ID]
	if !ok {
		return models.Submission{}, apperrors.ErrSubmissionNotFound
	}
	existing.Title = sub.Title
	existing.SubmissionURL = sub.SubmissionURL
	existing.Description = sub.Description
	f.subs[sub.ID] = existing
	return existing, nil
}

func (f *fakeSubmissionRepo) ApplyResult(id int64, review string, score int) (models.Submission, error) {
	existing, ok := f.subs[id]
	if !ok {
		return models.Submission{}, apperrors.ErrSubmissionNotFound
	}
	existing.Review = review
	existing.Score = score
	f.subs[id] = existing
	return existing, nil
}

func (f *fakeSubmissionRepo) DeleteSubmission(id int64) error {
	if _, ok := f.subs[id]; !ok {
		return apperrors.ErrSubmissionNotFound
	}
	delete(f.subs, id)
	return nil
}

// seedTeam registers a team with the given members, first one leading.
func seedTeam(f *fakeTeamRepo, hackathonID int64, name, code string, members ...string) models.Team {
	f.seq++
	team := models.Team{
		ID:          f.seq,
		Name:        name,
		LeaderID:    members[0],
		HackathonID: hackathonID,
		TeamCode:    code,
		Members:     members,
	}
	f.teams[team.ID] = &team
	return team
}

func seedHackathon(f *fakeHackathonRepo, title string, start, end time.Time, maxTeamSize int) models.Hackathon {
	return f.add(models.Hackathon{
		Title:       title,
		StartsAt:    start,
		EndsAt:      end,
		MaxTeamSize: maxTeamSize,
		Slug:        fmt.Sprintf("slug-%s", title),
	})
}
