package repo

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"hackathon-manager/internal/apperrors"
	"hackathon-manager/internal/domain/models"
)

type TeamRepo struct {
	storage *sqlx.DB
}

func NewTeamRepo(storage *sqlx.DB) *TeamRepo {
	return &TeamRepo{storage: storage}
}

// CreateTeam inserts the team and its leader's membership row in one
// transaction, so a half-created team is never observable.
func (r *TeamRepo) CreateTeam(team models.Team) (models.Team, error) {
	const op = "repo.team.CreateTeam"

	tx, err := r.storage.Beginx()
	if err != nil {
		return models.Team{}, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	teamQuery := `
		INSERT INTO teams (name, leader_id, hackathon_id, team_code)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, leader_id, hackathon_id, team_code
	`

	var created models.Team
	err = tx.QueryRowx(teamQuery, team.Name, team.LeaderID, team.HackathonID, team.TeamCode).StructScan(&created)
	if err != nil {
		if uniqueViolation(err, "teams_name_per_hackathon_key") {
			return models.Team{}, fmt.Errorf("%s: %w", op, apperrors.ErrTeamNameTaken)
		}
		if uniqueViolation(err, "teams_team_code_key") {
			return models.Team{}, fmt.Errorf("%s: %w", op, apperrors.ErrTeamCodeCollision)
		}
		return models.Team{}, fmt.Errorf("%s: %w", op, err)
	}

	memberQuery := `INSERT INTO team_members (team_id, hackathon_id, user_id) VALUES ($1, $2, $3)`
	_, err = tx.Exec(memberQuery, created.ID, created.HackathonID, team.LeaderID)
	if err != nil {
		if uniqueViolation(err, "team_members_one_team_per_hackathon_key") {
			return models.Team{}, fmt.Errorf("%s: %w", op, apperrors.ErrAlreadyInTeam)
		}
		return models.Team{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return models.Team{}, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	created.Members = []string{team.LeaderID}
	return created, nil
}

func (r *TeamRepo) GetTeamByCode(teamCode string) (models.Team, error) {
	const op = "repo.team.GetTeamByCode"

	query := `SELECT id, name, leader_id, hackathon_id, team_code FROM teams WHERE team_code = $1`

	var team models.Team
	err := r.storage.Get(&team, query, teamCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Team{}, fmt.Errorf("%s: %w", op, apperrors.ErrTeamNotFound)
		}
		return models.Team{}, fmt.Errorf("%s: %w", op, err)
	}

	team.Members, err = r.getMembers(team.ID)
	if err != nil {
		return models.Team{}, fmt.Errorf("%s: %w", op, err)
	}

	return team, nil
}

func (r *TeamRepo) ListTeamsByHackathon(hackathonID int64) ([]models.Team, error) {
	const op = "repo.team.ListTeamsByHackathon"

	query := `SELECT id, name, leader_id, hackathon_id, team_code FROM teams WHERE hackathon_id = $1 ORDER BY id`

	var teams []models.Team
	if err := r.storage.Select(&teams, query, hackathonID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for i := range teams {
		members, err := r.getMembers(teams[i].ID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		teams[i].Members = members
	}

	return teams, nil
}

// ListTeamsForUser returns the teams of the hackathon the user belongs to
// (at most one given the membership constraint, kept as a list to match the
// list endpoint's shape).
func (r *TeamRepo) ListTeamsForUser(hackathonID int64, userID string) ([]models.Team, error) {
	const op = "repo.team.ListTeamsForUser"

	query := `
		SELECT t.id, t.name, t.leader_id, t.hackathon_id, t.team_code
		FROM teams t
		JOIN team_members tm ON tm.team_id = t.id
		WHERE t.hackathon_id = $1 AND tm.user_id = $2
		ORDER BY t.id
	`

	var teams []models.Team
	if err := r.storage.Select(&teams, query, hackathonID, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for i := range teams {
		members, err := r.getMembers(teams[i].ID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		teams[i].Members = members
	}

	return teams, nil
}

func (r *TeamRepo) UpdateTeamName(teamID int64, name string) (models.Team, error) {
	const op = "repo.team.UpdateTeamName"

	query := `
		UPDATE teams SET name = $1 WHERE id = $2
		RETURNING id, name, leader_id, hackathon_id, team_code
	`

	var team models.Team
	err := r.storage.QueryRowx(query, name, teamID).StructScan(&team)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Team{}, fmt.Errorf("%s: %w", op, apperrors.ErrTeamNotFound)
		}
		if uniqueViolation(err, "teams_name_per_hackathon_key") {
			return models.Team{}, fmt.Errorf("%s: %w", op, apperrors.ErrTeamNameTaken)
		}
		return models.Team{}, fmt.Errorf("%s: %w", op, err)
	}

	team.Members, err = r.getMembers(team.ID)
	if err != nil {
		return models.Team{}, fmt.Errorf("%s: %w", op, err)
	}

	return team, nil
}

func (r *TeamRepo) DeleteTeam(teamID int64) error {
	const op = "repo.team.DeleteTeam"

	result, err := r.storage.Exec(`DELETE FROM teams WHERE id = $1`, teamID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, apperrors.ErrTeamNotFound)
	}

	return nil
}

// AddMember re-validates capacity under a row lock on the team, so two
// concurrent joins cannot both pass the count.
func (r *TeamRepo) AddMember(teamID, hackathonID int64, userID string, maxTeamSize int) error {
	const op = "repo.team.AddMember"

	tx, err := r.storage.Beginx()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	var lockedID int64
	err = tx.Get(&lockedID, `SELECT id FROM teams WHERE id = $1 FOR UPDATE`, teamID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%s: %w", op, apperrors.ErrTeamNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	var count int
	err = tx.Get(&count, `SELECT COUNT(*) FROM team_members WHERE team_id = $1`, teamID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if count >= maxTeamSize {
		return fmt.Errorf("%s: %w", op, apperrors.ErrTeamFull)
	}

	_, err = tx.Exec(`INSERT INTO team_members (team_id, hackathon_id, user_id) VALUES ($1, $2, $3)`,
		teamID, hackathonID, userID)
	if err != nil {
		if uniqueViolation(err, "") {
			return fmt.Errorf("%s: %w", op, apperrors.ErrAlreadyInTeam)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	return nil
}

func (r *TeamRepo) RemoveMember(teamID int64, userID string) error {
	const op = "repo.team.RemoveMember"

	result, err := r.storage.Exec(`DELETE FROM team_members WHERE team_id = $1 AND user_id = $2`, teamID, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, apperrors.ErrMemberNotFound)
	}

	return nil
}

// GetUserTeam resolves the team the user belongs to in a hackathon.
func (r *TeamRepo) GetUserTeam(hackathonID int64, userID string) (models.Team, error) {
	const op = "repo.team.GetUserTeam"

	query := `
		SELECT t.id, t.name, t.leader_id, t.hackathon_id, t.team_code
		FROM teams t
		JOIN team_members tm ON tm.team_id = t.id
		WHERE t.hackathon_id = $1 AND tm.user_id = $2
	`

	var team models.Team
	err := r.storage.Get(&team, query, hackathonID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Team{}, fmt.Errorf("%s: %w", op, apperrors.ErrTeamNotFound)
		}
		return models.Team{}, fmt.Errorf("%s: %w", op, err)
	}

	team.Members, err = r.getMembers(team.ID)
	if err != nil {
		return models.Team{}, fmt.Errorf("%s: %w", op, err)
	}

	return team, nil
}

func (r *TeamRepo) getMembers(teamID int64) ([]string, error) {
	var members []string
	err := r.storage.Select(&members, `SELECT user_id FROM team_members WHERE team_id = $1 ORDER BY user_id`, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team members: %w", err)
	}
	return members, nil
}
