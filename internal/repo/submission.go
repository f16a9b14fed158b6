package repo

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"hackathon-manager/internal/apperrors"
	"hackathon-manager/internal/domain/models"
)

type SubmissionRepo struct {
	storage *sqlx.DB
}

func NewSubmissionRepo(storage *sqlx.DB) *SubmissionRepo {
	return &SubmissionRepo{storage: storage}
}

// CreateSubmission persists a new submission. The UNIQUE constraint on
// team_id is the authoritative one-submission-per-team guard; the service
// level existence check only produces a friendlier error earlier.
func (r *SubmissionRepo) CreateSubmission(sub models.Submission) (models.Submission, error) {
	const op = "repo.submission.CreateSubmission"

	query := `
		INSERT INTO submissions (team_id, hackathon_id, title, submission_url, description, score, review)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, team_id, hackathon_id, title, submission_url, description, score, review, updated_at
	`

	var created models.Submission
	err := r.storage.QueryRowx(query,
		sub.TeamID, sub.HackathonID, sub.Title, sub.SubmissionURL, sub.Description, sub.Score, sub.Review,
	).StructScan(&created)
	if err != nil {
		if uniqueViolation(err, "") {
			return models.Submission{}, fmt.Errorf("%s: %w", op, apperrors.ErrSubmissionExists)
		}
		return models.Submission{}, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

func (r *SubmissionRepo) GetSubmission(id int64) (models.Submission, error) {
	const op = "repo.submission.GetSubmission"

	query := `
		SELECT id, team_id, hackathon_id, title, submission_url, description, score, review, updated_at
		FROM submissions WHERE id = $1
	`

	var sub models.Submission
	err := r.storage.Get(&sub, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Submission{}, fmt.Errorf("%s: %w", op, apperrors.ErrSubmissionNotFound)
		}
		return models.Submission{}, fmt.Errorf("%s: %w", op, err)
	}

	return sub, nil
}

func (r *SubmissionRepo) ListSubmissionsByHackathon(hackathonID int64) ([]models.Submission, error) {
	const op = "repo.submission.ListSubmissionsByHackathon"

	query := `
		SELECT id, team_id, hackathon_id, title, submission_url, description, score, review, updated_at
		FROM submissions WHERE hackathon_id = $1 ORDER BY id
	`

	var subs []models.Submission
	if err := r.storage.Select(&subs, query, hackathonID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return subs, nil
}

func (r *SubmissionRepo) ListSubmissionsByTeam(hackathonID, teamID int64) ([]models.Submission, error) {
	const op = "repo.submission.ListSubmissionsByTeam"

	query := `
		SELECT id, team_id, hackathon_id, title, submission_url, description, score, review, updated_at
		FROM submissions WHERE hackathon_id = $1 AND team_id = $2 ORDER BY id
	`

	var subs []models.Submission
	if err := r.storage.Select(&subs, query, hackathonID, teamID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return subs, nil
}

func (r *SubmissionRepo) SubmissionExistsForTeam(teamID int64) (bool, error) {
	const op = "repo.submission.SubmissionExistsForTeam"

	var exists bool
	err := r.storage.Get(&exists, `SELECT EXISTS(SELECT 1 FROM submissions WHERE team_id = $1)`, teamID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}

// UpdateSubmission rewrites the participant-editable fields. Score and
// review are untouchable here; they change only through ApplyResult.
func (r *SubmissionRepo) UpdateSubmission(sub models.Submission) (models.Submission, error) {
	const op = "repo.submission.UpdateSubmission"

	query := `
		UPDATE submissions
		SET title = $1, submission_url = $2, description = $3, updated_at = now()
		WHERE id = $4
		RETURNING id, team_id, hackathon_id, title, submission_url, description, score, review, updated_at
	`

	var updated models.Submission
	err := r.storage.QueryRowx(query, sub.Title, sub.SubmissionURL, sub.Description, sub.ID).StructScan(&updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Submission{}, fmt.Errorf("%s: %w", op, apperrors.ErrSubmissionNotFound)
		}
		return models.Submission{}, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}

// ApplyResult sets the reviewer-assigned score and review text.
func (r *SubmissionRepo) ApplyResult(id int64, review string, score int) (models.Submission, error) {
	const op = "repo.submission.ApplyResult"

	query := `
		UPDATE submissions
		SET score = $1, review = $2, updated_at = now()
		WHERE id = $3
		RETURNING id, team_id, hackathon_id, title, submission_url, description, score, review, updated_at
	`

	var updated models.Submission
	err := r.storage.QueryRowx(query, score, review, id).StructScan(&updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Submission{}, fmt.Errorf("%s: %w", op, apperrors.ErrSubmissionNotFound)
		}
		return models.Submission{}, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}

func (r *SubmissionRepo) DeleteSubmission(id int64) error {
	const op = "repo.submission.DeleteSubmission"

	result, err := r.storage.Exec(`DELETE FROM submissions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, apperrors.ErrSubmissionNotFound)
	}

	return nil
}
