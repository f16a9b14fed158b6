package repo

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"hackathon-manager/internal/apperrors"
	"hackathon-manager/internal/domain/models"
)

type HackathonRepo struct {
	storage *sqlx.DB
}

func NewHackathonRepo(storage *sqlx.DB) *HackathonRepo {
	return &HackathonRepo{storage: storage}
}

func (r *HackathonRepo) CreateHackathon(h models.Hackathon) (models.Hackathon, error) {
	const op = "repo.hackathon.CreateHackathon"

	query := `
		INSERT INTO hackathons (title, tagline, description, starts_at, ends_at, image, thumbnail, results_declared, max_team_size, slug)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, title, tagline, description, starts_at, ends_at, image, thumbnail, results_declared, max_team_size, slug
	`

	var created models.Hackathon
	err := r.storage.QueryRowx(query,
		h.Title, h.Tagline, h.Description, h.StartsAt, h.EndsAt,
		h.Image, h.Thumbnail, h.ResultsDeclared, h.MaxTeamSize, h.Slug,
	).StructScan(&created)
	if err != nil {
		if uniqueViolation(err, "") {
			return models.Hackathon{}, fmt.Errorf("%s: %w", op, apperrors.ErrHackathonExists)
		}
		return models.Hackathon{}, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

func (r *HackathonRepo) GetHackathonBySlug(slug string) (models.Hackathon, error) {
	const op = "repo.hackathon.GetHackathonBySlug"

	query := `
		SELECT id, title, tagline, description, starts_at, ends_at, image, thumbnail, results_declared, max_team_size, slug
		FROM hackathons WHERE slug = $1
	`

	var h models.Hackathon
	err := r.storage.Get(&h, query, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Hackathon{}, fmt.Errorf("%s: %w", op, apperrors.ErrHackathonNotFound)
		}
		return models.Hackathon{}, fmt.Errorf("%s: %w", op, err)
	}

	return h, nil
}

func (r *HackathonRepo) GetHackathonByID(id int64) (models.Hackathon, error) {
	const op = "repo.hackathon.GetHackathonByID"

	query := `
		SELECT id, title, tagline, description, starts_at, ends_at, image, thumbnail, results_declared, max_team_size, slug
		FROM hackathons WHERE id = $1
	`

	var h models.Hackathon
	err := r.storage.Get(&h, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Hackathon{}, fmt.Errorf("%s: %w", op, apperrors.ErrHackathonNotFound)
		}
		return models.Hackathon{}, fmt.Errorf("%s: %w", op, err)
	}

	return h, nil
}

// ListHackathons returns hackathons optionally filtered by derived status.
// The SQL comparisons mirror models.ResolveStatus so the filter and the
// rendered status can never disagree.
func (r *HackathonRepo) ListHackathons(filter string, now time.Time) ([]models.Hackathon, error) {
	const op = "repo.hackathon.ListHackathons"

	query := `
		SELECT id, title, tagline, description, starts_at, ends_at, image, thumbnail, results_declared, max_team_size, slug
		FROM hackathons
	`

	switch filter {
	case "":
	case "ongoing":
		query += ` WHERE starts_at <= $1 AND ends_at > $1`
	case "completed":
		query += ` WHERE ends_at <= $1`
	case "upcoming":
		query += ` WHERE starts_at > $1`
	default:
		return nil, fmt.Errorf("%s: %w", op, apperrors.ErrInvalidStatusFilter)
	}
	query += ` ORDER BY starts_at`

	var hackathons []models.Hackathon
	var err error
	if filter == "" {
		err = r.storage.Select(&hackathons, query)
	} else {
		err = r.storage.Select(&hackathons, query, now)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return hackathons, nil
}

func (r *HackathonRepo) UpdateHackathon(h models.Hackathon) (models.Hackathon, error) {
	const op = "repo.hackathon.UpdateHackathon"

	query := `
		UPDATE hackathons
		SET title = $1, tagline = $2, description = $3, starts_at = $4, ends_at = $5,
		    image = $6, thumbnail = $7, results_declared = $8, max_team_size = $9
		WHERE id = $10
		RETURNING id, title, tagline, description, starts_at, ends_at, image, thumbnail, results_declared, max_team_size, slug
	`

	var updated models.Hackathon
	err := r.storage.QueryRowx(query,
		h.Title, h.Tagline, h.Description, h.StartsAt, h.EndsAt,
		h.Image, h.Thumbnail, h.ResultsDeclared, h.MaxTeamSize, h.ID,
	).StructScan(&updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Hackathon{}, fmt.Errorf("%s: %w", op, apperrors.ErrHackathonNotFound)
		}
		if uniqueViolation(err, "") {
			return models.Hackathon{}, fmt.Errorf("%s: %w", op, apperrors.ErrHackathonExists)
		}
		return models.Hackathon{}, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}

func (r *HackathonRepo) DeleteHackathon(id int64) error {
	const op = "repo.hackathon.DeleteHackathon"

	result, err := r.storage.Exec(`DELETE FROM hackathons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, apperrors.ErrHackathonNotFound)
	}

	return nil
}

func (r *HackathonRepo) SlugExists(slug string) (bool, error) {
	const op = "repo.hackathon.SlugExists"

	var exists bool
	err := r.storage.Get(&exists, `SELECT EXISTS(SELECT 1 FROM hackathons WHERE slug = $1)`, slug)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}
