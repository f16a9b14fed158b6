package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"hackathon-manager/internal/apperrors"
	"hackathon-manager/internal/domain/models"
	"hackathon-manager/internal/lib/logger/sl"
	"hackathon-manager/internal/policy"
)

type HackathonService struct {
	log           *slog.Logger
	hackathonRepo HackathonProvider
	now           func() time.Time
}

type HackathonProvider interface {
	CreateHackathon(h models.Hackathon) (models.Hackathon, error)
	GetHackathonBySlug(slug string) (models.Hackathon, error)
	GetHackathonByID(id int64) (models.Hackathon, error)
	ListHackathons(filter string, now time.Time) ([]models.Hackathon, error)
	UpdateHackathon(h models.Hackathon) (models.Hackathon, error)
	DeleteHackathon(id int64) error
	SlugExists(slug string) (bool, error)
}

func NewHackathonService(
	log *slog.Logger,
	hackathonRepo HackathonProvider) *HackathonService {
	return &HackathonService{
		log:           log,
		hackathonRepo: hackathonRepo,
		now:           time.Now,
	}
}

// ListHackathons returns all hackathons, or the subset matching the derived
// status filter ("ongoing", "completed" or "upcoming").
func (s *HackathonService) ListHackathons(ctx context.Context, filter string) ([]models.Hackathon, error) {
	const op = "service.hackathon.ListHackathons"

	log := s.log.With(
		slog.String("op", op),
		slog.String("filter", filter),
	)

	switch filter {
	case "", "ongoing", "completed", "upcoming":
	default:
		log.Warn("invalid status filter")
		return nil, fmt.Errorf("%s: %w", op, apperrors.ErrInvalidStatusFilter)
	}

	now := s.now()
	hackathons, err := s.hackathonRepo.ListHackathons(filter, now)
	if err != nil {
		log.Error("failed to list hackathons", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for i := range hackathons {
		hackathons[i].Status = hackathons[i].StatusAt(now)
	}

	log.Info("hackathons listed", slog.Int("count", len(hackathons)))

	return hackathons, nil
}

func (s *HackathonService) CreateHackathon(ctx context.Context, actor models.Actor, h models.Hackathon) (models.Hackathon, error) {
	const op = "service.hackathon.CreateHackathon"

	log := s.log.With(
		slog.String("op", op),
		slog.String("title", h.Title),
	)

	if err := policy.CanAccessHackathon(actor, policy.ActionCreate); err != nil {
		log.Warn("hackathon create denied", sl.Err(err))
		return models.Hackathon{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := validateHackathon(h); err != nil {
		log.Error("invalid hackathon payload", sl.Err(err))
		return models.Hackathon{}, fmt.Errorf("%s: %w", op, err)
	}

	if h.MaxTeamSize <= 0 {
		h.MaxTeamSize = 10
	}

	slug, err := s.uniqueSlug(h.Title)
	if err != nil {
		log.Error("failed to derive slug", sl.Err(err))
		return models.Hackathon{}, fmt.Errorf("%s: %w", op, err)
	}
	h.Slug = slug

	created, err := s.hackathonRepo.CreateHackathon(h)
	if err != nil {
		log.Error("failed to create hackathon", sl.Err(err))
		return models.Hackathon{}, fmt.Errorf("%s: %w", op, err)
	}
	created.Status = created.StatusAt(s.now())

	log.Info("hackathon created", slog.String("slug", created.Slug))

	return created, nil
}

func (s *HackathonService) GetHackathon(ctx context.Context, slug string) (models.Hackathon, error) {
	const op = "service.hackathon.GetHackathon"

	log := s.log.With(
		slog.String("op", op),
		slog.String("slug", slug),
	)

	h, err := s.hackathonRepo.GetHackathonBySlug(slug)
	if err != nil {
		log.Error("failed to get hackathon", sl.Err(err))
		return models.Hackathon{}, fmt.Errorf("%s: %w", op, err)
	}
	h.Status = h.StatusAt(s.now())

	return h, nil
}

func (s *HackathonService) UpdateHackathon(ctx context.Context, actor models.Actor, slug string, h models.Hackathon) (models.Hackathon, error) {
	const op = "service.hackathon.UpdateHackathon"

	log := s.log.With(
		slog.String("op", op),
		slog.String("slug", slug),
	)

	if err := policy.CanAccessHackathon(actor, policy.ActionUpdate); err != nil {
		log.Warn("hackathon update denied", sl.Err(err))
		return models.Hackathon{}, fmt.Errorf("%s: %w", op, err)
	}

	existing, err := s.hackathonRepo.GetHackathonBySlug(slug)
	if err != nil {
		log.Error("failed to get hackathon", sl.Err(err))
		return models.Hackathon{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := validateHackathon(h); err != nil {
		log.Error("invalid hackathon payload", sl.Err(err))
		return models.Hackathon{}, fmt.Errorf("%s: %w", op, err)
	}

	// the slug is permanent, it routes bookmarks and team joins
	h.ID = existing.ID
	h.Slug = existing.Slug
	if h.MaxTeamSize <= 0 {
		h.MaxTeamSize = existing.MaxTeamSize
	}

	updated, err := s.hackathonRepo.UpdateHackathon(h)
	if err != nil {
		log.Error("failed to update hackathon", sl.Err(err))
		return models.Hackathon{}, fmt.Errorf("%s: %w", op, err)
	}
	updated.Status = updated.StatusAt(s.now())

	log.Info("hackathon updated")

	return updated, nil
}

func (s *HackathonService) DeleteHackathon(ctx context.Context, actor models.Actor, slug string) error {
	const op = "service.hackathon.DeleteHackathon"

	log := s.log.With(
		slog.String("op", op),
		slog.String("slug", slug),
	)

	if err := policy.CanAccessHackathon(actor, policy.ActionDelete); err != nil {
		log.Warn("hackathon delete denied", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	h, err := s.hackathonRepo.GetHackathonBySlug(slug)
	if err != nil {
		log.Error("failed to get hackathon", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.hackathonRepo.DeleteHackathon(h.ID); err != nil {
		log.Error("failed to delete hackathon", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("hackathon deleted")

	return nil
}

func validateHackathon(h models.Hackathon) error {
	if strings.TrimSpace(h.Title) == "" {
		return apperrors.ErrTitleRequired
	}
	if !h.StartsAt.Before(h.EndsAt) {
		return apperrors.ErrInvalidSchedule
	}
	return nil
}

// uniqueSlug lowercases and hyphenates the title, then suffixes a counter
// until the slug is free.
func (s *HackathonService) uniqueSlug(title string) (string, error) {
	base := slugify(title)

	slug := base
	for i := 2; ; i++ {
		exists, err := s.hackathonRepo.SlugExists(slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

func slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
