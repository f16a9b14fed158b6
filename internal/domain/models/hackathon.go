package models

import "time"

type Hackathon struct {
	ID              int64     `db:"id" json:"-"`
	Title           string    `db:"title" json:"title"`
	Tagline         string    `db:"tagline" json:"tagline"`
	Description     string    `db:"description" json:"description"`
	StartsAt        time.Time `db:"starts_at" json:"starts_at"`
	EndsAt          time.Time `db:"ends_at" json:"ends_at"`
	Image           string    `db:"image" json:"image,omitempty"`
	Thumbnail       string    `db:"thumbnail" json:"thumbnail,omitempty"`
	ResultsDeclared bool      `db:"results_declared" json:"results_declared"`
	MaxTeamSize     int       `db:"max_team_size" json:"max_team_size"`
	Slug            string    `db:"slug" json:"slug"`
	Status          Status    `db:"-" json:"status,omitempty"`
}

func (h Hackathon) StatusAt(now time.Time) Status {
	return ResolveStatus(h.StartsAt, h.EndsAt, now)
}
