package models

import "time"

type Submission struct {
	ID            int64     `db:"id" json:"id"`
	TeamID        int64     `db:"team_id" json:"-"`
	HackathonID   int64     `db:"hackathon_id" json:"-"`
	Title         string    `db:"title" json:"title"`
	SubmissionURL string    `db:"submission_url" json:"submission_url"`
	Description   string    `db:"description" json:"description"`
	Score         int       `db:"score" json:"score"`
	Review        string    `db:"review" json:"review"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}
