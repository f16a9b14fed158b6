package models

type Team struct {
	ID          int64    `db:"id" json:"-"`
	Name        string   `db:"name" json:"name"`
	LeaderID    string   `db:"leader_id" json:"leader_id"`
	HackathonID int64    `db:"hackathon_id" json:"-"`
	TeamCode    string   `db:"team_code" json:"team_id"`
	Members     []string `db:"-" json:"members"`
}

type TeamMember struct {
	TeamID      int64  `db:"team_id"`
	HackathonID int64  `db:"hackathon_id"`
	UserID      string `db:"user_id"`
}

func (t Team) HasMember(userID string) bool {
	for _, m := range t.Members {
		if m == userID {
			return true
		}
	}
	return false
}
