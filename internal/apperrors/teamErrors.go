package apperrors

import "errors"

var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamNameTaken    = errors.New("team name already taken in this hackathon")
	ErrTeamNameRequired = errors.New("team name is required")
	ErrTeamFull         = errors.New("team is already at maximum size")
	ErrAlreadyInTeam    = errors.New("user already belongs to a team in this hackathon")
	ErrLeaderCannotExit = errors.New("leader cannot exit the team, delete the team instead")
	ErrNotTeamLeader    = errors.New("only the team leader may remove other members")
	ErrMemberNotFound   = errors.New("user is not a member of this team")

	// ErrTeamCodeCollision never reaches a handler: the service regenerates
	// the join code and retries.
	ErrTeamCodeCollision = errors.New("team code already in use")
)
