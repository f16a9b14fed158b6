package apperrors

import "errors"

var (
	ErrSubmissionNotFound      = errors.New("submission not found")
	ErrSubmissionExists        = errors.New("a submission already exists for this team")
	ErrHackathonNotOngoing     = errors.New("submissions can only be made to ongoing hackathons")
	ErrWrongTeam               = errors.New("submissions can only be made for your own team")
	ErrNotTeamMember           = errors.New("not a member of the registered team")
	ErrHackathonNotStarted     = errors.New("hackathon has not started yet")
	ErrScoreOutOfRange         = errors.New("score must be between 0 and 100")
	ErrSubmissionTitleRequired = errors.New("submission title is required")
	ErrSubmissionURLRequired   = errors.New("submission_url is required")
)
