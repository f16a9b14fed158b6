package apperrors

import "errors"

var (
	ErrHackathonNotFound   = errors.New("hackathon not found")
	ErrHackathonExists     = errors.New("hackathon title already taken")
	ErrTitleRequired       = errors.New("hackathon title is required")
	ErrInvalidSchedule     = errors.New("hackathon must start before it ends")
	ErrInvalidStatusFilter = errors.New("invalid status filter")
)
