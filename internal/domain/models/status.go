package models

import "time"

// Status is derived from the hackathon schedule and is never stored.
type Status string

const (
	StatusUpcoming  Status = "Upcoming"
	StatusOngoing   Status = "Ongoing"
	StatusCompleted Status = "Completed"
)

// ResolveStatus computes the hackathon status at a given instant.
// Completed wins when both the start and the end are in the past.
func ResolveStatus(start, end, now time.Time) Status {
	if !end.After(now) {
		return StatusCompleted
	}
	if !start.After(now) {
		return StatusOngoing
	}
	return StatusUpcoming
}
