// Package policy holds the access decisions for hackathons, teams and
// submissions as pure functions of the actor, the action and the derived
// hackathon status. Nothing here touches storage or the transport.
package policy

import (
	"hackathon-manager/internal/apperrors"
	"hackathon-manager/internal/domain/models"
)

type Action int

const (
	ActionRead Action = iota
	ActionCreate
	ActionUpdate
	ActionDelete
)

// ListScope is the subset of submissions a caller may list.
type ListScope int

const (
	ScopeAll ListScope = iota
	ScopeOwnTeam
)

// CanAccessHackathon allows reads for everyone and mutations for superusers only.
func CanAccessHackathon(actor models.Actor, action Action) error {
	if action == ActionRead {
		return nil
	}
	if !actor.Authenticated {
		return apperrors.ErrNotAuthenticated
	}
	if !actor.Superuser {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// CanAccessTeam decides team access. isLeader reports whether the actor
// leads the target team; it is ignored for read and create.
func CanAccessTeam(actor models.Actor, action Action, isLeader bool) error {
	switch action {
	case ActionRead:
		return nil
	case ActionCreate:
		if !actor.Authenticated {
			return apperrors.ErrNotAuthenticated
		}
		if !actor.ProfileComplete {
			return apperrors.ErrProfileIncomplete
		}
		return nil
	default:
		if !actor.Authenticated {
			return apperrors.ErrNotAuthenticated
		}
		if actor.Superuser || isLeader {
			return nil
		}
		return apperrors.ErrPermissionDenied
	}
}

// SubmissionListScope decides the visible subset of a hackathon's submissions.
// While the hackathon is ongoing the list is private: superusers see all,
// other authenticated callers see only their own team's entry, anonymous
// callers are rejected. Outside of Ongoing the list is public.
func SubmissionListScope(actor models.Actor, status models.Status) (ListScope, error) {
	if status != models.StatusOngoing {
		return ScopeAll, nil
	}
	if !actor.Authenticated {
		return ScopeAll, apperrors.ErrNotAuthenticated
	}
	if actor.Superuser {
		return ScopeAll, nil
	}
	return ScopeOwnTeam, nil
}

// CanAccessSubmission decides access to a single submission record.
// isTeamMember reports whether the actor belongs to the owning team.
//
// An Upcoming hackathon denies every action, reads included, while the list
// endpoint of the same hackathon stays public. The asymmetry is kept on
// purpose; flattening it would change the external contract.
func CanAccessSubmission(actor models.Actor, action Action, status models.Status, isTeamMember bool) error {
	switch status {
	case models.StatusCompleted:
		if action == ActionRead {
			return nil
		}
		if !actor.Authenticated {
			return apperrors.ErrNotAuthenticated
		}
		if !isTeamMember {
			return apperrors.ErrNotTeamMember
		}
		return nil
	case models.StatusOngoing:
		if !actor.Authenticated {
			return apperrors.ErrNotAuthenticated
		}
		if !isTeamMember {
			return apperrors.ErrNotTeamMember
		}
		return nil
	default:
		return apperrors.ErrHackathonNotStarted
	}
}
