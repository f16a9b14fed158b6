package models

// Actor is the identity context of a request, as asserted by the
// authentication subsystem. The zero value is an anonymous caller.
type Actor struct {
	UserID          string
	Authenticated   bool
	Superuser       bool
	ProfileComplete bool
}

func Anonymous() Actor {
	return Actor{}
}
