package services

import "regexp"

// ConnIDPattern is the character-class constraint every business key must
// satisfy.
const ConnIDPattern = `^[A-Za-z0-9_.-]+$`

var connIDRegexp = regexp.MustCompile(ConnIDPattern)

// ValidConnID reports whether a business key satisfies the identity
// character-class constraint.
func ValidConnID(connID string) bool {
	return connIDRegexp.MatchString(connID)
}

// writeAction is the outcome of conflict resolution for one candidate.
type writeAction int

const (
	actionCreate writeAction = iota
	actionReplace
	actionReject
)

// resolveWrite decides how a write against a candidate key proceeds.
// A missing record always creates; an existing record replaces only when
// overwrite was requested, otherwise the write is rejected as a conflict.
func resolveWrite(exists, overwriteAllowed bool) writeAction {
	if !exists {
		return actionCreate
	}
	if overwriteAllowed {
		return actionReplace
	}
	return actionReject
}
