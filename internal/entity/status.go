package entity

import "github.com/luckyspin-lab/backend/pkg/enum"

// Status is a flat tag shared by campaign entities. There is no status
// inheritance between an event and its children; each row carries its own
// value and activity checks combine them explicitly.
type Status string

var (
	StatusActive   = enum.New(Status("active"))
	StatusInactive = enum.New(Status("inactive"))
	StatusArchived = enum.New(Status("archived"))
)

var statusTransitions = map[Status][]Status{
	StatusActive:   {StatusInactive, StatusArchived},
	StatusInactive: {StatusActive, StatusArchived},
	StatusArchived: {},
}

// CanTransition reports whether from is allowed to move to to. Archived is
// terminal.
func CanTransition(from, to Status) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}

	return false
}
