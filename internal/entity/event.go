package entity

import "time"

type Event struct {
	Base

	Name        string
	Code        string `gorm:"unique"`
	Description string

	StartTime time.Time
	EndTime   time.Time

	DailySpinLimit        int
	DefaultWinProbability float64

	Status Status

	// Version guards admin edits of the time window and status against lost
	// updates. Spin execution never touches it.
	Version int
}

// IsInProgress reports whether the event accepts spins at the given instant.
// The window is [StartTime, EndTime).
func (e *Event) IsInProgress(now time.Time) bool {
	if e.Status != StatusActive {
		return false
	}

	return !now.Before(e.StartTime) && now.Before(e.EndTime)
}
