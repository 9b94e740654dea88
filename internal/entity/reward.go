package entity

import "time"

type Reward struct {
	Base

	EventLocationID string
	EventLocation   EventLocation `gorm:"foreignKey:EventLocationID"`

	Name        string
	Code        string `gorm:"unique"`
	Description string

	Points         int
	PointsRequired int

	TotalQuantity int

	// RemainingQuantity only decreases through RewardRepository.CheckAndReserve
	// and only increases through Release or an explicit restock.
	RemainingQuantity int

	// DailyLimit caps wins of this reward per day. Zero means unlimited. The
	// consumed part of the cap is derived from today's winning spin history,
	// not from a mutable counter.
	DailyLimit int

	WinProbability float64

	ValidFrom  time.Time
	ValidUntil time.Time

	Status Status

	Metadata Map
}

// IsAvailable reports whether the reward can be offered at the given instant,
// ignoring the daily cap which needs today's win count.
func (r *Reward) IsAvailable(now time.Time) bool {
	if r.Status != StatusActive || r.RemainingQuantity <= 0 {
		return false
	}

	return !now.Before(r.ValidFrom) && now.Before(r.ValidUntil)
}
