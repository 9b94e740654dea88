package entity

import "time"

type GoldenHour struct {
	Base

	RewardID string
	Reward   Reward `gorm:"foreignKey:RewardID"`

	Name string

	StartTime time.Time
	EndTime   time.Time

	// Multiplier boosts the reward win probability inside the window. Always
	// at least 1.
	Multiplier float64

	// PointsMultiplier boosts the points of a winning spin inside the window.
	PointsMultiplier float64

	Status Status
}

// Contains reports whether the window [StartTime, EndTime) covers now and the
// golden hour is active.
func (g *GoldenHour) Contains(now time.Time) bool {
	if g.Status != StatusActive {
		return false
	}

	return !now.Before(g.StartTime) && now.Before(g.EndTime)
}
