package entity

import (
	"database/sql"
	"time"
)

// SpinHistory is the immutable audit record of one executed spin. Exactly one
// row is written per committed spin and rows are never updated or deleted.
// Daily spin and win counters are derived from this table.
type SpinHistory struct {
	SnowFlakeBase

	ParticipantID string `gorm:"index:idx_spin_participant_time"`

	EventLocationID string `gorm:"index:idx_spin_location_time"`

	RewardID sql.NullString `gorm:"index"`

	// AttemptID is the client-chosen idempotency key of the spin request.
	AttemptID string `gorm:"uniqueIndex"`

	SpinTime time.Time `gorm:"index:idx_spin_participant_time;index:idx_spin_location_time"`

	Won bool

	// Probability bookkeeping for audit reconstruction.
	BaseProbability      float64
	Multiplier           float64
	EffectiveProbability float64
	RandomDraw           float64

	PointsEarned int
}
