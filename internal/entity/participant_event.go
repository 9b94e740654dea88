package entity

// ParticipantEvent joins a participant to an event location and carries the
// spin entitlement balance for that pairing. It is created lazily on the
// first spin and mutated only by the spin orchestrator.
type ParticipantEvent struct {
	Base

	ParticipantID string      `gorm:"uniqueIndex:idx_participant_location"`
	Participant   Participant `gorm:"foreignKey:ParticipantID"`

	EventLocationID string        `gorm:"uniqueIndex:idx_participant_location"`
	EventLocation   EventLocation `gorm:"foreignKey:EventLocationID"`

	// AvailableSpins never goes negative; the decrement is a conditional
	// update guarded by available_spins > 0.
	AvailableSpins int

	TotalSpins  int
	TotalWins   int
	TotalPoints int
}
