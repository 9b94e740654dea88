package model

import "time"

type ExecuteSpinRequest struct {
	ParticipantID string `json:"participant_id"`
	EventCode     string `json:"event_code"`
	LocationID    string `json:"location_id"`

	// AttemptID is a client-chosen idempotency key. Retrying a technically
	// failed request with the same attempt id is safe; replaying a committed
	// one returns the recorded outcome.
	AttemptID string `json:"attempt_id"`
}

type ExecuteSpinResponse struct {
	Won               bool    `json:"won"`
	RewardID          string  `json:"reward_id,omitempty"`
	RewardName        string  `json:"reward_name,omitempty"`
	MultiplierApplied float64 `json:"multiplier_applied"`
	PointsEarned      int     `json:"points_earned"`
	RemainingSpins    int     `json:"remaining_spins"`
}

type CheckEligibilityRequest struct {
	ParticipantID string `json:"participant_id"`
	EventID       string `json:"event_id"`
	LocationID    string `json:"location_id"`
}

type CheckEligibilityResponse struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason,omitempty"`
}

type GetLatestSpinRequest struct {
	ParticipantID string `json:"participant_id"`
}

type GetLatestSpinResponse struct {
	Spin SpinHistory `json:"spin"`
}

type SpinHistory struct {
	ID                   int64     `json:"id"`
	ParticipantID        string    `json:"participant_id"`
	EventLocationID      string    `json:"event_location_id"`
	RewardID             string    `json:"reward_id,omitempty"`
	AttemptID            string    `json:"attempt_id"`
	SpinTime             time.Time `json:"spin_time"`
	Won                  bool      `json:"won"`
	BaseProbability      float64   `json:"base_probability"`
	Multiplier           float64   `json:"multiplier"`
	EffectiveProbability float64   `json:"effective_probability"`
	PointsEarned         int       `json:"points_earned"`
}
