package model

import "time"

type CreateEventRequest struct {
	Name                  string    `json:"name"`
	Code                  string    `json:"code"`
	Description           string    `json:"description"`
	StartTime             time.Time `json:"start_time"`
	EndTime               time.Time `json:"end_time"`
	DailySpinLimit        int       `json:"daily_spin_limit"`
	DefaultWinProbability float64   `json:"default_win_probability"`
}

type CreateEventResponse struct {
	ID string `json:"id"`
}

type CreateLocationRequest struct {
	EventID               string  `json:"event_id"`
	Name                  string  `json:"name"`
	Code                  string  `json:"code"`
	DailySpinLimit        int     `json:"daily_spin_limit"`
	DefaultWinProbability float64 `json:"default_win_probability"`
	InitialSpins          int     `json:"initial_spins"`
}

type CreateLocationResponse struct {
	ID string `json:"id"`
}

type CreateRewardRequest struct {
	LocationID     string         `json:"location_id"`
	Name           string         `json:"name"`
	Code           string         `json:"code"`
	Description    string         `json:"description"`
	Points         int            `json:"points"`
	PointsRequired int            `json:"points_required"`
	TotalQuantity  int            `json:"total_quantity"`
	DailyLimit     int            `json:"daily_limit"`
	WinProbability float64        `json:"win_probability"`
	ValidFrom      time.Time      `json:"valid_from"`
	ValidUntil     time.Time      `json:"valid_until"`
	Metadata       map[string]any `json:"metadata"`
}

type CreateRewardResponse struct {
	ID string `json:"id"`
}

type CreateGoldenHourRequest struct {
	RewardID         string    `json:"reward_id"`
	Name             string    `json:"name"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	Multiplier       float64   `json:"multiplier"`
	PointsMultiplier float64   `json:"points_multiplier"`
}

type CreateGoldenHourResponse struct {
	ID string `json:"id"`
}

type UpdateEventWindowRequest struct {
	EventID   string    `json:"event_id"`
	Version   int       `json:"version"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type UpdateEventWindowResponse struct{}

type RestockRewardRequest struct {
	RewardID string `json:"reward_id"`
	Quantity int    `json:"quantity"`
}

type RestockRewardResponse struct{}

type GetEventRequest struct {
	Code string `json:"code"`
}

type GetEventResponse struct {
	Event Event `json:"event"`
}

type Event struct {
	ID                    string          `json:"id"`
	Name                  string          `json:"name"`
	Code                  string          `json:"code"`
	Description           string          `json:"description"`
	StartTime             time.Time       `json:"start_time"`
	EndTime               time.Time       `json:"end_time"`
	DailySpinLimit        int             `json:"daily_spin_limit"`
	DefaultWinProbability float64         `json:"default_win_probability"`
	Status                string          `json:"status"`
	Version               int             `json:"version"`
	Locations             []EventLocation `json:"locations,omitempty"`
}

type EventLocation struct {
	ID                    string   `json:"id"`
	Name                  string   `json:"name"`
	Code                  string   `json:"code"`
	DailySpinLimit        int      `json:"daily_spin_limit"`
	DefaultWinProbability float64  `json:"default_win_probability"`
	InitialSpins          int      `json:"initial_spins"`
	Status                string   `json:"status"`
	Rewards               []Reward `json:"rewards,omitempty"`
}

type Reward struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Code              string          `json:"code"`
	Description       string          `json:"description"`
	Points            int             `json:"points"`
	PointsRequired    int             `json:"points_required"`
	TotalQuantity     int             `json:"total_quantity"`
	RemainingQuantity int             `json:"remaining_quantity"`
	DailyLimit        int             `json:"daily_limit"`
	WinProbability    float64         `json:"win_probability"`
	ValidFrom         time.Time       `json:"valid_from"`
	ValidUntil        time.Time       `json:"valid_until"`
	Status            string          `json:"status"`
	Metadata          *RewardMetadata `json:"metadata,omitempty"`
}

// RewardMetadata is the typed view of the free-form reward metadata column.
type RewardMetadata struct {
	ImageURL        string `json:"image_url" mapstructure:"image_url"`
	DeliveryChannel string `json:"delivery_channel" mapstructure:"delivery_channel"`
	Sponsor         string `json:"sponsor" mapstructure:"sponsor"`
}
