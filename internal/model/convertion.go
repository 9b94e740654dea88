package model

import (
	"github.com/luckyspin-lab/backend/internal/entity"
	"github.com/mitchellh/mapstructure"
)

func ConvertEvent(event *entity.Event, locations []EventLocation) Event {
	if event == nil {
		return Event{}
	}

	return Event{
		ID:                    event.ID,
		Name:                  event.Name,
		Code:                  event.Code,
		Description:           event.Description,
		StartTime:             event.StartTime,
		EndTime:               event.EndTime,
		DailySpinLimit:        event.DailySpinLimit,
		DefaultWinProbability: event.DefaultWinProbability,
		Status:                string(event.Status),
		Version:               event.Version,
		Locations:             locations,
	}
}

func ConvertEventLocation(location *entity.EventLocation, rewards []Reward) EventLocation {
	if location == nil {
		return EventLocation{}
	}

	return EventLocation{
		ID:                    location.ID,
		Name:                  location.Name,
		Code:                  location.Code,
		DailySpinLimit:        location.DailySpinLimit,
		DefaultWinProbability: location.DefaultWinProbability,
		InitialSpins:          location.InitialSpins,
		Status:                string(location.Status),
		Rewards:               rewards,
	}
}

func ConvertReward(reward *entity.Reward) Reward {
	if reward == nil {
		return Reward{}
	}

	return Reward{
		ID:                reward.ID,
		Name:              reward.Name,
		Code:              reward.Code,
		Description:       reward.Description,
		Points:            reward.Points,
		PointsRequired:    reward.PointsRequired,
		TotalQuantity:     reward.TotalQuantity,
		RemainingQuantity: reward.RemainingQuantity,
		DailyLimit:        reward.DailyLimit,
		WinProbability:    reward.WinProbability,
		ValidFrom:         reward.ValidFrom,
		ValidUntil:        reward.ValidUntil,
		Status:            string(reward.Status),
		Metadata:          convertRewardMetadata(reward.Metadata),
	}
}

func convertRewardMetadata(raw entity.Map) *RewardMetadata {
	if len(raw) == 0 {
		return nil
	}

	var metadata RewardMetadata
	if err := mapstructure.Decode(map[string]any(raw), &metadata); err != nil {
		return nil
	}

	return &metadata
}

func ConvertSpinHistory(spin *entity.SpinHistory) SpinHistory {
	if spin == nil {
		return SpinHistory{}
	}

	rewardID := ""
	if spin.RewardID.Valid {
		rewardID = spin.RewardID.String
	}

	return SpinHistory{
		ID:                   spin.ID,
		ParticipantID:        spin.ParticipantID,
		EventLocationID:      spin.EventLocationID,
		RewardID:             rewardID,
		AttemptID:            spin.AttemptID,
		SpinTime:             spin.SpinTime,
		Won:                  spin.Won,
		BaseProbability:      spin.BaseProbability,
		Multiplier:           spin.Multiplier,
		EffectiveProbability: spin.EffectiveProbability,
		PointsEarned:         spin.PointsEarned,
	}
}
