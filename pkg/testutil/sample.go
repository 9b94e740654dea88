package testutil

import (
	"context"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/luckyspin-lab/backend/internal/entity"
	"github.com/luckyspin-lab/backend/internal/repository"
)

// SampleEvent creates an in-progress event with randomized fields. Non-zero
// fields of init overwrite the sample before it is persisted.
func SampleEvent(ctx context.Context, init *entity.Event) entity.Event {
	now := time.Now()
	sample := &entity.Event{
		Base:                  entity.Base{ID: uuid.NewString()},
		Name:                  uuid.NewString(),
		Code:                  uuid.NewString(),
		StartTime:             now.Add(-time.Hour),
		EndTime:               now.Add(time.Hour),
		DefaultWinProbability: 0.1,
		Status:                entity.StatusActive,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewEventRepository().Create(ctx, sample); err != nil {
		panic(err)
	}

	return *sample
}

func SampleLocation(ctx context.Context, init *entity.EventLocation) entity.EventLocation {
	sample := &entity.EventLocation{
		Base:   entity.Base{ID: uuid.NewString()},
		Name:   uuid.NewString(),
		Code:   uuid.NewString(),
		Status: entity.StatusActive,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if sample.EventID == "" {
		sample.EventID = SampleEvent(ctx, nil).ID
	}

	if err := repository.NewEventLocationRepository().Create(ctx, sample); err != nil {
		panic(err)
	}

	return *sample
}

func SampleReward(ctx context.Context, init *entity.Reward) entity.Reward {
	now := time.Now()
	sample := &entity.Reward{
		Base:              entity.Base{ID: uuid.NewString()},
		Name:              uuid.NewString(),
		Code:              uuid.NewString(),
		Points:            100,
		TotalQuantity:     10,
		RemainingQuantity: 10,
		WinProbability:    0.1,
		ValidFrom:         now.Add(-time.Hour),
		ValidUntil:        now.Add(time.Hour),
		Status:            entity.StatusActive,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if sample.EventLocationID == "" {
		sample.EventLocationID = SampleLocation(ctx, nil).ID
	}

	if err := repository.NewRewardRepository().Create(ctx, sample); err != nil {
		panic(err)
	}

	return *sample
}

func SampleGoldenHour(ctx context.Context, init *entity.GoldenHour) entity.GoldenHour {
	now := time.Now()
	sample := &entity.GoldenHour{
		Base:             entity.Base{ID: uuid.NewString()},
		Name:             uuid.NewString(),
		StartTime:        now.Add(-time.Hour),
		EndTime:          now.Add(time.Hour),
		Multiplier:       2,
		PointsMultiplier: 1,
		Status:           entity.StatusActive,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if sample.RewardID == "" {
		sample.RewardID = SampleReward(ctx, nil).ID
	}

	if err := repository.NewGoldenHourRepository().Create(ctx, sample); err != nil {
		panic(err)
	}

	return *sample
}

func SampleParticipant(ctx context.Context, init *entity.Participant) entity.Participant {
	sample := &entity.Participant{
		Base:   entity.Base{ID: uuid.NewString()},
		Name:   uuid.NewString(),
		Code:   uuid.NewString(),
		Status: entity.StatusActive,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := repository.NewParticipantRepository().Create(ctx, sample); err != nil {
		panic(err)
	}

	return *sample
}

func SampleParticipantEvent(ctx context.Context, init *entity.ParticipantEvent) entity.ParticipantEvent {
	sample := &entity.ParticipantEvent{
		Base:           entity.Base{ID: uuid.NewString()},
		AvailableSpins: 10,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if sample.ParticipantID == "" {
		sample.ParticipantID = SampleParticipant(ctx, nil).ID
	}

	if sample.EventLocationID == "" {
		sample.EventLocationID = SampleLocation(ctx, nil).ID
	}

	if err := repository.NewParticipantEventRepository().Create(ctx, sample); err != nil {
		panic(err)
	}

	return *sample
}

func overwriteFields[T any](origin *T, overwrite T) {
	originValue := reflect.ValueOf(origin).Elem()
	overwriteValue := reflect.ValueOf(overwrite)

	for i := 0; i < overwriteValue.NumField(); i++ {
		overwriteField := overwriteValue.Field(i)
		if !overwriteField.IsZero() {
			originValue.Field(i).Set(overwriteField)
		}
	}
}
