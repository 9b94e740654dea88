package domain

import (
	"testing"
	"time"

	"github.com/luckyspin-lab/backend/internal/entity"
	"github.com/luckyspin-lab/backend/internal/model"
	"github.com/luckyspin-lab/backend/internal/repository"
	"github.com/luckyspin-lab/backend/pkg/errorx"
	"github.com/luckyspin-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newEventDomain() EventDomain {
	return NewEventDomain(
		repository.NewEventRepository(),
		repository.NewEventLocationRepository(),
		repository.NewRewardRepository(),
		repository.NewGoldenHourRepository(),
	)
}

func Test_eventDomain_FullScenario(t *testing.T) {
	ctx := testutil.MockContext()
	eventDomain := newEventDomain()
	now := time.Now()

	event, err := eventDomain.CreateEvent(ctx, &model.CreateEventRequest{
		Name:                  "Summer Festival",
		Code:                  "summer-2026",
		StartTime:             now,
		EndTime:               now.Add(30 * 24 * time.Hour),
		DailySpinLimit:        5,
		DefaultWinProbability: 0.1,
	})
	require.NoError(t, err)
	require.NotEmpty(t, event.ID)

	location, err := eventDomain.CreateLocation(ctx, &model.CreateLocationRequest{
		EventID:      event.ID,
		Name:         "Downtown Mall",
		Code:         "downtown",
		InitialSpins: 3,
	})
	require.NoError(t, err)

	reward, err := eventDomain.CreateReward(ctx, &model.CreateRewardRequest{
		LocationID:     location.ID,
		Name:           "Voucher",
		Code:           "voucher-50",
		Points:         50,
		TotalQuantity:  100,
		WinProbability: 0.05,
		Metadata:       map[string]any{"sponsor": "acme"},
	})
	require.NoError(t, err)

	_, err = eventDomain.CreateGoldenHour(ctx, &model.CreateGoldenHourRequest{
		RewardID:   reward.ID,
		Name:       "Lunch Rush",
		StartTime:  now,
		EndTime:    now.Add(time.Hour),
		Multiplier: 2,
	})
	require.NoError(t, err)

	got, err := eventDomain.GetEvent(ctx, &model.GetEventRequest{Code: "summer-2026"})
	require.NoError(t, err)
	require.Equal(t, "Summer Festival", got.Event.Name)
	require.Len(t, got.Event.Locations, 1)
	require.Len(t, got.Event.Locations[0].Rewards, 1)

	gotReward := got.Event.Locations[0].Rewards[0]
	require.Equal(t, 100, gotReward.RemainingQuantity)
	require.NotNil(t, gotReward.Metadata)
	require.Equal(t, "acme", gotReward.Metadata.Sponsor)
}

func Test_eventDomain_CreateEvent_InvalidWindow(t *testing.T) {
	ctx := testutil.MockContext()
	now := time.Now()

	_, err := newEventDomain().CreateEvent(ctx, &model.CreateEventRequest{
		Name:      "backwards",
		Code:      "backwards",
		StartTime: now,
		EndTime:   now.Add(-time.Hour),
	})
	requireSpinErrorCode(t, err, errorx.BadRequest)
}

func Test_eventDomain_CreateReward_InvalidProbability(t *testing.T) {
	ctx := testutil.MockContext()
	location := testutil.SampleLocation(ctx, nil)

	_, err := newEventDomain().CreateReward(ctx, &model.CreateRewardRequest{
		LocationID:     location.ID,
		Name:           "broken",
		Code:           "broken",
		TotalQuantity:  1,
		WinProbability: 1.5,
	})
	requireSpinErrorCode(t, err, errorx.BadRequest)
}

func Test_eventDomain_UpdateEventWindow_VersionGuard(t *testing.T) {
	ctx := testutil.MockContext()
	eventDomain := newEventDomain()
	event := testutil.SampleEvent(ctx, nil)

	_, err := eventDomain.UpdateEventWindow(ctx, &model.UpdateEventWindowRequest{
		EventID:   event.ID,
		Version:   event.Version,
		StartTime: event.StartTime,
		EndTime:   event.EndTime.Add(time.Hour),
	})
	require.NoError(t, err)

	// The same version again is stale now.
	_, err = eventDomain.UpdateEventWindow(ctx, &model.UpdateEventWindowRequest{
		EventID:   event.ID,
		Version:   event.Version,
		StartTime: event.StartTime,
		EndTime:   event.EndTime.Add(2 * time.Hour),
	})
	requireSpinErrorCode(t, err, errorx.AlreadyExists)

	got, err := repository.NewEventRepository().GetByID(ctx, event.ID)
	require.NoError(t, err)
	require.Equal(t, event.Version+1, got.Version)
}

func Test_eventDomain_RestockReward(t *testing.T) {
	ctx := testutil.MockContext()
	reward := testutil.SampleReward(ctx, &entity.Reward{
		TotalQuantity:     5,
		RemainingQuantity: 1,
	})

	_, err := newEventDomain().RestockReward(ctx, &model.RestockRewardRequest{
		RewardID: reward.ID,
		Quantity: 10,
	})
	require.NoError(t, err)

	got, err := repository.NewRewardRepository().GetByID(ctx, reward.ID)
	require.NoError(t, err)
	require.Equal(t, 15, got.TotalQuantity)
	require.Equal(t, 11, got.RemainingQuantity)
}
