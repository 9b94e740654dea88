package spinengine

import (
	"testing"
	"time"

	"github.com/luckyspin-lab/backend/internal/entity"
	"github.com/luckyspin-lab/backend/internal/repository"
	"github.com/luckyspin-lab/backend/pkg/idutil"
	"github.com/luckyspin-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newChecker() *EligibilityChecker {
	return NewEligibilityChecker(
		repository.NewEventRepository(),
		repository.NewEventLocationRepository(),
		repository.NewParticipantEventRepository(),
		repository.NewSpinHistoryRepository(),
	)
}

func Test_EligibilityChecker_EventNotFound(t *testing.T) {
	ctx := testutil.MockContext()

	result, err := newChecker().Check(ctx, "p", "no-such-event", "l", time.Now())
	require.NoError(t, err)
	require.False(t, result.Eligible)
	require.Equal(t, ReasonEventNotActive, result.Reason)
}

func Test_EligibilityChecker_EventOutsideWindow(t *testing.T) {
	ctx := testutil.MockContext()
	now := time.Now()

	event := testutil.SampleEvent(ctx, &entity.Event{
		StartTime: now.Add(-2 * time.Hour),
		EndTime:   now.Add(-time.Hour),
	})
	location := testutil.SampleLocation(ctx, &entity.EventLocation{EventID: event.ID})

	result, err := newChecker().Check(ctx, "p", event.ID, location.ID, now)
	require.NoError(t, err)
	require.False(t, result.Eligible)
	require.Equal(t, ReasonEventNotActive, result.Reason)
}

func Test_EligibilityChecker_EventEndTimeExclusive(t *testing.T) {
	ctx := testutil.MockContext()
	now := time.Now()

	event := testutil.SampleEvent(ctx, &entity.Event{
		StartTime: now.Add(-time.Hour),
		EndTime:   now,
	})
	location := testutil.SampleLocation(ctx, &entity.EventLocation{EventID: event.ID})
	participant := testutil.SampleParticipant(ctx, nil)

	result, err := newChecker().Check(ctx, participant.ID, event.ID, location.ID, now)
	require.NoError(t, err)
	require.Equal(t, ReasonEventNotActive, result.Reason)
}

func Test_EligibilityChecker_InactiveLocation(t *testing.T) {
	ctx := testutil.MockContext()

	event := testutil.SampleEvent(ctx, nil)
	location := testutil.SampleLocation(ctx, &entity.EventLocation{
		EventID: event.ID,
		Status:  entity.StatusInactive,
	})

	result, err := newChecker().Check(ctx, "p", event.ID, location.ID, time.Now())
	require.NoError(t, err)
	require.Equal(t, ReasonLocationNotActive, result.Reason)
}

func Test_EligibilityChecker_LocationOfAnotherEvent(t *testing.T) {
	ctx := testutil.MockContext()

	event := testutil.SampleEvent(ctx, nil)
	otherLocation := testutil.SampleLocation(ctx, nil)

	result, err := newChecker().Check(ctx, "p", event.ID, otherLocation.ID, time.Now())
	require.NoError(t, err)
	require.Equal(t, ReasonLocationNotActive, result.Reason)
}

func Test_EligibilityChecker_NoSpinsRemaining(t *testing.T) {
	ctx := testutil.MockContext()

	location := testutil.SampleLocation(ctx, nil)
	participant := testutil.SampleParticipant(ctx, nil)

	err := repository.NewParticipantEventRepository().Create(ctx, &entity.ParticipantEvent{
		Base:            entity.Base{ID: "pe-drained"},
		ParticipantID:   participant.ID,
		EventLocationID: location.ID,
		AvailableSpins:  0,
		TotalSpins:      10,
	})
	require.NoError(t, err)

	result, err := newChecker().Check(ctx, participant.ID, location.EventID, location.ID, time.Now())
	require.NoError(t, err)
	require.Equal(t, ReasonNoSpinsRemaining, result.Reason)
}

func Test_EligibilityChecker_FirstContactUsesInitialAllotment(t *testing.T) {
	ctx := testutil.MockContext()

	location := testutil.SampleLocation(ctx, &entity.EventLocation{InitialSpins: 3})
	participant := testutil.SampleParticipant(ctx, nil)

	result, err := newChecker().Check(ctx, participant.ID, location.EventID, location.ID, time.Now())
	require.NoError(t, err)
	require.True(t, result.Eligible)
	require.Equal(t, ReasonEligible, result.Reason)
	require.Nil(t, result.ParticipantEvent)
	require.Equal(t, 3, result.AvailableSpins)

	// The probe writes nothing.
	_, err = repository.NewParticipantEventRepository().Get(ctx, participant.ID, location.ID)
	require.Error(t, err)
}

func Test_EligibilityChecker_DailyLimitReached(t *testing.T) {
	ctx := testutil.MockContext()
	now := time.Now()

	event := testutil.SampleEvent(ctx, &entity.Event{DailySpinLimit: 2})
	location := testutil.SampleLocation(ctx, &entity.EventLocation{EventID: event.ID})
	participant := testutil.SampleParticipant(ctx, nil)
	testutil.SampleParticipantEvent(ctx, &entity.ParticipantEvent{
		ParticipantID:   participant.ID,
		EventLocationID: location.ID,
		AvailableSpins:  5,
	})

	spinHistoryRepo := repository.NewSpinHistoryRepository()
	for i := 0; i < 2; i++ {
		require.NoError(t, spinHistoryRepo.Create(ctx, &entity.SpinHistory{
			SnowFlakeBase:   entity.SnowFlakeBase{ID: idutil.NextID()},
			ParticipantID:   participant.ID,
			EventLocationID: location.ID,
			AttemptID:       participant.ID + string(rune('a'+i)),
			SpinTime:        now,
		}))
	}

	result, err := newChecker().Check(ctx, participant.ID, event.ID, location.ID, now)
	require.NoError(t, err)
	require.Equal(t, ReasonDailyLimitReached, result.Reason)
}

func Test_EligibilityChecker_YesterdaySpinsDoNotCount(t *testing.T) {
	ctx := testutil.MockContext()
	now := time.Now()

	event := testutil.SampleEvent(ctx, &entity.Event{DailySpinLimit: 1})
	location := testutil.SampleLocation(ctx, &entity.EventLocation{EventID: event.ID})
	participant := testutil.SampleParticipant(ctx, nil)
	testutil.SampleParticipantEvent(ctx, &entity.ParticipantEvent{
		ParticipantID:   participant.ID,
		EventLocationID: location.ID,
		AvailableSpins:  5,
	})

	require.NoError(t, repository.NewSpinHistoryRepository().Create(ctx, &entity.SpinHistory{
		SnowFlakeBase:   entity.SnowFlakeBase{ID: idutil.NextID()},
		ParticipantID:   participant.ID,
		EventLocationID: location.ID,
		AttemptID:       participant.ID + "-yesterday",
		SpinTime:        now.Add(-24 * time.Hour),
	}))

	result, err := newChecker().Check(ctx, participant.ID, event.ID, location.ID, now)
	require.NoError(t, err)
	require.True(t, result.Eligible)
}

func Test_EligibilityChecker_LocationLimitOverridesEvent(t *testing.T) {
	ctx := testutil.MockContext()
	now := time.Now()

	event := testutil.SampleEvent(ctx, &entity.Event{DailySpinLimit: 1})
	location := testutil.SampleLocation(ctx, &entity.EventLocation{
		EventID:        event.ID,
		DailySpinLimit: 5,
	})
	participant := testutil.SampleParticipant(ctx, nil)
	testutil.SampleParticipantEvent(ctx, &entity.ParticipantEvent{
		ParticipantID:   participant.ID,
		EventLocationID: location.ID,
		AvailableSpins:  5,
	})

	require.NoError(t, repository.NewSpinHistoryRepository().Create(ctx, &entity.SpinHistory{
		SnowFlakeBase:   entity.SnowFlakeBase{ID: idutil.NextID()},
		ParticipantID:   participant.ID,
		EventLocationID: location.ID,
		AttemptID:       participant.ID + "-today",
		SpinTime:        now,
	}))

	result, err := newChecker().Check(ctx, participant.ID, event.ID, location.ID, now)
	require.NoError(t, err)
	require.True(t, result.Eligible)
}
