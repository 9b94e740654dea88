package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/luckyspin-lab/backend/internal/entity"
	"github.com/luckyspin-lab/backend/internal/repository"
	"github.com/luckyspin-lab/backend/pkg/idutil"
	"github.com/luckyspin-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func insertSpin(t *testing.T, ctx context.Context, spin entity.SpinHistory) {
	t.Helper()
	spin.SnowFlakeBase = entity.SnowFlakeBase{ID: idutil.NextID()}
	require.NoError(t, repository.NewSpinHistoryRepository().Create(ctx, &spin))
}

func Test_spinHistoryRepository_CountToday(t *testing.T) {
	ctx := testutil.MockContext()
	spinHistoryRepo := repository.NewSpinHistoryRepository()
	now := time.Now()

	location := testutil.SampleLocation(ctx, nil)
	participant := testutil.SampleParticipant(ctx, nil)

	insertSpin(t, ctx, entity.SpinHistory{
		ParticipantID:   participant.ID,
		EventLocationID: location.ID,
		AttemptID:       "a-today",
		SpinTime:        now,
	})
	insertSpin(t, ctx, entity.SpinHistory{
		ParticipantID:   participant.ID,
		EventLocationID: location.ID,
		AttemptID:       "a-yesterday",
		SpinTime:        now.Add(-24 * time.Hour),
	})
	insertSpin(t, ctx, entity.SpinHistory{
		ParticipantID:   participant.ID,
		EventLocationID: "elsewhere",
		AttemptID:       "a-elsewhere",
		SpinTime:        now,
	})

	count, err := spinHistoryRepo.CountToday(ctx, participant.ID, location.ID, now)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func Test_spinHistoryRepository_AttemptIDUnique(t *testing.T) {
	ctx := testutil.MockContext()
	spinHistoryRepo := repository.NewSpinHistoryRepository()

	first := entity.SpinHistory{
		SnowFlakeBase: entity.SnowFlakeBase{ID: idutil.NextID()},
		ParticipantID: "p",
		AttemptID:     "the-attempt",
		SpinTime:      time.Now(),
	}
	require.NoError(t, spinHistoryRepo.Create(ctx, &first))

	duplicate := entity.SpinHistory{
		SnowFlakeBase: entity.SnowFlakeBase{ID: idutil.NextID()},
		ParticipantID: "p",
		AttemptID:     "the-attempt",
		SpinTime:      time.Now(),
	}
	require.Error(t, spinHistoryRepo.Create(ctx, &duplicate))
}

func Test_spinHistoryRepository_GetLatestByParticipantID(t *testing.T) {
	ctx := testutil.MockContext()
	spinHistoryRepo := repository.NewSpinHistoryRepository()
	now := time.Now()

	insertSpin(t, ctx, entity.SpinHistory{
		ParticipantID: "p1",
		AttemptID:     "older",
		SpinTime:      now.Add(-time.Minute),
	})
	insertSpin(t, ctx, entity.SpinHistory{
		ParticipantID: "p1",
		AttemptID:     "newest",
		SpinTime:      now,
	})

	latest, err := spinHistoryRepo.GetLatestByParticipantID(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, "newest", latest.AttemptID)
}
