package repository_test

import (
	"testing"

	"github.com/luckyspin-lab/backend/internal/entity"
	"github.com/luckyspin-lab/backend/internal/repository"
	"github.com/luckyspin-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_participantEventRepository_ConsumeOneSpin(t *testing.T) {
	ctx := testutil.MockContext()
	participantEventRepo := repository.NewParticipantEventRepository()

	participantEvent := testutil.SampleParticipantEvent(ctx, &entity.ParticipantEvent{
		AvailableSpins: 1,
	})

	require.NoError(t, participantEventRepo.ConsumeOneSpin(ctx, participantEvent.ID, true, 40))

	// The last spin is spent, a second debit loses the guard.
	err := participantEventRepo.ConsumeOneSpin(ctx, participantEvent.ID, false, 0)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	got, err := participantEventRepo.Get(
		ctx, participantEvent.ParticipantID, participantEvent.EventLocationID)
	require.NoError(t, err)
	require.Zero(t, got.AvailableSpins)
	require.Equal(t, 1, got.TotalSpins)
	require.Equal(t, 1, got.TotalWins)
	require.Equal(t, 40, got.TotalPoints)
}

func Test_participantEventRepository_ConsumeOneSpin_LossKeepsWinCounters(t *testing.T) {
	ctx := testutil.MockContext()
	participantEventRepo := repository.NewParticipantEventRepository()

	participantEvent := testutil.SampleParticipantEvent(ctx, &entity.ParticipantEvent{
		AvailableSpins: 2,
	})

	require.NoError(t, participantEventRepo.ConsumeOneSpin(ctx, participantEvent.ID, false, 0))

	got, err := participantEventRepo.Get(
		ctx, participantEvent.ParticipantID, participantEvent.EventLocationID)
	require.NoError(t, err)
	require.Equal(t, 1, got.AvailableSpins)
	require.Equal(t, 1, got.TotalSpins)
	require.Zero(t, got.TotalWins)
	require.Zero(t, got.TotalPoints)
}

func Test_participantEventRepository_UniquePairing(t *testing.T) {
	ctx := testutil.MockContext()

	participantEvent := testutil.SampleParticipantEvent(ctx, nil)

	err := repository.NewParticipantEventRepository().Create(ctx, &entity.ParticipantEvent{
		Base:            entity.Base{ID: "pe-duplicate"},
		ParticipantID:   participantEvent.ParticipantID,
		EventLocationID: participantEvent.EventLocationID,
		AvailableSpins:  1,
	})
	require.Error(t, err)
}
