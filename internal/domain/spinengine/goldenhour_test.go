package spinengine

import (
	"testing"
	"time"

	"github.com/luckyspin-lab/backend/internal/entity"
	"github.com/luckyspin-lab/backend/internal/repository"
	"github.com/luckyspin-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_GoldenHourResolver_NoActiveWindow(t *testing.T) {
	ctx := testutil.MockContext()
	now := time.Now()

	reward := testutil.SampleReward(ctx, nil)
	testutil.SampleGoldenHour(ctx, &entity.GoldenHour{
		RewardID:  reward.ID,
		StartTime: now.Add(time.Hour),
		EndTime:   now.Add(2 * time.Hour),
	})

	resolver := NewGoldenHourResolver(repository.NewGoldenHourRepository())
	boost, err := resolver.Resolve(ctx, reward.ID, now)
	require.NoError(t, err)
	require.Equal(t, NoBoost, boost)
}

func Test_GoldenHourResolver_ActiveWindow(t *testing.T) {
	ctx := testutil.MockContext()
	now := time.Now()

	reward := testutil.SampleReward(ctx, nil)
	goldenHour := testutil.SampleGoldenHour(ctx, &entity.GoldenHour{
		RewardID:         reward.ID,
		Multiplier:       2.5,
		PointsMultiplier: 2,
	})

	resolver := NewGoldenHourResolver(repository.NewGoldenHourRepository())
	boost, err := resolver.Resolve(ctx, reward.ID, now)
	require.NoError(t, err)
	require.Equal(t, goldenHour.ID, boost.GoldenHourID)
	require.Equal(t, 2.5, boost.Multiplier)
	require.Equal(t, float64(2), boost.PointsMultiplier)
}

func Test_GoldenHourResolver_InactiveWindowIgnored(t *testing.T) {
	ctx := testutil.MockContext()

	reward := testutil.SampleReward(ctx, nil)
	testutil.SampleGoldenHour(ctx, &entity.GoldenHour{
		RewardID:   reward.ID,
		Multiplier: 5,
		Status:     entity.StatusInactive,
	})

	resolver := NewGoldenHourResolver(repository.NewGoldenHourRepository())
	boost, err := resolver.Resolve(ctx, reward.ID, time.Now())
	require.NoError(t, err)
	require.Equal(t, NoBoost, boost)
}

func Test_GoldenHourResolver_OverlapPicksHighestMultiplier(t *testing.T) {
	ctx := testutil.MockContext()

	reward := testutil.SampleReward(ctx, nil)
	testutil.SampleGoldenHour(ctx, &entity.GoldenHour{RewardID: reward.ID, Multiplier: 2})
	strongest := testutil.SampleGoldenHour(ctx, &entity.GoldenHour{RewardID: reward.ID, Multiplier: 4})
	testutil.SampleGoldenHour(ctx, &entity.GoldenHour{RewardID: reward.ID, Multiplier: 3})

	resolver := NewGoldenHourResolver(repository.NewGoldenHourRepository())
	boost, err := resolver.Resolve(ctx, reward.ID, time.Now())
	require.NoError(t, err)
	require.Equal(t, strongest.ID, boost.GoldenHourID)
	require.Equal(t, float64(4), boost.Multiplier)
}

func Test_GoldenHourResolver_OverlapTieBreaksByLowestID(t *testing.T) {
	ctx := testutil.MockContext()

	reward := testutil.SampleReward(ctx, nil)
	first := testutil.SampleGoldenHour(ctx, &entity.GoldenHour{
		Base: entity.Base{ID: "gh-a"}, RewardID: reward.ID, Multiplier: 3,
	})
	testutil.SampleGoldenHour(ctx, &entity.GoldenHour{
		Base: entity.Base{ID: "gh-b"}, RewardID: reward.ID, Multiplier: 3,
	})

	resolver := NewGoldenHourResolver(repository.NewGoldenHourRepository())

	// The winner is stable regardless of insertion or query order.
	for i := 0; i < 5; i++ {
		boost, err := resolver.Resolve(ctx, reward.ID, time.Now())
		require.NoError(t, err)
		require.Equal(t, first.ID, boost.GoldenHourID)
	}
}
