package spinengine

import (
	"context"
	"time"

	"github.com/luckyspin-lab/backend/internal/entity"
	"github.com/luckyspin-lab/backend/internal/repository"
)

// Boost is the resolved golden-hour state of one reward at one instant.
type Boost struct {
	GoldenHourID     string
	Multiplier       float64
	PointsMultiplier float64
}

// NoBoost is returned when no golden hour window contains the instant.
var NoBoost = Boost{Multiplier: 1, PointsMultiplier: 1}

type GoldenHourResolver struct {
	goldenHourRepo repository.GoldenHourRepository
}

func NewGoldenHourResolver(goldenHourRepo repository.GoldenHourRepository) *GoldenHourResolver {
	return &GoldenHourResolver{goldenHourRepo: goldenHourRepo}
}

// Resolve returns the boost of the golden hour effective for a reward at now.
// When several active windows overlap, the winner is chosen deterministically:
// highest multiplier first, then lowest golden-hour id. Query-result ordering
// is not relied upon.
func (r *GoldenHourResolver) Resolve(ctx context.Context, rewardID string, now time.Time) (Boost, error) {
	goldenHours, err := r.goldenHourRepo.GetActiveByRewardID(ctx, rewardID, now)
	if err != nil {
		return NoBoost, err
	}

	var effective *entity.GoldenHour
	for i := range goldenHours {
		g := &goldenHours[i]
		if !g.Contains(now) {
			continue
		}

		if effective == nil {
			effective = g
			continue
		}

		if g.Multiplier > effective.Multiplier ||
			(g.Multiplier == effective.Multiplier && g.ID < effective.ID) {
			effective = g
		}
	}

	if effective == nil {
		return NoBoost, nil
	}

	boost := Boost{
		GoldenHourID:     effective.ID,
		Multiplier:       effective.Multiplier,
		PointsMultiplier: effective.PointsMultiplier,
	}
	if boost.Multiplier < 1 {
		boost.Multiplier = 1
	}
	if boost.PointsMultiplier < 1 {
		boost.PointsMultiplier = 1
	}

	return boost, nil
}
