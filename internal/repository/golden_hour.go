package repository

import (
	"context"
	"time"

	"github.com/luckyspin-lab/backend/internal/entity"
	"github.com/luckyspin-lab/backend/pkg/xcontext"
)

type GoldenHourRepository interface {
	Create(ctx context.Context, goldenHour *entity.GoldenHour) error
	GetActiveByRewardID(ctx context.Context, rewardID string, now time.Time) ([]entity.GoldenHour, error)
	GetByRewardID(ctx context.Context, rewardID string) ([]entity.GoldenHour, error)
}

type goldenHourRepository struct{}

func NewGoldenHourRepository() *goldenHourRepository {
	return &goldenHourRepository{}
}

func (r *goldenHourRepository) Create(ctx context.Context, goldenHour *entity.GoldenHour) error {
	return xcontext.DB(ctx).Create(goldenHour).Error
}

// GetActiveByRewardID returns the active golden hours whose window contains
// now. The order matches the resolver tie-break (highest multiplier first,
// then lowest id) but the resolver does not depend on it.
func (r *goldenHourRepository) GetActiveByRewardID(
	ctx context.Context, rewardID string, now time.Time,
) ([]entity.GoldenHour, error) {
	var result []entity.GoldenHour
	err := xcontext.DB(ctx).
		Where("reward_id=? AND status=?", rewardID, entity.StatusActive).
		Where("start_time <= ? AND end_time > ?", now, now).
		Order("multiplier DESC, id ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *goldenHourRepository) GetByRewardID(ctx context.Context, rewardID string) ([]entity.GoldenHour, error) {
	var result []entity.GoldenHour
	if err := xcontext.DB(ctx).Find(&result, "reward_id=?", rewardID).Error; err != nil {
		return nil, err
	}

	return result, nil
}
