package repository

import (
	"context"
	"time"

	"github.com/luckyspin-lab/backend/internal/entity"
	"github.com/luckyspin-lab/backend/pkg/dateutil"
	"github.com/luckyspin-lab/backend/pkg/xcontext"
)

type SpinHistoryRepository interface {
	Create(ctx context.Context, spin *entity.SpinHistory) error
	GetByAttemptID(ctx context.Context, attemptID string) (*entity.SpinHistory, error)
	GetLatestByParticipantID(ctx context.Context, participantID string) (*entity.SpinHistory, error)
	CountToday(ctx context.Context, participantID, locationID string, now time.Time) (int64, error)
	CountTodayWinsByReward(ctx context.Context, rewardID string, now time.Time) (int64, error)
	CountWinsByReward(ctx context.Context, rewardID string) (int64, error)
}

type spinHistoryRepository struct{}

func NewSpinHistoryRepository() *spinHistoryRepository {
	return &spinHistoryRepository{}
}

func (r *spinHistoryRepository) Create(ctx context.Context, spin *entity.SpinHistory) error {
	return xcontext.DB(ctx).Create(spin).Error
}

func (r *spinHistoryRepository) GetByAttemptID(ctx context.Context, attemptID string) (*entity.SpinHistory, error) {
	var result entity.SpinHistory
	if err := xcontext.DB(ctx).Take(&result, "attempt_id=?", attemptID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *spinHistoryRepository) GetLatestByParticipantID(
	ctx context.Context, participantID string,
) (*entity.SpinHistory, error) {
	var result entity.SpinHistory
	err := xcontext.DB(ctx).Where("participant_id=?", participantID).
		Order("spin_time DESC").Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// CountToday counts the spins a participant consumed at a location within the
// daily bucket containing now. This is the entitlement ledger read used by
// the daily limit check.
func (r *spinHistoryRepository) CountToday(
	ctx context.Context, participantID, locationID string, now time.Time,
) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.SpinHistory{}).
		Where("participant_id=? AND event_location_id=?", participantID, locationID).
		Where("spin_time >= ? AND spin_time < ?", dateutil.BeginningOfDay(now), dateutil.NextDay(now)).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *spinHistoryRepository) CountTodayWinsByReward(
	ctx context.Context, rewardID string, now time.Time,
) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.SpinHistory{}).
		Where("reward_id=? AND won=?", rewardID, true).
		Where("spin_time >= ? AND spin_time < ?", dateutil.BeginningOfDay(now), dateutil.NextDay(now)).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *spinHistoryRepository) CountWinsByReward(ctx context.Context, rewardID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.SpinHistory{}).
		Where("reward_id=? AND won=?", rewardID, true).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
