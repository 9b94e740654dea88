package repository

import (
	"context"
	"time"

	"github.com/luckyspin-lab/backend/internal/entity"
	"github.com/luckyspin-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type RewardRepository interface {
	Create(ctx context.Context, reward *entity.Reward) error
	GetByID(ctx context.Context, rewardID string) (*entity.Reward, error)
	GetByLocationID(ctx context.Context, locationID string) ([]entity.Reward, error)
	ListCandidates(ctx context.Context, locationID string, now time.Time) ([]entity.Reward, error)
	CheckAndReserve(ctx context.Context, rewardID string, expectedRemaining int) error
	Release(ctx context.Context, rewardID string) error
	Restock(ctx context.Context, rewardID string, quantity int) error
}

type rewardRepository struct{}

func NewRewardRepository() *rewardRepository {
	return &rewardRepository{}
}

func (r *rewardRepository) Create(ctx context.Context, reward *entity.Reward) error {
	return xcontext.DB(ctx).Create(reward).Error
}

func (r *rewardRepository) GetByID(ctx context.Context, rewardID string) (*entity.Reward, error) {
	var result entity.Reward
	if err := xcontext.DB(ctx).Take(&result, "id=?", rewardID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *rewardRepository) GetByLocationID(ctx context.Context, locationID string) ([]entity.Reward, error) {
	var result []entity.Reward
	err := xcontext.DB(ctx).
		Where("event_location_id=?", locationID).
		Order("id ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// ListCandidates returns the rewards of a location that still have stock and
// whose validity window contains now, ordered by id for a stable selection
// layout. The per-day cap is cross-checked by the caller against today's win
// counts.
func (r *rewardRepository) ListCandidates(
	ctx context.Context, locationID string, now time.Time,
) ([]entity.Reward, error) {
	var result []entity.Reward
	err := xcontext.DB(ctx).
		Where("event_location_id=? AND status=?", locationID, entity.StatusActive).
		Where("remaining_quantity > 0").
		Where("valid_from <= ? AND valid_until > ?", now, now).
		Order("id ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// CheckAndReserve debits one unit of stock if and only if the remaining
// quantity still equals the value the caller read. A concurrent winner in
// between makes the guard fail and gorm.ErrRecordNotFound is returned so the
// orchestrator can relist candidates and retry.
func (r *rewardRepository) CheckAndReserve(
	ctx context.Context, rewardID string, expectedRemaining int,
) error {
	if expectedRemaining <= 0 {
		return gorm.ErrRecordNotFound
	}

	tx := xcontext.DB(ctx).Model(&entity.Reward{}).
		Where("id=? AND remaining_quantity=?", rewardID, expectedRemaining).
		Update("remaining_quantity", gorm.Expr("remaining_quantity-?", 1))
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// Release is the compensating increment for a reservation whose spin could
// not be completed in the same transaction. It never lifts the quantity above
// the total.
func (r *rewardRepository) Release(ctx context.Context, rewardID string) error {
	tx := xcontext.DB(ctx).Model(&entity.Reward{}).
		Where("id=? AND remaining_quantity < total_quantity", rewardID).
		Update("remaining_quantity", gorm.Expr("remaining_quantity+?", 1))
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// Restock raises both the total and remaining quantity. It is the only path
// besides Release on which the remaining quantity grows.
func (r *rewardRepository) Restock(ctx context.Context, rewardID string, quantity int) error {
	if quantity <= 0 {
		return gorm.ErrInvalidValue
	}

	tx := xcontext.DB(ctx).Model(&entity.Reward{}).
		Where("id=?", rewardID).
		Updates(map[string]any{
			"total_quantity":     gorm.Expr("total_quantity+?", quantity),
			"remaining_quantity": gorm.Expr("remaining_quantity+?", quantity),
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
