package repository

import (
	"context"

	"github.com/luckyspin-lab/backend/internal/entity"
	"github.com/luckyspin-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ParticipantEventRepository interface {
	Create(ctx context.Context, participantEvent *entity.ParticipantEvent) error
	Get(ctx context.Context, participantID, locationID string) (*entity.ParticipantEvent, error)
	ConsumeOneSpin(ctx context.Context, participantEventID string, won bool, points int) error
}

type participantEventRepository struct{}

func NewParticipantEventRepository() *participantEventRepository {
	return &participantEventRepository{}
}

func (r *participantEventRepository) Create(ctx context.Context, participantEvent *entity.ParticipantEvent) error {
	return xcontext.DB(ctx).Create(participantEvent).Error
}

func (r *participantEventRepository) Get(
	ctx context.Context, participantID, locationID string,
) (*entity.ParticipantEvent, error) {
	var result entity.ParticipantEvent
	err := xcontext.DB(ctx).
		Take(&result, "participant_id=? AND event_location_id=?", participantID, locationID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// ConsumeOneSpin debits one entitlement unit and rolls the spin counters
// forward. The available_spins > 0 guard makes a double spend of the last
// spin lose the race and return gorm.ErrRecordNotFound.
func (r *participantEventRepository) ConsumeOneSpin(
	ctx context.Context, participantEventID string, won bool, points int,
) error {
	updates := map[string]any{
		"available_spins": gorm.Expr("available_spins-?", 1),
		"total_spins":     gorm.Expr("total_spins+?", 1),
	}
	if won {
		updates["total_wins"] = gorm.Expr("total_wins+?", 1)
		updates["total_points"] = gorm.Expr("total_points+?", points)
	}

	tx := xcontext.DB(ctx).Model(&entity.ParticipantEvent{}).
		Where("id=? AND available_spins > 0", participantEventID).
		Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
