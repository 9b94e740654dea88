package repository

import (
	"context"

	"github.com/luckyspin-lab/backend/internal/entity"
	"github.com/luckyspin-lab/backend/pkg/xcontext"
)

type EventLocationRepository interface {
	Create(ctx context.Context, location *entity.EventLocation) error
	GetByID(ctx context.Context, locationID string) (*entity.EventLocation, error)
	GetByEventID(ctx context.Context, eventID string) ([]entity.EventLocation, error)
}

type eventLocationRepository struct{}

func NewEventLocationRepository() *eventLocationRepository {
	return &eventLocationRepository{}
}

func (r *eventLocationRepository) Create(ctx context.Context, location *entity.EventLocation) error {
	return xcontext.DB(ctx).Create(location).Error
}

func (r *eventLocationRepository) GetByID(ctx context.Context, locationID string) (*entity.EventLocation, error) {
	var result entity.EventLocation
	if err := xcontext.DB(ctx).Take(&result, "id=?", locationID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *eventLocationRepository) GetByEventID(ctx context.Context, eventID string) ([]entity.EventLocation, error) {
	var result []entity.EventLocation
	if err := xcontext.DB(ctx).Find(&result, "event_id=?", eventID).Error; err != nil {
		return nil, err
	}

	return result, nil
}
