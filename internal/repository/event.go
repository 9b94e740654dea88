package repository

import (
	"context"
	"time"

	"github.com/luckyspin-lab/backend/internal/entity"
	"github.com/luckyspin-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	GetByID(ctx context.Context, eventID string) (*entity.Event, error)
	GetByCode(ctx context.Context, code string) (*entity.Event, error)
	UpdateWindow(ctx context.Context, eventID string, version int, start, end time.Time) error
	UpdateStatus(ctx context.Context, eventID string, version int, status entity.Status) error
}

type eventRepository struct{}

func NewEventRepository() *eventRepository {
	return &eventRepository{}
}

func (r *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	return xcontext.DB(ctx).Create(event).Error
}

func (r *eventRepository) GetByID(ctx context.Context, eventID string) (*entity.Event, error) {
	var result entity.Event
	if err := xcontext.DB(ctx).Take(&result, "id=?", eventID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *eventRepository) GetByCode(ctx context.Context, code string) (*entity.Event, error) {
	var result entity.Event
	if err := xcontext.DB(ctx).Take(&result, "code=?", code).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// UpdateWindow edits the event time window. The caller supplies the version
// it read; a stale version loses and returns gorm.ErrRecordNotFound.
func (r *eventRepository) UpdateWindow(
	ctx context.Context, eventID string, version int, start, end time.Time,
) error {
	tx := xcontext.DB(ctx).Model(&entity.Event{}).
		Where("id=? AND version=?", eventID, version).
		Updates(map[string]any{
			"start_time": start,
			"end_time":   end,
			"version":    gorm.Expr("version+?", 1),
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *eventRepository) UpdateStatus(
	ctx context.Context, eventID string, version int, status entity.Status,
) error {
	tx := xcontext.DB(ctx).Model(&entity.Event{}).
		Where("id=? AND version=?", eventID, version).
		Updates(map[string]any{
			"status":  status,
			"version": gorm.Expr("version+?", 1),
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
