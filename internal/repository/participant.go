package repository

import (
	"context"

	"github.com/luckyspin-lab/backend/internal/entity"
	"github.com/luckyspin-lab/backend/pkg/xcontext"
)

type ParticipantRepository interface {
	Create(ctx context.Context, participant *entity.Participant) error
	GetByID(ctx context.Context, participantID string) (*entity.Participant, error)
}

type participantRepository struct{}

func NewParticipantRepository() *participantRepository {
	return &participantRepository{}
}

func (r *participantRepository) Create(ctx context.Context, participant *entity.Participant) error {
	return xcontext.DB(ctx).Create(participant).Error
}

func (r *participantRepository) GetByID(ctx context.Context, participantID string) (*entity.Participant, error) {
	var result entity.Participant
	if err := xcontext.DB(ctx).Take(&result, "id=?", participantID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}
