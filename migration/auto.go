package migration

import (
	"context"

	"github.com/luckyspin-lab/backend/internal/entity"
	"github.com/luckyspin-lab/backend/pkg/xcontext"
)

// When this migrator is called, no need to call other migrators.
func AutoMigrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.Event{},
		&entity.EventLocation{},
		&entity.Reward{},
		&entity.GoldenHour{},
		&entity.Participant{},
		&entity.ParticipantEvent{},
		&entity.SpinHistory{},
	)
}
