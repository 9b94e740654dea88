package spinengine

import (
	"context"
	"errors"
	"time"

	"github.com/luckyspin-lab/backend/internal/entity"
	"github.com/luckyspin-lab/backend/internal/repository"
	"github.com/luckyspin-lab/backend/pkg/enum"
	"github.com/luckyspin-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type Reason string

var (
	ReasonEligible          = enum.New(Reason("eligible"))
	ReasonEventNotActive    = enum.New(Reason("event_not_active"))
	ReasonLocationNotActive = enum.New(Reason("location_not_active"))
	ReasonNoSpinsRemaining  = enum.New(Reason("no_spins_remaining"))
	ReasonDailyLimitReached = enum.New(Reason("daily_limit_reached"))
)

// Result carries the eligibility verdict plus the state the orchestrator
// needs to continue without re-reading it.
type Result struct {
	Eligible bool
	Reason   Reason

	Event    *entity.Event
	Location *entity.EventLocation

	// ParticipantEvent is nil when the participant never spun at this
	// location; AvailableSpins then reflects the initial allotment.
	ParticipantEvent *entity.ParticipantEvent
	AvailableSpins   int
	SpinsToday       int64
}

// EligibilityChecker validates a spin attempt without side effects. It is
// advisory: the orchestrator runs the same check again inside the spin
// transaction to close the race window.
type EligibilityChecker struct {
	eventRepo            repository.EventRepository
	eventLocationRepo    repository.EventLocationRepository
	participantEventRepo repository.ParticipantEventRepository
	spinHistoryRepo      repository.SpinHistoryRepository
}

func NewEligibilityChecker(
	eventRepo repository.EventRepository,
	eventLocationRepo repository.EventLocationRepository,
	participantEventRepo repository.ParticipantEventRepository,
	spinHistoryRepo repository.SpinHistoryRepository,
) *EligibilityChecker {
	return &EligibilityChecker{
		eventRepo:            eventRepo,
		eventLocationRepo:    eventLocationRepo,
		participantEventRepo: participantEventRepo,
		spinHistoryRepo:      spinHistoryRepo,
	}
}

func (c *EligibilityChecker) Check(
	ctx context.Context, participantID, eventID, locationID string, now time.Time,
) (*Result, error) {
	event, err := c.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &Result{Reason: ReasonEventNotActive}, nil
		}

		return nil, err
	}

	if !event.IsInProgress(now) {
		return &Result{Reason: ReasonEventNotActive, Event: event}, nil
	}

	location, err := c.eventLocationRepo.GetByID(ctx, locationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &Result{Reason: ReasonLocationNotActive, Event: event}, nil
		}

		return nil, err
	}

	if location.EventID != event.ID || location.Status != entity.StatusActive {
		return &Result{Reason: ReasonLocationNotActive, Event: event, Location: location}, nil
	}

	result := &Result{
		Event:    event,
		Location: location,
	}

	participantEvent, err := c.participantEventRepo.Get(ctx, participantID, locationID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		// First contact: the entitlement is the initial allotment, but no row
		// is written on a read-only probe.
		result.AvailableSpins = c.initialSpins(ctx, location)
	} else {
		result.ParticipantEvent = participantEvent
		result.AvailableSpins = participantEvent.AvailableSpins
	}

	if result.AvailableSpins <= 0 {
		result.Reason = ReasonNoSpinsRemaining
		return result, nil
	}

	spinsToday, err := c.spinHistoryRepo.CountToday(ctx, participantID, locationID, now)
	if err != nil {
		return nil, err
	}
	result.SpinsToday = spinsToday

	if limit := location.EffectiveDailySpinLimit(event); limit > 0 && spinsToday >= int64(limit) {
		result.Reason = ReasonDailyLimitReached
		return result, nil
	}

	result.Eligible = true
	result.Reason = ReasonEligible
	return result, nil
}

func (c *EligibilityChecker) initialSpins(ctx context.Context, location *entity.EventLocation) int {
	if location.InitialSpins > 0 {
		return location.InitialSpins
	}

	return xcontext.Configs(ctx).Spin.DefaultInitialSpins
}
