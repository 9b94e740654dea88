package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/luckyspin-lab/backend/internal/entity"
	"github.com/luckyspin-lab/backend/internal/model"
	"github.com/luckyspin-lab/backend/internal/repository"
	"github.com/luckyspin-lab/backend/pkg/errorx"
	"github.com/luckyspin-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type EventDomain interface {
	CreateEvent(ctx context.Context, req *model.CreateEventRequest) (*model.CreateEventResponse, error)
	CreateLocation(ctx context.Context, req *model.CreateLocationRequest) (*model.CreateLocationResponse, error)
	CreateReward(ctx context.Context, req *model.CreateRewardRequest) (*model.CreateRewardResponse, error)
	CreateGoldenHour(ctx context.Context, req *model.CreateGoldenHourRequest) (*model.CreateGoldenHourResponse, error)
	UpdateEventWindow(ctx context.Context, req *model.UpdateEventWindowRequest) (*model.UpdateEventWindowResponse, error)
	RestockReward(ctx context.Context, req *model.RestockRewardRequest) (*model.RestockRewardResponse, error)
	GetEvent(ctx context.Context, req *model.GetEventRequest) (*model.GetEventResponse, error)
}

type eventDomain struct {
	eventRepo         repository.EventRepository
	eventLocationRepo repository.EventLocationRepository
	rewardRepo        repository.RewardRepository
	goldenHourRepo    repository.GoldenHourRepository
}

func NewEventDomain(
	eventRepo repository.EventRepository,
	eventLocationRepo repository.EventLocationRepository,
	rewardRepo repository.RewardRepository,
	goldenHourRepo repository.GoldenHourRepository,
) *eventDomain {
	return &eventDomain{
		eventRepo:         eventRepo,
		eventLocationRepo: eventLocationRepo,
		rewardRepo:        rewardRepo,
		goldenHourRepo:    goldenHourRepo,
	}
}

func (d *eventDomain) CreateEvent(
	ctx context.Context, req *model.CreateEventRequest,
) (*model.CreateEventResponse, error) {
	if req.Name == "" || req.Code == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty event name or code")
	}

	if !req.EndTime.After(req.StartTime) {
		return nil, errorx.New(errorx.BadRequest, "The end time must be after the start time")
	}

	event := &entity.Event{
		Base:                  entity.Base{ID: uuid.NewString()},
		Name:                  req.Name,
		Code:                  req.Code,
		Description:           req.Description,
		StartTime:             req.StartTime,
		EndTime:               req.EndTime,
		DailySpinLimit:        req.DailySpinLimit,
		DefaultWinProbability: req.DefaultWinProbability,
		Status:                entity.StatusActive,
	}

	if err := d.eventRepo.Create(ctx, event); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create event: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateEventResponse{ID: event.ID}, nil
}

func (d *eventDomain) CreateLocation(
	ctx context.Context, req *model.CreateLocationRequest,
) (*model.CreateLocationResponse, error) {
	if req.Name == "" || req.Code == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty location name or code")
	}

	if _, err := d.eventRepo.GetByID(ctx, req.EventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found event %s", req.EventID)
		}

		xcontext.Logger(ctx).Errorf("Cannot get event: %v", err)
		return nil, errorx.Unknown
	}

	location := &entity.EventLocation{
		Base:                  entity.Base{ID: uuid.NewString()},
		EventID:               req.EventID,
		Name:                  req.Name,
		Code:                  req.Code,
		DailySpinLimit:        req.DailySpinLimit,
		DefaultWinProbability: req.DefaultWinProbability,
		InitialSpins:          req.InitialSpins,
		Status:                entity.StatusActive,
	}

	if err := d.eventLocationRepo.Create(ctx, location); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create event location: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateLocationResponse{ID: location.ID}, nil
}

func (d *eventDomain) CreateReward(
	ctx context.Context, req *model.CreateRewardRequest,
) (*model.CreateRewardResponse, error) {
	if req.Name == "" || req.Code == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty reward name or code")
	}

	if req.TotalQuantity <= 0 {
		return nil, errorx.New(errorx.BadRequest, "The reward quantity must be positive")
	}

	if req.WinProbability < 0 || req.WinProbability > 1 {
		return nil, errorx.New(errorx.BadRequest, "The win probability must be in [0, 1]")
	}

	if _, err := d.eventLocationRepo.GetByID(ctx, req.LocationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found location %s", req.LocationID)
		}

		xcontext.Logger(ctx).Errorf("Cannot get event location: %v", err)
		return nil, errorx.Unknown
	}

	validFrom, validUntil := req.ValidFrom, req.ValidUntil
	if validUntil.IsZero() {
		// No explicit validity window means always valid.
		validUntil = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)
	}

	reward := &entity.Reward{
		Base:              entity.Base{ID: uuid.NewString()},
		EventLocationID:   req.LocationID,
		Name:              req.Name,
		Code:              req.Code,
		Description:       req.Description,
		Points:            req.Points,
		PointsRequired:    req.PointsRequired,
		TotalQuantity:     req.TotalQuantity,
		RemainingQuantity: req.TotalQuantity,
		DailyLimit:        req.DailyLimit,
		WinProbability:    req.WinProbability,
		ValidFrom:         validFrom,
		ValidUntil:        validUntil,
		Status:            entity.StatusActive,
		Metadata:          entity.Map(req.Metadata),
	}

	if err := d.rewardRepo.Create(ctx, reward); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create reward: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateRewardResponse{ID: reward.ID}, nil
}

func (d *eventDomain) CreateGoldenHour(
	ctx context.Context, req *model.CreateGoldenHourRequest,
) (*model.CreateGoldenHourResponse, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, errorx.New(errorx.BadRequest, "The end time must be after the start time")
	}

	if req.Multiplier < 1 {
		return nil, errorx.New(errorx.BadRequest, "The multiplier must be at least 1")
	}

	if _, err := d.rewardRepo.GetByID(ctx, req.RewardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found reward %s", req.RewardID)
		}

		xcontext.Logger(ctx).Errorf("Cannot get reward: %v", err)
		return nil, errorx.Unknown
	}

	pointsMultiplier := req.PointsMultiplier
	if pointsMultiplier < 1 {
		pointsMultiplier = 1
	}

	goldenHour := &entity.GoldenHour{
		Base:             entity.Base{ID: uuid.NewString()},
		RewardID:         req.RewardID,
		Name:             req.Name,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		Multiplier:       req.Multiplier,
		PointsMultiplier: pointsMultiplier,
		Status:           entity.StatusActive,
	}

	if err := d.goldenHourRepo.Create(ctx, goldenHour); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create golden hour: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateGoldenHourResponse{ID: goldenHour.ID}, nil
}

// UpdateEventWindow edits the event time window with the version the admin
// read. A concurrent edit in between makes the version stale and the request
// must be re-read and retried.
func (d *eventDomain) UpdateEventWindow(
	ctx context.Context, req *model.UpdateEventWindowRequest,
) (*model.UpdateEventWindowResponse, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, errorx.New(errorx.BadRequest, "The end time must be after the start time")
	}

	err := d.eventRepo.UpdateWindow(ctx, req.EventID, req.Version, req.StartTime, req.EndTime)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.AlreadyExists,
				"The event was modified concurrently, please reload and retry")
		}

		xcontext.Logger(ctx).Errorf("Cannot update event window: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateEventWindowResponse{}, nil
}

func (d *eventDomain) RestockReward(
	ctx context.Context, req *model.RestockRewardRequest,
) (*model.RestockRewardResponse, error) {
	if req.Quantity <= 0 {
		return nil, errorx.New(errorx.BadRequest, "The restock quantity must be positive")
	}

	if err := d.rewardRepo.Restock(ctx, req.RewardID, req.Quantity); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found reward %s", req.RewardID)
		}

		xcontext.Logger(ctx).Errorf("Cannot restock reward: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RestockRewardResponse{}, nil
}

// GetEvent returns the full configuration tree of an event: its locations,
// their rewards, and current stock.
func (d *eventDomain) GetEvent(
	ctx context.Context, req *model.GetEventRequest,
) (*model.GetEventResponse, error) {
	event, err := d.eventRepo.GetByCode(ctx, req.Code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found event %s", req.Code)
		}

		xcontext.Logger(ctx).Errorf("Cannot get event by code: %v", err)
		return nil, errorx.Unknown
	}

	locations, err := d.eventLocationRepo.GetByEventID(ctx, event.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot list event locations: %v", err)
		return nil, errorx.Unknown
	}

	locationViews := make([]model.EventLocation, 0, len(locations))
	for i := range locations {
		rewards, err := d.rewardRepo.GetByLocationID(ctx, locations[i].ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot list rewards of location: %v", err)
			return nil, errorx.Unknown
		}

		rewardViews := make([]model.Reward, 0, len(rewards))
		for j := range rewards {
			rewardViews = append(rewardViews, model.ConvertReward(&rewards[j]))
		}

		locationViews = append(locationViews, model.ConvertEventLocation(&locations[i], rewardViews))
	}

	return &model.GetEventResponse{Event: model.ConvertEvent(event, locationViews)}, nil
}
