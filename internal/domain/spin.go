package domain

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/luckyspin-lab/backend/internal/common"
	"github.com/luckyspin-lab/backend/internal/domain/spinengine"
	"github.com/luckyspin-lab/backend/internal/entity"
	"github.com/luckyspin-lab/backend/internal/model"
	"github.com/luckyspin-lab/backend/internal/repository"
	"github.com/luckyspin-lab/backend/pkg/crypto"
	"github.com/luckyspin-lab/backend/pkg/errorx"
	"github.com/luckyspin-lab/backend/pkg/idutil"
	"github.com/luckyspin-lab/backend/pkg/xcontext"
	"github.com/luckyspin-lab/backend/pkg/xredis"
	"github.com/puzpuzpuz/xsync"
	"gorm.io/gorm"
)

type SpinDomain interface {
	ExecuteSpin(ctx context.Context, req *model.ExecuteSpinRequest) (*model.ExecuteSpinResponse, error)
	CheckEligibility(ctx context.Context, req *model.CheckEligibilityRequest) (*model.CheckEligibilityResponse, error)
	GetLatestSpin(ctx context.Context, req *model.GetLatestSpinRequest) (*model.GetLatestSpinResponse, error)
}

// RandomSource yields a uniform draw in [0, 1). The orchestrator takes one
// explicitly so tests can pin the draw.
type RandomSource func() float64

type spinDomain struct {
	eventRepo            repository.EventRepository
	eventLocationRepo    repository.EventLocationRepository
	rewardRepo           repository.RewardRepository
	participantRepo      repository.ParticipantRepository
	participantEventRepo repository.ParticipantEventRepository
	spinHistoryRepo      repository.SpinHistoryRepository

	checker     *spinengine.EligibilityChecker
	goldenHours *spinengine.GoldenHourResolver

	idemStore xredis.Client
	meter     common.Meter
	random    RandomSource

	// inflight keeps one attempt id from being processed twice concurrently
	// within this instance. Across instances the unique index on attempt_id
	// is the backstop.
	inflight *xsync.MapOf[string, bool]
}

func NewSpinDomain(
	eventRepo repository.EventRepository,
	eventLocationRepo repository.EventLocationRepository,
	rewardRepo repository.RewardRepository,
	goldenHourRepo repository.GoldenHourRepository,
	participantRepo repository.ParticipantRepository,
	participantEventRepo repository.ParticipantEventRepository,
	spinHistoryRepo repository.SpinHistoryRepository,
	idemStore xredis.Client,
	meter common.Meter,
	random RandomSource,
) *spinDomain {
	if random == nil {
		random = crypto.RandFloat
	}

	return &spinDomain{
		eventRepo:            eventRepo,
		eventLocationRepo:    eventLocationRepo,
		rewardRepo:           rewardRepo,
		participantRepo:      participantRepo,
		participantEventRepo: participantEventRepo,
		spinHistoryRepo:      spinHistoryRepo,
		checker: spinengine.NewEligibilityChecker(
			eventRepo, eventLocationRepo, participantEventRepo, spinHistoryRepo),
		goldenHours: spinengine.NewGoldenHourResolver(goldenHourRepo),
		idemStore:   idemStore,
		meter:       meter,
		random:      random,
		inflight:    xsync.NewMapOf[bool](),
	}
}

// drawResult bundles the winning state of one completed draw loop.
type drawResult struct {
	outcome spinengine.Outcome
	boost   spinengine.Boost
	reward  *entity.Reward
	u       float64
}

func (d *spinDomain) ExecuteSpin(
	ctx context.Context, req *model.ExecuteSpinRequest,
) (*model.ExecuteSpinResponse, error) {
	if req.ParticipantID == "" || req.EventCode == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty participant id or event code")
	}

	if req.AttemptID == "" {
		req.AttemptID = uuid.NewString()
	}

	if resp, ok := d.replay(ctx, req.AttemptID); ok {
		return resp, nil
	}

	if _, running := d.inflight.LoadOrStore(req.AttemptID, true); running {
		return nil, errorx.New(errorx.TooManyRequests, "Attempt %s is already in progress", req.AttemptID)
	}
	defer d.inflight.Delete(req.AttemptID)

	event, err := d.eventRepo.GetByCode(ctx, req.EventCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.EventNotActive, "Event %s is not active", req.EventCode)
		}

		xcontext.Logger(ctx).Errorf("Cannot get event by code: %v", err)
		return nil, errorx.Unknown
	}

	locationID, err := d.resolveLocationID(ctx, event.ID, req.LocationID)
	if err != nil {
		return nil, err
	}

	began := time.Now()
	cfg := xcontext.Configs(ctx).Spin
	ctx, cancel := context.WithTimeout(ctx, cfg.TransactionTimeout)
	defer cancel()

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	// The advisory check the client may have run earlier is repeated here, in
	// the transaction, so the verdict and the entitlement debit cannot be
	// split by a concurrent spin.
	now := time.Now()
	check, err := d.checker.Check(ctx, req.ParticipantID, event.ID, locationID, now)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check spin eligibility: %v", err)
		return nil, errorx.Unknown
	}

	if !check.Eligible {
		return nil, ineligibleError(check.Reason)
	}

	participantEvent := check.ParticipantEvent
	if participantEvent == nil {
		participantEvent, err = d.enroll(ctx, req.ParticipantID, locationID, check.AvailableSpins)
		if err != nil {
			return nil, err
		}
	}

	draw, err := d.draw(ctx, check, now, cfg.MaxReserveRetries, cfg.RetryMaxJitter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot draw a spin outcome: %v", err)
		return nil, errorx.Unknown
	}

	points := 0
	if draw.outcome.Won {
		points = int(math.Round(float64(draw.reward.Points) * draw.boost.PointsMultiplier))
	}

	err = d.participantEventRepo.ConsumeOneSpin(ctx, participantEvent.ID, draw.outcome.Won, points)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NoSpinsRemaining, "No spins remaining")
		}

		xcontext.Logger(ctx).Errorf("Cannot consume a spin entitlement: %v", err)
		return nil, errorx.Unknown
	}

	spin := &entity.SpinHistory{
		SnowFlakeBase:        entity.SnowFlakeBase{ID: idutil.NextID()},
		ParticipantID:        req.ParticipantID,
		EventLocationID:      locationID,
		AttemptID:            req.AttemptID,
		SpinTime:             now,
		Won:                  draw.outcome.Won,
		BaseProbability:      draw.outcome.BaseProbability,
		Multiplier:           draw.outcome.Multiplier,
		EffectiveProbability: draw.outcome.EffectiveProbability,
		RandomDraw:           draw.u,
		PointsEarned:         points,
	}
	if draw.outcome.Won {
		spin.RewardID = sql.NullString{String: draw.reward.ID, Valid: true}
	}

	if err := d.spinHistoryRepo.Create(ctx, spin); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot record spin history: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	d.meter.CountSpin(draw.outcome.Won)
	d.meter.ObserveSpinDuration(time.Since(began))
	d.rememberAttempt(ctx, req.AttemptID, cfg.IdempotencyTTL)

	resp := &model.ExecuteSpinResponse{
		Won:               draw.outcome.Won,
		MultiplierApplied: draw.outcome.Multiplier,
		PointsEarned:      points,
		RemainingSpins:    participantEvent.AvailableSpins - 1,
	}
	if draw.outcome.Won {
		resp.RewardID = draw.reward.ID
		resp.RewardName = draw.reward.Name
	}

	return resp, nil
}

// draw runs the selection loop: list the still-available rewards, resolve
// their golden hours, draw, and reserve stock for the winner. Losing the
// reservation to a concurrent winner restarts the loop from the relist, up to
// maxRetries times; exhausting the budget downgrades the spin to a no-win
// rather than failing the request.
func (d *spinDomain) draw(
	ctx context.Context, check *spinengine.Result, now time.Time, maxRetries int, maxJitter time.Duration,
) (*drawResult, error) {
	fallback := check.Location.EffectiveWinProbability(check.Event)

	var last *drawResult
	for attempt := 0; ; attempt++ {
		rewards, err := d.rewardRepo.ListCandidates(ctx, check.Location.ID, now)
		if err != nil {
			return nil, err
		}

		candidates := make([]spinengine.Candidate, 0, len(rewards))
		boosts := make(map[string]spinengine.Boost, len(rewards))
		byID := make(map[string]*entity.Reward, len(rewards))
		for i := range rewards {
			reward := &rewards[i]
			if capped, err := d.dailyCapReached(ctx, reward, now); err != nil {
				return nil, err
			} else if capped {
				continue
			}

			boost, err := d.goldenHours.Resolve(ctx, reward.ID, now)
			if err != nil {
				return nil, err
			}

			candidates = append(candidates, spinengine.NewCandidate(
				reward.ID, reward.WinProbability, fallback, boost.Multiplier))
			boosts[reward.ID] = boost
			byID[reward.ID] = reward
		}

		u := d.random()
		outcome := spinengine.SelectOutcome(candidates, u)
		last = &drawResult{outcome: outcome, boost: spinengine.NoBoost, u: u}
		if !outcome.Won {
			return last, nil
		}

		last.boost = boosts[outcome.RewardID]
		last.reward = byID[outcome.RewardID]

		err = d.rewardRepo.CheckAndReserve(ctx, outcome.RewardID, last.reward.RemainingQuantity)
		if err == nil {
			return last, nil
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		d.meter.CountReservationConflict()
		if attempt >= maxRetries {
			xcontext.Logger(ctx).Warnf(
				"Reservation of reward %s kept conflicting, downgrading spin to no-win",
				outcome.RewardID)
			last.outcome = spinengine.Outcome{Multiplier: 1}
			last.boost = spinengine.NoBoost
			last.reward = nil
			return last, nil
		}

		if maxJitter > 0 {
			time.Sleep(time.Duration(crypto.RandIntn(int(maxJitter))))
		}
	}
}

func (d *spinDomain) dailyCapReached(ctx context.Context, reward *entity.Reward, now time.Time) (bool, error) {
	if reward.DailyLimit <= 0 {
		return false, nil
	}

	wins, err := d.spinHistoryRepo.CountTodayWinsByReward(ctx, reward.ID, now)
	if err != nil {
		return false, err
	}

	return wins >= int64(reward.DailyLimit), nil
}

// enroll creates the participant-location ledger row on first contact. The
// participant must already exist; entitlements are not granted to unknown
// ids.
func (d *spinDomain) enroll(
	ctx context.Context, participantID, locationID string, initialSpins int,
) (*entity.ParticipantEvent, error) {
	if _, err := d.participantRepo.GetByID(ctx, participantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found participant %s", participantID)
		}

		xcontext.Logger(ctx).Errorf("Cannot get participant: %v", err)
		return nil, errorx.Unknown
	}

	participantEvent := &entity.ParticipantEvent{
		Base:            entity.Base{ID: uuid.NewString()},
		ParticipantID:   participantID,
		EventLocationID: locationID,
		AvailableSpins:  initialSpins,
	}

	if err := d.participantEventRepo.Create(ctx, participantEvent); err != nil {
		// A concurrent first spin may have committed the row already, in
		// which case the unique pairing index rejects this insert. Adopt the
		// committed row instead of failing the spin.
		existing, getErr := d.participantEventRepo.Get(ctx, participantID, locationID)
		if getErr == nil {
			return existing, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot enroll participant at location: %v", err)
		return nil, errorx.Unknown
	}

	return participantEvent, nil
}

// resolveLocationID accepts the explicit location of the request, or falls
// back to the event's sole location when the client omitted it.
func (d *spinDomain) resolveLocationID(ctx context.Context, eventID, locationID string) (string, error) {
	if locationID != "" {
		return locationID, nil
	}

	locations, err := d.eventLocationRepo.GetByEventID(ctx, eventID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot list event locations: %v", err)
		return "", errorx.Unknown
	}

	if len(locations) != 1 {
		return "", errorx.New(errorx.BadRequest, "Not allow an empty location id for this event")
	}

	return locations[0].ID, nil
}

// replay returns the recorded outcome of an already-committed attempt, so a
// client retrying a timed-out request never spins twice. The redis entry is
// only an accelerator: a miss still falls through to the attempt-id unique
// index in the store.
func (d *spinDomain) replay(ctx context.Context, attemptID string) (*model.ExecuteSpinResponse, bool) {
	if d.idemStore != nil {
		if ok, err := d.idemStore.Exist(ctx, attemptKey(attemptID)); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot probe the idempotency store: %v", err)
		} else if !ok {
			// A clean miss skips the history lookup. Should redis have lost
			// the key, the attempt-id unique index still rejects the
			// duplicate instead of spinning twice.
			return nil, false
		}
	}

	spin, err := d.spinHistoryRepo.GetByAttemptID(ctx, attemptID)
	if err != nil {
		return nil, false
	}

	resp := &model.ExecuteSpinResponse{
		Won:               spin.Won,
		MultiplierApplied: spin.Multiplier,
		PointsEarned:      spin.PointsEarned,
	}

	if spin.RewardID.Valid {
		resp.RewardID = spin.RewardID.String
		if reward, err := d.rewardRepo.GetByID(ctx, spin.RewardID.String); err == nil {
			resp.RewardName = reward.Name
		}
	}

	participantEvent, err := d.participantEventRepo.Get(ctx, spin.ParticipantID, spin.EventLocationID)
	if err == nil {
		resp.RemainingSpins = participantEvent.AvailableSpins
	}

	return resp, true
}

func (d *spinDomain) rememberAttempt(ctx context.Context, attemptID string, ttl time.Duration) {
	if d.idemStore == nil {
		return
	}

	if err := d.idemStore.Set(ctx, attemptKey(attemptID), "1", ttl); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot record attempt in the idempotency store: %v", err)
	}
}

func attemptKey(attemptID string) string {
	return "spin:attempt:" + attemptID
}

func ineligibleError(reason spinengine.Reason) error {
	switch reason {
	case spinengine.ReasonEventNotActive:
		return errorx.New(errorx.EventNotActive, "Event is not active")
	case spinengine.ReasonLocationNotActive:
		return errorx.New(errorx.LocationNotActive, "Location is not active")
	case spinengine.ReasonNoSpinsRemaining:
		return errorx.New(errorx.NoSpinsRemaining, "No spins remaining")
	case spinengine.ReasonDailyLimitReached:
		return errorx.New(errorx.DailyLimitReached, "Daily spin limit reached")
	default:
		return errorx.Unknown
	}
}

func (d *spinDomain) CheckEligibility(
	ctx context.Context, req *model.CheckEligibilityRequest,
) (*model.CheckEligibilityResponse, error) {
	if req.ParticipantID == "" || req.EventID == "" || req.LocationID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty participant, event, or location id")
	}

	result, err := d.checker.Check(ctx, req.ParticipantID, req.EventID, req.LocationID, time.Now())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check spin eligibility: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CheckEligibilityResponse{
		Eligible: result.Eligible,
		Reason:   string(result.Reason),
	}, nil
}

func (d *spinDomain) GetLatestSpin(
	ctx context.Context, req *model.GetLatestSpinRequest,
) (*model.GetLatestSpinResponse, error) {
	if req.ParticipantID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty participant id")
	}

	spin, err := d.spinHistoryRepo.GetLatestByParticipantID(ctx, req.ParticipantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found any spin of this participant")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the latest spin: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetLatestSpinResponse{Spin: model.ConvertSpinHistory(spin)}, nil
}
