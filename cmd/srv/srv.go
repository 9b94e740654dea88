package main

import (
	"context"
	"net/http"

	"github.com/luckyspin-lab/backend/config"
	"github.com/luckyspin-lab/backend/internal/common"
	"github.com/luckyspin-lab/backend/internal/domain"
	"github.com/luckyspin-lab/backend/internal/repository"
	"github.com/luckyspin-lab/backend/pkg/idutil"
	"github.com/luckyspin-lab/backend/pkg/logger"
	"github.com/luckyspin-lab/backend/pkg/prometheus"
	"github.com/luckyspin-lab/backend/pkg/router"
	"github.com/luckyspin-lab/backend/pkg/xcontext"
	"github.com/luckyspin-lab/backend/pkg/xredis"
	"github.com/urfave/cli/v2"

	prom "github.com/prometheus/client_golang/prometheus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App
	ctx context.Context

	configs *config.Configs
	logger  logger.Logger

	db        *gorm.DB
	idemStore xredis.Client

	registry *prom.Registry
	meter    common.Meter

	eventRepo            repository.EventRepository
	eventLocationRepo    repository.EventLocationRepository
	rewardRepo           repository.RewardRepository
	goldenHourRepo       repository.GoldenHourRepository
	participantRepo      repository.ParticipantRepository
	participantEventRepo repository.ParticipantEventRepository
	spinHistoryRepo      repository.SpinHistoryRepository

	spinDomain  domain.SpinDomain
	eventDomain domain.EventDomain

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig() {
	configs := config.Load()
	s.configs = &configs
}

func (s *srv) loadLogger() {
	s.logger = logger.NewLogger(s.configs.LogLevel)
	s.ctx = xcontext.WithLogger(context.Background(), s.logger)
	s.ctx = xcontext.WithConfigs(s.ctx, *s.configs)
}

func (s *srv) loadDatabase() {
	var err error
	s.db, err = gorm.Open(mysql.New(mysql.Config{
		DSN:                       s.configs.Database.ConnectionString(), // data source name
		DefaultStringSize:         256,                                   // default size for string fields
		DisableDatetimePrecision:  true,                                  // disable datetime precision, which not supported before MySQL 5.6
		DontSupportRenameIndex:    true,                                  // drop & create when rename index, rename index not supported before MySQL 5.7, MariaDB
		DontSupportRenameColumn:   true,                                  // `change` when rename column, rename column not supported before MySQL 8, MariaDB
		SkipInitializeWithVersion: false,                                 // auto configure based on currently MySQL version
	}), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithDB(s.ctx, s.db)

	if err := idutil.Init(s.configs.Spin.SnowflakeNodeID); err != nil {
		panic(err)
	}
}

// loadRedis connects the idempotency store. The api keeps working without it,
// the attempt-id unique index covers replays, so an unreachable redis only
// logs a warning.
func (s *srv) loadRedis() {
	idemStore, err := xredis.NewClient(s.ctx)
	if err != nil {
		s.logger.Warnf("Cannot connect to redis, continue without it: %v", err)
		return
	}

	s.idemStore = idemStore
}

func (s *srv) loadMetrics() {
	s.registry = prometheus.NewRegistry()
	s.meter = common.NewPrometheusMeter(s.registry)
}

func (s *srv) loadRepos() {
	s.eventRepo = repository.NewEventRepository()
	s.eventLocationRepo = repository.NewEventLocationRepository()
	s.rewardRepo = repository.NewRewardRepository()
	s.goldenHourRepo = repository.NewGoldenHourRepository()
	s.participantRepo = repository.NewParticipantRepository()
	s.participantEventRepo = repository.NewParticipantEventRepository()
	s.spinHistoryRepo = repository.NewSpinHistoryRepository()
}

func (s *srv) loadDomains() {
	s.spinDomain = domain.NewSpinDomain(
		s.eventRepo,
		s.eventLocationRepo,
		s.rewardRepo,
		s.goldenHourRepo,
		s.participantRepo,
		s.participantEventRepo,
		s.spinHistoryRepo,
		s.idemStore,
		s.meter,
		nil,
	)
	s.eventDomain = domain.NewEventDomain(
		s.eventRepo,
		s.eventLocationRepo,
		s.rewardRepo,
		s.goldenHourRepo,
	)
}
