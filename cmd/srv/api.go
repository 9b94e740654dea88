package main

import (
	"fmt"
	"net/http"

	"github.com/luckyspin-lab/backend/internal/middleware"
	"github.com/luckyspin-lab/backend/pkg/prometheus"
	"github.com/luckyspin-lab/backend/pkg/router"

	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(cctx *cli.Context) error {
	server.loadConfig()
	server.loadLogger()
	server.loadDatabase()
	server.loadRedis()
	server.loadMetrics()
	server.loadRepos()
	server.loadDomains()
	server.loadRouter()

	mux := http.NewServeMux()
	mux.Handle("/metrics", prometheus.NewHandler(s.registry))
	mux.Handle("/", s.router.Handler())

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", s.configs.ApiServer.Port),
		Handler: mux,
	}

	s.logger.Infof("Starting server on port: %s", s.configs.ApiServer.Port)
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}
	s.logger.Infof("Server stop")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, *s.configs, s.logger)
	s.router.Before(middleware.WithStartTime())
	s.router.AddCloser(middleware.LogRequest())
	s.router.AddCloser(middleware.MeterRequest(s.meter))

	// Spin API
	{
		router.POST(s.router, "/executeSpin", s.spinDomain.ExecuteSpin)
		router.GET(s.router, "/checkEligibility", s.spinDomain.CheckEligibility)
		router.GET(s.router, "/getLatestSpin", s.spinDomain.GetLatestSpin)
	}

	// Event admin API
	{
		router.POST(s.router, "/createEvent", s.eventDomain.CreateEvent)
		router.POST(s.router, "/createLocation", s.eventDomain.CreateLocation)
		router.POST(s.router, "/createReward", s.eventDomain.CreateReward)
		router.POST(s.router, "/createGoldenHour", s.eventDomain.CreateGoldenHour)
		router.POST(s.router, "/updateEventWindow", s.eventDomain.UpdateEventWindow)
		router.POST(s.router, "/restockReward", s.eventDomain.RestockReward)
		router.GET(s.router, "/getEvent", s.eventDomain.GetEvent)
	}
}
