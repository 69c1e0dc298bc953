// Command worker runs the Asynq worker process consuming optimisation
// jobs, plus the robfig/cron periodic re-optimisation trigger,
// persisting results to PostgreSQL. Grounded on the teacher's
// internal/job package retargeted to a single job type.
package main

import (
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/schedcu/shiftplan/internal/config"
	"github.com/schedcu/shiftplan/internal/job"
	"github.com/schedcu/shiftplan/internal/logger"
	"github.com/schedcu/shiftplan/internal/metrics"
	"github.com/schedcu/shiftplan/internal/planner"
	"github.com/schedcu/shiftplan/internal/repository/postgres"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML worker configuration")
	flag.Parse()

	if *configPath == "" {
		panic("worker: -config is required")
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	srvCfg := cfg.Server
	if srvCfg.RedisAddr == "" {
		srvCfg.RedisAddr = envOr("REDIS_ADDR", "localhost:6379")
	}
	if srvCfg.DatabaseURL == "" {
		srvCfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	log, err := logger.New(srvCfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := postgres.New(srvCfg.DatabaseURL)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	runs := postgres.NewRunRepository(db.DB)

	metricsRegistry := metrics.NewRegistry()
	if srvCfg.MetricsAddr != "" {
		go func() {
			if err := http.ListenAndServe(srvCfg.MetricsAddr, metricsRegistry.Handler()); err != nil {
				log.Errorw("metrics server stopped", "error", err)
			}
		}()
	}

	factory := func() (*planner.Planner, error) {
		p := planner.New(log)
		p.SetMetrics(metricsRegistry)
		for _, a := range cfg.Agents {
			rule, err := a.Rule.ToEntity()
			if err != nil {
				return nil, err
			}
			if err := p.AddAgentRule(a.Code, rule); err != nil {
				return nil, err
			}
		}
		if err := p.SetStaffingTarget(cfg.Target.Values, cfg.Target.Days, cfg.Target.SlotMinutes); err != nil {
			return nil, err
		}
		return p, nil
	}

	handlers := job.NewHandlers(factory, runs, log)
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: srvCfg.RedisAddr},
		asynq.Config{Concurrency: 4},
	)

	var trigger *job.CronTrigger
	if srvCfg.CronSpec != "" {
		sched, err := job.NewJobScheduler(srvCfg.RedisAddr)
		if err != nil {
			log.Fatalw("failed to connect job scheduler", "error", err)
		}
		defer sched.Close()

		trigger, err = job.NewCronTrigger(sched, srvCfg.CronSpec, cfg.Annealing.Cooling, cfg.Annealing.ComfortWeight, log)
		if err != nil {
			log.Fatalw("failed to build cron trigger", "error", err)
		}
		trigger.Start()
	}

	go func() {
		log.Info("starting worker")
		if err := srv.Run(mux); err != nil {
			log.Fatalw("worker stopped", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down worker")
	srv.Shutdown()
	if trigger != nil {
		<-trigger.Stop().Done()
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
