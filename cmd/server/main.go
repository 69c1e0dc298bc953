// Command server runs the HTTP API. At startup it connects to
// PostgreSQL and applies the runs table schema that cmd/worker writes
// to; the API handlers themselves do not read or write that store.
// Grounded on the teacher's cmd/server/main.go (Echo instance, graceful
// shutdown via context.WithTimeout) with signal-driven shutdown instead
// of the teacher's fixed development timer.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/schedcu/shiftplan/internal/api"
	"github.com/schedcu/shiftplan/internal/config"
	"github.com/schedcu/shiftplan/internal/job"
	"github.com/schedcu/shiftplan/internal/logger"
	"github.com/schedcu/shiftplan/internal/metrics"
	"github.com/schedcu/shiftplan/internal/planner"
	"github.com/schedcu/shiftplan/internal/repository/postgres"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML server configuration")
	flag.Parse()

	var srvCfg config.ServerConfig
	if *configPath != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			panic(err)
		}
		srvCfg = cfg.Server
	}
	if srvCfg.Addr == "" {
		srvCfg.Addr = envOr("SERVER_ADDR", ":8080")
	}
	if srvCfg.DatabaseURL == "" {
		srvCfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if srvCfg.RedisAddr == "" {
		srvCfg.RedisAddr = envOr("REDIS_ADDR", "localhost:6379")
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

	if _, err := db.Exec(postgres.Schema); err != nil {
		log.Fatalw("failed to apply schema", "error", err)
	}

	sched, err := job.NewJobScheduler(srvCfg.RedisAddr)
	if err != nil {
		log.Fatalw("failed to connect job scheduler", "error", err)
	}
	defer sched.Close()

	metricsRegistry := metrics.NewRegistry()

	p := planner.New(log)
	p.SetMetrics(metricsRegistry)
	handlers := api.NewHandlers(p)
	router := api.NewRouter(handlers, sched, metricsRegistry)

	go func() {
		log.Infow("starting server", "addr", srvCfg.Addr)
		if err := router.Start(srvCfg.Addr); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server stopped", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := router.Echo().Shutdown(ctx); err != nil {
		log.Errorw("server shutdown error", "error", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
