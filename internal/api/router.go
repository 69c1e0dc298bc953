// Package api exposes the Planner facade as a REST API, grounded on the
// teacher's internal/api package (Echo router, APIResponse envelope,
// CORS/Logger/Recover middleware, echo.Group per resource).
package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/schedcu/shiftplan/internal/job"
	"github.com/schedcu/shiftplan/internal/metrics"
)

// Router wires the Echo instance, the Planner-backed Handlers, and an
// optional async job scheduler together.
type Router struct {
	echo      *echo.Echo
	handlers  *Handlers
	scheduler *job.JobScheduler
	metrics   *metrics.Registry
}

// NewRouter builds a Router. scheduler and metricsRegistry may be nil;
// when scheduler is nil the async-enqueue endpoint is not registered.
func NewRouter(handlers *Handlers, scheduler *job.JobScheduler, metricsRegistry *metrics.Registry) *Router {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	r := &Router{echo: e, handlers: handlers, scheduler: scheduler, metrics: metricsRegistry}
	if metricsRegistry != nil {
		e.Use(r.instrument)
	}
	r.registerRoutes()
	return r
}

func (r *Router) instrument(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		r.metrics.RecordHTTPRequest(c.Request().Method, c.Path(), time.Since(start).Seconds())
		return err
	}
}

func (r *Router) registerRoutes() {
	r.echo.GET("/api/health", r.handlers.Health)

	agents := r.echo.Group("/api/agents")
	agents.POST("/:code/rule", r.handlers.AddAgentRule)
	agents.GET("/:code/plan", r.handlers.GetAgentPlan)

	r.echo.PUT("/api/target", r.handlers.SetStaffingTarget)
	r.echo.GET("/api/target", r.handlers.GetTargetStaffing)
	r.echo.GET("/api/staffing", r.handlers.GetPlannedStaffing)

	r.echo.POST("/api/run", r.handlers.Run)
	r.echo.POST("/api/cancel", r.handlers.Cancel)
	r.echo.GET("/api/report", r.handlers.GetReport)

	if r.scheduler != nil {
		r.echo.POST("/api/run/async", r.enqueueRun)
	}

	if r.metrics != nil {
		r.echo.GET("/metrics", echo.WrapHandler(r.metrics.Handler()))
	}
}

// enqueueRun handles POST /api/run/async: enqueue an optimisation onto
// Asynq instead of blocking the HTTP request on a CPU-bound run.
func (r *Router) enqueueRun(c echo.Context) error {
	var req RunRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode("INVALID_REQUEST", err.Error()))
	}

	runID, err := r.scheduler.EnqueueOptimize(c.Request().Context(), req.Cooling, req.ComfortWeight, req.Seed)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponseWithCode("ENQUEUE_FAILED", err.Error()))
	}
	return c.JSON(http.StatusAccepted, SuccessResponse(map[string]string{"run_id": runID.String()}))
}

// Start starts the HTTP server on addr.
func (r *Router) Start(addr string) error { return r.echo.Start(addr) }

// Shutdown closes the Echo server immediately via Close, without
// waiting for in-flight requests to finish.
func (r *Router) Shutdown() error { return r.echo.Close() }

// Echo exposes the underlying *echo.Echo for graceful-shutdown callers
// that need Server.Shutdown(ctx) rather than Close.
func (r *Router) Echo() *echo.Echo { return r.echo }
