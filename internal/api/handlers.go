package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/schedcu/shiftplan/internal/entity"
	"github.com/schedcu/shiftplan/internal/planner"
)

// Handlers exposes the Planner facade over HTTP, one method per
// spec.md §6 operation.
type Handlers struct {
	planner *planner.Planner
}

// NewHandlers builds Handlers around a single Planner instance. The
// facade is not safe for concurrent Run calls; callers serialise
// writes through the HTTP layer the same way spec.md §5 serialises
// them through the scheduler.
func NewHandlers(p *planner.Planner) *Handlers {
	return &Handlers{planner: p}
}

// AddAgentRuleRequest is the body of POST /api/agents/:code/rule.
type AddAgentRuleRequest struct {
	Rule RuleDTO `json:"rule"`
}

// AddAgentRule handles POST /api/agents/:code/rule.
func (h *Handlers) AddAgentRule(c echo.Context) error {
	code := c.Param("code")

	var req AddAgentRuleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode("INVALID_REQUEST", err.Error()))
	}

	rule, err := req.Rule.toEntity()
	if err != nil {
		return errorResponse(c, err)
	}

	if err := h.planner.AddAgentRule(code, rule); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, SuccessResponse(map[string]string{"code": code}))
}

// SetStaffingTargetRequest is the body of PUT /api/target.
type SetStaffingTargetRequest struct {
	Values      []float64 `json:"values"`
	Days        int       `json:"days"`
	SlotMinutes int       `json:"slot_length_minutes"`
}

// SetStaffingTarget handles PUT /api/target.
func (h *Handlers) SetStaffingTarget(c echo.Context) error {
	var req SetStaffingTargetRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode("INVALID_REQUEST", err.Error()))
	}

	if err := h.planner.SetStaffingTarget(req.Values, req.Days, req.SlotMinutes); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse(nil))
}

// RunRequest is the body of POST /api/run.
type RunRequest struct {
	Cooling       float64 `json:"cooling"`
	ComfortWeight float64 `json:"comfort_weight"`
	Seed          uint64  `json:"seed"`
}

// Run handles POST /api/run, executing the optimisation synchronously.
// cmd/worker is the asynchronous counterpart for long-running horizons.
func (h *Handlers) Run(c echo.Context) error {
	var req RunRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode("INVALID_REQUEST", err.Error()))
	}

	opts := planner.RunOptions{Cooling: req.Cooling, ComfortWeight: req.ComfortWeight, Seed: req.Seed}
	if err := h.planner.Run(opts); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse(nil))
}

// GetAgentPlan handles GET /api/agents/:code/plan.
func (h *Handlers) GetAgentPlan(c echo.Context) error {
	code := c.Param("code")
	plan, err := h.planner.GetAgentPlan(code)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse(plan))
}

// GetTargetStaffing handles GET /api/target.
func (h *Handlers) GetTargetStaffing(c echo.Context) error {
	curve, err := h.planner.GetTargetStaffing()
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse(curve))
}

// GetPlannedStaffing handles GET /api/staffing.
func (h *Handlers) GetPlannedStaffing(c echo.Context) error {
	curve, err := h.planner.GetPlannedStaffing()
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse(curve))
}

// GetReport handles GET /api/report.
func (h *Handlers) GetReport(c echo.Context) error {
	report, err := h.planner.GetReport()
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse(report))
}

// Cancel handles POST /api/cancel, requesting cooperative abort of an
// in-flight Run.
func (h *Handlers) Cancel(c echo.Context) error {
	h.planner.Cancel()
	return c.JSON(http.StatusAccepted, SuccessResponse(nil))
}

// Health handles GET /api/health.
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, SuccessResponse(map[string]string{"status": "ok"}))
}

// errorResponse maps a PlannerError's Kind to an HTTP status, per
// spec.md §7's error-handling contract: construction errors are client
// errors, NotReady is a conflict, Internal is a server error.
func errorResponse(c echo.Context, err error) error {
	kind, ok := entity.KindOf(err)
	if !ok {
		return c.JSON(http.StatusInternalServerError, ErrorResponseWithCode("INTERNAL", err.Error()))
	}

	switch kind {
	case entity.KindParseError, entity.KindConfigError:
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode(string(kind), err.Error()))
	case entity.KindUnsatisfiableRule:
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponseWithCode(string(kind), err.Error()))
	case entity.KindNotReady:
		return c.JSON(http.StatusConflict, ErrorResponseWithCode(string(kind), err.Error()))
	case entity.KindCancelled:
		return c.JSON(http.StatusGone, ErrorResponseWithCode(string(kind), err.Error()))
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponseWithCode(string(kind), err.Error()))
	}
}
