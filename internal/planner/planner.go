// Package planner exposes the StaffPlanner facade: the single entry
// point addAgentRule/setStaffingTarget/run/getAgentPlan/.../getReport
// described in spec.md §6, wrapping the shift-rule algebra, FSM
// compiler, coverage grid, energy function, Plan container and
// annealing scheduler into one pipeline. Grounded directly on
// original_source/pywfplan/staff_planner.py's StaffPlanner: its
// offset_/agents_/target_/result_/report_ fields become fields of this
// struct (spec.md DESIGN NOTES).
package planner

import (
	"sort"

	"go.uber.org/zap"

	"github.com/schedcu/shiftplan/internal/annealing"
	"github.com/schedcu/shiftplan/internal/coverage"
	"github.com/schedcu/shiftplan/internal/energy"
	"github.com/schedcu/shiftplan/internal/entity"
	"github.com/schedcu/shiftplan/internal/metrics"
	"github.com/schedcu/shiftplan/internal/randsrc"
	"github.com/schedcu/shiftplan/internal/validation"
)

// Planner is the core facade. It is not safe for concurrent external
// use while Run is in flight; the scheduler it owns serialises all
// mutation internally (spec.md §5).
type Planner struct {
	offset int
	agents map[string]entity.ShiftRule
	target *coverage.Target

	scheduler *annealing.Scheduler
	logger    *zap.SugaredLogger

	comfortFn energy.ComfortFunc
	metrics   *metrics.Registry
}

// New creates an empty Planner. logger may be nil.
func New(logger *zap.SugaredLogger) *Planner {
	return &Planner{
		agents: make(map[string]entity.ShiftRule),
		logger: logger,
	}
}

// AddAgentRule registers an agent's shift rule, extending the horizon
// offset as needed. Returns a ConfigError on a duplicate agent code.
func (p *Planner) AddAgentRule(code string, rule entity.ShiftRule) error {
	if _, exists := p.agents[code]; exists {
		return entity.NewError(entity.KindConfigError, "duplicate agent code %q", code)
	}

	ruleOffset := rule.OffsetDays()
	if ruleOffset > p.offset {
		p.offset = ruleOffset
	}
	p.agents[code] = rule
	return nil
}

// SetStaffingTarget installs the target curve. slotMinutes defaults to
// 15 when 0 is passed, matching spec.md §6's `slot_length_minutes=15`
// default. Returns a ConfigError if values has the wrong length or
// contains a negative entry, or if slotMinutes/days are non-positive.
func (p *Planner) SetStaffingTarget(values []float64, days int, slotMinutes int) error {
	if slotMinutes == 0 {
		slotMinutes = 15
	}
	t := coverage.Target{SlotMinutes: slotMinutes, Days: days, Values: values}

	result := validation.NewResult()
	if err := t.Validate(); err != nil {
		if k, _ := entity.KindOf(err); k == entity.KindConfigError {
			result.AddError("INVALID_TARGET", err.Error())
		}
	}
	if len(p.agents) == 0 {
		result.AddWarning("NO_AGENTS", "no agents registered yet")
	}
	if err := result.AsError(); err != nil {
		return err
	}

	p.target = &t
	return nil
}

// SetComfortFunc overrides the default comfort penalty function used by
// the scheduler once Run is called.
func (p *Planner) SetComfortFunc(fn energy.ComfortFunc) {
	p.comfortFn = fn
}

// SetMetrics attaches a metrics registry the scheduler reports
// annealing instrumentation to once Run is called.
func (p *Planner) SetMetrics(m *metrics.Registry) {
	p.metrics = m
}

// RunOptions configures one Run invocation, per spec.md §6's
// `run(cooling=0.9, comfort_weight=0.2, seed=?)`.
type RunOptions struct {
	Cooling       float64 // 0 means use the default (0.9)
	ComfortWeight float64 // 0 means use the default (0.2)
	Seed          uint64
}

// Run executes the optimisation. It is idempotent only under the same
// seed, per spec.md §6.
func (p *Planner) Run(opts RunOptions) error {
	if p.target == nil {
		return entity.NewError(entity.KindConfigError, "no staffing target configured")
	}
	if len(p.agents) == 0 {
		return entity.NewError(entity.KindConfigError, "no agents registered")
	}

	cfg := annealing.DefaultConfig(len(p.agents), p.target.Days)
	if opts.Cooling > 0 {
		cfg.Cooling = opts.Cooling
	}
	if opts.ComfortWeight > 0 {
		cfg.ComfortWeight = opts.ComfortWeight
	}

	rng := randsrc.New(opts.Seed)
	p.scheduler = annealing.New(*p.target, p.agents, cfg, rng, p.logger)
	if p.comfortFn != nil {
		p.scheduler.SetComfortFunc(p.comfortFn)
	}
	if p.metrics != nil {
		p.scheduler.SetMetrics(p.metrics)
	}

	if err := p.scheduler.Initialise(); err != nil {
		return err
	}
	return p.scheduler.Run()
}

// GetAgentPlan returns agent's day-indexed shift codes. Returns
// NotReady if Run has not completed.
func (p *Planner) GetAgentPlan(code string) ([]string, error) {
	if err := p.checkReady(); err != nil {
		return nil, err
	}
	return p.scheduler.Plan().GetAgentPlan(code), nil
}

// GetTargetStaffing returns the target staffing curve.
func (p *Planner) GetTargetStaffing() ([]float64, error) {
	if err := p.checkReady(); err != nil {
		return nil, err
	}
	return p.scheduler.Plan().GetTargetStaffing(), nil
}

// GetPlannedStaffing returns the optimised staffing curve.
func (p *Planner) GetPlannedStaffing() ([]float64, error) {
	if err := p.checkReady(); err != nil {
		return nil, err
	}
	return p.scheduler.Plan().GetPlannedStaffing(), nil
}

// GetReport returns the tabular annealing report.
func (p *Planner) GetReport() (*annealing.Report, error) {
	if err := p.checkReady(); err != nil {
		return nil, err
	}
	return p.scheduler.Report(), nil
}

// GetBestEnergy returns the best-seen energy value of the completed run.
func (p *Planner) GetBestEnergy() (float64, error) {
	if err := p.checkReady(); err != nil {
		return 0, err
	}
	return p.scheduler.BestEnergy(), nil
}

// AgentCodes returns the registered agent codes in sorted order.
func (p *Planner) AgentCodes() []string {
	codes := make([]string, 0, len(p.agents))
	for code := range p.agents {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func (p *Planner) checkReady() error {
	if p.scheduler == nil {
		return entity.NewError(entity.KindNotReady, "the plan has not been optimised yet")
	}
	switch p.scheduler.State() {
	case annealing.StateFailed:
		return entity.NewError(entity.KindUnsatisfiableRule, "optimisation failed")
	case annealing.StateDone:
		// Plan is retrievable whether the run finished normally or was
		// cooperatively cancelled; the Cancelled marker lives on the
		// Report, not as an accessor error, per spec.md §4.6's state
		// machine ("Done: terminal (Plan retrievable)").
		return nil
	default:
		return entity.NewError(entity.KindNotReady, "the plan has not been optimised yet")
	}
}

// Cancel requests cooperative cancellation of an in-flight Run.
func (p *Planner) Cancel() {
	if p.scheduler != nil {
		p.scheduler.Abort()
	}
}
