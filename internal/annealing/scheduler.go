// Package annealing implements the simulated-annealing scheduler that
// coordinates per-agent FSM samplers to minimise the global energy
// (spec.md §4.6): proposal, acceptance, geometric cooling, reporting.
package annealing

import (
	"math"
	"sort"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/schedcu/shiftplan/internal/coverage"
	"github.com/schedcu/shiftplan/internal/energy"
	"github.com/schedcu/shiftplan/internal/entity"
	"github.com/schedcu/shiftplan/internal/metrics"
	"github.com/schedcu/shiftplan/internal/plan"
	"github.com/schedcu/shiftplan/internal/randsrc"
	"github.com/schedcu/shiftplan/internal/regexfsm"
	"github.com/schedcu/shiftplan/internal/sampler"
)

// Config holds the scheduler's tunable parameters. Defaults are
// documented in DESIGN.md per spec.md's instruction that the stopping
// criterion be a documented re-implementer choice.
type Config struct {
	Cooling            float64 // alpha, default 0.9
	ComfortWeight      float64 // w, default 0.2
	EpochLength        int     // K iterations per epoch before cooling; default numAgents*days
	TMin               float64 // temperature floor; default 1e-3
	MaxIterations       int    // hard iteration cap; default 200*numAgents*days
	StagnantEpochLimit int     // consecutive no-accept epochs before stop; default 5
}

// DefaultConfig returns Config defaults scaled to numAgents and days,
// per spec.md §4.6.
func DefaultConfig(numAgents, days int) Config {
	epoch := numAgents * days
	if epoch <= 0 {
		epoch = 1
	}
	return Config{
		Cooling:            0.9,
		ComfortWeight:      energy.DefaultComfortWeight,
		EpochLength:        epoch,
		TMin:               1e-3,
		MaxIterations:      200 * epoch,
		StagnantEpochLimit: 5,
	}
}

type agentSampler struct {
	code  string
	dfa   *regexfsm.DFA
	table *sampler.Table
}

// Scheduler drives the annealing loop described in spec.md §4.6.
type Scheduler struct {
	state State

	target  coverage.Target
	horizon int

	samplers  map[string]*agentSampler
	comfortFn energy.ComfortFunc
	config    Config
	rng       randsrc.Source
	logger    *zap.SugaredLogger
	metrics   *metrics.Registry

	plan *plan.Plan

	covEnergy     float64
	comfortByCode map[string]float64
	energyTotal   float64

	bestEnergy float64
	bestPlan   map[string][]entity.Shift

	temperature float64
	iteration   int
	epochAccept int

	abort *int32

	report *Report
}

// New builds a Scheduler in state Built for the given target and
// agent->rule registrations, each already compiled to a DFA.
func New(target coverage.Target, rules map[string]entity.ShiftRule, config Config, rng randsrc.Source, logger *zap.SugaredLogger) *Scheduler {
	horizon := target.Days
	for _, r := range rules {
		if off := r.OffsetDays(); target.Days+off > horizon {
			horizon = target.Days + off
		}
	}

	samplers := make(map[string]*agentSampler, len(rules))
	for code, rule := range rules {
		dfa := regexfsm.Compile(rule)
		samplers[code] = &agentSampler{
			code:  code,
			dfa:   dfa,
			table: sampler.BuildTable(dfa, horizon),
		}
	}

	return &Scheduler{
		state:         StateBuilt,
		target:        target,
		horizon:       horizon,
		samplers:      samplers,
		comfortFn:     energy.DefaultComfort,
		config:        config,
		rng:           rng,
		logger:        logger,
		comfortByCode: make(map[string]float64),
		report:        &Report{},
		abort:         new(int32),
	}
}

// SetComfortFunc overrides the default comfort penalty.
func (s *Scheduler) SetComfortFunc(fn energy.ComfortFunc) {
	s.comfortFn = fn
}

// SetMetrics attaches a metrics registry the scheduler reports its
// iteration/accept/reject counts and energy/temperature gauges to.
// May be left nil, in which case reporting is skipped.
func (s *Scheduler) SetMetrics(m *metrics.Registry) {
	s.metrics = m
}

func (s *Scheduler) recordProposal(accepted bool) {
	if s.metrics != nil {
		s.metrics.RecordProposal(accepted)
	}
}

func (s *Scheduler) recordCoolingEpoch() {
	if s.metrics != nil {
		s.metrics.RecordCoolingEpoch()
	}
}

func (s *Scheduler) reportEnergy(e float64) {
	if s.metrics != nil {
		s.metrics.SetEnergy(e)
	}
}

func (s *Scheduler) reportTemperature(t float64) {
	if s.metrics != nil {
		s.metrics.SetTemperature(t)
	}
}

// Abort requests cooperative cancellation; observed between iterations.
func (s *Scheduler) Abort() {
	atomic.StoreInt32(s.abort, 1)
}

func (s *Scheduler) aborted() bool {
	return atomic.LoadInt32(s.abort) != 0
}

// State returns the scheduler's current lifecycle state.
func (s *Scheduler) State() State { return s.state }

// Initialise draws one sample per agent, builds the initial Plan,
// computes the starting energy, and transitions Built -> Initialised.
func (s *Scheduler) Initialise() error {
	if s.state != StateBuilt {
		return entity.NewError(entity.KindInternal, "Initialise called from state %s", s.state)
	}

	s.plan = plan.New(s.target, s.horizon)

	codes := sortedCodes(s.samplers)
	for _, code := range codes {
		as := s.samplers[code]
		word, err := as.table.Sample(s.horizon, s.rng)
		if err != nil {
			s.state = StateFailed
			return err
		}
		s.plan.SwapAgent(code, toShifts(as.dfa, word))
	}

	s.covEnergy = energy.Coverage(s.plan.GetPlannedStaffing(), s.plan.GetTargetStaffing())
	for _, code := range codes {
		s.comfortByCode[code] = s.comfortFn(s.plan.AssignmentOf(code))
	}
	s.energyTotal = energy.Total(s.covEnergy, s.totalComfort(), s.config.ComfortWeight)
	s.bestEnergy = s.energyTotal
	s.bestPlan = s.plan.Assignments()

	s.temperature = s.calibrateTemperature()
	s.reportEnergy(s.energyTotal)
	s.reportTemperature(s.temperature)

	s.report.append(Record{Iteration: 0, Temperature: s.temperature, Energy: s.energyTotal, Kind: RecordInit})
	if s.logger != nil {
		s.logger.Infow("annealing initialised", "energy", s.energyTotal, "temperature", s.temperature, "horizon", s.horizon)
	}

	s.state = StateInitialised
	return nil
}

// calibrateTemperature estimates T0 as the median absolute single-agent
// swap delta observed over a short calibration batch, per spec.md §4.6.
func (s *Scheduler) calibrateTemperature() float64 {
	codes := sortedCodes(s.samplers)
	if len(codes) == 0 {
		return 1.0
	}

	const batch = 8
	var deltas []float64
	for i := 0; i < batch; i++ {
		code := codes[s.rng.IntN(len(codes))]
		as := s.samplers[code]
		word, err := as.table.Sample(s.horizon, s.rng)
		if err != nil {
			continue
		}
		candidate := toShifts(as.dfa, word)
		delta := s.proposalDelta(code, candidate)
		if delta < 0 {
			delta = -delta
		}
		deltas = append(deltas, delta)
	}
	if len(deltas) == 0 {
		return 1.0
	}
	sort.Float64s(deltas)
	median := deltas[len(deltas)/2]
	if median <= 0 {
		median = 1.0
	}
	return median
}

// proposalDelta computes the energy delta of swapping code's assignment
// to candidate, without committing the change.
func (s *Scheduler) proposalDelta(code string, candidate []entity.Shift) float64 {
	old := s.plan.AssignmentOf(code)
	numSlots := s.target.NumSlots()
	oldContrib := coverage.Contribution(old, s.target.SlotMinutes, numSlots)
	newContrib := coverage.Contribution(candidate, s.target.SlotMinutes, numSlots)

	covDelta := energy.Delta(s.plan.GetPlannedStaffing(), s.plan.GetTargetStaffing(), oldContrib, newContrib)

	oldComfort := s.comfortByCode[code]
	newComfort := s.comfortFn(candidate)
	comfortDelta := newComfort - oldComfort

	return covDelta + s.config.ComfortWeight*comfortDelta
}

// Run executes the annealing loop to completion (Done, Failed, or
// Cancelled), transitioning Initialised -> Running.
func (s *Scheduler) Run() error {
	if s.state != StateInitialised {
		return entity.NewError(entity.KindInternal, "Run called from state %s", s.state)
	}
	s.state = StateRunning

	codes := sortedCodes(s.samplers)

	stagnantEpochs := 0
	for s.iteration < s.config.MaxIterations {
		if s.aborted() {
			s.finish(true)
			return nil
		}

		code := codes[s.rng.IntN(len(codes))]
		as := s.samplers[code]

		word, err := as.table.Sample(s.horizon, s.rng)
		if err != nil {
			s.state = StateFailed
			return err
		}
		candidate := toShifts(as.dfa, word)

		delta := s.proposalDelta(code, candidate)
		accept := delta <= 0
		if !accept {
			p := math.Exp(-delta / s.temperature)
			accept = s.rng.Float64() < p
		}

		s.iteration++
		s.recordProposal(accept)

		if accept {
			old := s.plan.AssignmentOf(code)
			numSlots := s.target.NumSlots()
			oldContrib := coverage.Contribution(old, s.target.SlotMinutes, numSlots)
			newContrib := coverage.Contribution(candidate, s.target.SlotMinutes, numSlots)
			s.covEnergy += energy.Delta(s.plan.GetPlannedStaffing(), s.plan.GetTargetStaffing(), oldContrib, newContrib)

			s.plan.SwapAgent(code, candidate)
			s.comfortByCode[code] = s.comfortFn(candidate)
			s.energyTotal = energy.Total(s.covEnergy, s.totalComfort(), s.config.ComfortWeight)
			s.reportEnergy(s.energyTotal)

			s.epochAccept++
			if s.energyTotal < s.bestEnergy {
				s.bestEnergy = s.energyTotal
				s.bestPlan = s.plan.Assignments()
			}

			s.report.append(Record{Iteration: s.iteration, Temperature: s.temperature, Energy: s.energyTotal, Kind: RecordAccept})
		}

		if s.iteration%s.config.EpochLength == 0 {
			if s.epochAccept == 0 {
				stagnantEpochs++
			} else {
				stagnantEpochs = 0
			}
			s.epochAccept = 0

			s.state = StateCooling
			s.temperature *= s.config.Cooling
			s.recordCoolingEpoch()
			s.reportTemperature(s.temperature)
			s.report.append(Record{Iteration: s.iteration, Temperature: s.temperature, Energy: s.energyTotal, Kind: RecordCool})
			if s.logger != nil {
				s.logger.Debugw("cooling epoch", "iteration", s.iteration, "temperature", s.temperature, "energy", s.energyTotal)
			}
			s.state = StateRunning

			if s.temperature < s.config.TMin {
				s.finish(false)
				return nil
			}
			if stagnantEpochs >= s.config.StagnantEpochLimit {
				s.finish(false)
				return nil
			}
		}
	}

	s.finish(false)
	return nil
}

// finish rolls the live plan back to the best-seen assignment before
// entering StateDone, so every accessor (Plan, BestPlan, BestEnergy)
// describes the same assignment regardless of whether acceptance left
// the live plan worse than the best seen along the way (spec.md:137).
func (s *Scheduler) finish(cancelled bool) {
	s.plan.RestoreAssignments(s.bestPlan)
	s.energyTotal = s.bestEnergy
	s.reportEnergy(s.energyTotal)

	s.report.Cancelled = cancelled
	s.report.append(Record{Iteration: s.iteration, Temperature: s.temperature, Energy: s.bestEnergy, Kind: RecordDone})
	s.state = StateDone
	if s.logger != nil {
		s.logger.Infow("annealing done", "iteration", s.iteration, "bestEnergy", s.bestEnergy, "cancelled", cancelled)
	}
}

// BestPlan returns the best-seen assignment snapshot (spec.md §8
// invariant 5: the best-seen energy never increases across iterations).
func (s *Scheduler) BestPlan() map[string][]entity.Shift { return s.bestPlan }

// BestEnergy returns the best-seen energy value.
func (s *Scheduler) BestEnergy() float64 { return s.bestEnergy }

// Plan returns the Plan container the scheduler mutates while running.
// Once the run reaches StateDone, finish has rolled it back to the
// best-seen assignment, so this and BestPlan describe the same state.
func (s *Scheduler) Plan() *plan.Plan { return s.plan }

// Report returns the accumulated report log.
func (s *Scheduler) Report() *Report { return s.report }

func (s *Scheduler) totalComfort() float64 {
	var sum float64
	for _, v := range s.comfortByCode {
		sum += v
	}
	return sum
}

func sortedCodes(m map[string]*agentSampler) []string {
	out := make([]string, 0, len(m))
	for c := range m {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func toShifts(dfa *regexfsm.DFA, word []string) []entity.Shift {
	out := make([]entity.Shift, len(word))
	for i, code := range word {
		s, _ := dfa.ShiftByCode(code)
		out[i] = s
	}
	return out
}
