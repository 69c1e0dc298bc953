// Command planctl drives the Planner facade from a YAML config file,
// per spec.md §6's operation set, exiting with the code table spec.md
// §6 documents (0 success, 1 config/parse error, 2 unsatisfiable rule,
// 3 cancelled, 4 internal error).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/schedcu/shiftplan/internal/config"
	"github.com/schedcu/shiftplan/internal/entity"
	"github.com/schedcu/shiftplan/internal/logger"
	"github.com/schedcu/shiftplan/internal/planner"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to the YAML plan configuration")
	env := flag.String("env", "", "environment (development or production)")
	flag.Parse()

	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "planctl: -config is required")
		return 1
	}

	log, err := logger.New(*env)
	if err != nil {
		fmt.Fprintln(os.Stderr, "planctl: failed to build logger:", err)
		return 4
	}
	defer log.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Errorw("failed to load config", "error", err)
		return exitCode(err)
	}

	p := planner.New(log)

	for _, a := range cfg.Agents {
		rule, err := a.Rule.ToEntity()
		if err != nil {
			log.Errorw("failed to build agent rule", "agent", a.Code, "error", err)
			return exitCode(err)
		}
		if err := p.AddAgentRule(a.Code, rule); err != nil {
			log.Errorw("failed to register agent", "agent", a.Code, "error", err)
			return exitCode(err)
		}
	}

	if err := p.SetStaffingTarget(cfg.Target.Values, cfg.Target.Days, cfg.Target.SlotMinutes); err != nil {
		log.Errorw("failed to set staffing target", "error", err)
		return exitCode(err)
	}

	opts := planner.RunOptions{
		Cooling:       cfg.Annealing.Cooling,
		ComfortWeight: cfg.Annealing.ComfortWeight,
		Seed:          cfg.Annealing.Seed,
	}
	if err := p.Run(opts); err != nil {
		log.Errorw("optimisation failed", "error", err)
		return exitCode(err)
	}

	for _, a := range cfg.Agents {
		plan, err := p.GetAgentPlan(a.Code)
		if err != nil {
			log.Errorw("failed to read agent plan", "agent", a.Code, "error", err)
			return exitCode(err)
		}
		fmt.Printf("%s: %v\n", a.Code, plan)
	}

	report, err := p.GetReport()
	if err != nil {
		log.Errorw("failed to read report", "error", err)
		return exitCode(err)
	}
	fmt.Print(report.Table())

	return 0
}

func exitCode(err error) int {
	kind, ok := entity.KindOf(err)
	if !ok {
		return 4
	}
	switch kind {
	case entity.KindParseError, entity.KindConfigError:
		return 1
	case entity.KindUnsatisfiableRule:
		return 2
	case entity.KindCancelled:
		return 3
	default:
		return 4
	}
}
