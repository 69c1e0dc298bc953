// Command planreport runs a planner optimisation from a YAML config
// and exports the per-agent plans, the two staffing curves and the
// annealing report to an .xlsx workbook via excelize, grounded on the
// teacher's cmd/inspect-ods and cmd/validate-coverage (both build a
// small CLI around excelize). Kept as an external tool outside
// internal/, mirroring spec.md's treatment of reporting formatters as
// an external collaborator rather than core engine logic.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/schedcu/shiftplan/internal/config"
	"github.com/schedcu/shiftplan/internal/planner"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to the YAML plan configuration")
	out := flag.String("out", "plan_report.xlsx", "output .xlsx path")
	flag.Parse()

	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "planreport: -config is required")
		return 1
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "planreport:", err)
		return 1
	}

	p := planner.New(nil)
	for _, a := range cfg.Agents {
		rule, err := a.Rule.ToEntity()
		if err != nil {
			fmt.Fprintln(os.Stderr, "planreport:", err)
			return 1
		}
		if err := p.AddAgentRule(a.Code, rule); err != nil {
			fmt.Fprintln(os.Stderr, "planreport:", err)
			return 1
		}
	}
	if err := p.SetStaffingTarget(cfg.Target.Values, cfg.Target.Days, cfg.Target.SlotMinutes); err != nil {
		fmt.Fprintln(os.Stderr, "planreport:", err)
		return 1
	}

	opts := planner.RunOptions{
		Cooling:       cfg.Annealing.Cooling,
		ComfortWeight: cfg.Annealing.ComfortWeight,
		Seed:          cfg.Annealing.Seed,
	}
	if err := p.Run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "planreport: optimisation failed:", err)
		return 2
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeAgentPlans(f, p, cfg); err != nil {
		fmt.Fprintln(os.Stderr, "planreport:", err)
		return 4
	}
	if err := writeStaffingCurves(f, p); err != nil {
		fmt.Fprintln(os.Stderr, "planreport:", err)
		return 4
	}
	if err := writeReport(f, p); err != nil {
		fmt.Fprintln(os.Stderr, "planreport:", err)
		return 4
	}
	f.DeleteSheet("Sheet1")

	if err := f.SaveAs(*out); err != nil {
		fmt.Fprintln(os.Stderr, "planreport: failed to save workbook:", err)
		return 4
	}

	fmt.Printf("wrote %s\n", *out)
	return 0
}

func writeAgentPlans(f *excelize.File, p *planner.Planner, cfg *config.Config) error {
	const sheet = "Agent Plans"
	f.NewSheet(sheet)
	f.SetCellValue(sheet, "A1", "agent")
	f.SetCellValue(sheet, "B1", "day")
	f.SetCellValue(sheet, "C1", "shift_code")

	row := 2
	for _, a := range cfg.Agents {
		plan, err := p.GetAgentPlan(a.Code)
		if err != nil {
			return err
		}
		for day, code := range plan {
			f.SetCellValue(sheet, cellRef("A", row), a.Code)
			f.SetCellValue(sheet, cellRef("B", row), day)
			f.SetCellValue(sheet, cellRef("C", row), code)
			row++
		}
	}
	return nil
}

func writeStaffingCurves(f *excelize.File, p *planner.Planner) error {
	const sheet = "Staffing"
	f.NewSheet(sheet)
	f.SetCellValue(sheet, "A1", "slot")
	f.SetCellValue(sheet, "B1", "target")
	f.SetCellValue(sheet, "C1", "planned")

	target, err := p.GetTargetStaffing()
	if err != nil {
		return err
	}
	planned, err := p.GetPlannedStaffing()
	if err != nil {
		return err
	}

	for i := range target {
		row := i + 2
		f.SetCellValue(sheet, cellRef("A", row), i)
		f.SetCellValue(sheet, cellRef("B", row), target[i])
		if i < len(planned) {
			f.SetCellValue(sheet, cellRef("C", row), planned[i])
		}
	}
	return nil
}

func writeReport(f *excelize.File, p *planner.Planner) error {
	const sheet = "Annealing Report"
	f.NewSheet(sheet)
	f.SetCellValue(sheet, "A1", "iteration")
	f.SetCellValue(sheet, "B1", "temperature")
	f.SetCellValue(sheet, "C1", "energy")
	f.SetCellValue(sheet, "D1", "kind")

	report, err := p.GetReport()
	if err != nil {
		return err
	}
	for i, rec := range report.Records {
		row := i + 2
		f.SetCellValue(sheet, cellRef("A", row), rec.Iteration)
		f.SetCellValue(sheet, cellRef("B", row), rec.Temperature)
		f.SetCellValue(sheet, cellRef("C", row), rec.Energy)
		f.SetCellValue(sheet, cellRef("D", row), string(rec.Kind))
	}
	return nil
}

func cellRef(col string, row int) string {
	return col + strconv.Itoa(row)
}
