// Package energy implements the scalar cost the annealing scheduler
// minimises: coverage deviation plus a weighted per-agent comfort term.
package energy

import "github.com/schedcu/shiftplan/internal/entity"

// DefaultComfortWeight is the w used when none is configured, per
// spec.md §4.4.
const DefaultComfortWeight = 0.2

// Coverage returns sum((planned[i] - target[i])^2) over all slots.
func Coverage(planned, target []float64) float64 {
	var sum float64
	for i := range target {
		d := planned[i] - target[i]
		sum += d * d
	}
	return sum
}

// Comfort sums fn(assignment) over every agent's current assignment.
// If fn is nil, the comfort term is zero.
func Comfort(assignments map[string][]entity.Shift, fn ComfortFunc) float64 {
	if fn == nil {
		return 0
	}
	var sum float64
	for _, a := range assignments {
		sum += fn(a)
	}
	return sum
}

// Total combines the coverage and comfort terms: E = E_cov + w*E_comfort.
func Total(covEnergy, comfortEnergy, weight float64) float64 {
	return covEnergy + weight*comfortEnergy
}

// Delta recomputes the change in E_cov when one agent's contribution on
// the affected slots changes from oldContribution to newContribution,
// by subtracting each slot's old squared term and adding its new one.
// It visits every slot; slots whose contribution is unchanged add zero.
func Delta(planned, target, oldContribution, newContribution []float64) float64 {
	var delta float64
	for i := range target {
		oldPlanned := planned[i]
		oldTerm := (oldPlanned - target[i])
		oldTerm *= oldTerm

		newPlanned := oldPlanned - oldContribution[i] + newContribution[i]
		newTerm := (newPlanned - target[i])
		newTerm *= newTerm

		delta += newTerm - oldTerm
	}
	return delta
}
