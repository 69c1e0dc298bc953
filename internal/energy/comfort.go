package energy

import "github.com/schedcu/shiftplan/internal/entity"

// ComfortFunc produces a non-negative real penalty from one agent's
// assignment sequence. If no comfort function is configured, the
// comfort term is zero.
type ComfortFunc func(assignment []entity.Shift) float64

// DefaultComfort counts the consecutive-day pairs in the assignment
// whose shift codes differ. Two consecutive days with the same code are
// not penalised; every change of code counts once, including a change
// between a work shift and a rest shift.
func DefaultComfort(assignment []entity.Shift) float64 {
	transitions := 0
	for i := 1; i < len(assignment); i++ {
		if assignment[i-1].Code != assignment[i].Code {
			transitions++
		}
	}
	return float64(transitions)
}
