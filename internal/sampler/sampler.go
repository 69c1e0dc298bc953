// Package sampler draws uniformly-random accepted words of a fixed
// length from a compiled DFA, using the counting-table technique of
// spec.md §4.2: precompute, per state and remaining length, the number
// of accepting words of that length, then at each step weight the next
// symbol by the ratio of sub-counts. Counts are kept as math/big.Int
// since naive 64-bit counts overflow past moderate horizons with
// moderate fan-out.
package sampler

import (
	"math/big"

	"github.com/schedcu/shiftplan/internal/entity"
	"github.com/schedcu/shiftplan/internal/randsrc"
	"github.com/schedcu/shiftplan/internal/regexfsm"
)

// Table holds the precomputed N[state][length] counts for one DFA up to
// a fixed maximum horizon.
type Table struct {
	dfa     *regexfsm.DFA
	horizon int
	counts  [][]*big.Int // counts[state][length], length in [0, horizon]
}

// BuildTable precomputes counts for every state of dfa and every
// remaining length in [0, horizon].
func BuildTable(dfa *regexfsm.DFA, horizon int) *Table {
	n := dfa.NumStates()
	counts := make([][]*big.Int, n)
	for q := 0; q < n; q++ {
		counts[q] = make([]*big.Int, horizon+1)
		if dfa.IsAccepting(q) {
			counts[q][0] = big.NewInt(1)
		} else {
			counts[q][0] = big.NewInt(0)
		}
	}

	for l := 1; l <= horizon; l++ {
		for q := 0; q < n; q++ {
			sum := new(big.Int)
			for _, tr := range dfa.OutgoingFrom(q) {
				sum.Add(sum, counts[tr.To][l-1])
			}
			counts[q][l] = sum
		}
	}

	return &Table{dfa: dfa, horizon: horizon, counts: counts}
}

// Satisfiable reports whether any accepted word of length l (l <=
// horizon) exists from the initial state.
func (t *Table) Satisfiable(l int) bool {
	return t.countAt(regexfsm.Initial, l).Sign() > 0
}

func (t *Table) countAt(state, l int) *big.Int {
	return t.counts[state][l]
}

// Sample draws one uniformly-random accepted word of length l (l <=
// horizon) from the initial state, returning the sequence of shift
// codes. Returns entity.KindUnsatisfiableRule if no accepted word of
// that length exists.
func (t *Table) Sample(l int, rng randsrc.Source) ([]string, error) {
	if l > t.horizon {
		return nil, entityUnsatisfiable(l)
	}
	if t.countAt(regexfsm.Initial, l).Sign() == 0 {
		return nil, entityUnsatisfiable(l)
	}

	out := make([]string, 0, l)
	state := regexfsm.Initial
	remaining := l

	for remaining > 0 {
		transitions := t.dfa.OutgoingFrom(state)
		total := t.countAt(state, remaining)
		totalF := new(big.Float).SetInt(total)

		type candidate struct {
			tr  regexfsm.Transition
			sub *big.Int
		}
		var candidates []candidate
		for _, tr := range transitions {
			sub := t.countAt(tr.To, remaining-1)
			if sub.Sign() > 0 {
				candidates = append(candidates, candidate{tr: tr, sub: sub})
			}
		}
		if len(candidates) == 0 {
			return nil, entityUnsatisfiable(l)
		}

		r := rng.Float64()
		cumulative := new(big.Float)
		chosen := len(candidates) - 1
		for i, c := range candidates {
			cumulative.Add(cumulative, new(big.Float).SetInt(c.sub))
			ratio, _ := new(big.Float).Quo(cumulative, totalF).Float64()
			if r < ratio {
				chosen = i
				break
			}
		}

		tr := candidates[chosen].tr
		out = append(out, tr.Symbol)
		state = tr.To
		remaining--
	}

	return out, nil
}

func entityUnsatisfiable(l int) error {
	return entity.NewError(entity.KindUnsatisfiableRule, "no accepted word of length %d", l)
}
