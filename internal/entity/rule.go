package entity

import "fmt"

// RuleKind tags the variant of a ShiftRule term.
type RuleKind int

const (
	KindLiteral RuleKind = iota
	KindChoice
	KindConcat
	KindStar
)

// ShiftRule is an algebraic term describing admissible sequences of
// daily shifts: a literal shift, a same-day Choice between two rules,
// a next-day Concat of two rules, or a Star (zero-or-more day
// repetitions). Rules are immutable after construction.
type ShiftRule struct {
	Kind    RuleKind
	Literal Shift     // valid iff Kind == KindLiteral
	Left    *ShiftRule // valid iff Kind in {Choice, Concat}
	Right   *ShiftRule // valid iff Kind in {Choice, Concat}
	Inner   *ShiftRule // valid iff Kind == KindStar
}

// Lit wraps a Shift as a literal rule.
func Lit(s Shift) ShiftRule {
	return ShiftRule{Kind: KindLiteral, Literal: s}
}

// Choice builds a same-day alternative between a and b. Both operands'
// Shifts() must be disjoint by code, or textually identical literals;
// the caller (usually the rule-construction DSL) is responsible for
// checking this before committing to the term, since checking it here
// would require full tree traversal on every intermediate node.
func Choice(a, b ShiftRule) ShiftRule {
	return ShiftRule{Kind: KindChoice, Left: &a, Right: &b}
}

// Concat builds a next-day sequencing of a then b.
func Concat(a, b ShiftRule) ShiftRule {
	return ShiftRule{Kind: KindConcat, Left: &a, Right: &b}
}

// Star builds zero-or-more day repetitions of r.
func Star(r ShiftRule) ShiftRule {
	return ShiftRule{Kind: KindStar, Inner: &r}
}

// Repeat concatenates r with itself n times (n >= 1). Repeat(r, 0) is
// an error domain — callers should use an explicit empty/rest literal
// instead of asking for zero repetitions.
func Repeat(r ShiftRule, n int) ShiftRule {
	if n <= 0 {
		panic(fmt.Sprintf("entity: Repeat requires n >= 1, got %d", n))
	}
	out := r
	for i := 1; i < n; i++ {
		out = Concat(out, r)
	}
	return out
}

// Shifts returns the set of literal Shifts reachable from r, keyed by
// code so repeated literals collapse to one entry.
func (r ShiftRule) Shifts() map[string]Shift {
	out := make(map[string]Shift)
	r.collectShifts(out)
	return out
}

func (r ShiftRule) collectShifts(out map[string]Shift) {
	switch r.Kind {
	case KindLiteral:
		out[r.Literal.Code] = r.Literal
	case KindChoice, KindConcat:
		r.Left.collectShifts(out)
		r.Right.collectShifts(out)
	case KindStar:
		r.Inner.collectShifts(out)
	}
}

// OffsetDays is max(end_of_each_literal) div 1440, the number of extra
// horizon days a cross-midnight literal requires.
func (r ShiftRule) OffsetDays() int {
	maxEnd := 0
	for _, s := range r.Shifts() {
		if e := s.EndOfDayMinute(); e > maxEnd {
			maxEnd = e
		}
	}
	return maxEnd / 1440
}
