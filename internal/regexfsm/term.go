// Package regexfsm compiles a shift rule into a deterministic finite
// automaton via Brzozowski derivatives, and exposes a textual dump of
// the resulting state/transition table for an external diagram emitter.
package regexfsm

import (
	"sort"
	"strings"

	"github.com/schedcu/shiftplan/internal/entity"
)

// termKind tags a canonicalised Brzozowski derivative term.
type termKind int

const (
	termEmptySet termKind = iota // the term that accepts nothing
	termEmptyWord                // the term that accepts only the empty word (nullable rest-only leaf)
	termLit
	termChoice
	termConcat
	termStar
)

// term is a canonical sum-of-products representation of a derivative.
// Choice operands are flattened and deduplicated (associativity +
// idempotence); Concat operands are flattened into a list.
type term struct {
	kind    termKind
	lit     entity.Shift
	choice  []term // sorted by canonical key, deduplicated
	concat  []term
	star    *term
}

func emptySet() term { return term{kind: termEmptySet} }
func emptyWord() term { return term{kind: termEmptyWord} }

func litTerm(s entity.Shift) term { return term{kind: termLit, lit: s} }

// fromRule converts an entity.ShiftRule into its initial (uncanonicalised)
// term, then canonicalises it.
func fromRule(r entity.ShiftRule) term {
	return canon(fromRuleRaw(r))
}

func fromRuleRaw(r entity.ShiftRule) term {
	switch r.Kind {
	case entity.KindLiteral:
		return litTerm(r.Literal)
	case entity.KindChoice:
		return term{kind: termChoice, choice: []term{fromRuleRaw(*r.Left), fromRuleRaw(*r.Right)}}
	case entity.KindConcat:
		return term{kind: termConcat, concat: []term{fromRuleRaw(*r.Left), fromRuleRaw(*r.Right)}}
	case entity.KindStar:
		inner := fromRuleRaw(*r.Inner)
		return term{kind: termStar, star: &inner}
	default:
		return emptySet()
	}
}

// nullable reports whether t accepts the empty word.
func (t term) nullable() bool {
	switch t.kind {
	case termEmptySet:
		return false
	case termEmptyWord:
		return true
	case termLit:
		return false
	case termChoice:
		for _, c := range t.choice {
			if c.nullable() {
				return true
			}
		}
		return false
	case termConcat:
		for _, c := range t.concat {
			if !c.nullable() {
				return false
			}
		}
		return true
	case termStar:
		return true
	default:
		return false
	}
}

// key returns a canonical string key uniquely identifying t up to
// associativity/commutativity/idempotence of Choice. Used for memoising
// DFA states and deduplicating Choice operands.
func (t term) key() string {
	var b strings.Builder
	t.writeKey(&b)
	return b.String()
}

func (t term) writeKey(b *strings.Builder) {
	switch t.kind {
	case termEmptySet:
		b.WriteString("0")
	case termEmptyWord:
		b.WriteString("e")
	case termLit:
		b.WriteString("L(")
		b.WriteString(t.lit.Code)
		b.WriteString(")")
	case termChoice:
		b.WriteString("C[")
		for i, c := range t.choice {
			if i > 0 {
				b.WriteString("|")
			}
			c.writeKey(b)
		}
		b.WriteString("]")
	case termConcat:
		b.WriteString("K[")
		for i, c := range t.concat {
			if i > 0 {
				b.WriteString(".")
			}
			c.writeKey(b)
		}
		b.WriteString("]")
	case termStar:
		b.WriteString("S(")
		t.star.writeKey(b)
		b.WriteString(")")
	}
}

// alphabet returns the set of distinct literal shifts reachable from t,
// keyed by code, sorted by code for deterministic iteration.
func (t term) alphabet() []entity.Shift {
	seen := make(map[string]entity.Shift)
	t.collectAlphabet(seen)
	out := make([]entity.Shift, 0, len(seen))
	for _, s := range seen {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func (t term) collectAlphabet(seen map[string]entity.Shift) {
	switch t.kind {
	case termLit:
		seen[t.lit.Code] = t.lit
	case termChoice:
		for _, c := range t.choice {
			c.collectAlphabet(seen)
		}
	case termConcat:
		for _, c := range t.concat {
			c.collectAlphabet(seen)
		}
	case termStar:
		t.star.collectAlphabet(seen)
	}
}
