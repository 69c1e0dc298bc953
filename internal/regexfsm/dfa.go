package regexfsm

import (
	"fmt"
	"sort"
	"strings"

	"github.com/schedcu/shiftplan/internal/entity"
)

// Transition is one labelled edge of the compiled automaton.
type Transition struct {
	From   int
	Symbol string
	To     int
}

// DFA is a deterministic automaton over an alphabet of atomic Shifts,
// compiled from a ShiftRule by iterating Brzozowski derivatives to a
// fixed point. States are an arena indexed by integer; transitions are
// stored as (from, symbol, to) triples sorted by (from, symbol), never
// as a pointer graph.
type DFA struct {
	Alphabet    []entity.Shift
	Accepting   []bool       // Accepting[q] iff state q's term is nullable
	Transitions []Transition // sorted by (From, Symbol)
	fanout      []int        // fanout[q] = outgoing transition count

	symbolByCode map[string]entity.Shift
	terms        []term // term represented by each state
}

// Initial is the distinguished initial state index: the compiled rule
// itself.
const Initial = 0

// Compile builds a DFA from r. The alphabet is the set of literals
// reachable from r. The table is finite because Brzozowski derivatives
// modulo associativity/commutativity/idempotence of choice form a
// finite set for any regular expression.
func Compile(r entity.ShiftRule) *DFA {
	root := fromRule(r)
	alphabet := root.alphabet()

	symbolByCode := make(map[string]entity.Shift, len(alphabet))
	for _, s := range alphabet {
		symbolByCode[s.Code] = s
	}

	d := &DFA{
		Alphabet:     alphabet,
		symbolByCode: symbolByCode,
	}

	index := map[string]int{}
	index[root.key()] = 0
	d.terms = append(d.terms, root)
	d.Accepting = append(d.Accepting, root.nullable())

	// BFS over the (initially unknown) set of reachable derivative
	// terms, assigning each a fresh state index the first time it is
	// seen.
	for frontier := 0; frontier < len(d.terms); frontier++ {
		cur := d.terms[frontier]
		for _, sym := range alphabet {
			next := derivative(cur, sym.Code)
			k := next.key()
			to, ok := index[k]
			if !ok {
				to = len(d.terms)
				index[k] = to
				d.terms = append(d.terms, next)
				d.Accepting = append(d.Accepting, next.nullable())
			}
			d.Transitions = append(d.Transitions, Transition{From: frontier, Symbol: sym.Code, To: to})
		}
	}

	sort.Slice(d.Transitions, func(i, j int) bool {
		if d.Transitions[i].From != d.Transitions[j].From {
			return d.Transitions[i].From < d.Transitions[j].From
		}
		return d.Transitions[i].Symbol < d.Transitions[j].Symbol
	})

	d.fanout = make([]int, len(d.terms))
	for _, tr := range d.Transitions {
		d.fanout[tr.From]++
	}

	return d
}

// NumStates returns the number of states in the arena.
func (d *DFA) NumStates() int { return len(d.terms) }

// IsAccepting reports whether state q is an accepting (nullable) state.
func (d *DFA) IsAccepting(q int) bool { return d.Accepting[q] }

// Fanout returns the outgoing transition count of state q.
func (d *DFA) Fanout(q int) int { return d.fanout[q] }

// Step follows the transition from q labelled by the shift coded
// symbol. Returns (-1, false) if no such transition exists (q has no
// outgoing edge for that symbol, which cannot happen for any symbol in
// d.Alphabet since every state has exactly one outgoing edge per
// symbol by construction).
func (d *DFA) Step(q int, symbol string) (int, bool) {
	lo, hi := 0, len(d.Transitions)
	for lo < hi {
		mid := (lo + hi) / 2
		tr := d.Transitions[mid]
		if tr.From < q || (tr.From == q && tr.Symbol < symbol) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(d.Transitions) && d.Transitions[lo].From == q && d.Transitions[lo].Symbol == symbol {
		return d.Transitions[lo].To, true
	}
	return -1, false
}

// OutgoingFrom returns the transitions leaving state q, in symbol order.
func (d *DFA) OutgoingFrom(q int) []Transition {
	var out []Transition
	for _, tr := range d.Transitions {
		if tr.From == q {
			out = append(out, tr)
		} else if tr.From > q {
			break // sorted by From, so we've passed q's block
		}
	}
	return out
}

// ShiftByCode resolves an alphabet symbol code back to its Shift.
func (d *DFA) ShiftByCode(code string) (entity.Shift, bool) {
	s, ok := d.symbolByCode[code]
	return s, ok
}

// Dump renders the state/transition table as plain text: one line per
// state (index, accepting flag, fan-out), then one line per transition.
// This is the artifact an external diagram emitter consumes; rendering
// the actual diagram is out of scope here.
func (d *DFA) Dump() string {
	var b strings.Builder
	fmt.Fprintf(&b, "states=%d alphabet=%d\n", len(d.terms), len(d.Alphabet))
	for q := range d.terms {
		fmt.Fprintf(&b, "state %d accepting=%t fanout=%d\n", q, d.Accepting[q], d.fanout[q])
	}
	for _, tr := range d.Transitions {
		fmt.Fprintf(&b, "trans %d -%s-> %d\n", tr.From, tr.Symbol, tr.To)
	}
	return b.String()
}
