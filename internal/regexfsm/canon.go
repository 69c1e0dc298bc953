package regexfsm

import "sort"

// canon normalises t by flattening nested Choice/Concat, removing
// emptySet operands from Choice (identity of the zero element),
// removing emptyWord/"empty" Concat operands where they act as an
// identity, and deduplicating Choice operands by canonical key
// (idempotence of choice). It is applied bottom-up so every subterm of
// the result is itself canonical.
func canon(t term) term {
	switch t.kind {
	case termEmptySet, termEmptyWord, termLit:
		return t

	case termChoice:
		var flat []term
		for _, c := range t.choice {
			c = canon(c)
			if c.kind == termEmptySet {
				continue
			}
			if c.kind == termChoice {
				flat = append(flat, c.choice...)
			} else {
				flat = append(flat, c)
			}
		}
		flat = dedupeChoice(flat)
		if len(flat) == 0 {
			return emptySet()
		}
		if len(flat) == 1 {
			return flat[0]
		}
		sort.Slice(flat, func(i, j int) bool { return flat[i].key() < flat[j].key() })
		return term{kind: termChoice, choice: flat}

	case termConcat:
		var flat []term
		for _, c := range t.concat {
			c = canon(c)
			if c.kind == termEmptySet {
				return emptySet()
			}
			if c.kind == termEmptyWord {
				continue
			}
			if c.kind == termConcat {
				flat = append(flat, c.concat...)
			} else {
				flat = append(flat, c)
			}
		}
		if len(flat) == 0 {
			return emptyWord()
		}
		if len(flat) == 1 {
			return flat[0]
		}
		return term{kind: termConcat, concat: flat}

	case termStar:
		inner := canon(*t.star)
		if inner.kind == termEmptySet || inner.kind == termEmptyWord {
			return emptyWord()
		}
		return term{kind: termStar, star: &inner}

	default:
		return t
	}
}

// dedupeChoice removes duplicate operands by canonical key, keeping the
// first occurrence, preserving idempotence of choice (a|a == a).
func dedupeChoice(ts []term) []term {
	seen := make(map[string]bool, len(ts))
	out := make([]term, 0, len(ts))
	for _, t := range ts {
		k := t.key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, t)
	}
	return out
}
