package regexfsm

// derivative computes the Brzozowski derivative of t with respect to
// the literal shift coded `symbol`, canonicalising the result so it is
// ready to be looked up or inserted into the state table.
func derivative(t term, symbol string) term {
	return canon(derivativeRaw(t, symbol))
}

func derivativeRaw(t term, symbol string) term {
	switch t.kind {
	case termEmptySet, termEmptyWord:
		return emptySet()

	case termLit:
		if t.lit.Code == symbol {
			return emptyWord()
		}
		return emptySet()

	case termChoice:
		parts := make([]term, len(t.choice))
		for i, c := range t.choice {
			parts[i] = derivativeRaw(c, symbol)
		}
		return term{kind: termChoice, choice: parts}

	case termConcat:
		return derivativeConcat(t.concat, symbol)

	case termStar:
		inner := derivativeRaw(*t.star, symbol)
		return term{kind: termConcat, concat: []term{inner, *t.star}}

	default:
		return emptySet()
	}
}

// derivativeConcat implements D_a(x1 . x2 . ... . xn) =
//
//	(D_a(x1) . x2 . ... . xn) | (D_a(x2 . ... . xn), if x1 nullable)
func derivativeConcat(xs []term, symbol string) term {
	if len(xs) == 0 {
		return emptySet()
	}
	head, tail := xs[0], xs[1:]

	headDeriv := derivativeRaw(head, symbol)
	var leftBranch term
	if len(tail) == 0 {
		leftBranch = headDeriv
	} else {
		leftBranch = term{kind: termConcat, concat: append([]term{headDeriv}, tail...)}
	}

	if !head.nullable() {
		return leftBranch
	}

	var rightBranch term
	if len(tail) == 0 {
		rightBranch = emptySet()
	} else {
		rightBranch = derivativeConcat(tail, symbol)
	}

	return term{kind: termChoice, choice: []term{leftBranch, rightBranch}}
}
