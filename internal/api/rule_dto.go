package api

import "github.com/schedcu/shiftplan/internal/entity"

// IntervalDTO is the wire form of entity.Interval.
type IntervalDTO struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// ShiftDTO is the wire form of entity.Shift. A shift with an empty
// Intervals list is a rest shift.
type ShiftDTO struct {
	Code      string            `json:"code"`
	Intervals []IntervalDTO     `json:"intervals,omitempty"`
	Attrs     map[string]string `json:"attrs,omitempty"`
}

func (s ShiftDTO) toEntity() entity.Shift {
	if len(s.Intervals) == 0 {
		return entity.Rest(s.Code)
	}
	ivs := make([]entity.Interval, len(s.Intervals))
	for i, iv := range s.Intervals {
		ivs[i] = entity.Interval{Start: iv.Start, End: iv.End}
	}
	sh := entity.NewShift(s.Code, ivs)
	if len(s.Attrs) > 0 {
		sh = sh.WithAttrs(s.Attrs)
	}
	return sh
}

// RuleDTO is the wire form of entity.ShiftRule: a tagged union mirroring
// the four-term algebra (literal/choice/concat/star), the only encoding
// the API layer needs since the textual shift-spec grammar is an
// external collaborator outside this module's scope.
type RuleDTO struct {
	Kind    string   `json:"kind"` // "literal" | "choice" | "concat" | "star"
	Literal *ShiftDTO `json:"literal,omitempty"`
	Left    *RuleDTO `json:"left,omitempty"`
	Right   *RuleDTO `json:"right,omitempty"`
	Inner   *RuleDTO `json:"inner,omitempty"`
}

// toEntity converts the DTO tree into an entity.ShiftRule, or an error
// if the tree is malformed (missing operand for its kind).
func (r RuleDTO) toEntity() (entity.ShiftRule, error) {
	switch r.Kind {
	case "literal":
		if r.Literal == nil {
			return entity.ShiftRule{}, entity.NewError(entity.KindParseError, "literal rule missing shift")
		}
		return entity.Lit(r.Literal.toEntity()), nil
	case "choice":
		if r.Left == nil || r.Right == nil {
			return entity.ShiftRule{}, entity.NewError(entity.KindParseError, "choice rule missing an operand")
		}
		left, err := r.Left.toEntity()
		if err != nil {
			return entity.ShiftRule{}, err
		}
		right, err := r.Right.toEntity()
		if err != nil {
			return entity.ShiftRule{}, err
		}
		return entity.Choice(left, right), nil
	case "concat":
		if r.Left == nil || r.Right == nil {
			return entity.ShiftRule{}, entity.NewError(entity.KindParseError, "concat rule missing an operand")
		}
		left, err := r.Left.toEntity()
		if err != nil {
			return entity.ShiftRule{}, err
		}
		right, err := r.Right.toEntity()
		if err != nil {
			return entity.ShiftRule{}, err
		}
		return entity.Concat(left, right), nil
	case "star":
		if r.Inner == nil {
			return entity.ShiftRule{}, entity.NewError(entity.KindParseError, "star rule missing inner term")
		}
		inner, err := r.Inner.toEntity()
		if err != nil {
			return entity.ShiftRule{}, err
		}
		return entity.Star(inner), nil
	default:
		return entity.ShiftRule{}, entity.NewError(entity.KindParseError, "unknown rule kind %q", r.Kind)
	}
}
