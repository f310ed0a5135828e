package typesystem

// Package-level utilities for tuples and parameter specs (C8):
// unpacking, variadic expansion, and the spec<->function bridge that
// keeps the rest of the algebra oblivious to how a ParamSpec's solved
// value is encoded.

// SpecializeTupleClass produces a tuple-class specialization of cls:
// both the flattened Union view (TypeArguments[0], the "iterate over
// me" shape) and the structural TupleTypeArguments (the "index me"
// shape) are populated from entries.
func SpecializeTupleClass(cls *ClassType, entries []TupleTypeArgument) *ClassType {
	cp := cls.clone()
	cp.TupleTypeArguments = entries

	elemTypes := make([]Type, 0, len(entries))
	for _, e := range entries {
		if e.Type != nil {
			elemTypes = append(elemTypes, e.Type)
		}
	}
	cp.TypeArguments = []Type{MakeUnion(elemTypes...)}
	return cp
}

// tupleEntriesOf returns the structural element list of t if t is a
// tuple-class, for use when unpacking a variadic substitution result.
func tupleEntriesOf(t Type) ([]TupleTypeArgument, bool) {
	c, ok := t.(*ClassType)
	if !ok || len(c.TupleTypeArguments) == 0 {
		return nil, false
	}
	return c.TupleTypeArguments, true
}

// CombineSameSizedTuples fuses a Union of fixed-length tuples of equal
// arity into a single tuple whose i'th element is the union of the
// i'th elements of each member (spec.md §8 tuple-fusion law). Returns
// t unchanged if it is not such a union.
func CombineSameSizedTuples(t Type) Type {
	u, ok := t.(*UnionType)
	if !ok || len(u.Subtypes) == 0 {
		return t
	}

	var arity = -1
	tuples := make([]*ClassType, 0, len(u.Subtypes))
	for _, s := range u.Subtypes {
		c, ok := s.(*ClassType)
		if !ok || len(c.TupleTypeArguments) == 0 {
			return t
		}
		for _, e := range c.TupleTypeArguments {
			if e.IsUnbounded {
				return t
			}
		}
		if arity == -1 {
			arity = len(c.TupleTypeArguments)
		} else if arity != len(c.TupleTypeArguments) {
			return t
		}
		tuples = append(tuples, c)
	}

	fused := make([]TupleTypeArgument, arity)
	for i := 0; i < arity; i++ {
		elems := make([]Type, len(tuples))
		for j, tp := range tuples {
			elems[j] = tp.TupleTypeArguments[i].Type
		}
		fused[i] = TupleTypeArgument{Type: MakeUnion(elems...)}
	}
	return SpecializeTupleClass(tuples[0], fused)
}

// convertParamSpecValueToType is the Type-level bridge for a solved
// ParamSpec value: a concrete parameter list is, structurally, just a
// Function with no return type opinion, flagged so callers can tell it
// apart from an ordinary callable value.
func convertParamSpecValueToType(fn *FunctionType) Type {
	if fn == nil {
		return nil
	}
	fn.Flags |= FuncFlagParamSpecValue
	return fn
}

// convertTypeToParamSpecValue is the inverse bridge: it takes whatever
// Type a solver recorded as a ParamSpec argument and normalizes it to
// the canonical Function-shaped value, collapsing the parser's
// "no parameters" encoding — a single unnamed positional separator —
// down to an empty parameter list (spec.md §4.9). Every site that
// takes a ParamSpec argument as a raw *FunctionType must route through
// this first, or that encoding round-trips back out as a spurious
// parameter instead of "no parameters".
func convertTypeToParamSpecValue(t Type) *FunctionType {
	fn, ok := t.(*FunctionType)
	if !ok || fn == nil {
		return nil
	}
	if len(fn.Params) == 1 {
		p := fn.Params[0]
		if p.Category == ParamPositionalSeparator && p.Name == "" {
			cp := fn.clone()
			cp.Params = nil
			return cp
		}
	}
	return fn
}

// removeParamSpecVariadicsFromSignature strips a trailing
// `*args: P.args, **kwargs: P.kwargs` pair when both reference the
// same ParamSpec — used before signature matching so a ParamSpec
// parameter and its tail marker aren't double-counted.
func removeParamSpecVariadicsFromSignature(fn *FunctionType) *FunctionType {
	n := len(fn.Params)
	if n < 2 {
		return fn
	}
	last, prev := fn.Params[n-1], fn.Params[n-2]
	if prev.Category != ParamVariadicPositional || last.Category != ParamVariadicKeyword {
		return fn
	}
	prevTV, ok1 := prev.Type.(*TypeVarType)
	lastTV, ok2 := last.Type.(*TypeVarType)
	if !ok1 || !ok2 {
		return fn
	}
	if prevTV.Identity() != lastTV.Identity() || !prevTV.IsParamSpec() || !lastTV.IsParamSpec() {
		return fn
	}
	if prevTV.ParamSpecAccess != ParamSpecAccessArgs || lastTV.ParamSpecAccess != ParamSpecAccessKwargs {
		return fn
	}
	cp := fn.clone()
	cp.Params = append([]Parameter(nil), fn.Params[:n-2]...)
	bare := *prevTV
	bare.ParamSpecAccess = ParamSpecAccessNone
	cp.ParamSpec = &bare
	return cp
}
