package typesystem

// NewSubstitutionPolicy builds the TransformerPolicy for the single
// most common transformer use: "replace each of these declared type
// parameters with this concrete argument", the operation C5 (MRO
// partial specialization) and C6 (member lookup against a subclass's
// type arguments) both reduce to (spec.md §4.3: "C5 and C6 call into
// C4 via C3").
func NewSubstitutionPolicy(params []*TypeVarType, args []Type) TransformerPolicy {
	plain := make(map[string]Type, len(params))
	paramSpecs := make(map[string]*FunctionType, len(params))
	tuples := make(map[string][]TupleTypeArgument, len(params))

	for i, p := range params {
		if i >= len(args) || p == nil || args[i] == nil {
			continue
		}
		switch {
		case p.IsParamSpec():
			if fn := convertTypeToParamSpecValue(args[i]); fn != nil {
				paramSpecs[p.Identity()] = fn
			}
		case p.IsVariadic():
			if entries, ok := tupleEntriesOf(args[i]); ok {
				tuples[p.Identity()] = entries
			} else {
				tuples[p.Identity()] = []TupleTypeArgument{{Type: args[i], IsUnbounded: true}}
			}
		default:
			plain[p.Identity()] = args[i]
		}
	}

	return TransformerPolicy{
		TransformTypeVar: func(tv *TypeVarType, depth int) Type {
			if t, ok := plain[tv.Identity()]; ok {
				return t
			}
			return nil
		},
		TransformParamSpec: func(tv *TypeVarType, depth int) *FunctionType {
			if fn, ok := paramSpecs[tv.Identity()]; ok {
				return fn
			}
			return nil
		},
		TransformTupleTypeVar: func(tv *TypeVarType, depth int) []TupleTypeArgument {
			if entries, ok := tuples[tv.Identity()]; ok {
				return entries
			}
			return nil
		},
	}
}

// SpecializeWithTypeArgs replaces every occurrence of params[i] inside
// t with args[i], shallowly where t itself is the declaration site
// (e.g. a base-class reference) and recursively through t's structure
// otherwise.
func SpecializeWithTypeArgs(t Type, params []*TypeVarType, args []Type) Type {
	if len(params) == 0 || t == nil {
		return t
	}
	tr := NewTransformer(NewSubstitutionPolicy(params, args), RequiresSpecializationOptions{})
	return tr.Apply(t, 0)
}

// ApplySolvedTypeVars is the top-level entry point a solver reaches
// for once it has populated a TypeVarContext: it applies the context's
// current signature to t, or (for a Function with more than one
// recorded signature context) expands t into an OverloadedFunction
// with one member per alternative solution.
func ApplySolvedTypeVars(t Type, ctx *TypeVarContext) Type {
	policyFor := func(sc *SignatureContext) TransformerPolicy {
		return TransformerPolicy{
			TransformTypeVar: func(tv *TypeVarType, depth int) Type {
				if !ctx.HasSolveForScope(tv.ScopeID) {
					return nil
				}
				entry, ok := sc.plain[tv.Identity()]
				if !ok {
					return nil
				}
				if entry.narrowBound != nil {
					return entry.narrowBound
				}
				return entry.wideBound
			},
			TransformParamSpec: func(tv *TypeVarType, depth int) *FunctionType {
				if !ctx.HasSolveForScope(tv.ScopeID) {
					return nil
				}
				fn, ok := sc.paramSpecs[tv.Identity()]
				if !ok {
					return nil
				}
				return fn
			},
			TransformTupleTypeVar: func(tv *TypeVarType, depth int) []TupleTypeArgument {
				if !ctx.HasSolveForScope(tv.ScopeID) {
					return nil
				}
				entries, ok := sc.tuples[tv.Identity()]
				if !ok {
					return nil
				}
				return entries
			},
		}
	}

	fn, isFunc := t.(*FunctionType)
	if !isFunc {
		tr := NewTransformer(policyFor(ctx.current()), RequiresSpecializationOptions{})
		return tr.Apply(t, 0)
	}

	return doForEachSignatureContext(ctx, fn, func(sc *SignatureContext) *FunctionType {
		tr := NewTransformer(policyFor(sc), RequiresSpecializationOptions{})
		result := tr.Apply(fn, 0)
		if f, ok := result.(*FunctionType); ok {
			return f
		}
		return fn
	})
}
