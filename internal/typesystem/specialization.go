package typesystem

// RequiresSpecializationOptions tunes requiresSpecialization (C4.5).
type RequiresSpecializationOptions struct {
	// IgnorePseudoGeneric treats a pseudo-generic class (one whose type
	// parameters are synthesized rather than user-declared, e.g. an
	// untyped function's inferred callable shape) as already concrete.
	IgnorePseudoGeneric bool

	// IgnoreSelf treats a bare `Self` type variable as already concrete,
	// since binding it is the caller's job, not the transformer's.
	IgnoreSelf bool
}

// requiresSpecialization is the transformer's single most important
// optimization (spec.md §4.5): most types in a real program contain no
// type variables at all, and walking them is pure overhead. A false
// result lets Apply return t unchanged without recursing into it.
func requiresSpecialization(t Type, opts RequiresSpecializationOptions, depth int) bool {
	if t == nil {
		return false
	}
	if depth > 0 && depth >= 2*64 {
		// A pathological depth means something upstream already failed
		// to converge; stop pretending more work will help.
		return false
	}

	switch tt := t.(type) {
	case *UnboundType, *UnknownType, *AnyType, *NoneType, *NeverType, *ModuleType:
		return false

	case *TypeVarType:
		if opts.IgnoreSelf && tt.Name == "Self" {
			return false
		}
		return true

	case *UnionType:
		for _, s := range tt.Subtypes {
			if requiresSpecialization(s, opts, depth+1) {
				return true
			}
		}
		return false

	case *ClassType:
		return classRequiresSpecialization(tt, opts, depth)

	case *FunctionType:
		return functionRequiresSpecialization(tt, opts, depth)

	case *OverloadedFunctionType:
		for _, o := range tt.Overloads {
			if functionRequiresSpecialization(o, opts, depth) {
				return true
			}
		}
		return false

	default:
		return false
	}
}

func classRequiresSpecialization(c *ClassType, opts RequiresSpecializationOptions, depth int) bool {
	if c.Details.IsPseudoGeneric {
		return !opts.IgnorePseudoGeneric
	}
	if c.IsUnspecialized() {
		// A reference to a generic template with no arguments applied is
		// itself something a caller may want specialized (e.g. `list`
		// used where `list[int]` is expected triggers inference).
		return true
	}
	for _, a := range c.TypeArguments {
		if requiresSpecialization(a, opts, depth+1) {
			return true
		}
	}
	for _, e := range c.TupleTypeArguments {
		if requiresSpecialization(e.Type, opts, depth+1) {
			return true
		}
	}
	return false
}

func functionRequiresSpecialization(fn *FunctionType, opts RequiresSpecializationOptions, depth int) bool {
	for _, p := range fn.Params {
		if requiresSpecialization(p.Type, opts, depth+1) {
			return true
		}
		if p.HasDefault && requiresSpecialization(p.DefaultType, opts, depth+1) {
			return true
		}
	}
	if requiresSpecialization(fn.DeclaredReturnType, opts, depth+1) {
		return true
	}
	if fn.DeclaredReturnType == nil && requiresSpecialization(fn.InferredReturnType, opts, depth+1) {
		return true
	}
	if fn.ParamSpec != nil {
		return true
	}
	return false
}
