package typesystem

import "github.com/funvibe/typelab/internal/config"

// TransformerPolicy supplies the four decision points spec.md §4.3-4.4
// names as the transformer's only pluggable behavior. Every concrete
// transformer (substitution, specialization-to-Unknown, alias
// expansion, ...) is just a different TransformerPolicy; Apply itself
// never changes.
//
// A nil hook means "no opinion": the corresponding TypeVar, ParamSpec
// projection or union subtype passes through unchanged.
type TransformerPolicy struct {
	// TransformTypeVar returns the replacement for a plain type
	// variable, or nil to leave it as-is. Variadic variables go to
	// TransformTupleTypeVar instead.
	TransformTypeVar func(tv *TypeVarType, depth int) Type

	// TransformParamSpec returns the Function-shaped solved value for a
	// parameter-spec variable, or nil to leave it unsolved.
	TransformParamSpec func(tv *TypeVarType, depth int) *FunctionType

	// TransformTupleTypeVar returns the solved element sequence for a
	// variadic (TypeVarTuple) variable, or nil to leave it unsolved.
	TransformTupleTypeVar func(tv *TypeVarType, depth int) []TupleTypeArgument

	// TransformUnionSubtype post-processes each (pre, post) pair as a
	// union's subtype is rewritten; returning nil drops that subtype
	// from the result. A nil hook keeps post unchanged.
	TransformUnionSubtype func(pre, post Type, depth int) Type
}

// Transformer is the recursive walker (C4), the central engine the
// rest of the package is built on: MRO partial-specialization (C5) and
// member lookup (C6) both reduce to "build a policy from declared type
// parameters and their arguments (NewSubstitutionPolicy), then Apply
// it"; ApplySolvedTypeVars builds its policy from a TypeVarContext.
type Transformer struct {
	policy TransformerPolicy

	// inProgress guards against infinite recursion through a TypeVar
	// whose own solved value (directly or through a chain) mentions
	// itself — structurally possible with recursive generic aliases.
	inProgress map[string]bool

	// functionStack guards the analogous cycle for Function values
	// during ParamSpec substitution chains. Only a Function whose
	// trailing ParamSpec is being substituted is pushed; Overloaded
	// values are not tracked on it.
	functionStack []*FunctionType

	specOpts RequiresSpecializationOptions
}

// NewTransformer builds a Transformer around the given policy.
func NewTransformer(policy TransformerPolicy, specOpts RequiresSpecializationOptions) *Transformer {
	return &Transformer{
		policy:     policy,
		inProgress: make(map[string]bool),
		specOpts:   specOpts,
	}
}

// Apply is the single recursive entry point. It returns t unchanged
// whenever the depth bound is exceeded or requiresSpecialization(t)
// is false — the shortcut spec.md §4.5 calls "the single most
// important optimization": most real-world types contain no type
// variables, and the overwhelming majority of Apply calls should do
// no work at all.
func (tr *Transformer) Apply(t Type, depth int) Type {
	if t == nil {
		return nil
	}
	if depth > config.RecursionDepthLimit {
		return t
	}
	if !requiresSpecialization(t, tr.specOpts, depth) {
		return t
	}

	if result, handled := tr.applyAliasArgs(t, depth); handled {
		return result
	}

	switch tt := t.(type) {
	case *UnboundType, *UnknownType, *AnyType, *NoneType, *NeverType, *ModuleType:
		return t
	case *TypeVarType:
		return tr.applyTypeVar(tt, depth)
	case *UnionType:
		return tr.applyUnion(tt, depth)
	case *ClassType:
		return tr.applyClass(tt, depth)
	case *FunctionType:
		return tr.applyFunction(tt, depth)
	case *OverloadedFunctionType:
		return tr.applyOverloaded(tt, depth)
	default:
		return t
	}
}

// applyAliasArgs implements the "generic type alias" bullet of
// spec.md §4.4: when t carries alias metadata with its own type
// arguments, those arguments are transformed and, if any changed, a
// clone carrying the updated argument list (but the same alias name
// and scope) is returned immediately — the alias's lazily-computed
// expansion is left to whoever reads typeAliasInfo later, so this step
// does not also walk t's ordinary category-specific structure.
func (tr *Transformer) applyAliasArgs(t Type, depth int) (Type, bool) {
	ai := AliasInfo(t)
	if ai == nil || ai.TypeArguments == nil {
		return nil, false
	}
	changed := false
	newArgs := make([]Type, len(ai.TypeArguments))
	for i, a := range ai.TypeArguments {
		na := tr.Apply(a, depth+1)
		newArgs[i] = na
		if !IsTypeSame(na, a, SameTypeOptions{}) {
			changed = true
		}
	}
	if !changed {
		return nil, false
	}
	newAlias := &TypeAliasInfo{
		Name:           ai.Name,
		FullyQualified: ai.FullyQualified,
		TypeVarScopeID: ai.TypeVarScopeID,
		TypeParameters: ai.TypeParameters,
		TypeArguments:  newArgs,
	}
	switch cp := t.(type) {
	case *ClassType:
		c := cp.clone()
		c.base().aliasInfo = newAlias
		return c, true
	case *FunctionType:
		f := cp.clone()
		f.base().aliasInfo = newAlias
		return f, true
	default:
		// No other category carries an independently-cloneable alias
		// argument list in this algebra; the rewritten arguments are
		// dropped and the ordinary category-specific walk runs instead.
		return nil, false
	}
}

func (tr *Transformer) applyTypeVar(tv *TypeVarType, depth int) Type {
	if tv.RecursiveTypeAliasName != "" {
		// The placeholder itself never resolves here, and its alias
		// arguments are left as they are too: applyAliasArgs keeps
		// rewritten arguments only on Class and Function values.
		return tv
	}

	if tv.IsVariadic() {
		return tr.applyVariadicTypeVar(tv, depth)
	}

	if tv.IsParamSpec() {
		if tv.ParamSpecAccess != ParamSpecAccessNone {
			// A bare `P.args`/`P.kwargs` projection outside of a tail
			// pair isn't independently substitutable; leave it for the
			// function-level splice that handles the paired form.
			return tv
		}
		if tr.policy.TransformParamSpec == nil {
			return tv
		}
		fn := tr.policy.TransformParamSpec(tv, depth)
		if fn == nil {
			return tv
		}
		return convertParamSpecValueToType(fn)
	}

	if tr.inProgress[tv.Identity()] {
		return tv
	}
	if tr.policy.TransformTypeVar == nil {
		return tv
	}
	replacement := tr.policy.TransformTypeVar(tv, depth)
	if replacement == nil {
		return tv
	}

	tr.inProgress[tv.Identity()] = true
	result := tr.Apply(replacement, depth+1)
	delete(tr.inProgress, tv.Identity())
	return result
}

// applyVariadicTypeVar resolves a TypeVarTuple. When the variable is
// positioned directly inside a union (spec.md §4.4's "variadic type
// variable positioned inside a union" case), its solved tuple is
// unpacked into that union's members rather than left as a tuple
// value — MakeUnion's flattening in the caller (applyUnion) is what
// actually splices it back in, since a *ClassType tuple value is not a
// *UnionType and would otherwise survive as one opaque member.
func (tr *Transformer) applyVariadicTypeVar(tv *TypeVarType, depth int) Type {
	if tr.policy.TransformTupleTypeVar == nil {
		return tv
	}
	if tr.inProgress[tv.Identity()] {
		return tv
	}
	entries := tr.policy.TransformTupleTypeVar(tv, depth)
	if entries == nil {
		return tv
	}

	tr.inProgress[tv.Identity()] = true
	resolved := make([]TupleTypeArgument, len(entries))
	for i, e := range entries {
		resolved[i] = TupleTypeArgument{Type: tr.Apply(e.Type, depth+1), IsUnbounded: e.IsUnbounded}
	}
	delete(tr.inProgress, tv.Identity())

	if tv.IsVariadicInUnion {
		types := make([]Type, len(resolved))
		for i, e := range resolved {
			types[i] = e.Type
		}
		return MakeUnion(types...)
	}

	elemTypes := make([]Type, len(resolved))
	for i, e := range resolved {
		elemTypes[i] = e.Type
	}
	return &tupleElementsType{entries: resolved, union: MakeUnion(elemTypes...)}
}

// tupleElementsType is an internal-only carrier used solely to pass a
// solved TypeVarTuple's element sequence up to applyClass, which
// splices it into the enclosing tuple-class's TupleTypeArguments. It
// never escapes the transformer: Apply's TypeVar case is the only
// producer, and applyClass, applyUnion, applyFunction and
// transformClassArgument are the only consumers.
type tupleElementsType struct {
	typeBase
	entries []TupleTypeArgument
	union   Type
}

func (t *tupleElementsType) Category() Category { return CategoryUnion }
func (t *tupleElementsType) base() *typeBase    { return &t.typeBase }
func (t *tupleElementsType) String() string {
	if t.union != nil {
		return t.union.String()
	}
	return "(...)"
}

func (tr *Transformer) applyUnion(u *UnionType, depth int) Type {
	subResults := make([]Type, 0, len(u.Subtypes))
	for _, sub := range u.Subtypes {
		post := tr.Apply(sub, depth+1)
		if te, ok := post.(*tupleElementsType); ok {
			post = te.union
		}
		if tr.policy.TransformUnionSubtype != nil {
			post = tr.policy.TransformUnionSubtype(sub, post, depth)
		}
		if post == nil {
			continue
		}
		subResults = append(subResults, post)
	}
	result := MakeUnion(subResults...)
	if _, isNever := result.(*NeverType); isNever && len(u.Subtypes) > 0 {
		return Unknown()
	}
	return result
}

func (tr *Transformer) applyClass(c *ClassType, depth int) Type {
	if c.IsUnspecialized() {
		// Nothing applied yet to walk; the transformer only rewrites
		// already-specialized arguments. An unspecialized template is
		// returned as-is: its declared type parameters are not passed
		// to the policy.
		return c
	}

	changed := false
	var newArgs []Type
	if c.TypeArguments != nil {
		newArgs = make([]Type, 0, len(c.TypeArguments))
		for i, a := range c.TypeArguments {
			var param *TypeVarType
			if i < len(c.Details.TypeParameters) {
				param = c.Details.TypeParameters[i]
			}
			na := tr.transformClassArgument(param, a, depth)
			if !IsTypeSame(na, a, SameTypeOptions{}) {
				changed = true
			}
			newArgs = append(newArgs, na)
		}
	}

	var newTuple []TupleTypeArgument
	if len(c.TupleTypeArguments) > 0 {
		newTuple = make([]TupleTypeArgument, 0, len(c.TupleTypeArguments))
		for _, e := range c.TupleTypeArguments {
			result := tr.Apply(e.Type, depth+1)
			if te, ok := result.(*tupleElementsType); ok {
				// A variadic tuple-var entry splices into several
				// entries in place of the one it replaced.
				newTuple = append(newTuple, te.entries...)
				changed = true
				continue
			}
			if !IsTypeSame(result, e.Type, SameTypeOptions{}) {
				changed = true
			}
			newTuple = append(newTuple, TupleTypeArgument{Type: result, IsUnbounded: e.IsUnbounded})
		}
	}

	if !changed {
		return c
	}
	cp := c.clone()
	if c.TypeArguments != nil {
		cp.TypeArguments = newArgs
	}
	if newTuple != nil {
		cp.TupleTypeArguments = newTuple
		elemTypes := make([]Type, 0, len(newTuple))
		for _, e := range newTuple {
			if e.Type != nil {
				elemTypes = append(elemTypes, e.Type)
			}
		}
		cp.TypeArguments = []Type{MakeUnion(elemTypes...)}
	}
	return cp
}

func (tr *Transformer) transformClassArgument(param *TypeVarType, arg Type, depth int) Type {
	if param != nil && param.IsParamSpec() {
		if tv, ok := arg.(*TypeVarType); ok && tr.policy.TransformParamSpec != nil {
			if fn := tr.policy.TransformParamSpec(tv, depth); fn != nil {
				return convertParamSpecValueToType(fn)
			}
		}
		return arg
	}
	result := tr.Apply(arg, depth+1)
	if te, ok := result.(*tupleElementsType); ok {
		return te.union
	}
	return result
}

func (tr *Transformer) applyFunction(fn *FunctionType, depth int) Type {
	normalized := removeParamSpecVariadicsFromSignature(fn)

	changed := normalized != fn
	params := append([]Parameter(nil), normalized.Params...)
	paramSpec := normalized.ParamSpec

	if paramSpec != nil && tr.policy.TransformParamSpec != nil {
		if !tr.inFunctionStack(normalized) {
			tr.functionStack = append(tr.functionStack, normalized)
			solved := tr.policy.TransformParamSpec(paramSpec, depth)
			tr.functionStack = tr.functionStack[:len(tr.functionStack)-1]
			if solved != nil {
				params = append(params, solved.Params...)
				paramSpec = solved.ParamSpec
				changed = true
			}
		}
	}

	var newParams []Parameter
	swallowNextPositionalSeparator := false
	for i, p := range params {
		if swallowNextPositionalSeparator {
			swallowNextPositionalSeparator = false
			if p.Category == ParamPositionalSeparator {
				// The *args just spliced in already marks the boundary
				// between positional and keyword-only parameters, so a
				// `/` that originally followed it is now redundant
				// (spec.md §4.4: "swallow the trailing position-only
				// separator when an unbounded tail was emitted").
				changed = true
				continue
			}
		}

		newType := tr.Apply(p.Type, depth+1)
		if te, ok := newType.(*tupleElementsType); ok && p.Category == ParamVariadicPositional {
			endedUnbounded := false
			for _, e := range te.entries {
				if e.IsUnbounded {
					newParams = append(newParams, Parameter{Category: ParamVariadicPositional, Name: p.Name, Type: e.Type})
					endedUnbounded = true
				} else {
					newParams = append(newParams, Parameter{Category: ParamPositional, Type: e.Type})
					endedUnbounded = false
				}
			}
			changed = true

			if endedUnbounded {
				swallowNextPositionalSeparator = true
			} else if i+1 < len(params) && params[i+1].Category != ParamKeywordSeparator {
				// The single *args parameter being replaced was the only
				// thing making whatever followed it keyword-only; once
				// it's expanded into plain positional parameters, that
				// boundary needs to be spelled out explicitly (spec.md
				// §4.4: "insert a keyword-only separator otherwise").
				newParams = append(newParams, Parameter{Category: ParamKeywordSeparator})
			}
			continue
		}
		if te, ok := newType.(*tupleElementsType); ok {
			newType = te.union
		}
		if !IsTypeSame(newType, p.Type, SameTypeOptions{}) {
			changed = true
		}
		newDefault := p.DefaultType
		if p.HasDefault {
			newDefault = tr.Apply(p.DefaultType, depth+1)
			if !IsTypeSame(newDefault, p.DefaultType, SameTypeOptions{}) {
				changed = true
			}
		}
		newParams = append(newParams, Parameter{
			Category:    p.Category,
			Name:        p.Name,
			Type:        newType,
			HasDefault:  p.HasDefault,
			DefaultType: newDefault,
		})
	}

	newReturn := tr.Apply(fn.GetEffectiveReturnType(), depth+1)
	if !IsTypeSame(newReturn, fn.GetEffectiveReturnType(), SameTypeOptions{}) {
		changed = true
	}

	if !changed {
		return fn
	}

	cp := fn.clone()
	cp.Params = newParams
	cp.ParamSpec = paramSpec
	cp.DeclaredReturnType = newReturn
	cp.InferredReturnType = nil
	cp.Specialized = nil
	return cp
}

func (tr *Transformer) inFunctionStack(fn *FunctionType) bool {
	for _, f := range tr.functionStack {
		if f == fn {
			return true
		}
	}
	return false
}

// applyOverloaded pushes each overload through applyFunction
// independently; if none changed, the original value is returned so
// identity-based caches upstream stay valid.
func (tr *Transformer) applyOverloaded(o *OverloadedFunctionType, depth int) Type {
	changed := false
	newOverloads := make([]*FunctionType, len(o.Overloads))
	for i, ov := range o.Overloads {
		result := tr.Apply(ov, depth+1)
		fn, ok := result.(*FunctionType)
		if !ok {
			fn = ov
		} else if fn != ov {
			changed = true
		}
		newOverloads[i] = fn
	}
	if !changed {
		return o
	}
	return NewOverloadedFunction(newOverloads)
}

// doForEachSignatureContext runs fn once per alternative recorded in
// ctx, returning a single Function when there was exactly one
// signature context and an OverloadedFunction (one member per
// alternative) when there was more than one — the top-level expansion
// spec.md §4.4 describes for applying a multi-overload solution to a
// single declared signature.
func doForEachSignatureContext(ctx *TypeVarContext, fn *FunctionType, apply func(sc *SignatureContext) *FunctionType) Type {
	contexts := ctx.GetSignatureContexts()
	if len(contexts) <= 1 {
		if len(contexts) == 1 {
			return apply(contexts[0])
		}
		return fn
	}
	results := make([]*FunctionType, 0, len(contexts))
	for _, sc := range contexts {
		results = append(results, apply(sc))
	}
	return NewOverloadedFunction(results)
}
