package typesystem

import "github.com/google/uuid"

// typeVarEntry is what a signature context stores for a plain
// (non-paramspec, non-variadic) type variable: both a narrow and a
// wide bound, since the solver narrows as it sees more call sites and
// widens only when retaining literal types requires it (spec.md §3).
type typeVarEntry struct {
	narrowBound    Type
	wideBound      Type
	retainLiterals bool
}

// SignatureContext is one alternative solution: a map from type
// variable identity to its solved value, plus param-spec and variadic
// tuple maps for the two other TypeVar kinds. A TypeVarContext stacks
// these to model "one alternative per overload".
type SignatureContext struct {
	ID string

	plain      map[string]*typeVarEntry
	paramSpecs map[string]*FunctionType
	tuples     map[string][]TupleTypeArgument
}

func newSignatureContext() *SignatureContext {
	return &SignatureContext{
		ID:         uuid.NewString(),
		plain:      make(map[string]*typeVarEntry),
		paramSpecs: make(map[string]*FunctionType),
		tuples:     make(map[string][]TupleTypeArgument),
	}
}

func (sc *SignatureContext) isEmpty() bool {
	return len(sc.plain) == 0 && len(sc.paramSpecs) == 0 && len(sc.tuples) == 0
}

// TypeVarContext (C3) is the only mutable state the algebra touches.
// It is created at the start of a call/assignment decision, mutated by
// the solver, applied by the transformer (C4), and then discarded.
type TypeVarContext struct {
	signatures []*SignatureContext

	solveForScopes map[string]bool
	wildcard       bool // "solve all scopes" — see spec.md §3

	locked bool
}

// NewTypeVarContext creates a context that solves only for the given
// type-variable scopes.
func NewTypeVarContext(solveForScopes ...string) *TypeVarContext {
	scopes := make(map[string]bool, len(solveForScopes))
	for _, s := range solveForScopes {
		scopes[s] = true
	}
	return &TypeVarContext{
		signatures:     []*SignatureContext{newSignatureContext()},
		solveForScopes: scopes,
	}
}

// NewWildcardTypeVarContext creates a context whose solve-for scope is
// "all scopes", for a caller that specializes a class or function
// whose scope id it does not track separately.
func NewWildcardTypeVarContext() *TypeVarContext {
	ctx := NewTypeVarContext()
	ctx.wildcard = true
	return ctx
}

func (c *TypeVarContext) current() *SignatureContext { return c.signatures[0] }

// HasSolveForScope reports whether scopeID is one this context is
// trying to solve (or the context is a wildcard, solving all scopes).
func (c *TypeVarContext) HasSolveForScope(scopeID string) bool {
	return c.wildcard || c.solveForScopes[scopeID]
}

// IsLocked reports whether further mutation is disallowed. A locked
// context is still readable; it is set once a solution has been
// accepted and should not silently drift.
func (c *TypeVarContext) IsLocked() bool { return c.locked }

// Lock marks the context as immutable.
func (c *TypeVarContext) Lock() { c.locked = true }

// IsEmpty reports whether every signature context holds no solved
// variables at all.
func (c *TypeVarContext) IsEmpty() bool {
	for _, sc := range c.signatures {
		if !sc.isEmpty() {
			return false
		}
	}
	return true
}

// SetTypeVarType records a solved value for a plain type variable in
// the current (first) signature context. narrow/wide select which
// bound(s) to update; when both are false, both bounds are set to t.
func (c *TypeVarContext) SetTypeVarType(tv *TypeVarType, t Type, narrow, wide bool) {
	if c.locked {
		return
	}
	sc := c.current()
	entry, ok := sc.plain[tv.Identity()]
	if !ok {
		entry = &typeVarEntry{}
		sc.plain[tv.Identity()] = entry
	}
	switch {
	case narrow && !wide:
		entry.narrowBound = t
	case wide && !narrow:
		entry.wideBound = t
	default:
		entry.narrowBound = t
		entry.wideBound = t
	}
}

// SetRetainLiterals marks a solved variable as needing to keep its
// literal-typed form rather than widen to the declared class.
func (c *TypeVarContext) SetRetainLiterals(tv *TypeVarType, retain bool) {
	sc := c.current()
	entry, ok := sc.plain[tv.Identity()]
	if !ok {
		entry = &typeVarEntry{}
		sc.plain[tv.Identity()] = entry
	}
	entry.retainLiterals = retain
}

// GetTypeVarType returns the solved value for tv: the narrow bound if
// present, else (unless narrowOnly) the wide bound.
func (c *TypeVarContext) GetTypeVarType(tv *TypeVarType, narrowOnly bool) (Type, bool) {
	entry, ok := c.current().plain[tv.Identity()]
	if !ok {
		return nil, false
	}
	if entry.narrowBound != nil {
		return entry.narrowBound, true
	}
	if narrowOnly {
		return nil, false
	}
	if entry.wideBound != nil {
		return entry.wideBound, true
	}
	return nil, false
}

// SetParamSpecType records a solved value for a parameter-spec
// variable as a Function-shaped parameter list.
func (c *TypeVarContext) SetParamSpecType(tv *TypeVarType, fn *FunctionType) {
	if c.locked {
		return
	}
	if normalized := convertTypeToParamSpecValue(fn); normalized != nil {
		fn = normalized
	}
	c.current().paramSpecs[tv.Identity()] = fn
}

// GetParamSpecType returns the solved Function-shaped value for tv.
func (c *TypeVarContext) GetParamSpecType(tv *TypeVarType) (*FunctionType, bool) {
	fn, ok := c.current().paramSpecs[tv.Identity()]
	return fn, ok
}

// SetTupleTypeVar records a solved value for a variadic type variable
// as an ordered sequence of tuple elements.
func (c *TypeVarContext) SetTupleTypeVar(tv *TypeVarType, entries []TupleTypeArgument) {
	if c.locked {
		return
	}
	c.current().tuples[tv.Identity()] = entries
}

// GetTupleTypeVar returns the solved tuple-element sequence for tv.
func (c *TypeVarContext) GetTupleTypeVar(tv *TypeVarType) ([]TupleTypeArgument, bool) {
	entries, ok := c.current().tuples[tv.Identity()]
	return entries, ok
}

// AddSignatureContext pushes a new, empty alternative signature
// context — used when solving against an overload set so each
// alternative yields its own solution (spec.md §3/§4.2).
func (c *TypeVarContext) AddSignatureContext() *SignatureContext {
	sc := newSignatureContext()
	c.signatures = append(c.signatures, sc)
	return sc
}

// GetSignatureContext returns the i'th alternative, or nil if out of
// range.
func (c *TypeVarContext) GetSignatureContext(i int) *SignatureContext {
	if i < 0 || i >= len(c.signatures) {
		return nil
	}
	return c.signatures[i]
}

// GetSignatureContexts returns every alternative currently recorded.
func (c *TypeVarContext) GetSignatureContexts() []*SignatureContext { return c.signatures }
