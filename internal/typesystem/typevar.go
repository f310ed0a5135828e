package typesystem

import "fmt"

// Variance describes how a generic parameter's subtyping relates to
// its argument's subtyping (spec.md §4.8).
type Variance int

const (
	VarianceUnknown Variance = iota
	VarianceInvariant
	VarianceCovariant
	VarianceContravariant
	VarianceAuto
)

func (v Variance) String() string {
	switch v {
	case VarianceInvariant:
		return "invariant"
	case VarianceCovariant:
		return "covariant"
	case VarianceContravariant:
		return "contravariant"
	case VarianceAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// TVarKind distinguishes a plain type variable from one standing for an
// entire parameter list (ParamSpec) or an ordered sequence of types
// (variadic / TypeVarTuple).
type TVarKind int

const (
	TVarPlain TVarKind = iota
	TVarParamSpec
	TVarVariadic
)

// ParamSpecAccess marks a TypeVar expression as the `.args` or
// `.kwargs` projection of a parameter-spec variable (e.g. `P.args`),
// or neither.
type ParamSpecAccess int

const (
	ParamSpecAccessNone ParamSpecAccess = iota
	ParamSpecAccessArgs
	ParamSpecAccessKwargs
)

// TypeVarType is a type-level variable. Its identity is (Name, ScopeID):
// the same source name introduced in two different generic scopes is
// two distinct variables.
type TypeVarType struct {
	typeBase

	Name    string
	ScopeID string

	Kind     TVarKind
	Variance Variance

	Bound   Type // optional
	Default Type // optional

	ParamSpecAccess ParamSpecAccess
	IsVariadicInUnion bool

	// RecursiveTypeAliasName is set when this TypeVar is a placeholder
	// standing in for a not-yet-fully-resolved recursive type alias.
	// Invariant 4 (spec.md §3): when set, Bound must also be set.
	RecursiveTypeAliasName string
}

// NewTypeVar creates a plain type variable in the given scope.
func NewTypeVar(name, scopeID string) *TypeVarType {
	return &TypeVarType{
		typeBase: typeBase{flags: FlagInstance},
		Name:     name,
		ScopeID:  scopeID,
	}
}

// Identity returns the (Name, ScopeID) pair that determines equality
// and substitution-map lookup for this variable.
func (t *TypeVarType) Identity() string { return t.Name + "@" + t.ScopeID }

func (t *TypeVarType) String() string {
	if testModeOrLSP() {
		return "T?"
	}
	switch t.ParamSpecAccess {
	case ParamSpecAccessArgs:
		return t.Name + ".args"
	case ParamSpecAccessKwargs:
		return t.Name + ".kwargs"
	}
	return t.Name
}

func (t *TypeVarType) Category() Category { return CategoryTypeVar }
func (t *TypeVarType) base() *typeBase    { return &t.typeBase }

// IsParamSpec reports whether this variable's solved value is a
// Function-shaped parameter list rather than a single Type.
func (t *TypeVarType) IsParamSpec() bool { return t.Kind == TVarParamSpec }

// IsVariadic reports whether this variable's solved value is an
// ordered tuple of Types (a TypeVarTuple / "*Ts").
func (t *TypeVarType) IsVariadic() bool { return t.Kind == TVarVariadic }

func (v ParamSpecAccess) String() string {
	switch v {
	case ParamSpecAccessArgs:
		return "args"
	case ParamSpecAccessKwargs:
		return "kwargs"
	default:
		return "none"
	}
}

func (t *TypeVarType) GoString() string {
	return fmt.Sprintf("TypeVar(%s, scope=%s, kind=%d)", t.Name, t.ScopeID, t.Kind)
}
