// Package typesystem is the type algebra: representation, MRO
// linearization, substitution, member lookup and the supporting
// relations a gradual-typing checker needs. It is consumed, never
// consumes — the checker (out of scope, see SPEC_FULL.md) walks syntax
// and calls into this package millions of times per analyzed project.
//
// The package style is carried from funvibe/funxy's internal/typesystem:
// a closed `Type` sum type dispatched by a type switch (isTypeSame,
// the transformer, sortTypes all switch on concrete *XType), a flat
// Subst-like map for single-variable substitutions, and String()
// methods normalized by internal/config's IsTestMode/IsLSPMode flags
// for deterministic golden output.
package typesystem

import "github.com/funvibe/typelab/internal/config"

// Category is the tag of the Type sum type.
type Category int

const (
	CategoryUnbound Category = iota
	CategoryUnknown
	CategoryAny
	CategoryNone
	CategoryNever
	CategoryClass
	CategoryFunction
	CategoryOverloadedFunction
	CategoryModule
	CategoryUnion
	CategoryTypeVar
)

func (c Category) String() string {
	switch c {
	case CategoryUnbound:
		return "Unbound"
	case CategoryUnknown:
		return "Unknown"
	case CategoryAny:
		return "Any"
	case CategoryNone:
		return "None"
	case CategoryNever:
		return "Never"
	case CategoryClass:
		return "Class"
	case CategoryFunction:
		return "Function"
	case CategoryOverloadedFunction:
		return "OverloadedFunction"
	case CategoryModule:
		return "Module"
	case CategoryUnion:
		return "Union"
	case CategoryTypeVar:
		return "TypeVar"
	default:
		return "?"
	}
}

// Flags carries the Instance/Instantiable distinction described in
// spec.md §3. Both bits may be set at once for untyped types such as
// Any and None — a bare `None` can appear either where a value is
// expected or where a class object is expected.
type Flags uint8

const (
	FlagInstance Flags = 1 << iota
	FlagInstantiable
)

func (f Flags) Has(bit Flags) bool { return f&bit != 0 }

// TypeCondition is one narrowing clause attached to a Type: "this type
// is only valid when the type variable Var is bound to Expected".
// A Type's Conditions list is semantically the AND of its clauses.
type TypeCondition struct {
	Var      string
	Expected Type
}

// TypeAliasInfo records that a Type was produced through a (possibly
// generic) type alias, so transformation and display can refer back to
// the alias rather than its expansion.
type TypeAliasInfo struct {
	Name            string
	FullyQualified  string
	TypeVarScopeID  string
	TypeParameters  []*TypeVarType
	TypeArguments   []Type // nil if the alias itself is unspecialized
}

// derivationCache holds the two memoized projections of a Type
// (instance form / instantiable form, see AsInstance/AsInstantiable in
// conversions.go). Written at most once; per spec.md §5, a future
// parallel implementation would publish these fields atomically.
type derivationCache struct {
	instance     Type
	instantiable Type
}

// typeBase is embedded by every concrete Type. It is never used as a
// Type on its own; its unexported base() accessor is what closes the
// Type sum type to this package (spec.md §9: "Sum types ... tag tests
// are branch-predictable").
type typeBase struct {
	flags      Flags
	aliasInfo  *TypeAliasInfo
	conditions []TypeCondition
	cache      *derivationCache
}

// Type is the interface every type-algebra value implements. Concrete
// implementations are always pointers (*ClassType, *FunctionType, ...)
// so the derivation cache and MRO can be populated in place and shared
// by every reference to the same value.
type Type interface {
	String() string
	Category() Category
	base() *typeBase
}

// GetFlags returns a Type's Instance/Instantiable flags.
func GetFlags(t Type) Flags { return t.base().flags }

// SetFlags overwrites a Type's Instance/Instantiable flags in place.
func SetFlags(t Type, f Flags) { t.base().flags = f }

// Conditions returns the narrowing clauses attached to t.
func Conditions(t Type) []TypeCondition { return t.base().conditions }

// AliasInfo returns the type-alias metadata attached to t, or nil.
func AliasInfo(t Type) *TypeAliasInfo { return t.base().aliasInfo }

// ---- Unbound ----

// UnboundType represents a name that has not been assigned a value on
// some code path yet (a pre-declaration placeholder).
type UnboundType struct{ typeBase }

var unboundSingleton = &UnboundType{}

// Unbound is the single shared Unbound value; Unbound carries no
// per-instance data so callers never need to construct their own.
func Unbound() *UnboundType { return unboundSingleton }

func (t *UnboundType) String() string   { return "Unbound" }
func (t *UnboundType) Category() Category { return CategoryUnbound }
func (t *UnboundType) base() *typeBase   { return &t.typeBase }

// ---- Unknown ----

// UnknownType represents "the checker could not determine a type
// here", as distinct from Any (a user-declared widening). Substitution
// leaves both as they are; there is no helper that merges an Unknown
// and an Any into one result.
type UnknownType struct{ typeBase }

var unknownSingleton = &UnknownType{typeBase{flags: FlagInstance | FlagInstantiable}}

func Unknown() *UnknownType { return unknownSingleton }

func (t *UnknownType) String() string   { return "Unknown" }
func (t *UnknownType) Category() Category { return CategoryUnknown }
func (t *UnknownType) base() *typeBase   { return &t.typeBase }

// ---- Any ----

// AnyType represents a user-declared widening (an explicit `Any`
// annotation), as opposed to Unknown.
type AnyType struct{ typeBase }

var anySingleton = &AnyType{typeBase{flags: FlagInstance | FlagInstantiable}}

func Any() *AnyType { return anySingleton }

func (t *AnyType) String() string   { return "Any" }
func (t *AnyType) Category() Category { return CategoryAny }
func (t *AnyType) base() *typeBase   { return &t.typeBase }

// ---- None ----

// NoneType represents the null/None singleton value and its type.
type NoneType struct{ typeBase }

var noneSingleton = &NoneType{typeBase{flags: FlagInstance | FlagInstantiable}}

func None() *NoneType { return noneSingleton }

func (t *NoneType) String() string   { return "None" }
func (t *NoneType) Category() Category { return CategoryNone }
func (t *NoneType) base() *typeBase   { return &t.typeBase }

// ---- Never ----

// NeverType represents the bottom type: no value has this type.
type NeverType struct{ typeBase }

var neverSingleton = &NeverType{}

func Never() *NeverType { return neverSingleton }

func (t *NeverType) String() string   { return "Never" }
func (t *NeverType) Category() Category { return CategoryNever }
func (t *NeverType) base() *typeBase   { return &t.typeBase }

// ---- Module ----

// ModuleType represents an imported module namespace.
type ModuleType struct {
	typeBase
	Name   string
	Fields *ClassMemberTable
}

func NewModule(name string) *ModuleType {
	return &ModuleType{Name: name, Fields: NewClassMemberTable()}
}

func (t *ModuleType) String() string   { return "Module(" + t.Name + ")" }
func (t *ModuleType) Category() Category { return CategoryModule }
func (t *ModuleType) base() *typeBase   { return &t.typeBase }

// testModeOrLSP is the guard TypeVarType.String() uses to decide
// whether to normalize volatile names.
func testModeOrLSP() bool { return config.IsTestMode || config.IsLSPMode }
