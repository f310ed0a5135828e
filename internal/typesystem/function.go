package typesystem

import "strings"

// ParameterCategory is the parameter-category enumeration the parser
// hands the checker (spec.md §1). The type algebra treats it as an
// opaque tag on each Parameter; it never re-derives it from syntax.
type ParameterCategory int

const (
	ParamSimple ParameterCategory = iota
	ParamPositional
	ParamVariadicPositional // *args
	ParamVariadicKeyword    // **kwargs
	ParamKeywordSeparator   // bare `*` marking the start of keyword-only params
	ParamPositionalSeparator
)

// Parameter is one entry of a FunctionType's parameter list.
type Parameter struct {
	Category     ParameterCategory
	Name         string
	Type         Type
	HasDefault   bool
	DefaultType  Type // only meaningful when HasDefault
}

// FunctionFlags are the small independent booleans a FunctionType
// carries alongside its parameter list.
type FunctionFlags uint8

const (
	FuncFlagParamSpecValue FunctionFlags = 1 << iota // this Function is really a substituted ParamSpec value
	FuncFlagSkipArgsKwargsCheck
)

// SpecializedTypes is the overlay produced by partial specialization:
// parallel arrays mirroring Params/ReturnType after a substitution has
// been applied, without mutating the declared signature.
type SpecializedTypes struct {
	ParameterTypes  []Type
	DefaultArgTypes []Type
	ReturnType      Type
}

// FunctionType is a single (non-overloaded) callable signature.
type FunctionType struct {
	typeBase

	Params             []Parameter
	DeclaredReturnType Type
	InferredReturnType Type

	Flags FunctionFlags

	// ParamSpec, if set, is the trailing `**P` parameter-spec variable
	// bound at the end of this signature's parameter list.
	ParamSpec *TypeVarType

	Specialized *SpecializedTypes
}

func NewFunction(params []Parameter, returnType Type) *FunctionType {
	return &FunctionType{
		typeBase:           typeBase{flags: FlagInstance},
		Params:             params,
		DeclaredReturnType: returnType,
	}
}

func (t *FunctionType) Category() Category { return CategoryFunction }
func (t *FunctionType) base() *typeBase    { return &t.typeBase }

// GetEffectiveParameterType returns the specialized overlay type for
// parameter i if a specialization has been applied, else the declared
// type (spec.md §3, Function).
func (t *FunctionType) GetEffectiveParameterType(i int) Type {
	if t.Specialized != nil && i < len(t.Specialized.ParameterTypes) {
		return t.Specialized.ParameterTypes[i]
	}
	return t.Params[i].Type
}

// GetEffectiveReturnType returns the specialized return type overlay
// if present, else the declared return type, falling back to the
// inferred return type when no declaration exists.
func (t *FunctionType) GetEffectiveReturnType() Type {
	if t.Specialized != nil && t.Specialized.ReturnType != nil {
		return t.Specialized.ReturnType
	}
	if t.DeclaredReturnType != nil {
		return t.DeclaredReturnType
	}
	return t.InferredReturnType
}

// IsVariadic reports whether the signature has a *args parameter
// anywhere in its parameter list.
func (t *FunctionType) IsVariadic() bool {
	for _, p := range t.Params {
		if p.Category == ParamVariadicPositional {
			return true
		}
	}
	return false
}

// clone returns a shallow copy of t, used by the transformer (C4) when
// it needs to emit a specialized signature without mutating the
// original.
func (t *FunctionType) clone() *FunctionType {
	cp := *t
	cp.cache = nil
	cp.Params = append([]Parameter(nil), t.Params...)
	return &cp
}

func (t *FunctionType) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, p := range t.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		switch p.Category {
		case ParamVariadicPositional:
			b.WriteByte('*')
		case ParamVariadicKeyword:
			b.WriteString("**")
		case ParamKeywordSeparator:
			b.WriteByte('*')
		case ParamPositionalSeparator:
			b.WriteByte('/')
		}
		if p.Name != "" {
			b.WriteString(p.Name)
			b.WriteString(": ")
		}
		if p.Type != nil {
			b.WriteString(p.Type.String())
		}
		if p.HasDefault {
			b.WriteString(" = ...")
		}
	}
	b.WriteByte(')')
	b.WriteString(" -> ")
	if rt := t.GetEffectiveReturnType(); rt != nil {
		b.WriteString(rt.String())
	} else {
		b.WriteString("Unknown")
	}
	return b.String()
}

// OverloadedFunctionType is an ordered sequence of Function overloads.
type OverloadedFunctionType struct {
	typeBase
	Overloads []*FunctionType
}

func NewOverloadedFunction(overloads []*FunctionType) *OverloadedFunctionType {
	return &OverloadedFunctionType{typeBase: typeBase{flags: FlagInstance}, Overloads: overloads}
}

func (t *OverloadedFunctionType) Category() Category { return CategoryOverloadedFunction }
func (t *OverloadedFunctionType) base() *typeBase    { return &t.typeBase }

func (t *OverloadedFunctionType) String() string {
	parts := make([]string, len(t.Overloads))
	for i, o := range t.Overloads {
		parts[i] = o.String()
	}
	return "Overload[" + strings.Join(parts, "; ") + "]"
}
