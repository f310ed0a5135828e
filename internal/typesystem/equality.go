package typesystem

import "sort"

// SameTypeOptions tunes IsTypeSame (spec.md §4.1).
type SameTypeOptions struct {
	IgnorePseudoGeneric bool
	IgnoreTypeFlags     bool
}

// IsTypeSame is the structural-equality relation used throughout the
// algebra: MRO deduplication, union normalization, cache lookups, the
// transformer's "did anything change" checks all reduce to this.
func IsTypeSame(a, b Type, opts SameTypeOptions) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Category() != b.Category() {
		return false
	}
	if !opts.IgnoreTypeFlags && GetFlags(a) != GetFlags(b) {
		return false
	}

	switch at := a.(type) {
	case *UnboundType, *UnknownType, *AnyType, *NoneType, *NeverType:
		return true
	case *ModuleType:
		bt := b.(*ModuleType)
		return at.Name == bt.Name
	case *TypeVarType:
		bt := b.(*TypeVarType)
		return at.Identity() == bt.Identity() && at.ParamSpecAccess == bt.ParamSpecAccess
	case *ClassType:
		return classSame(at, b.(*ClassType), opts)
	case *FunctionType:
		return functionSame(at, b.(*FunctionType), opts)
	case *OverloadedFunctionType:
		bt := b.(*OverloadedFunctionType)
		if len(at.Overloads) != len(bt.Overloads) {
			return false
		}
		for i := range at.Overloads {
			if !functionSame(at.Overloads[i], bt.Overloads[i], opts) {
				return false
			}
		}
		return true
	case *UnionType:
		return unionSame(at, b.(*UnionType), opts)
	default:
		return false
	}
}

func classSame(a, b *ClassType, opts SameTypeOptions) bool {
	if a.Details.SameGenericClass != b.Details.SameGenericClass {
		if !opts.IgnorePseudoGeneric || !(a.Details.IsPseudoGeneric || b.Details.IsPseudoGeneric) {
			return false
		}
	}
	if len(a.TypeArguments) != len(b.TypeArguments) {
		return false
	}
	for i := range a.TypeArguments {
		if !IsTypeSame(a.TypeArguments[i], b.TypeArguments[i], opts) {
			return false
		}
	}
	if len(a.TupleTypeArguments) != len(b.TupleTypeArguments) {
		return false
	}
	for i := range a.TupleTypeArguments {
		ea, eb := a.TupleTypeArguments[i], b.TupleTypeArguments[i]
		if ea.IsUnbounded != eb.IsUnbounded || !IsTypeSame(ea.Type, eb.Type, opts) {
			return false
		}
	}
	if (a.LiteralValue == nil) != (b.LiteralValue == nil) {
		return false
	}
	if a.LiteralValue != nil && a.LiteralValue != b.LiteralValue {
		return false
	}
	return true
}

// functionSame compares parameter categories, parameter types, return
// type and param-spec identity; per spec.md §4.1, parameter *names*
// are ignored for purely positional parameters.
func functionSame(a, b *FunctionType, opts SameTypeOptions) bool {
	if len(a.Params) != len(b.Params) {
		return false
	}
	for i := range a.Params {
		pa, pb := a.Params[i], b.Params[i]
		if pa.Category != pb.Category {
			return false
		}
		if pa.Category != ParamPositional && pa.Category != ParamVariadicPositional && pa.Name != pb.Name {
			return false
		}
		if !IsTypeSame(a.GetEffectiveParameterType(i), b.GetEffectiveParameterType(i), opts) {
			return false
		}
	}
	if !IsTypeSame(a.GetEffectiveReturnType(), b.GetEffectiveReturnType(), opts) {
		return false
	}
	switch {
	case a.ParamSpec == nil && b.ParamSpec == nil:
		return true
	case a.ParamSpec == nil || b.ParamSpec == nil:
		return false
	default:
		return a.ParamSpec.Identity() == b.ParamSpec.Identity()
	}
}

func unionSame(a, b *UnionType, opts SameTypeOptions) bool {
	if len(a.Subtypes) != len(b.Subtypes) {
		return false
	}
	remaining := append([]Type(nil), b.Subtypes...)
	for _, sa := range a.Subtypes {
		found := -1
		for i, sb := range remaining {
			if sb != nil && IsTypeSame(sa, sb, opts) {
				found = i
				break
			}
		}
		if found == -1 {
			return false
		}
		remaining[found] = nil
	}
	return true
}

// categoryRank is sortTypes' primary key: category descending per
// spec.md §4.1's order (TypeVar is the "most specific"/last-settled
// category so it sorts first when descending by this table; the
// precise numeric values only need to be self-consistent, since
// sortTypes' contract is determinism, not a documented absolute order).
var categoryRank = map[Category]int{
	CategoryTypeVar:            10,
	CategoryOverloadedFunction: 9,
	CategoryFunction:           8,
	CategoryUnion:              7,
	CategoryClass:              6,
	CategoryModule:             5,
	CategoryNever:              4,
	CategoryNone:               3,
	CategoryAny:                2,
	CategoryUnknown:            1,
	CategoryUnbound:            0,
}

// SortTypes establishes the total order spec.md §4.1 describes, used
// to produce deterministic Union member ordering and other outputs.
func SortTypes(types []Type) {
	sort.SliceStable(types, func(i, j int) bool { return typeLess(types[i], types[j]) })
}

func typeLess(a, b Type) bool {
	ra, rb := categoryRank[a.Category()], categoryRank[b.Category()]
	if ra != rb {
		return ra > rb
	}
	switch a.Category() {
	case CategoryClass:
		return classLess(a.(*ClassType), b.(*ClassType))
	case CategoryFunction:
		return functionLess(a.(*FunctionType), b.(*FunctionType))
	case CategoryOverloadedFunction:
		af, bf := a.(*OverloadedFunctionType), b.(*OverloadedFunctionType)
		if len(af.Overloads) != len(bf.Overloads) {
			return len(af.Overloads) < len(bf.Overloads)
		}
		for i := range af.Overloads {
			if functionLess(af.Overloads[i], bf.Overloads[i]) {
				return true
			}
			if functionLess(bf.Overloads[i], af.Overloads[i]) {
				return false
			}
		}
		return false
	case CategoryModule:
		return a.(*ModuleType).Name < b.(*ModuleType).Name
	case CategoryTypeVar:
		return a.(*TypeVarType).Identity() < b.(*TypeVarType).Identity()
	default:
		return a.String() < b.String()
	}
}

// classLess orders: instances before instantiables, literals before
// non-literals, non-generics before generics, then by qualified name.
func classLess(a, b *ClassType) bool {
	ai, bi := GetFlags(a).Has(FlagInstance), GetFlags(b).Has(FlagInstance)
	if ai != bi {
		return ai
	}
	al, bl := a.LiteralValue != nil, b.LiteralValue != nil
	if al != bl {
		return al
	}
	ag, bg := a.HasTypeParameters(), b.HasTypeParameters()
	if ag != bg {
		return !ag
	}
	return a.Details.QualifiedName < b.Details.QualifiedName
}

// functionLess orders: longer signatures first, then by parameter
// types in order, then by return type. There is no name tie-break
// (FunctionType carries no name), so signatures that agree on all of
// these compare equal.
func functionLess(a, b *FunctionType) bool {
	if len(a.Params) != len(b.Params) {
		return len(a.Params) > len(b.Params)
	}
	for i := range a.Params {
		pa, pb := a.GetEffectiveParameterType(i), b.GetEffectiveParameterType(i)
		sa, sb := typeStringOrEmpty(pa), typeStringOrEmpty(pb)
		if sa != sb {
			return sa < sb
		}
	}
	ra, rb := typeStringOrEmpty(a.GetEffectiveReturnType()), typeStringOrEmpty(b.GetEffectiveReturnType())
	return ra < rb
}

func typeStringOrEmpty(t Type) string {
	if t == nil {
		return ""
	}
	return t.String()
}
