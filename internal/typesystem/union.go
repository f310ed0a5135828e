package typesystem

import "strings"

// UnionType is an ordered, duplicate-free sequence of subtypes. Per
// spec.md §3 invariant 3, no Subtypes entry is itself a Union (they
// are flattened on construction) and Never never appears as a member
// (it absorbs into the empty union, see MakeUnion).
type UnionType struct {
	typeBase
	Subtypes []Type

	// IncludesRecursiveTypeAlias is a pruning hint set when one of the
	// flattened subtypes came from an unresolved recursive alias, so
	// consumers avoid treating this union as fully concrete.
	IncludesRecursiveTypeAlias bool
}

func (t *UnionType) Category() Category { return CategoryUnion }
func (t *UnionType) base() *typeBase    { return &t.typeBase }

func (t *UnionType) String() string {
	parts := make([]string, len(t.Subtypes))
	for i, s := range t.Subtypes {
		parts[i] = s.String()
	}
	return strings.Join(parts, " | ")
}

// MakeUnion builds a normalized union from the given subtypes:
// nested unions are flattened, duplicates (by isTypeSame) are removed,
// and Never is dropped unless it is the only remaining member, in
// which case Never itself is returned. A single remaining subtype is
// returned unwrapped rather than as a one-element Union.
func MakeUnion(subtypes ...Type) Type {
	flat := make([]Type, 0, len(subtypes))
	includesRecursive := false
	for _, s := range subtypes {
		if s == nil {
			continue
		}
		if u, ok := s.(*UnionType); ok {
			flat = append(flat, u.Subtypes...)
			includesRecursive = includesRecursive || u.IncludesRecursiveTypeAlias
			continue
		}
		if _, ok := s.(*NeverType); ok {
			continue
		}
		if tv, ok := s.(*TypeVarType); ok && tv.RecursiveTypeAliasName != "" {
			includesRecursive = true
		}
		flat = append(flat, s)
	}

	unique := make([]Type, 0, len(flat))
	for _, s := range flat {
		dup := false
		for _, u := range unique {
			if IsTypeSame(s, u, SameTypeOptions{}) {
				dup = true
				break
			}
		}
		if !dup {
			unique = append(unique, s)
		}
	}

	if len(unique) == 0 {
		return Never()
	}
	if len(unique) == 1 {
		return unique[0]
	}

	SortTypes(unique)

	return &UnionType{
		typeBase:                   typeBase{flags: unionFlags(unique)},
		Subtypes:                   unique,
		IncludesRecursiveTypeAlias: includesRecursive,
	}
}

func unionFlags(subtypes []Type) Flags {
	var f Flags
	for _, s := range subtypes {
		f |= GetFlags(s)
	}
	return f
}

// mapSubtypes is the central "fmap over sum of alternatives" combinator
// (spec.md §4.1). For a Union it applies f to each subtype, dropping
// any subtype for which f returns nil (folding to Never if everything
// is dropped), propagating the union's own conditions onto each
// surviving subtype, and preserving alias metadata. For anything else
// it falls through to f(t) directly.
func mapSubtypes(t Type, f func(Type) Type) Type {
	u, ok := t.(*UnionType)
	if !ok {
		return f(t)
	}

	results := make([]Type, 0, len(u.Subtypes))
	for _, sub := range u.Subtypes {
		mapped := f(sub)
		if mapped == nil {
			continue
		}
		if len(u.conditions) > 0 {
			mapped = addConditionToType(mapped, u.conditions)
		}
		results = append(results, mapped)
	}

	result := MakeUnion(results...)
	if result.base().aliasInfo == nil {
		result.base().aliasInfo = u.aliasInfo
	}
	return result
}

// addConditionToType distributes the AND of cond over Union and
// OverloadedFunction (each member individually conditioned); for
// atomic, non-conditionable tags (Any, Unknown, Unbound, Never,
// Module, TypeVar) it is the identity, per spec.md §4.1.
func addConditionToType(t Type, cond []TypeCondition) Type {
	if len(cond) == 0 {
		return t
	}
	switch tt := t.(type) {
	case *UnionType:
		subs := make([]Type, len(tt.Subtypes))
		for i, s := range tt.Subtypes {
			subs[i] = addConditionToType(s, cond)
		}
		result := MakeUnion(subs...)
		result.base().conditions = append(append([]TypeCondition{}, cond...), result.base().conditions...)
		return result
	case *OverloadedFunctionType:
		overloads := make([]*FunctionType, len(tt.Overloads))
		for i, o := range tt.Overloads {
			withCond := o.clone()
			withCond.conditions = append(append([]TypeCondition{}, cond...), withCond.conditions...)
			overloads[i] = withCond
		}
		return NewOverloadedFunction(overloads)
	case *AnyType, *UnknownType, *UnboundType, *NeverType, *ModuleType, *TypeVarType:
		return t
	default:
		cp := shallowCloneWithCondition(t, cond)
		return cp
	}
}

// shallowCloneWithCondition attaches cond to a copy of t's base so the
// original value (which may be shared/cached) is left untouched.
func shallowCloneWithCondition(t Type, cond []TypeCondition) Type {
	switch tt := t.(type) {
	case *ClassType:
		cp := tt.clone()
		cp.conditions = append(append([]TypeCondition{}, cond...), cp.conditions...)
		return cp
	case *FunctionType:
		cp := tt.clone()
		cp.conditions = append(append([]TypeCondition{}, cond...), cp.conditions...)
		return cp
	default:
		return t
	}
}
