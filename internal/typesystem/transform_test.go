package typesystem

import "testing"

func TestTransformerShortcutReturnsIdenticalValueWhenConcrete(t *testing.T) {
	o := newObjectClass()
	tr := NewTransformer(NewSubstitutionPolicy(nil, nil), RequiresSpecializationOptions{})
	result := tr.Apply(o, 0)
	if result != Type(o) {
		t.Errorf("expected a fully concrete class to be returned unchanged (same value), got %v", result)
	}
}

func TestTransformerSubstitutesPlainTypeVar(t *testing.T) {
	scope := "fn"
	tv := NewTypeVar("T", scope)
	intClass := newObjectClass()

	result := SpecializeWithTypeArgs(tv, []*TypeVarType{tv}, []Type{intClass})
	if !IsTypeSame(result, intClass, SameTypeOptions{}) {
		t.Errorf("expected T -> int substitution, got %v", result)
	}
}

func TestTransformerLeavesUnmappedTypeVarAlone(t *testing.T) {
	tv := NewTypeVar("U", "fn")
	other := NewTypeVar("T", "fn")
	result := SpecializeWithTypeArgs(tv, []*TypeVarType{other}, []Type{newObjectClass()})
	if result != Type(tv) {
		t.Errorf("expected an unmapped TypeVar to pass through unchanged, got %v", result)
	}
}

func TestTransformerDistributesOverUnion(t *testing.T) {
	scope := "fn"
	tv := NewTypeVar("T", scope)
	o := newObjectClass()
	a := newConcreteClass("A", o)

	union := MakeUnion(tv, a)
	result := SpecializeWithTypeArgs(union, []*TypeVarType{tv}, []Type{a})
	if !IsTypeSame(result, a, SameTypeOptions{}) {
		t.Errorf("T|A with T:=A should collapse to A (duplicate removal), got %v", result)
	}
}

func TestTransformerSpecializesClassTypeArguments(t *testing.T) {
	tv := NewTypeVar("T", "List")
	o := newObjectClass()
	listDetails := newGenericDetails("List", []*TypeVarType{tv}, o)
	list := NewClass(listDetails)
	ComputeMroLinearization(list)

	unspecialized := list.clone()
	unspecialized.TypeArguments = []Type{tv}

	intClass := newConcreteClass("int", o)
	result := SpecializeWithTypeArgs(unspecialized, []*TypeVarType{tv}, []Type{intClass})
	rc, ok := result.(*ClassType)
	if !ok {
		t.Fatalf("expected a ClassType result, got %T", result)
	}
	if len(rc.TypeArguments) != 1 || !IsTypeSame(rc.TypeArguments[0], intClass, SameTypeOptions{}) {
		t.Errorf("expected List[T] with T:=int to become List[int], got %v", rc.String())
	}
}

func TestTransformerSubstitutesFunctionParametersAndReturn(t *testing.T) {
	tv := NewTypeVar("T", "fn")
	fn := NewFunction([]Parameter{{Category: ParamSimple, Name: "x", Type: tv}}, tv)

	o := newObjectClass()
	result := SpecializeWithTypeArgs(fn, []*TypeVarType{tv}, []Type{o})
	rf, ok := result.(*FunctionType)
	if !ok {
		t.Fatalf("expected a FunctionType result, got %T", result)
	}
	if !IsTypeSame(rf.GetEffectiveParameterType(0), o, SameTypeOptions{}) {
		t.Errorf("expected parameter 0 to be substituted to object, got %v", rf.GetEffectiveParameterType(0))
	}
	if !IsTypeSame(rf.GetEffectiveReturnType(), o, SameTypeOptions{}) {
		t.Errorf("expected return type to be substituted to object, got %v", rf.GetEffectiveReturnType())
	}
}

func TestTransformerIsIdempotentOnAlreadyConcreteFunction(t *testing.T) {
	o := newObjectClass()
	fn := NewFunction([]Parameter{{Category: ParamSimple, Name: "x", Type: o}}, o)
	tv := NewTypeVar("Unused", "fn")
	result := SpecializeWithTypeArgs(fn, []*TypeVarType{tv}, []Type{o})
	if result != Type(fn) {
		t.Errorf("a function with no matching type variables should be returned unchanged, got %v", result)
	}
}

func TestApplyFunctionSplicesBoundedVariadicWithTrailingKeywordSeparator(t *testing.T) {
	ts := NewTypeVar("Ts", "fn")
	ts.Kind = TVarVariadic

	o := newObjectClass()
	intC := newConcreteClass("int", o)
	strC := newConcreteClass("str", o)

	fn := NewFunction([]Parameter{
		{Category: ParamVariadicPositional, Name: "args", Type: ts},
		{Category: ParamSimple, Name: "flag", Type: Any()},
	}, None())

	tuple := tupleClass(o, TupleTypeArgument{Type: intC}, TupleTypeArgument{Type: strC})
	result := SpecializeWithTypeArgs(fn, []*TypeVarType{ts}, []Type{tuple})
	rf, ok := result.(*FunctionType)
	if !ok {
		t.Fatalf("expected a FunctionType result, got %T", result)
	}
	if len(rf.Params) != 4 {
		t.Fatalf("expected 4 params (int, str, *, flag), got %d: %v", len(rf.Params), rf.Params)
	}
	if rf.Params[0].Category != ParamPositional || !IsTypeSame(rf.Params[0].Type, intC, SameTypeOptions{}) {
		t.Errorf("expected params[0] to be positional int, got %v", rf.Params[0])
	}
	if rf.Params[1].Category != ParamPositional || !IsTypeSame(rf.Params[1].Type, strC, SameTypeOptions{}) {
		t.Errorf("expected params[1] to be positional str, got %v", rf.Params[1])
	}
	if rf.Params[2].Category != ParamKeywordSeparator {
		t.Errorf("expected a synthesized keyword-only separator after the spliced block, got %v", rf.Params[2])
	}
	if rf.Params[3].Name != "flag" {
		t.Errorf("expected the original 'flag' parameter to survive after the separator, got %v", rf.Params[3])
	}
}

func TestApplyFunctionSwallowsPositionalSeparatorAfterUnboundedVariadicSplice(t *testing.T) {
	ts := NewTypeVar("Ts", "fn")
	ts.Kind = TVarVariadic

	o := newObjectClass()
	strC := newConcreteClass("str", o)

	fn := NewFunction([]Parameter{
		{Category: ParamVariadicPositional, Name: "args", Type: ts},
		{Category: ParamPositionalSeparator},
		{Category: ParamSimple, Name: "flag", Type: Any()},
	}, None())

	tuple := tupleClass(o, TupleTypeArgument{Type: strC, IsUnbounded: true})
	result := SpecializeWithTypeArgs(fn, []*TypeVarType{ts}, []Type{tuple})
	rf, ok := result.(*FunctionType)
	if !ok {
		t.Fatalf("expected a FunctionType result, got %T", result)
	}
	if len(rf.Params) != 2 {
		t.Fatalf("expected the *args: str tail plus 'flag' only (separator swallowed), got %d: %v", len(rf.Params), rf.Params)
	}
	if rf.Params[0].Category != ParamVariadicPositional || rf.Params[0].Name != "args" {
		t.Errorf("expected params[0] to remain a *args: str tail, got %v", rf.Params[0])
	}
	if rf.Params[1].Name != "flag" {
		t.Errorf("expected 'flag' to follow directly with the separator swallowed, got %v", rf.Params[1])
	}
}

func TestTransformerRecursionGuardAgainstSelfReferentialSolution(t *testing.T) {
	tv := NewTypeVar("T", "fn")
	// A pathological policy whose solution for T mentions T itself.
	policy := TransformerPolicy{
		TransformTypeVar: func(v *TypeVarType, depth int) Type {
			if v.Identity() == tv.Identity() {
				return tv
			}
			return nil
		},
	}
	tr := NewTransformer(policy, RequiresSpecializationOptions{})
	result := tr.Apply(tv, 0)
	if result != Type(tv) {
		t.Errorf("expected the recursion guard to stop at tv itself, got %v", result)
	}
}
