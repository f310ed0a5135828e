package typesystem

import "testing"

func tupleClass(o *ClassType, entries ...TupleTypeArgument) *ClassType {
	d := newClassDetails("builtins.tuple", o)
	d.IsTupleClass = true
	c := NewClass(d)
	ComputeMroLinearization(c)
	return SpecializeTupleClass(c, entries)
}

func TestCombineSameSizedTuplesFusesElementwise(t *testing.T) {
	o := newObjectClass()
	intC := newConcreteClass("int", o)
	strC := newConcreteClass("str", o)

	t1 := tupleClass(o, TupleTypeArgument{Type: intC}, TupleTypeArgument{Type: strC})
	t2 := tupleClass(o, TupleTypeArgument{Type: strC}, TupleTypeArgument{Type: strC})

	fused := CombineSameSizedTuples(MakeUnion(t1, t2))
	fc, ok := fused.(*ClassType)
	if !ok {
		t.Fatalf("expected a fused tuple ClassType, got %T", fused)
	}
	if len(fc.TupleTypeArguments) != 2 {
		t.Fatalf("expected 2 fused elements, got %d", len(fc.TupleTypeArguments))
	}
	if !IsTypeSame(fc.TupleTypeArguments[1].Type, strC, SameTypeOptions{}) {
		t.Errorf("position 1 is str in both tuples, expected str, got %v", fc.TupleTypeArguments[1].Type)
	}
	if _, isUnion := fc.TupleTypeArguments[0].Type.(*UnionType); !isUnion {
		t.Errorf("position 0 differs (int vs str) across the two tuples, expected a union, got %v", fc.TupleTypeArguments[0].Type)
	}
}

func TestCombineSameSizedTuplesLeavesMismatchedArityAlone(t *testing.T) {
	o := newObjectClass()
	intC := newConcreteClass("int", o)
	t1 := tupleClass(o, TupleTypeArgument{Type: intC})
	t2 := tupleClass(o, TupleTypeArgument{Type: intC}, TupleTypeArgument{Type: intC})

	u := MakeUnion(t1, t2)
	result := CombineSameSizedTuples(u)
	if result != u {
		t.Errorf("expected mismatched-arity tuples to be returned unchanged, got %v", result)
	}
}

func TestRemoveParamSpecVariadicsFromSignatureCollapsesTailPair(t *testing.T) {
	p := NewTypeVar("P", "fn")
	p.Kind = TVarParamSpec

	argsParam := *p
	argsParam.ParamSpecAccess = ParamSpecAccessArgs
	kwargsParam := *p
	kwargsParam.ParamSpecAccess = ParamSpecAccessKwargs

	fn := NewFunction([]Parameter{
		{Category: ParamSimple, Name: "self", Type: Any()},
		{Category: ParamVariadicPositional, Name: "args", Type: &argsParam},
		{Category: ParamVariadicKeyword, Name: "kwargs", Type: &kwargsParam},
	}, None())

	normalized := removeParamSpecVariadicsFromSignature(fn)
	if len(normalized.Params) != 1 {
		t.Fatalf("expected the *args/**kwargs tail to collapse into ParamSpec, got %d params", len(normalized.Params))
	}
	if normalized.ParamSpec == nil || normalized.ParamSpec.Identity() != p.Identity() {
		t.Fatalf("expected ParamSpec to carry P's identity")
	}
	if normalized.ParamSpec.ParamSpecAccess != ParamSpecAccessNone {
		t.Errorf("expected the collapsed ParamSpec field to not carry an .args/.kwargs projection")
	}
}

func TestConvertTypeToParamSpecValueCollapsesBareSeparatorToNoParams(t *testing.T) {
	fn := NewFunction([]Parameter{{Category: ParamPositionalSeparator}}, nil)
	result := convertTypeToParamSpecValue(fn)
	if result == nil {
		t.Fatalf("expected a normalized FunctionType, got nil")
	}
	if len(result.Params) != 0 {
		t.Errorf("expected a sole unnamed positional separator to collapse to no parameters, got %v", result.Params)
	}
}

func TestConvertTypeToParamSpecValueLeavesOrdinaryParamsAlone(t *testing.T) {
	fn := NewFunction([]Parameter{{Category: ParamSimple, Name: "x", Type: Any()}}, nil)
	result := convertTypeToParamSpecValue(fn)
	if len(result.Params) != 1 || result.Params[0].Name != "x" {
		t.Errorf("expected an ordinary parameter list to pass through unchanged, got %v", result.Params)
	}
}

func TestParamSpecArgumentRoundTripsBareSeparatorAsNoParams(t *testing.T) {
	p := NewTypeVar("P", "fn")
	p.Kind = TVarParamSpec

	fn := &FunctionType{typeBase: typeBase{flags: FlagInstance}, ParamSpec: p}
	noParams := NewFunction([]Parameter{{Category: ParamPositionalSeparator}}, nil)

	result := SpecializeWithTypeArgs(fn, []*TypeVarType{p}, []Type{noParams})
	rf, ok := result.(*FunctionType)
	if !ok {
		t.Fatalf("expected a FunctionType result, got %T", result)
	}
	if len(rf.Params) != 0 {
		t.Errorf("expected P's bare-separator 'no parameters' value to splice in as an empty parameter list, got %v", rf.Params)
	}
}

func TestParamSpecValueRoundTripsThroughTransformer(t *testing.T) {
	p := NewTypeVar("P", "fn")
	p.Kind = TVarParamSpec

	fn := &FunctionType{typeBase: typeBase{flags: FlagInstance}, ParamSpec: p}

	solved := NewFunction([]Parameter{{Category: ParamSimple, Name: "x", Type: Any()}}, nil)
	result := SpecializeWithTypeArgs(fn, []*TypeVarType{p}, []Type{solved})
	rf, ok := result.(*FunctionType)
	if !ok {
		t.Fatalf("expected a FunctionType result, got %T", result)
	}
	if len(rf.Params) != 1 || rf.Params[0].Name != "x" {
		t.Fatalf("expected the ParamSpec's solved parameter list to be spliced in, got %v", rf.Params)
	}
	if rf.ParamSpec != nil {
		t.Errorf("expected no residual ParamSpec once solved, got %v", rf.ParamSpec)
	}
}
