package typesystem

import "testing"

func TestLookUpClassMemberFindsOwnThenInherited(t *testing.T) {
	o := newObjectClass()
	addField(o, "__class__", None(), false)

	base := newConcreteClass("Base", o)
	addField(base, "greeting", None(), true)

	derived := newConcreteClass("Derived", base)
	addField(derived, "greeting", Any(), true) // shadows Base.greeting
	addField(derived, "extra", Any(), true)

	m, ok := LookUpClassMember(derived, "greeting", MemberLookupDefault)
	if !ok {
		t.Fatalf("expected to find 'greeting'")
	}
	if m.FoundOn != derived {
		t.Errorf("expected 'greeting' to resolve on Derived (shadowing), found on %v", m.FoundOn.Details.QualifiedName)
	}

	m2, ok := LookUpClassMember(derived, "extra", MemberLookupDefault)
	if !ok || m2.FoundOn != derived {
		t.Fatalf("expected to find 'extra' directly on Derived")
	}

	m3, ok := LookUpClassMember(derived, "__class__", MemberLookupDefault)
	if !ok || m3.FoundOn != o {
		t.Fatalf("expected to find '__class__' on object via inheritance")
	}
}

func TestLookUpClassMemberSkipOriginalClassActsLikeSuper(t *testing.T) {
	o := newObjectClass()
	base := newConcreteClass("Base", o)
	addField(base, "value", Any(), true)

	derived := newConcreteClass("Derived", base)
	addField(derived, "value", None(), true)

	m, ok := LookUpClassMember(derived, "value", MemberLookupSkipOriginalClass)
	if !ok {
		t.Fatalf("expected to find 'value' on a base class")
	}
	if m.FoundOn != base {
		t.Errorf("super()-style lookup should skip Derived's own 'value', found on %v", m.FoundOn.Details.QualifiedName)
	}
}

func TestLookUpClassMemberSkipObjectBaseClass(t *testing.T) {
	o := newObjectClass()
	addField(o, "__repr__", Any(), false)
	derived := newConcreteClass("Derived", o)

	if _, ok := LookUpClassMember(derived, "__repr__", MemberLookupDefault); !ok {
		t.Fatalf("expected to find '__repr__' on object by default")
	}
	if _, ok := LookUpClassMember(derived, "__repr__", MemberLookupSkipObjectBaseClass); ok {
		t.Errorf("expected '__repr__' to be hidden when skipping the object base class")
	}
}

func TestLookUpClassMemberDeclaredTypesOnlySkipsUntyped(t *testing.T) {
	o := newObjectClass()
	base := newConcreteClass("Base", o)
	base.Details.Fields.Set("x", &FieldSymbol{
		Name:         "x",
		Declarations: []Declaration{{Type: Unknown(), IsTyped: false}},
	})

	derived := newConcreteClass("Derived", base)

	m, ok := LookUpClassMember(derived, "x", MemberLookupDefault)
	if !ok || m.SkippedUndeclaredType {
		t.Fatalf("default lookup should accept the untyped declaration")
	}

	_, ok = LookUpClassMember(derived, "x", MemberLookupDeclaredTypesOnly)
	if ok {
		t.Errorf("expected DeclaredTypesOnly to reject an untyped-only field")
	}
}

func TestLookUpObjectMemberOnUnionRequiresAllSubtypes(t *testing.T) {
	o := newObjectClass()
	a := newConcreteClass("A", o)
	addField(a, "shared", None(), true)
	b := newConcreteClass("B", o)
	addField(b, "shared", Any(), true)
	c := newConcreteClass("C", o) // no 'shared'

	u := MakeUnion(a, b)
	m, ok := LookUpObjectMember(u, "shared", MemberLookupDefault)
	if !ok {
		t.Fatalf("expected 'shared' to be found on every member of A|B")
	}
	if _, isUnion := m.Type.(*UnionType); !isUnion {
		t.Errorf("expected the combined member type to be a union, got %v", m.Type)
	}

	u2 := MakeUnion(a, c)
	if _, ok := LookUpObjectMember(u2, "shared", MemberLookupDefault); ok {
		t.Errorf("expected lookup to fail since C lacks 'shared'")
	}
}

func TestLookUpClassMemberCoercesTypedDataClassVarsToInstanceMembers(t *testing.T) {
	o := newObjectClass()
	dc := newConcreteClass("Point", o)
	dc.Details.IsDataClass = true
	// addField(..., instance=false) records a class-body variable the
	// way a plain `x: int` assignment inside the class body would be
	// declared before any data-class coercion is applied.
	addField(dc, "x", Any(), false)

	m, ok := LookUpClassMember(dc, "x", MemberLookupDefault)
	if !ok {
		t.Fatalf("expected to find 'x'")
	}
	if !m.IsInstanceMember || m.IsClassMember {
		t.Errorf("expected a typed class-body var on a dataclass to report as an instance member, got instance=%v class=%v", m.IsInstanceMember, m.IsClassMember)
	}

	fields := GetClassFieldsRecursive(dc, MemberLookupSkipObjectBaseClass)
	if len(fields) != 1 || !fields[0].IsInstanceMember || fields[0].IsClassMember {
		t.Errorf("expected GetClassFieldsRecursive to report the same coercion, got %v", fields)
	}
}

func TestLookUpClassMemberLeavesUntypedDataClassVarsAsDeclared(t *testing.T) {
	o := newObjectClass()
	dc := newConcreteClass("Point", o)
	dc.Details.IsDataClass = true
	dc.Details.Fields.Set("cached", &FieldSymbol{
		Name:          "cached",
		IsClassMember: true,
		Declarations:  []Declaration{{Type: Any(), IsTyped: false}},
	})

	m, ok := LookUpClassMember(dc, "cached", MemberLookupDefault)
	if !ok {
		t.Fatalf("expected to find 'cached'")
	}
	if m.IsInstanceMember || !m.IsClassMember {
		t.Errorf("an untyped class-body var should not be coerced to an instance member, got instance=%v class=%v", m.IsInstanceMember, m.IsClassMember)
	}
}

func TestGetClassFieldsRecursiveDeduplicatesByShadowing(t *testing.T) {
	o := newObjectClass()
	base := newConcreteClass("Base", o)
	addField(base, "a", Any(), true)
	addField(base, "b", Any(), true)
	derived := newConcreteClass("Derived", base)
	addField(derived, "b", None(), true)
	addField(derived, "c", None(), true)

	fields := GetClassFieldsRecursive(derived, MemberLookupSkipObjectBaseClass)
	byName := map[string]*ClassMember{}
	for _, f := range fields {
		byName[f.Symbol.Name] = f
	}
	if len(byName) != 3 {
		t.Fatalf("expected 3 distinct fields (a, b, c), got %d: %v", len(byName), byName)
	}
	if byName["b"].FoundOn != derived {
		t.Errorf("expected 'b' to resolve to Derived's shadowing declaration")
	}
}
