package typesystem

import "testing"

func mroNames(c *ClassType) []string {
	names := make([]string, len(c.Details.MRO))
	for i, m := range c.Details.MRO {
		names[i] = m.Details.QualifiedName
	}
	return names
}

func sameNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestMroDiamond(t *testing.T) {
	o := newObjectClass()
	a := newConcreteClass("A", o)
	b := newConcreteClass("B", o)
	c := newConcreteClass("C", a, b)

	if !c.Details.MROOk {
		t.Fatalf("expected a consistent MRO for a simple diamond")
	}
	want := []string{"C", "A", "B", "builtins.object"}
	got := mroNames(c)
	if !sameNames(got, want) {
		t.Errorf("MRO(C) = %v, want %v", got, want)
	}
	if c.Details.MRO[0] != c {
		t.Errorf("MRO[0] must be the class itself")
	}
}

func TestMroMonotonic(t *testing.T) {
	// Every base's own MRO order must be preserved as a (not
	// necessarily contiguous) subsequence of the merged MRO.
	o := newObjectClass()
	a := newConcreteClass("A", o)
	b := newConcreteClass("B", a)
	c := newConcreteClass("C", b)

	got := mroNames(c)
	want := []string{"C", "B", "A", "builtins.object"}
	if !sameNames(got, want) {
		t.Errorf("MRO(C) = %v, want %v", got, want)
	}
}

func TestMroInconsistentHierarchyDegradesGracefully(t *testing.T) {
	o := newObjectClass()
	a := newConcreteClass("A", o)
	b := newConcreteClass("B", o)

	// X(A, B), Y(B, A): X and Y disagree on the order of A and B
	// relative to each other when both are later combined.
	x := newConcreteClass("X", a, b)
	y := newConcreteClass("Y", b, a)
	z := newConcreteClass("Z", x, y)

	if z.Details.MROOk {
		t.Fatalf("expected linearization to fail for a contradictory hierarchy")
	}
	if len(z.Details.MRO) == 0 || z.Details.MRO[0] != z {
		t.Errorf("even a failed linearization must keep MRO[0] as the class itself")
	}
}

func TestMroGenericBaseSpecialization(t *testing.T) {
	tv := NewTypeVar("T", "Container")
	tv.Variance = VarianceCovariant

	o := newObjectClass()
	container := newConcreteClass("Container", o)
	container.Details.TypeParameters = []*TypeVarType{tv}

	intClass := newConcreteClass("int", o)

	sub := newConcreteClass("IntContainer", withArgs(container, intClass))
	if !sub.Details.MROOk {
		t.Fatalf("expected consistent MRO")
	}
	found := false
	for _, m := range sub.Details.MRO {
		if m.Details.QualifiedName == "Container" {
			found = true
			if len(m.TypeArguments) != 1 || !IsTypeSame(m.TypeArguments[0], intClass, SameTypeOptions{}) {
				t.Errorf("expected Container to be specialized to int in IntContainer's MRO, got %v", m.TypeArguments)
			}
		}
	}
	if !found {
		t.Fatalf("expected Container to appear in IntContainer's MRO")
	}
}

// withArgs returns a clone of tmpl specialized with the given
// arguments, as if written `Container[int]` in a base-class list.
func withArgs(tmpl *ClassType, args ...Type) *ClassType {
	cp := tmpl.clone()
	cp.TypeArguments = args
	return cp
}
