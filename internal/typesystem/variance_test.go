package typesystem

import "testing"

func TestVarianceUnknownAndAutoAreAlwaysCompatible(t *testing.T) {
	o := newObjectClass()
	a := newConcreteClass("A", o)
	b := newConcreteClass("B", o)
	if !IsVarianceOfTypeArgumentCompatible(VarianceUnknown, a, b) {
		t.Errorf("VarianceUnknown must accept any pair of arguments")
	}
	if !IsVarianceOfTypeArgumentCompatible(VarianceAuto, a, b) {
		t.Errorf("VarianceAuto must accept any pair of arguments")
	}
}

func TestVarianceSameTypeVarIsAlwaysCompatible(t *testing.T) {
	tv := NewTypeVar("T", "fn")
	if !IsVarianceOfTypeArgumentCompatible(VarianceInvariant, tv, tv) {
		t.Errorf("a type variable substituted for itself must always be compatible")
	}
}

func TestVarianceInvariantRequiresIdentity(t *testing.T) {
	o := newObjectClass()
	a := newConcreteClass("A", o)
	b := newConcreteClass("B", o)
	if IsVarianceOfTypeArgumentCompatible(VarianceInvariant, a, b) {
		t.Errorf("two unrelated classes must not be invariantly compatible")
	}
	if !IsVarianceOfTypeArgumentCompatible(VarianceInvariant, a, a) {
		t.Errorf("a class must be invariantly compatible with itself")
	}
}

func TestVarianceCovariantFollowsMRO(t *testing.T) {
	o := newObjectClass()
	animal := newConcreteClass("Animal", o)
	dog := newConcreteClass("Dog", animal)

	if !IsVarianceOfTypeArgumentCompatible(VarianceCovariant, dog, animal) {
		t.Errorf("Dog should be covariantly compatible with Animal (Dog is-a Animal)")
	}
	if IsVarianceOfTypeArgumentCompatible(VarianceCovariant, animal, dog) {
		t.Errorf("Animal should not be covariantly compatible with Dog")
	}
}

func TestVarianceContravariantIsReversed(t *testing.T) {
	o := newObjectClass()
	animal := newConcreteClass("Animal", o)
	dog := newConcreteClass("Dog", animal)

	if !IsVarianceOfTypeArgumentCompatible(VarianceContravariant, animal, dog) {
		t.Errorf("Animal should be contravariantly compatible with Dog")
	}
	if IsVarianceOfTypeArgumentCompatible(VarianceContravariant, dog, animal) {
		t.Errorf("Dog should not be contravariantly compatible with Animal")
	}
}

func TestVarianceComposesThroughNestedGenericArguments(t *testing.T) {
	elem := NewTypeVar("T", "Box")
	elem.Variance = VarianceCovariant

	o := newObjectClass()
	boxDetails := newGenericDetails("Box", []*TypeVarType{elem}, o)
	box := NewClass(boxDetails)
	ComputeMroLinearization(box)

	animal := newConcreteClass("Animal", o)
	dog := newConcreteClass("Dog", animal)

	boxOfDog := box.clone()
	boxOfDog.TypeArguments = []Type{dog}
	boxOfAnimal := box.clone()
	boxOfAnimal.TypeArguments = []Type{animal}

	// Box is covariant in T, so Box[Dog] should be compatible where
	// Box[Animal] is expected under a covariant outer position.
	if !IsVarianceOfTypeArgumentCompatible(VarianceCovariant, boxOfDog, boxOfAnimal) {
		t.Errorf("expected Box[Dog] to be covariantly compatible with Box[Animal]")
	}
	if IsVarianceOfTypeArgumentCompatible(VarianceCovariant, boxOfAnimal, boxOfDog) {
		t.Errorf("expected Box[Animal] to NOT be covariantly compatible with Box[Dog]")
	}
}
