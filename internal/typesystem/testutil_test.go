package typesystem

// Shared fixtures for the typesystem test suite: a tiny class
// hierarchy builder so each _test.go file doesn't re-derive its own
// notion of "a class with bases and a MRO".

func newClassDetails(qualifiedName string, bases ...*ClassType) *ClassDetails {
	d := &ClassDetails{
		ModuleName:       "test",
		QualifiedName:    qualifiedName,
		SameGenericClass: qualifiedName,
		BaseClasses:      bases,
		Fields:           NewClassMemberTable(),
	}
	return d
}

// newConcreteClass builds and MRO-links a non-generic class from
// already-linked bases.
func newConcreteClass(name string, bases ...*ClassType) *ClassType {
	d := newClassDetails(name, bases...)
	c := NewClass(d)
	ComputeMroLinearization(c)
	return c
}

func newObjectClass() *ClassType {
	return newConcreteClass("builtins.object")
}

func addField(c *ClassType, name string, t Type, instance bool) {
	c.Details.Fields.Set(name, &FieldSymbol{
		Name:                 name,
		IsInstanceMember:     instance,
		IsClassMember:        !instance,
		HasTypedDeclarations: true,
		Declarations:         []Declaration{{Type: t, IsTyped: true}},
	})
}

func newGenericDetails(qualifiedName string, params []*TypeVarType, bases ...*ClassType) *ClassDetails {
	d := newClassDetails(qualifiedName, bases...)
	d.TypeParameters = params
	return d
}
