package typesystem

// IsVarianceOfTypeArgumentCompatible decides whether argA may stand
// in for argB at a type-parameter position declared with the given
// variance (spec.md §4.7). Full assignability between arbitrary types
// is the checker's job (out of scope here, see SPEC_FULL.md); this
// relation only needs to be precise for the recursive case the spec
// names: two instantiations of the *same* generic template, compared
// position by position using each position's own declared variance.
//
//   - VarianceUnknown / VarianceAuto: always compatible. A parameter
//     whose variance hasn't been determined yet (or is explicitly
//     "infer from use") can't be used to reject anything.
//   - Two occurrences of the identical type variable are always
//     compatible regardless of declared variance — substituting a
//     variable for itself changes nothing.
//   - VarianceInvariant: argA and argB must be structurally identical.
//   - VarianceCovariant: argA must be a (structural) subtype of argB.
//   - VarianceContravariant: argB must be a (structural) subtype of
//     argA — the relation is simply run backwards.
func IsVarianceOfTypeArgumentCompatible(variance Variance, argA, argB Type) bool {
	if variance == VarianceUnknown || variance == VarianceAuto {
		return true
	}
	if tvA, ok := argA.(*TypeVarType); ok {
		if tvB, ok2 := argB.(*TypeVarType); ok2 && tvA.Identity() == tvB.Identity() {
			return true
		}
	}
	switch variance {
	case VarianceCovariant:
		return isStructuralSubtype(argA, argB)
	case VarianceContravariant:
		return isStructuralSubtype(argB, argA)
	default: // VarianceInvariant
		return IsTypeSame(argA, argB, SameTypeOptions{})
	}
}

// isStructuralSubtype is the narrow compatibility check C7 needs: it
// is exact for identical types, permissive for the gradual types (Any,
// Unknown) and Never, and for two classes either compares same-template
// instantiations argument-by-argument (recursing through
// IsVarianceOfTypeArgumentCompatible using each parameter's own
// declared variance — the "composition" spec.md §4.7 describes) or
// walks sub's MRO to find an ancestor sharing super's template.
func isStructuralSubtype(sub, super Type) bool {
	if IsTypeSame(sub, super, SameTypeOptions{}) {
		return true
	}
	switch super.(type) {
	case *AnyType, *UnknownType:
		return true
	}
	if _, ok := sub.(*NeverType); ok {
		return true
	}

	subClass, subOk := sub.(*ClassType)
	superClass, superOk := super.(*ClassType)
	if !subOk || !superOk {
		return false
	}

	if subClass.Details.SameGenericClass == superClass.Details.SameGenericClass {
		return classArgsCompatible(subClass, superClass)
	}

	for _, ancestor := range subClass.Details.MRO {
		if ancestor.Details.SameGenericClass != superClass.Details.SameGenericClass {
			continue
		}
		specialized := ancestor
		if subClass.TypeArguments != nil && len(subClass.Details.TypeParameters) > 0 {
			if c, ok := SpecializeWithTypeArgs(ancestor, subClass.Details.TypeParameters, subClass.TypeArguments).(*ClassType); ok {
				specialized = c
			}
		}
		return classArgsCompatible(specialized, superClass)
	}
	return false
}

func classArgsCompatible(a, b *ClassType) bool {
	if len(a.TypeArguments) != len(b.TypeArguments) {
		return len(a.TypeArguments) == 0 || len(b.TypeArguments) == 0
	}
	for i := range a.TypeArguments {
		variance := VarianceInvariant
		if i < len(a.Details.TypeParameters) {
			variance = a.Details.TypeParameters[i].Variance
		}
		if !IsVarianceOfTypeArgumentCompatible(variance, a.TypeArguments[i], b.TypeArguments[i]) {
			return false
		}
	}
	return true
}
