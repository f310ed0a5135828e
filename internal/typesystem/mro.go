package typesystem

// ComputeMroLinearization fills in details.MRO and details.MROOk using
// a C3 linearization of the class's declared bases (spec.md §5). It
// reports the same boolean it stores in MROOk: false means the bases
// could not be linearized consistently (a diamond with conflicting
// orders), in which case MRO still gets a deterministic, usable value
// — MRO[0] is always the class itself — rather than being left empty.
func ComputeMroLinearization(c *ClassType) bool {
	details := c.Details
	bases := filterLinearizationBases(details)

	if len(bases) == 0 {
		details.MRO = []*ClassType{c}
		details.MROOk = true
		return true
	}

	lists := make([][]*ClassType, 0, len(bases)+1)
	for _, b := range bases {
		lists = append(lists, partialSpecializeAncestors(b, details, c))
	}
	lists = append(lists, append([]*ClassType(nil), bases...))

	merged, ok := c3Merge(lists)
	result := make([]*ClassType, 0, len(merged)+1)
	result = append(result, c)
	result = append(result, merged...)

	details.MRO = result
	details.MROOk = ok
	return ok
}

// filterLinearizationBases drops a bare `Generic[...]` base for
// protocols, and whenever some other declared base already carries
// explicit type arguments — Generic's only job is to declare the
// class's type parameters, and once another base pins them down it
// contributes nothing further to the ordering (spec.md §5, edge case
// "Generic base filtering").
func filterLinearizationBases(details *ClassDetails) []*ClassType {
	if len(details.BaseClasses) == 0 {
		return nil
	}
	hasSpecializedOther := false
	for _, b := range details.BaseClasses {
		if !isGenericMarkerBase(b) && b.TypeArguments != nil {
			hasSpecializedOther = true
			break
		}
	}
	out := make([]*ClassType, 0, len(details.BaseClasses))
	for _, b := range details.BaseClasses {
		if isGenericMarkerBase(b) && (details.IsProtocol || hasSpecializedOther) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func isGenericMarkerBase(b *ClassType) bool {
	return b.Details != nil && b.Details.SameGenericClass == "typing.Generic"
}

// partialSpecializeAncestors returns base's own MRO (including base
// itself at index 0) with base's declared type parameters replaced by
// the type arguments sub's declaration applies to it, which may in
// turn reference sub's own (still-unbound, from this call's point of
// view) type parameters — this is the "two-stage" substitution: first
// base is specialized against owner's type arguments (if owner is
// itself specialized), then base's ancestor list is specialized
// against base's resulting arguments.
func partialSpecializeAncestors(base *ClassType, sub *ClassDetails, owner *ClassType) []*ClassType {
	b := base
	if len(sub.TypeParameters) > 0 && owner.TypeArguments != nil {
		if specialized, ok := SpecializeWithTypeArgs(base, sub.TypeParameters, owner.TypeArguments).(*ClassType); ok {
			b = specialized
		}
	}

	if b.Details == nil || len(b.Details.MRO) == 0 {
		return []*ClassType{b}
	}
	if len(b.Details.TypeParameters) == 0 || b.TypeArguments == nil {
		return b.Details.MRO
	}

	out := make([]*ClassType, 0, len(b.Details.MRO))
	for i, ancestor := range b.Details.MRO {
		if i == 0 {
			out = append(out, b)
			continue
		}
		if specialized, ok := SpecializeWithTypeArgs(ancestor, b.Details.TypeParameters, b.TypeArguments).(*ClassType); ok {
			out = append(out, specialized)
		} else {
			out = append(out, ancestor)
		}
	}
	return out
}

// c3Merge implements the standard C3 merge: repeatedly take the head
// of the first list that does not appear in the tail of any list.
// When no such head exists, the hierarchy is inconsistent; rather than
// fail, the lowest-indexed list's head is taken anyway and ok is set
// false, so the caller always gets a total, if approximate, order.
func c3Merge(input [][]*ClassType) ([]*ClassType, bool) {
	lists := make([][]*ClassType, 0, len(input))
	for _, l := range input {
		if len(l) > 0 {
			lists = append(lists, append([]*ClassType(nil), l...))
		}
	}

	var result []*ClassType
	ok := true
	for len(lists) > 0 {
		head := selectMergeHead(lists)
		if head == nil {
			ok = false
			head = lists[0][0]
		}
		result = append(result, head)

		next := lists[:0]
		for _, l := range lists {
			if sameClassIdentity(l[0], head) {
				l = l[1:]
			}
			if len(l) > 0 {
				next = append(next, l)
			}
		}
		lists = next
	}
	return result, ok
}

// selectMergeHead returns the first list's head that is not present
// in the tail of any list, or nil if no candidate qualifies.
func selectMergeHead(lists [][]*ClassType) *ClassType {
	for _, l := range lists {
		cand := l[0]
		inAnyTail := false
		for _, other := range lists {
			for _, t := range other[1:] {
				if sameClassIdentity(t, cand) {
					inAnyTail = true
					break
				}
			}
			if inAnyTail {
				break
			}
		}
		if !inAnyTail {
			return cand
		}
	}
	return nil
}

// sameClassIdentity compares by generic-template identity, not full
// structural equality: every specialization of the same template
// occupies one slot in the MRO.
func sameClassIdentity(a, b *ClassType) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Details.SameGenericClass == b.Details.SameGenericClass
}
