package typesystem

// MemberLookupFlags tunes LookUpClassMember / LookUpObjectMember
// (spec.md §6). The zero value, MemberLookupDefault, walks the full
// MRO including the class's own Fields table.
type MemberLookupFlags uint16

const (
	MemberLookupDefault MemberLookupFlags = 0

	// MemberLookupSkipOriginalClass starts the walk at the class's
	// first base rather than the class itself — used by `super()`.
	MemberLookupSkipOriginalClass MemberLookupFlags = 1 << iota

	// MemberLookupSkipBaseClasses stops after the original class,
	// never walking into MRO[1:] at all.
	MemberLookupSkipBaseClasses

	// MemberLookupSkipObjectBaseClass skips `object` itself, so a
	// lookup that falls all the way through the hierarchy reports "not
	// found" rather than surfacing object's generic member stubs.
	MemberLookupSkipObjectBaseClass

	// MemberLookupSkipInstanceVariables ignores fields declared as
	// instance-only (not also a class variable) — used when looking up
	// a member through the class object itself rather than an
	// instance.
	MemberLookupSkipInstanceVariables

	// MemberLookupDeclaredTypesOnly skips fields whose only
	// declarations are untyped (inferred-only) assignments, continuing
	// the MRO walk instead of accepting the first textual match.
	MemberLookupDeclaredTypesOnly

	// MemberLookupSkipTypeBaseClass skips `type` (the metaclass root),
	// analogous to MemberLookupSkipObjectBaseClass.
	MemberLookupSkipTypeBaseClass
)

func (f MemberLookupFlags) has(bit MemberLookupFlags) bool { return f&bit != 0 }

// ClassMember is the result of a successful member lookup: the field
// record as declared, its type after specializing against the MRO
// entry's type arguments, and which MRO entry it was found on.
type ClassMember struct {
	Symbol    *FieldSymbol
	Type      Type
	FoundOn   *ClassType
	IsInstanceMember bool
	IsClassMember    bool

	// SkippedUndeclaredType is set when MemberLookupDeclaredTypesOnly
	// caused at least one untyped match to be passed over in favor of
	// continuing the search (spec.md §6 edge case).
	SkippedUndeclaredType bool
}

const builtinObjectIdentity = "builtins.object"
const builtinTypeIdentity = "builtins.type"

// effectiveMemberFlags applies spec.md §4.7's data-class/typed-dict
// edge case: a class-body variable with a declared type is, on those
// two kinds of class, bound per instance (like a constructor
// parameter) rather than shared on the class object, regardless of
// how its own declaration would otherwise read.
func effectiveMemberFlags(entry *ClassType, fs *FieldSymbol) (isInstanceMember, isClassMember bool) {
	if fs.HasTypedDeclarations && (entry.Details.IsDataClass || entry.Details.IsTypedDict) {
		return true, false
	}
	return fs.IsInstanceMember, fs.IsClassMember
}

// LookUpClassMember searches cls's MRO (spec.md §6) for name, applying
// flags, and specializes the found field's declared type against the
// MRO entry's type arguments before returning it.
func LookUpClassMember(cls *ClassType, name string, flags MemberLookupFlags) (*ClassMember, bool) {
	mro := cls.Details.MRO
	if len(mro) == 0 {
		mro = []*ClassType{cls}
	}

	var skippedUndeclared bool
	for i, entry := range mro {
		if i == 0 && flags.has(MemberLookupSkipOriginalClass) {
			continue
		}
		if i > 0 && flags.has(MemberLookupSkipBaseClasses) {
			break
		}
		if flags.has(MemberLookupSkipObjectBaseClass) && entry.Details.SameGenericClass == builtinObjectIdentity {
			continue
		}
		if flags.has(MemberLookupSkipTypeBaseClass) && entry.Details.SameGenericClass == builtinTypeIdentity {
			continue
		}
		if entry.Details.Fields == nil {
			continue
		}
		fs, ok := entry.Details.Fields.Get(name)
		if !ok {
			continue
		}
		isInstanceMember, isClassMember := effectiveMemberFlags(entry, fs)
		if flags.has(MemberLookupSkipInstanceVariables) && isInstanceMember && !isClassMember {
			continue
		}
		if flags.has(MemberLookupDeclaredTypesOnly) && !fs.HasTypedDeclarations {
			skippedUndeclared = true
			continue
		}

		t := fs.EffectiveType()
		if entry.TypeArguments != nil && len(entry.Details.TypeParameters) > 0 {
			t = SpecializeWithTypeArgs(t, entry.Details.TypeParameters, entry.TypeArguments)
		}
		return &ClassMember{
			Symbol:                fs,
			Type:                  t,
			FoundOn:               entry,
			IsInstanceMember:      isInstanceMember,
			IsClassMember:         isClassMember,
			SkippedUndeclaredType: skippedUndeclared,
		}, true
	}
	return nil, false
}

// LookUpObjectMember is LookUpClassMember generalized to any Type:
// Any and Unknown synthesize a member of their own category (looking
// up anything on an Any-typed value yields Any, per spec.md §6), a
// Union requires the member to exist on every subtype and yields the
// union of their types, and anything else without class structure
// (Function, Module handled by its own Fields, TypeVar) reports "not
// found" rather than guessing.
func LookUpObjectMember(t Type, name string, flags MemberLookupFlags) (*ClassMember, bool) {
	switch tt := t.(type) {
	case *AnyType:
		return &ClassMember{Type: Any()}, true
	case *UnknownType:
		return &ClassMember{Type: Unknown()}, true
	case *ClassType:
		return LookUpClassMember(tt, name, flags)
	case *ModuleType:
		if tt.Fields == nil {
			return nil, false
		}
		fs, ok := tt.Fields.Get(name)
		if !ok {
			return nil, false
		}
		return &ClassMember{Symbol: fs, Type: fs.EffectiveType()}, true
	case *UnionType:
		return lookUpUnionMember(tt, name, flags)
	default:
		return nil, false
	}
}

func lookUpUnionMember(u *UnionType, name string, flags MemberLookupFlags) (*ClassMember, bool) {
	types := make([]Type, 0, len(u.Subtypes))
	var any bool
	for _, sub := range u.Subtypes {
		m, ok := LookUpObjectMember(sub, name, flags)
		if !ok {
			return nil, false
		}
		any = any || m.SkippedUndeclaredType
		types = append(types, m.Type)
	}
	return &ClassMember{Type: MakeUnion(types...), SkippedUndeclaredType: any}, true
}

// GetClassFieldsRecursive returns one ClassMember per distinct field
// name visible across cls's entire MRO, each shadowed only by the
// first (most-derived) MRO entry that declares it.
func GetClassFieldsRecursive(cls *ClassType, flags MemberLookupFlags) []*ClassMember {
	seen := make(map[string]bool)
	var result []*ClassMember

	mro := cls.Details.MRO
	if len(mro) == 0 {
		mro = []*ClassType{cls}
	}
	for i, entry := range mro {
		if i > 0 && flags.has(MemberLookupSkipBaseClasses) {
			break
		}
		if flags.has(MemberLookupSkipObjectBaseClass) && entry.Details.SameGenericClass == builtinObjectIdentity {
			continue
		}
		if flags.has(MemberLookupSkipTypeBaseClass) && entry.Details.SameGenericClass == builtinTypeIdentity {
			continue
		}
		if entry.Details.Fields == nil {
			continue
		}
		for _, name := range entry.Details.Fields.Names() {
			if seen[name] {
				continue
			}
			fs, _ := entry.Details.Fields.Get(name)
			isInstanceMember, isClassMember := effectiveMemberFlags(entry, fs)
			if flags.has(MemberLookupSkipInstanceVariables) && isInstanceMember && !isClassMember {
				continue
			}
			if flags.has(MemberLookupDeclaredTypesOnly) && !fs.HasTypedDeclarations {
				continue
			}
			seen[name] = true
			t := fs.EffectiveType()
			if entry.TypeArguments != nil && len(entry.Details.TypeParameters) > 0 {
				t = SpecializeWithTypeArgs(t, entry.Details.TypeParameters, entry.TypeArguments)
			}
			result = append(result, &ClassMember{
				Symbol:           fs,
				Type:             t,
				FoundOn:          entry,
				IsInstanceMember: isInstanceMember,
				IsClassMember:    isClassMember,
			})
		}
	}
	return result
}
