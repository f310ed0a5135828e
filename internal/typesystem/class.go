package typesystem

import (
	"fmt"
	"strings"

	"github.com/funvibe/typelab/internal/ast"
)

// Declaration is one textual declaration of a class member (a class
// can be reopened / a field re-declared under `if TYPE_CHECKING`
// style branches, so a FieldSymbol may carry more than one).
type Declaration struct {
	Type    Type
	IsTyped bool
	Node    ast.Node
}

// FieldSymbol is the symbol record spec.md §3 describes for a class's
// `fields` table: enough to tell the checker how a name was introduced
// without re-deriving it from syntax.
type FieldSymbol struct {
	Name                 string
	IsInstanceMember     bool
	IsClassMember        bool
	IsClassVar           bool
	HasTypedDeclarations bool
	Declarations         []Declaration
}

// EffectiveType returns the most recent typed declaration's type, or
// the most recent declaration's type if none are typed.
func (f *FieldSymbol) EffectiveType() Type {
	var fallback Type
	for i := len(f.Declarations) - 1; i >= 0; i-- {
		d := f.Declarations[i]
		if d.IsTyped {
			return d.Type
		}
		if fallback == nil {
			fallback = d.Type
		}
	}
	return fallback
}

// ClassMemberTable is an insertion-ordered symbol table, name -> field
// record, the data structure Class.Fields is built from.
type ClassMemberTable struct {
	order []string
	byName map[string]*FieldSymbol
}

func NewClassMemberTable() *ClassMemberTable {
	return &ClassMemberTable{byName: make(map[string]*FieldSymbol)}
}

// Set inserts or replaces the field record for name.
func (m *ClassMemberTable) Set(name string, f *FieldSymbol) {
	if _, exists := m.byName[name]; !exists {
		m.order = append(m.order, name)
	}
	m.byName[name] = f
}

// Get looks up a field record by name.
func (m *ClassMemberTable) Get(name string) (*FieldSymbol, bool) {
	f, ok := m.byName[name]
	return f, ok
}

// Names returns field names in insertion order.
func (m *ClassMemberTable) Names() []string { return m.order }

// Len returns the number of fields.
func (m *ClassMemberTable) Len() int { return len(m.order) }

// TupleTypeArgument is one structural element of a tuple-class
// (spec.md §3): a type plus whether it represents an unbounded
// (`*tuple[int, ...]`-style) tail.
type TupleTypeArgument struct {
	Type        Type
	IsUnbounded bool
}

// ClassDetails is the part of a Class that is shared by every
// specialization of the same generic template: its identity, declared
// type parameters, base classes, computed MRO and member table. This
// mirrors how funvibe-funxy's TCon keeps Module/TypeParams/
// UnderlyingType in the flat struct but here is split out because,
// unlike a TCon, a Class's MRO and Fields are expensive to compute and
// must be shared identically across every specialization.
type ClassDetails struct {
	ModuleName        string
	QualifiedName     string
	SameGenericClass  string // identity key shared by every specialization

	TypeParameters []*TypeVarType // declared, ordered

	BaseClasses []*ClassType // in declaration order

	MRO   []*ClassType // computed by ComputeMroLinearization; MRO[0] is the class itself
	MROOk bool         // false if linearization could not find a consistent order

	Fields *ClassMemberTable

	IsProtocol       bool
	IsTypedDict      bool
	IsDataClass      bool
	IsPseudoGeneric  bool
	IsSpecialBuiltin bool

	EffectiveMetaclass *ClassType

	// IsTupleClass marks details built for a tuple specialization; such
	// classes additionally carry structural TupleTypeArguments on the
	// ClassType itself rather than (or in addition to) TypeArguments.
	IsTupleClass bool
}

// ClassType is a (possibly specialized) reference to a class. Two
// ClassType values describe the same generic template iff their
// Details.SameGenericClass keys match; TypeArguments (when present)
// then distinguish specializations of that template.
type ClassType struct {
	typeBase

	Details *ClassDetails

	// TypeArguments holds one Type per declared type parameter, in the
	// same order; nil means the class is unspecialized. Invariant 1
	// (spec.md §3): when present, len(TypeArguments) ==
	// len(Details.TypeParameters), and each argument's "is this a
	// param-spec value" matches the corresponding parameter's kind.
	TypeArguments []Type

	// TupleTypeArguments is the structural element list for a
	// tuple-class (invariant 6: at most one IsUnbounded entry, or one
	// unpacked variadic TypeVar entry).
	TupleTypeArguments []TupleTypeArgument
	IsUnpacked         bool

	// LiteralValue is non-nil when this is a literal type (e.g.
	// Literal[3]): an instance of a class parameterized by a
	// compile-time-known value.
	LiteralValue interface{}
}

// NewClass creates an unspecialized class reference for the given
// details, flagged as an instantiable (type-object) reference by
// default; call AsInstance to get the corresponding instance type.
func NewClass(details *ClassDetails) *ClassType {
	return &ClassType{
		typeBase: typeBase{flags: FlagInstantiable},
		Details:  details,
	}
}

func (t *ClassType) Category() Category { return CategoryClass }
func (t *ClassType) base() *typeBase    { return &t.typeBase }

// HasTypeParameters reports whether the class template declares any
// type parameters (used by requiresSpecialization, C4.5).
func (t *ClassType) HasTypeParameters() bool {
	return len(t.Details.TypeParameters) > 0
}

// IsUnspecialized reports whether no type arguments have been applied
// yet to a generic class template.
func (t *ClassType) IsUnspecialized() bool {
	return t.HasTypeParameters() && t.TypeArguments == nil
}

func (t *ClassType) clone() *ClassType {
	cp := *t
	cp.cache = nil
	if t.TypeArguments != nil {
		cp.TypeArguments = append([]Type(nil), t.TypeArguments...)
	}
	if t.TupleTypeArguments != nil {
		cp.TupleTypeArguments = append([]TupleTypeArgument(nil), t.TupleTypeArguments...)
	}
	return &cp
}

func (t *ClassType) String() string {
	name := t.Details.QualifiedName
	if name == "" {
		name = t.Details.SameGenericClass
	}
	if t.LiteralValue != nil {
		return nameLiteral(t.LiteralValue)
	}
	if len(t.TupleTypeArguments) > 0 {
		parts := make([]string, len(t.TupleTypeArguments))
		for i, a := range t.TupleTypeArguments {
			s := "?"
			if a.Type != nil {
				s = a.Type.String()
			}
			if a.IsUnbounded {
				s += ", ..."
			}
			parts[i] = s
		}
		return name + "[" + strings.Join(parts, ", ") + "]"
	}
	if len(t.TypeArguments) == 0 {
		if !GetFlags(t).Has(FlagInstance) {
			return "type[" + name + "]"
		}
		return name
	}
	parts := make([]string, len(t.TypeArguments))
	for i, a := range t.TypeArguments {
		if a == nil {
			parts[i] = "Unknown"
			continue
		}
		parts[i] = a.String()
	}
	suffix := name + "[" + strings.Join(parts, ", ") + "]"
	if !GetFlags(t).Has(FlagInstance) {
		return "type[" + suffix + "]"
	}
	return suffix
}

func nameLiteral(v interface{}) string {
	if s, ok := v.(string); ok {
		return "Literal['" + s + "']"
	}
	return fmt.Sprintf("Literal[%v]", v)
}
