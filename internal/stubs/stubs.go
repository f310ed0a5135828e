// Package stubs loads builtin/external class declarations from a YAML
// file — the typeshed analogue this algebra needs before any real
// parser exists to bind .lang source itself. It is grounded on the
// teacher's internal/ext/config.go, which loads a YAML file describing
// external Go bindings to splice into the evaluator; the same
// yaml.v3-backed shape is repurposed here to describe typesystem.Class
// values instead of Go function bindings.
package stubs

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/typelab/internal/typesystem"
)

// MemberStub is one field/method declaration on a ClassStub.
type MemberStub struct {
	// Name is the member's identifier.
	Name string `yaml:"name"`

	// Type names this member's declared type: either another stub
	// class's Name (yielding an instance of it), a type parameter of
	// the enclosing class, or one of the built-in spellings
	// Any/Unknown/None/Never. Anything else falls back to Any, since
	// resolving an arbitrary type expression is the (out-of-scope)
	// parser's job, not the stub loader's.
	Type string `yaml:"type,omitempty"`

	// ClassMember marks this as a classmethod/classvar rather than an
	// instance member.
	ClassMember bool `yaml:"class_member,omitempty"`
}

// ClassStub is one class declaration.
type ClassStub struct {
	Name       string       `yaml:"name"`
	Bases      []string     `yaml:"bases,omitempty"`
	TypeParams []string     `yaml:"type_params,omitempty"`
	Protocol   bool         `yaml:"protocol,omitempty"`
	TypedDict  bool         `yaml:"typed_dict,omitempty"`
	DataClass  bool         `yaml:"dataclass,omitempty"`
	Members    []MemberStub `yaml:"members,omitempty"`
}

// File is the top-level YAML document shape.
type File struct {
	Classes []ClassStub `yaml:"classes"`
}

// Set is a loaded collection of stub classes, indexed by name, MRO
// already computed.
type Set struct {
	ByName map[string]*typesystem.ClassType
}

// Load reads and parses a stub file from disk.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("stubs: reading %s: %w", path, err)
	}
	return LoadBytes(data)
}

// LoadBytes parses a stub file already in memory.
//
// Classes must be listed in an order where every base named by a
// ClassStub appears earlier in the file — the same constraint a real
// symbol-table builder would impose via a dependency pass over import
// order; the stub loader does not topologically sort on your behalf.
func LoadBytes(data []byte) (*Set, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("stubs: parsing yaml: %w", err)
	}

	set := &Set{ByName: make(map[string]*typesystem.ClassType, len(f.Classes))}
	for _, cs := range f.Classes {
		if _, exists := set.ByName[cs.Name]; exists {
			return nil, fmt.Errorf("stubs: duplicate class %q", cs.Name)
		}
		cls, err := buildClass(set, cs)
		if err != nil {
			return nil, err
		}
		set.ByName[cs.Name] = cls
	}
	return set, nil
}

func buildClass(set *Set, cs ClassStub) (*typesystem.ClassType, error) {
	typeParams := make([]*typesystem.TypeVarType, len(cs.TypeParams))
	for i, name := range cs.TypeParams {
		typeParams[i] = typesystem.NewTypeVar(name, cs.Name)
	}

	bases := make([]*typesystem.ClassType, 0, len(cs.Bases))
	for _, baseName := range cs.Bases {
		base, ok := set.ByName[baseName]
		if !ok {
			return nil, fmt.Errorf("stubs: class %q references unknown base %q (bases must precede their users)", cs.Name, baseName)
		}
		bases = append(bases, base)
	}

	details := &typesystem.ClassDetails{
		ModuleName:       "builtins",
		QualifiedName:    cs.Name,
		SameGenericClass: cs.Name,
		TypeParameters:   typeParams,
		BaseClasses:      bases,
		Fields:           typesystem.NewClassMemberTable(),
		IsProtocol:       cs.Protocol,
		IsTypedDict:      cs.TypedDict,
		IsDataClass:      cs.DataClass,
	}
	cls := typesystem.NewClass(details)
	if ok := typesystem.ComputeMroLinearization(cls); !ok {
		baseNames := make([]string, len(bases))
		for i, b := range bases {
			baseNames[i] = b.Details.QualifiedName
		}
		return nil, typesystem.NewMroLinearizationError(cs.Name, baseNames)
	}

	for _, m := range cs.Members {
		t := resolveTypeExpr(set, typeParams, m.Type)
		details.Fields.Set(m.Name, &typesystem.FieldSymbol{
			Name:                 m.Name,
			IsInstanceMember:     !m.ClassMember,
			IsClassMember:        m.ClassMember,
			HasTypedDeclarations: true,
			Declarations: []typesystem.Declaration{
				{Type: t, IsTyped: true},
			},
		})
	}
	return cls, nil
}

func resolveTypeExpr(set *Set, scopeParams []*typesystem.TypeVarType, expr string) typesystem.Type {
	name := strings.TrimSpace(expr)
	switch name {
	case "", "Any":
		return typesystem.Any()
	case "Unknown":
		return typesystem.Unknown()
	case "None":
		return typesystem.None()
	case "Never":
		return typesystem.Never()
	}
	for _, p := range scopeParams {
		if p.Name == name {
			return p
		}
	}
	if cls, ok := set.ByName[name]; ok {
		return typesystem.AsInstance(cls)
	}
	return typesystem.Any()
}
