// Command typelab is a small demo driver over the typesystem package:
// it builds a couple of sample class hierarchies, runs MRO
// linearization, member lookup and generic specialization over them,
// and prints the results. It plays the role the teacher's cmd/funxy
// gives its own CLI, minus the parser/evaluator front end this repo
// doesn't have: a thin os.Args dispatcher wired straight to library
// calls, no flag package.
package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/funvibe/typelab/internal/render"
	"github.com/funvibe/typelab/internal/stubs"
	"github.com/funvibe/typelab/internal/typesystem"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [args]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  demo             build a sample class hierarchy and print its MRO and members\n")
	fmt.Fprintf(os.Stderr, "  stubs <file>     load a YAML stub file and print each class's MRO\n")
	fmt.Fprintf(os.Stderr, "  stats <file>     load a YAML stub file and summarize member counts\n")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "demo":
		err = runDemo()
	case "stubs":
		if len(os.Args) < 3 {
			fmt.Fprintf(os.Stderr, "Usage: %s stubs <file>\n", os.Args[0])
			os.Exit(1)
		}
		err = runStubs(os.Args[2])
	case "stats":
		if len(os.Args) < 3 {
			fmt.Fprintf(os.Stderr, "Usage: %s stats <file>\n", os.Args[0])
			os.Exit(1)
		}
		err = runStats(os.Args[2])
	case "-help", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// runDemo builds a small diamond hierarchy (Base -> Left, Right ->
// Leaf) plus a generic Container[T], the way a real checker would
// build its builtins module, then prints the interesting algebra
// results: MRO order, a looked-up inherited member, and a
// specialization of the generic container.
func runDemo() error {
	out := os.Stdout

	object := typesystem.NewClass(&typesystem.ClassDetails{
		ModuleName:       "builtins",
		QualifiedName:    "builtins.object",
		SameGenericClass: "builtins.object",
		Fields:           typesystem.NewClassMemberTable(),
	})
	typesystem.ComputeMroLinearization(object)

	base := typesystem.NewClass(&typesystem.ClassDetails{
		ModuleName:       "demo",
		QualifiedName:    "demo.Base",
		SameGenericClass: "demo.Base",
		BaseClasses:      []*typesystem.ClassType{object},
		Fields:           typesystem.NewClassMemberTable(),
	})
	base.Details.Fields.Set("greet", &typesystem.FieldSymbol{
		Name:                 "greet",
		IsInstanceMember:     true,
		HasTypedDeclarations: true,
		Declarations: []typesystem.Declaration{
			{Type: typesystem.NewFunction(nil, typesystem.AsInstance(stringClass())), IsTyped: true},
		},
	})
	typesystem.ComputeMroLinearization(base)

	left := typesystem.NewClass(&typesystem.ClassDetails{
		ModuleName: "demo", QualifiedName: "demo.Left", SameGenericClass: "demo.Left",
		BaseClasses: []*typesystem.ClassType{base}, Fields: typesystem.NewClassMemberTable(),
	})
	typesystem.ComputeMroLinearization(left)

	right := typesystem.NewClass(&typesystem.ClassDetails{
		ModuleName: "demo", QualifiedName: "demo.Right", SameGenericClass: "demo.Right",
		BaseClasses: []*typesystem.ClassType{base}, Fields: typesystem.NewClassMemberTable(),
	})
	typesystem.ComputeMroLinearization(right)

	leaf := typesystem.NewClass(&typesystem.ClassDetails{
		ModuleName: "demo", QualifiedName: "demo.Leaf", SameGenericClass: "demo.Leaf",
		BaseClasses: []*typesystem.ClassType{left, right}, Fields: typesystem.NewClassMemberTable(),
	})
	typesystem.ComputeMroLinearization(leaf)

	fmt.Fprintf(out, "Leaf MRO: %s\n", render.MRO(out, leaf))

	m, ok := typesystem.LookUpClassMember(leaf, "greet", typesystem.MemberLookupDefault)
	if !ok {
		return fmt.Errorf("expected to find 'greet' inherited on demo.Leaf")
	}
	fmt.Fprintf(out, "Leaf.greet resolves to %s\n", render.Dim(out, render.Member(m)))

	tv := typesystem.NewTypeVar("T", "demo.Container")
	container := typesystem.NewClass(&typesystem.ClassDetails{
		ModuleName: "demo", QualifiedName: "demo.Container", SameGenericClass: "demo.Container",
		TypeParameters: []*typesystem.TypeVarType{tv},
		BaseClasses:    []*typesystem.ClassType{object},
		Fields:         typesystem.NewClassMemberTable(),
	})
	container.Details.Fields.Set("value", &typesystem.FieldSymbol{
		Name: "value", IsInstanceMember: true, HasTypedDeclarations: true,
		Declarations: []typesystem.Declaration{{Type: tv, IsTyped: true}},
	})
	typesystem.ComputeMroLinearization(container)

	specialized := typesystem.SpecializeWithTypeArgs(container, []*typesystem.TypeVarType{tv}, []typesystem.Type{typesystem.AsInstance(stringClass())})
	fmt.Fprintf(out, "Container[T] specialized with str: %s\n", specialized.String())

	return nil
}

func runStubs(path string) error {
	set, err := stubs.Load(path)
	if err != nil {
		return err
	}
	out := os.Stdout
	for _, name := range sortedKeys(set) {
		cls := set.ByName[name]
		fmt.Fprintf(out, "%s: %s\n", name, render.MRO(out, cls))
	}
	return nil
}

func runStats(path string) error {
	set, err := stubs.Load(path)
	if err != nil {
		return err
	}

	memberCount := 0
	mroLinks := 0
	for _, cls := range set.ByName {
		memberCount += cls.Details.Fields.Len()
		mroLinks += len(cls.Details.MRO)
	}

	fmt.Printf("classes:       %s\n", humanize.Comma(int64(len(set.ByName))))
	fmt.Printf("own members:   %s\n", humanize.Comma(int64(memberCount)))
	fmt.Printf("MRO entries:   %s (across all classes, ancestors counted once per descendant)\n", humanize.Comma(int64(mroLinks)))
	return nil
}

func sortedKeys(set *stubs.Set) []string {
	keys := make([]string, 0, len(set.ByName))
	for k := range set.ByName {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

// stringClass is a minimal standalone builtins.str stand-in used only
// by the demo command, which doesn't load a stub file.
func stringClass() *typesystem.ClassType {
	c := typesystem.NewClass(&typesystem.ClassDetails{
		ModuleName: "builtins", QualifiedName: "builtins.str", SameGenericClass: "builtins.str",
		Fields: typesystem.NewClassMemberTable(),
	})
	typesystem.ComputeMroLinearization(c)
	return c
}
