// Package render formats typesystem.Type values and MRO chains for
// terminal output, the same way the teacher's String() methods are
// gated by internal/config's test/LSP flags — dimming here is the
// terminal-output analogue of that normalization, applied only when
// stdout is actually a TTY.
package render

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/typelab/internal/typesystem"
)

const dimStart = "\x1b[2m"
const dimEnd = "\x1b[0m"

// IsTerminal reports whether fd looks like an interactive terminal,
// mirroring the teacher's builtins_term.go isatty/cygwin check.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Dim wraps s in the terminal's dim-text escape sequence when out is
// a TTY, else returns s unchanged.
func Dim(out *os.File, s string) string {
	if !IsTerminal(out) {
		return s
	}
	return dimStart + s + dimEnd
}

// MRO renders a class's linearization as an arrow chain, dimming
// `object`/`type` (the two entries nearly every chain ends with) when
// printing to a terminal so the interesting, class-specific prefix
// stands out.
func MRO(out *os.File, c *typesystem.ClassType) string {
	mro := c.Details.MRO
	parts := make([]string, len(mro))
	for i, m := range mro {
		name := m.Details.QualifiedName
		if name == "builtins.object" || name == "builtins.type" {
			name = Dim(out, name)
		}
		parts[i] = name
	}
	suffix := ""
	if !c.Details.MROOk {
		suffix = " " + Dim(out, "(inconsistent; approximate order shown)")
	}
	return strings.Join(parts, " -> ") + suffix
}

// Member renders one found ClassMember as "name: Type  (on Owner)".
func Member(m *typesystem.ClassMember) string {
	owner := ""
	if m.FoundOn != nil {
		owner = fmt.Sprintf("  (on %s)", m.FoundOn.Details.QualifiedName)
	}
	name := "<value>"
	if m.Symbol != nil {
		name = m.Symbol.Name
	}
	typeStr := "Unknown"
	if m.Type != nil {
		typeStr = m.Type.String()
	}
	return fmt.Sprintf("%s: %s%s", name, typeStr, owner)
}
