package typesystem

import "fmt"

// MroLinearizationError indicates ComputeMroLinearization could not
// find a consistent ordering for a class's bases (an inconsistent
// hierarchy, spec.md §7). The class is still usable afterwards: its
// MRO falls back to a deterministic approximation and MROOk is false.
type MroLinearizationError struct {
	ClassName string
	Bases     []string
}

func (e *MroLinearizationError) Error() string {
	return fmt.Sprintf("cannot create a consistent method resolution order for %q from bases %v", e.ClassName, e.Bases)
}

func NewMroLinearizationError(className string, bases []string) *MroLinearizationError {
	return &MroLinearizationError{ClassName: className, Bases: bases}
}
