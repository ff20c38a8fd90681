package structure

import "fmt"

// StructureValidationError reports a structure item that fails minimal shape
// requirements. Index is the position in the unified sequence, Field the
// missing or malformed field.
type StructureValidationError struct {
	Index int
	Field string
}

func (e *StructureValidationError) Error() string {
	return fmt.Sprintf("invalid structure item at index %d: bad field %q", e.Index, e.Field)
}

// NotFoundError reports an edit that targeted a unit or lesson id that does
// not exist in the structure.
type NotFoundError struct {
	Kind string // "item", "unit" or "lesson"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found in structure", e.Kind, e.ID)
}
