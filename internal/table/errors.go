package table

import "fmt"

// MissingColumnError indicates a named column is absent from a table.
type MissingColumnError struct {
	Source string
	Column string
}

func (e *MissingColumnError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("column %q not found in %s", e.Column, e.Source)
	}
	return fmt.Sprintf("column %q not found", e.Column)
}
