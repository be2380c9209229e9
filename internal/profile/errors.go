package profile

import "fmt"

// EmptyTableError indicates a table with zero columns; summarization cannot
// proceed.
type EmptyTableError struct {
	Source string
}

func (e *EmptyTableError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("table %s has no columns", e.Source)
	}
	return "table has no columns"
}

// UnsupportedDtypeError indicates a column whose values could not be
// reconciled into any recognized dtype category. Reserved for malformed
// input; the mixed fallback prevents it for ordinary scalar cells.
type UnsupportedDtypeError struct {
	Column string
}

func (e *UnsupportedDtypeError) Error() string {
	return fmt.Sprintf("column %q has values of no recognized dtype", e.Column)
}
