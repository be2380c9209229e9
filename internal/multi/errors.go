package multi

import "fmt"

// EmptyInputError indicates a multi-table call received no tables.
type EmptyInputError struct{}

func (e *EmptyInputError) Error() string { return "at least one input table is required" }

// OverflowGuardError indicates the aggregate row count across files exceeded
// the configured safety ceiling.
type OverflowGuardError struct {
	Total int
	Limit int
}

func (e *OverflowGuardError) Error() string {
	return fmt.Sprintf("aggregate row count %d exceeds configured limit %d", e.Total, e.Limit)
}
