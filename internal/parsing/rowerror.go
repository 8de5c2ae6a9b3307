// =============================================================================
// Gift Aid Schedule Builder - Row-Level Parsing Errors
// =============================================================================
//
// Every row-level validation failure in either input file is reported through
// RowError, which pairs a human-readable message with an optional 1-based
// column number locating the faulty field within its row. The row parsers
// know nothing about file names or row numbers; callers attach that context
// as the error crosses the parsing boundary, so the operator always sees
// "row N, column C of file F" without the lower layers carrying file state.
//
// =============================================================================

package parsing

import (
	"fmt"
	"strings"
)

// RowError is the uniform diagnostic carrier for row-level validation
// failures.
type RowError struct {
	// Column is the 1-based column number of the faulty field. Zero means
	// the whole row is at fault (for example a wrong field count) and no
	// single column can be blamed.
	Column int

	// Message describes the violation.
	Message string

	// Context holds notes attached at each boundary the error crosses,
	// innermost first.
	Context []string
}

// NewRowError creates a RowError locating a specific column.
func NewRowError(column int, format string, args ...any) *RowError {
	return &RowError{
		Column:  column,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewRowShapeError creates a RowError with no column locator, for failures
// affecting the row as a whole.
func NewRowShapeError(format string, args ...any) *RowError {
	return &RowError{Message: fmt.Sprintf(format, args...)}
}

// WithContext appends a context note and returns the error, so callers can
// wrap and rethrow in one expression.
func (e *RowError) WithContext(format string, args ...any) *RowError {
	e.Context = append(e.Context, fmt.Sprintf(format, args...))
	return e
}

// Locate attaches the standard "row N, column C of file F" note for the
// point where the error leaves a file-level parser.
func (e *RowError) Locate(rowIndex int, fileName string) *RowError {
	if e.Column > 0 {
		return e.WithContext(
			"Error parsing row %d, column %d of %s.",
			rowIndex, e.Column, fileName,
		)
	}
	return e.WithContext("Error parsing row %d of %s.", rowIndex, fileName)
}

// Error implements the error interface. The message comes first, followed by
// any attached context notes.
func (e *RowError) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	var b strings.Builder
	b.WriteString(e.Message)
	for _, note := range e.Context {
		b.WriteString("\n")
		b.WriteString(note)
	}
	return b.String()
}
