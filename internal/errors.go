package internal

import "errors"

// Structural errors raised to the caller by Sheet/Cell operations. None of
// these represent cell-evaluation outcomes -- those are carried as
// FormulaError values inside Value, never raised.
var (
	// ErrInvalidPosition is returned when a caller supplies a Position that
	// fails IsValid.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrFormulaSyntax is returned when SetCell is given formula text the
	// parser cannot parse.
	ErrFormulaSyntax = errors.New("formula syntax error")

	// ErrCircularDependency is returned when accepting a SetCell would
	// introduce a cycle in the reference graph. The cell is left unchanged.
	ErrCircularDependency = errors.New("circular dependency")
)
