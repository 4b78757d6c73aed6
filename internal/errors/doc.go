// Package apperrors defines the structured error types of natcalc, separating
// user input problems (configuration, operand validation) from verification
// failures, where the arithmetic kernel disagreed with a reference
// implementation.
//
// All wrapping types implement Unwrap so errors.Is and errors.As see the
// underlying cause, including nat.ErrInvalidArgument.
package apperrors
