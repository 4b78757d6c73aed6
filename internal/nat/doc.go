// Package nat implements fixed-width, non-negative multi-precision arithmetic on
// magnitudes stored as little-endian slices of 32-bit words.
//
// A magnitude of width n is the first n words of a []uint32, word 0 being the
// least significant. Extended magnitudes hold 2n words and receive the full
// result of Mul and Square. The width is passed to every call and never stored.
//
// The package is stateless. Callers own every buffer; no function retains a
// reference past its return, and only Create, CreateExt, FromBigInt and
// ToBigInt allocate.
//
// Overflow is reported, never raised. Add-family functions return a uint32
// carry (0 or 1), subtract-family functions return an int32 borrow (0 or -1),
// and multiply-accumulate helpers return the full carry word.
//
// Length, offset and shift-width preconditions are not checked at run time.
// Build with -tags natdebug to turn them into panics.
package nat
