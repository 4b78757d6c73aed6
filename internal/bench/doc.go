// Package bench measures the kernel's hot routines across a sweep of widths
// and keeps the results in a per-host JSON profile.
//
// The sweep reports nanoseconds per operation, allocations per operation,
// which must stay at zero, and the cost of Square relative to Mul at each
// width.
package bench
