// Package selfcheck verifies the arithmetic kernel at run time. Every
// registered operation is compared against a reference oracle on random,
// edge-biased operands across a range of widths, and a set of algebraic
// invariants is checked directly on the kernel. Checks run concurrently and
// stream progress to a progress.Reporter.
package selfcheck
