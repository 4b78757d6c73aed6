//go:build !natdebug

package nat

// debugChecks gates precondition assertions. The natdebug build tag flips it.
const debugChecks = false
