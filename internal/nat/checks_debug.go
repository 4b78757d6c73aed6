//go:build natdebug

package nat

const debugChecks = true
