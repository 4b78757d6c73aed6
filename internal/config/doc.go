// Package config parses natcalc's command line into an AppConfig.
//
// Values resolve in priority order: command-line flags, then NATCALC_*
// environment variables, then the defaults declared on the flag set. A few
// fields left at zero are filled from the host by ApplyAdaptiveDefaults.
package config
