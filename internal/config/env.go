package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// isFlagSetAny reports whether any of the named flags was given on the
// command line.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		for _, name := range names {
			if f.Name == name {
				found = true
			}
		}
	})
	return found
}

// envOverride maps one environment variable (without EnvPrefix) to the
// flags it stands in for. Unparseable values leave the field unchanged.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

func setInt(dst *int, v string) {
	if parsed, err := strconv.Atoi(v); err == nil {
		*dst = parsed
	}
}

var envOverrides = []envOverride{
	{"ITERATIONS", []string{"iterations"}, func(c *AppConfig, v string) { setInt(&c.Iterations, v) }},
	{"MAX_LEN", []string{"max-len"}, func(c *AppConfig, v string) { setInt(&c.MaxLen, v) }},
	{"WORKERS", []string{"workers"}, func(c *AppConfig, v string) { setInt(&c.Workers, v) }},
	{"BENCH_ITERATIONS", []string{"bench-iterations"}, func(c *AppConfig, v string) { setInt(&c.BenchIterations, v) }},
	{"SEED", []string{"seed"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseInt(v, 0, 64); err == nil {
			c.Seed = parsed
		}
	}},
	{"EDGE_BIAS", []string{"edge-bias"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.EdgeBias = parsed
		}
	}},

	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
	}},

	{"CHECKS", []string{"checks"}, func(c *AppConfig, v string) { c.Checks = v }},
	{"ORACLE", []string{"oracle"}, func(c *AppConfig, v string) { c.Oracle = strings.ToLower(v) }},
	{"PROFILE", []string{"profile"}, func(c *AppConfig, v string) { c.ProfilePath = v }},
	{"METRICS_ADDR", []string{"metrics-addr"}, func(c *AppConfig, v string) { c.MetricsAddr = v }},

	{"VERBOSE", []string{"v", "verbose"}, func(c *AppConfig, v string) { c.Verbose = parseBoolEnv(v, c.Verbose) }},
	{"QUIET", []string{"q", "quiet"}, func(c *AppConfig, v string) { c.Quiet = parseBoolEnv(v, c.Quiet) }},
	{"NO_COLOR", []string{"no-color"}, func(c *AppConfig, v string) { c.NoColor = parseBoolEnv(v, c.NoColor) }},
}

// parseBoolEnv accepts true/1/yes and false/0/no in any case. Anything else
// yields defaultVal.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies NATCALC_* variables to every field whose flag
// was not set on the command line.
func applyEnvOverrides(cfg *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(cfg, val)
		}
	}
}
