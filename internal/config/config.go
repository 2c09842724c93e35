// Package config holds the command-line and environment configuration.
package config

import (
	"fmt"
	"strconv"

	"github.com/caarlos0/env/v11"
)

// Defaults match the xctrace export this tool was written against.
const (
	DefaultSubsystem = "engine-sim"
	DefaultCategory  = "perf"
	DefaultTop       = 20
)

// Config holds the parsed configuration for one run.
type Config struct {
	// InputPath is the positional trace export argument.
	InputPath string
	// Subsystem and Category select which signpost rows are summarized.
	Subsystem string
	Category  string
	// Top limits how many interval rows are printed.
	Top int
	// Where is an optional record predicate expression.
	Where string
	// CountDuplicateBegins and CountNegativeDurations enable counting of
	// the two anomaly classes that are otherwise dropped silently.
	CountDuplicateBegins   bool
	CountNegativeDurations bool
}

// envOverrides are environment defaults applied before flags, so a flag
// always wins over its environment counterpart.
type envOverrides struct {
	Subsystem string `env:"SIGNPOST_SUBSYSTEM"`
	Category  string `env:"SIGNPOST_CATEGORY"`
	Top       int    `env:"SIGNPOST_TOP" envDefault:"-1"`
}

// ParseArgs parses command-line arguments and returns a Config.
// Expected format: program_name [options] <export-path>
func ParseArgs(args []string) (*Config, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no arguments provided")
	}
	programName := args[0]

	cfg := &Config{
		Subsystem: DefaultSubsystem,
		Category:  DefaultCategory,
		Top:       DefaultTop,
	}

	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return nil, fmt.Errorf("parsing environment overrides: %w", err)
	}
	if overrides.Subsystem != "" {
		cfg.Subsystem = overrides.Subsystem
	}
	if overrides.Category != "" {
		cfg.Category = overrides.Category
	}
	if overrides.Top >= 0 {
		cfg.Top = overrides.Top
	}

	usage := fmt.Errorf("Usage: %s [--subsystem <s>] [--category <c>] [--top <n>] [--where <expr>] <export-path>\nExample: %s --subsystem engine-sim --category perf signposts.xml",
		programName, programName)

	for i := 1; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--subsystem", "-s":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("%s requires a value", arg)
			}
			i++
			cfg.Subsystem = args[i]
		case "--category", "-c":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("%s requires a value", arg)
			}
			i++
			cfg.Category = args[i]
		case "--top", "-n":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("%s requires a value", arg)
			}
			i++
			n, err := strconv.Atoi(args[i])
			if err != nil {
				return nil, fmt.Errorf("invalid --top value %q: %w", args[i], err)
			}
			cfg.Top = n
		case "--where", "-w":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("%s requires a value", arg)
			}
			i++
			cfg.Where = args[i]
		case "--count-duplicate-begins":
			cfg.CountDuplicateBegins = true
		case "--count-negative-durations":
			cfg.CountNegativeDurations = true
		default:
			if len(arg) > 1 && arg[0] == '-' {
				return nil, fmt.Errorf("unknown flag %q\n%v", arg, usage)
			}
			if cfg.InputPath != "" {
				return nil, fmt.Errorf("unexpected extra argument %q\n%v", arg, usage)
			}
			cfg.InputPath = arg
		}
	}

	if cfg.InputPath == "" {
		return nil, usage
	}

	return cfg, nil
}
