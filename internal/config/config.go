// Package config handles command-line and environment configuration for
// the ssmul tool. Environment variables provide defaults; flags override
// them; the two integer operands are positional arguments.
package config

import (
	"flag"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"
	"time"
)

// EnvPrefix is prepended to every environment variable the tool reads.
const EnvPrefix = "SSMUL_"

// Defaults used when neither flag nor environment variable is set.
const (
	DefaultTimeout = 5 * time.Minute
)

// AppConfig holds the resolved configuration for one invocation.
type AppConfig struct {
	// X and Y are the operands to multiply.
	X *big.Int
	Y *big.Int

	// Timeout bounds the whole computation.
	Timeout time.Duration

	// Hex prints the product in hexadecimal instead of decimal.
	Hex bool

	// Check re-multiplies with an independent algorithm and compares.
	Check bool

	// Verbose enables debug logging.
	Verbose bool

	// Quiet suppresses everything except the product itself.
	Quiet bool
}

// ParseConfig parses flags and positional operands from args, with
// environment variables supplying defaults. Errors and usage text are
// written to output.
func ParseConfig(name string, args []string, output io.Writer) (AppConfig, error) {
	cfg := AppConfig{
		Timeout: getEnvDuration("TIMEOUT", DefaultTimeout),
		Hex:     getEnvBool("HEX", false),
		Check:   getEnvBool("CHECK", false),
		Verbose: getEnvBool("VERBOSE", false),
		Quiet:   getEnvBool("QUIET", false),
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	setCustomUsage(fs)

	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "maximum computation time")
	fs.BoolVar(&cfg.Hex, "hex", cfg.Hex, "print the product in hexadecimal")
	fs.BoolVar(&cfg.Check, "check", cfg.Check, "verify the product against an independent multiplier")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable debug logging")
	fs.BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "print only the product")

	// The flag package reads a leading dash as a flag marker, so a
	// negative operand like -7 would be rejected as an undefined flag.
	// Operands are the trailing arguments that read as integers; peel
	// them off before parsing the rest.
	flagArgs := args
	var operands []string
	for len(operands) < 2 && len(flagArgs) > 0 {
		last := flagArgs[len(flagArgs)-1]
		if _, ok := new(big.Int).SetString(last, 0); !ok {
			break
		}
		operands = append([]string{last}, operands...)
		flagArgs = flagArgs[:len(flagArgs)-1]
	}

	if err := fs.Parse(flagArgs); err != nil {
		return cfg, err
	}

	rest := append(fs.Args(), operands...)
	if len(rest) != 2 {
		fs.Usage()
		return cfg, fmt.Errorf("expected exactly 2 operands, got %d", len(rest))
	}

	var err error
	if cfg.X, err = parseOperand(rest[0]); err != nil {
		return cfg, fmt.Errorf("first operand: %w", err)
	}
	if cfg.Y, err = parseOperand(rest[1]); err != nil {
		return cfg, fmt.Errorf("second operand: %w", err)
	}

	return cfg, cfg.Validate()
}

// Validate checks the configuration for inconsistencies.
func (c AppConfig) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.Verbose && c.Quiet {
		return fmt.Errorf("-verbose and -quiet are mutually exclusive")
	}
	return nil
}

// parseOperand accepts decimal or prefixed (0x, 0o, 0b) integers of any
// size.
func parseOperand(s string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, fmt.Errorf("not an integer: %q", s)
	}
	return n, nil
}

func getEnvBool(key string, def bool) bool {
	val, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return def
	}
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	val, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return def
	}
	return d
}
