// Command ssmul multiplies two arbitrary-precision integers.
//
// Usage:
//
//	ssmul [flags] X Y
//
// Operands may be decimal or carry a 0x, 0o or 0b prefix. See -help for
// the flag list.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/big"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/plouvel/ssmul"
	"github.com/plouvel/ssmul/internal/cli"
	"github.com/plouvel/ssmul/internal/config"
	"github.com/plouvel/ssmul/internal/karatsuba"
	"github.com/plouvel/ssmul/internal/logging"
)

// spinnerBitThreshold is the operand size above which the computation is
// slow enough that a spinner is worth showing.
const spinnerBitThreshold = 1 << 20

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.ParseConfig("ssmul", args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "ssmul: %v\n", err)
		return 2
	}

	switch {
	case cfg.Verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case cfg.Quiet:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	logger := logging.NewLogger(stderr, "ssmul")

	logger.Debug("operands parsed",
		logging.Int("x_bits", cfg.X.BitLen()),
		logging.Int("y_bits", cfg.Y.BitLen()),
	)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	product, elapsed, err := multiply(ctx, cfg)
	if err != nil {
		logger.Error("multiplication failed", err)
		return 1
	}

	if cfg.Check {
		expected := karatsuba.Mul(cfg.X, cfg.Y)
		if product.Cmp(expected) != 0 {
			logger.Error("verification failed", errors.New("products disagree"))
			return 1
		}
		logger.Debug("verification passed")
	}

	if cfg.Quiet {
		fmt.Fprintln(stdout, cli.FormatProduct(product, cfg.Hex, false))
		return 0
	}

	logger.Info("product computed",
		logging.Int("bits", product.BitLen()),
		logging.String("duration", cli.FormatExecutionDuration(elapsed)),
	)
	fmt.Fprintln(stdout, cli.FormatProduct(product, cfg.Hex, true))
	return 0
}

type mulResult struct {
	product *big.Int
	err     error
}

// multiply runs the multiplication in its own goroutine so the timeout
// can interrupt the wait. A spinner is shown for large operands unless
// quiet output was requested.
func multiply(ctx context.Context, cfg config.AppConfig) (*big.Int, time.Duration, error) {
	if !cfg.Quiet && uint(cfg.X.BitLen())+uint(cfg.Y.BitLen()) >= spinnerBitThreshold {
		sp := cli.NewSpinner()
		sp.UpdateSuffix(" multiplying...")
		sp.Start()
		defer sp.Stop()
	}

	done := make(chan mulResult, 1)
	start := time.Now()
	go func() {
		p, err := ssmul.Mul(cfg.X, cfg.Y)
		done <- mulResult{product: p, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, time.Since(start), fmt.Errorf("timed out after %v: %w", cfg.Timeout, ctx.Err())
	case res := <-done:
		return res.product, time.Since(start), res.err
	}
}
