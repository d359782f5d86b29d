// Package main provides a CLI for minting and checking HS256 tokens.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/cybergodev/jwt"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		printUsage()
		return fmt.Errorf("a command is required")
	}

	switch args[0] {
	case "-h", "-help", "--help", "help":
		printUsage()
		return nil
	case "signature":
		return runSignature(args[1:], stdout)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	switch args[0] {
	case "sign":
		return runSign(cfg, logger, args[1:], stdout)
	case "verify":
		return runVerify(ctx, cfg, logger, args[1:], stdout)
	case "revoke":
		return runRevoke(ctx, cfg, logger, args[1:])
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: %s <command> [options]

Commands:
  sign       Mint a token from JSON claims
  verify     Verify a token and print its claims
  revoke     Revoke a token (requires JWT_ENABLE_REVOCATION)
  signature  Compute the signature for encoded header and payload segments

The secret is read from JWT_SECRET. A .env file is loaded when present.
`, os.Args[0])
}

// runSign handles the 'sign' subcommand.
func runSign(cfg config, logger *zap.Logger, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("sign", flag.ContinueOnError)

	var claimsJSON string
	var ttl time.Duration
	var exp int64

	fs.StringVar(&claimsJSON, "claims", "{}", "Claims as a JSON object")
	fs.DurationVar(&ttl, "ttl", 0, "Token lifetime (default JWT_TOKEN_TTL)")
	fs.Int64Var(&exp, "exp", 0, "Absolute expiry in milliseconds since the epoch, overrides -ttl")

	if err := fs.Parse(args); err != nil {
		return err
	}

	claims, err := parseClaims(claimsJSON)
	if err != nil {
		return err
	}

	processor, err := newProcessor(cfg, logger)
	if err != nil {
		return err
	}
	defer processor.Close()

	var token string
	switch {
	case exp != 0:
		token, err = processor.Sign(claims, exp, cfg.Secret)
	case ttl != 0:
		token, err = processor.Sign(claims, jwt.ExpiresIn(jwt.SystemClock, ttl), cfg.Secret)
	default:
		token, err = processor.Issue(claims, cfg.Secret)
	}
	if err != nil {
		return fmt.Errorf("signing token: %w", err)
	}

	_, err = fmt.Fprintln(stdout, token)
	return err
}

// runVerify handles the 'verify' subcommand. Verified claims are printed
// as indented JSON.
func runVerify(ctx context.Context, cfg config, logger *zap.Logger, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)

	var token string
	fs.StringVar(&token, "token", "", "Token to verify")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if token == "" {
		return fmt.Errorf("-token is required")
	}

	processor, err := newProcessor(cfg, logger)
	if err != nil {
		return err
	}
	defer processor.Close()

	claims, err := processor.Verify(ctx, token, cfg.Secret)
	if err != nil {
		return fmt.Errorf("verifying token: %w", err)
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(claims)
}

// runRevoke handles the 'revoke' subcommand.
func runRevoke(ctx context.Context, cfg config, logger *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("revoke", flag.ContinueOnError)

	var token string
	fs.StringVar(&token, "token", "", "Token to revoke")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if token == "" {
		return fmt.Errorf("-token is required")
	}

	processor, err := newProcessor(cfg, logger)
	if err != nil {
		return err
	}
	defer processor.Close()

	if err := processor.Revoke(ctx, token, cfg.Secret); err != nil {
		return fmt.Errorf("revoking token: %w", err)
	}
	return nil
}

// runSignature handles the 'signature' subcommand. It needs only JWT_SECRET
// and does no validation of the segments.
func runSignature(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("signature", flag.ContinueOnError)

	var header, payload string
	fs.StringVar(&header, "header", "", "Encoded header segment")
	fs.StringVar(&payload, "payload", "", "Encoded payload segment")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(stdout, jwt.ComputeSignature(cfg.Secret, header, payload))
	return err
}

func newProcessor(cfg config, logger *zap.Logger) (*jwt.Processor, error) {
	processor, err := jwt.NewProcessor(cfg.Processor, jwt.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("creating processor: %w", err)
	}
	return processor, nil
}

func parseClaims(s string) (jwt.Claims, error) {
	dec := json.NewDecoder(bytes.NewBufferString(s))
	dec.UseNumber()

	var claims jwt.Claims
	if err := dec.Decode(&claims); err != nil {
		return nil, fmt.Errorf("parsing -claims: %w", err)
	}
	if claims == nil {
		return nil, fmt.Errorf("parsing -claims: not a JSON object")
	}
	return claims, nil
}
