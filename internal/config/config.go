package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress       string
	DatabaseURI      string
	TokenSecret      string
	CouponCode       string
	CouponRate       decimal.Decimal
	DraftIdleTimeout time.Duration
	SweepInterval    time.Duration
	ShutdownTimeout  time.Duration
}

const (
	defaultRunAddress       = ":8080"
	defaultTokenSecret      = "change-me-in-production"
	defaultCouponCode       = "SAVE10"
	defaultCouponRate       = "0.10"
	defaultDraftIdleTimeout = 30 * time.Minute
	defaultSweepInterval    = time.Minute
	defaultShutdownTimeout  = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:       getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:      getString(lookup, "DATABASE_URI", ""),
		TokenSecret:      getString(lookup, "TOKEN_SECRET", defaultTokenSecret),
		CouponCode:       getString(lookup, "COUPON_CODE", defaultCouponCode),
		DraftIdleTimeout: getDuration(lookup, "DRAFT_IDLE_TIMEOUT", defaultDraftIdleTimeout),
		SweepInterval:    getDuration(lookup, "SWEEP_INTERVAL", defaultSweepInterval),
		ShutdownTimeout:  getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("marketbot", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		couponRateStr      = getString(lookup, "COUPON_RATE", defaultCouponRate)
		draftTimeoutStr    = cfg.DraftIdleTimeout.String()
		sweepIntervalStr   = cfg.SweepInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.TokenSecret, "token-secret", cfg.TokenSecret, "Secret for signing session tokens")
	fs.StringVar(&cfg.CouponCode, "coupon-code", cfg.CouponCode, "Discount coupon code")
	fs.StringVar(&couponRateStr, "coupon-rate", couponRateStr, "Discount rate applied by the coupon")
	fs.StringVar(&draftTimeoutStr, "draft-ttl", draftTimeoutStr, "Idle timeout for abandoned checkout drafts")
	fs.StringVar(&sweepIntervalStr, "sweep-interval", sweepIntervalStr, "Interval between draft sweeps")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.CouponRate, err = decimal.NewFromString(couponRateStr); err != nil {
		return nil, fmt.Errorf("invalid coupon rate: %w", err)
	}

	if cfg.DraftIdleTimeout, err = time.ParseDuration(draftTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid draft timeout: %w", err)
	}

	if cfg.SweepInterval, err = time.ParseDuration(sweepIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid sweep interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("TOKEN_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read token secret file: %w", err)
		}
		cfg.TokenSecret = string(content)
	}

	if cfg.DraftIdleTimeout <= 0 {
		cfg.DraftIdleTimeout = defaultDraftIdleTimeout
	}

	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaultSweepInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.CouponRate.IsNegative() || cfg.CouponRate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("coupon rate must be within [0, 1]")
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
