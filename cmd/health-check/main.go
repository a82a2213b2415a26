// Package main provides a standalone health check command for NutriPlan.
// It can be used for container health checks and monitoring scripts.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/nutriplan/v1/internal/infrastructure/config"
	"github.com/nutriplan/v1/internal/infrastructure/persistence/database"
	"github.com/nutriplan/v1/internal/infrastructure/persistence/redis"
	"github.com/nutriplan/v1/pkg/healthcheck"
	"github.com/nutriplan/v1/pkg/logger"
)

const (
	exitCodeSuccess = 0
	exitCodeFailure = 1
	exitCodeError   = 2
)

// Options holds command-line configuration
type Options struct {
	URL           string
	Timeout       time.Duration
	Verbose       bool
	OutputFormat  string
	AllowDegraded bool
	RetryCount    int
	RetryDelay    time.Duration
	ConfigPath    string
	LocalCheck    bool
}

// report mirrors the health endpoint body with durations in milliseconds
type report struct {
	Status          healthcheck.Status `json:"status"`
	Version         string             `json:"version"`
	Timestamp       time.Time          `json:"timestamp"`
	TotalDurationMS float64            `json:"total_duration_ms"`
	Checks          []struct {
		Name       string             `json:"name"`
		Status     healthcheck.Status `json:"status"`
		Message    string             `json:"message,omitempty"`
		DurationMS float64            `json:"duration_ms"`
	} `json:"checks"`
}

func main() {
	opts := parseFlags()

	if opts.LocalCheck {
		os.Exit(runLocalHealthCheck(opts))
	}
	os.Exit(runRemoteHealthCheck(opts))
}

func parseFlags() Options {
	opts := Options{}

	flag.StringVar(&opts.URL, "url", "", "Health check endpoint URL (default $HEALTH_CHECK_URL or http://localhost:8080/health)")
	flag.DurationVar(&opts.Timeout, "timeout", 10*time.Second, "Request timeout")
	flag.BoolVar(&opts.Verbose, "verbose", false, "Verbose output")
	flag.StringVar(&opts.OutputFormat, "format", "text", "Output format: text, json")
	flag.BoolVar(&opts.AllowDegraded, "allow-degraded", true, "Treat a degraded service as passing")
	flag.IntVar(&opts.RetryCount, "retry", 0, "Number of retries on failure")
	flag.DurationVar(&opts.RetryDelay, "retry-delay", time.Second, "Delay between retries")
	flag.StringVar(&opts.ConfigPath, "config", "", "Configuration file path (local mode)")
	flag.BoolVar(&opts.LocalCheck, "local", false, "Check the configured database and Redis directly instead of calling the server")
	flag.Parse()

	if opts.URL == "" {
		opts.URL = os.Getenv("HEALTH_CHECK_URL")
	}
	if opts.URL == "" {
		opts.URL = "http://localhost:8080/health"
	}
	return opts
}

// runRemoteHealthCheck performs a health check via HTTP
func runRemoteHealthCheck(opts Options) int {
	client := &http.Client{Timeout: opts.Timeout}

	var lastErr error
	for attempt := 0; attempt <= opts.RetryCount; attempt++ {
		if attempt > 0 {
			if opts.Verbose {
				fmt.Printf("Retrying in %v... (attempt %d/%d)\n", opts.RetryDelay, attempt, opts.RetryCount)
			}
			time.Sleep(opts.RetryDelay)
		}

		rep, err := fetch(client, opts.URL)
		if err != nil {
			lastErr = err
			if opts.Verbose {
				fmt.Printf("Request failed: %v\n", err)
			}
			continue
		}

		printReport(opts, rep)
		return exitCode(opts, rep.Status)
	}

	fmt.Fprintf(os.Stderr, "Health check failed after %d attempt(s): %v\n", opts.RetryCount+1, lastErr)
	return exitCodeError
}

func fetch(client *http.Client, url string) (*report, error) {
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var rep report
	if err := json.Unmarshal(body, &rep); err != nil {
		return nil, fmt.Errorf("decode response (HTTP %d): %w", resp.StatusCode, err)
	}
	return &rep, nil
}

// runLocalHealthCheck pings the configured backing services from this process
func runLocalHealthCheck(opts Options) int {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return exitCodeError
	}

	level := "error"
	if opts.Verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Config{Level: level, Format: "console", OutputPaths: []string{"stderr"}})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		return exitCodeError
	}
	defer func() { _ = log.Sync() }()

	hc := healthcheck.New(cfg.App.Version, log)

	if cfg.Database.Driver != "memory" {
		db, err := database.Open(cfg, log)
		if err != nil {
			hc.Register("database", healthcheck.NewCustomChecker(func(context.Context) (healthcheck.Status, string, interface{}) {
				return healthcheck.StatusUnhealthy, err.Error(), nil
			}))
		} else {
			defer func() { _ = database.Close(db) }()
			hc.Register("database", healthcheck.NewPingChecker(func(ctx context.Context) error {
				return database.Ping(ctx, db)
			}, true))
		}
	}

	if cfg.Redis.Enabled {
		client, err := redis.NewClient(cfg.Redis, cfg.RedisAddr(), log)
		if err != nil {
			log.Debug("Redis unavailable", zap.Error(err))
			hc.Register("redis", healthcheck.NewCustomChecker(func(context.Context) (healthcheck.Status, string, interface{}) {
				return healthcheck.StatusDegraded, err.Error(), nil
			}))
		} else {
			defer func() { _ = client.Close() }()
			hc.Register("redis", healthcheck.NewPingChecker(client.Ping, false))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()

	raw, err := json.Marshal(hc.Check(ctx))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode result: %v\n", err)
		return exitCodeError
	}
	var rep report
	if err := json.Unmarshal(raw, &rep); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to decode result: %v\n", err)
		return exitCodeError
	}

	printReport(opts, &rep)
	return exitCode(opts, rep.Status)
}

func exitCode(opts Options, status healthcheck.Status) int {
	switch status {
	case healthcheck.StatusHealthy:
		return exitCodeSuccess
	case healthcheck.StatusDegraded:
		if opts.AllowDegraded {
			return exitCodeSuccess
		}
		return exitCodeFailure
	default:
		return exitCodeFailure
	}
}

func printReport(opts Options, rep *report) {
	if opts.OutputFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(rep)
		return
	}

	fmt.Printf("Status: %s (version %s, %.0fms)\n", rep.Status, rep.Version, rep.TotalDurationMS)
	if !opts.Verbose && rep.Status == healthcheck.StatusHealthy {
		return
	}
	for _, c := range rep.Checks {
		line := fmt.Sprintf("  %-10s %-9s %.0fms", c.Name, c.Status, c.DurationMS)
		if c.Message != "" {
			line += "  " + c.Message
		}
		fmt.Println(line)
	}
}
