// Package main is the entry point for the bookshelf API server.
// It wires together configuration, the in-memory book store, and the HTTP router.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/aoideee/bookshelf-api/internal/data"
	"github.com/aoideee/bookshelf-api/internal/validator"
)

// appVersion is the current version of the API, shown in logs and /healthz.
const appVersion = "1.0.0"

// serverConfig holds all the values that can be tweaked at startup via
// environment variables (optionally from a .env file) and command-line flags.
// Flags take precedence over the environment.
type serverConfig struct {
	port        int    // TCP port the HTTP server listens on (default 9000)
	environment string // Runtime environment: development, staging, or production
	limiter     struct {
		rps     float64 // Steady-state requests per second allowed per client IP
		burst   int     // Maximum burst size per client IP
		enabled bool    // Whether per-IP rate limiting is applied at all
	}
	cors struct {
		trustedOrigins []string // Origins allowed to make cross-origin requests; "*" allows any
	}
}

// applicationDependencies bundles every shared resource that HTTP handlers need.
// A pointer to this struct is passed as the receiver on all handler and route methods.
type applicationDependencies struct {
	config serverConfig
	logger *slog.Logger
	models data.Models
}

// main is the application entry point.
// It loads configuration, creates the store, wires up dependencies, and starts the HTTP server.
func main() {
	// A missing .env file is fine; the process environment and flags still apply.
	_ = godotenv.Load(".env")

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	settings, err := loadConfig(os.Args[1:], os.Getenv)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	appInstance := &applicationDependencies{
		config: settings,
		logger: logger,
		models: data.NewModels(),
	}

	err = appInstance.serve()
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

// loadConfig builds the server configuration from getenv defaults overridden
// by the command-line args, then validates the result. Environment values that
// cannot be parsed are reported alongside the other validation failures.
func loadConfig(args []string, getenv func(string) string) (serverConfig, error) {
	var settings serverConfig

	v := validator.New()

	fs := flag.NewFlagSet("api", flag.ContinueOnError)
	fs.IntVar(&settings.port, "port", envInt(v, getenv, "PORT", 9000), "Server port")
	fs.StringVar(&settings.environment, "env", envString(getenv, "ENV", "development"), "Environment(development|staging|production)")

	// Rate limiting is off unless explicitly enabled.
	fs.Float64Var(&settings.limiter.rps, "limiter-rps", envFloat(v, getenv, "LIMITER_RPS", 2), "Rate limiter maximum requests per second")
	fs.IntVar(&settings.limiter.burst, "limiter-burst", envInt(v, getenv, "LIMITER_BURST", 4), "Rate limiter maximum burst")
	fs.BoolVar(&settings.limiter.enabled, "limiter-enabled", envBool(v, getenv, "LIMITER_ENABLED", false), "Enable rate limiter")

	fs.Func("cors-trusted-origins", "Trusted CORS origins (space separated)", func(val string) error {
		settings.cors.trustedOrigins = strings.Fields(val)
		return nil
	})
	settings.cors.trustedOrigins = strings.Fields(getenv("CORS_TRUSTED_ORIGINS"))

	if err := fs.Parse(args); err != nil {
		return serverConfig{}, err
	}

	v.Check(settings.port > 0 && settings.port <= 65535, "port", "must be between 1 and 65535")
	v.Check(validator.In(settings.environment, "development", "staging", "production"), "env", "must be development, staging or production")
	if settings.limiter.enabled {
		v.Check(settings.limiter.rps > 0, "limiter-rps", "must be greater than zero")
		v.Check(settings.limiter.burst > 0, "limiter-burst", "must be greater than zero")
	}
	if !v.Valid() {
		return serverConfig{}, configError(v.Errors)
	}

	return settings, nil
}

// configError flattens validation failures into a single error with a stable order.
func configError(errs map[string]string) error {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s", k, errs[k]))
	}
	return errors.New("invalid configuration: " + strings.Join(parts, "; "))
}

func envString(getenv func(string) string, key, def string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return def
}

// envInt returns the integer in key, def when key is unset, and records an
// error on v when the value is not an integer.
func envInt(v *validator.Validator, getenv func(string) string, key string, def int) int {
	s := getenv(key)
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	v.Check(err == nil, key, "must be an integer")
	if err != nil {
		return def
	}
	return i
}

func envFloat(v *validator.Validator, getenv func(string) string, key string, def float64) float64 {
	s := getenv(key)
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	v.Check(err == nil, key, "must be a number")
	if err != nil {
		return def
	}
	return f
}

func envBool(v *validator.Validator, getenv func(string) string, key string, def bool) bool {
	s := getenv(key)
	if s == "" {
		return def
	}
	b, err := strconv.ParseBool(s)
	v.Check(err == nil, key, "must be a boolean")
	if err != nil {
		return def
	}
	return b
}
