package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "GHIST_"

type Config struct {
	Port              int
	LogLevel          string
	LogFile           string
	Codec             string
	TickInterval      time.Duration
	Seed              int64
	OutboundQueueSize int
	WatchdogInterval  time.Duration
	DeadlockTimeout   time.Duration
	TLSCertFile       string
	TLSKeyFile        string
}

// Load reads configuration from flags, falling back to GHIST_* environment variables
// and then to defaults. A .env file in the working directory is loaded first if present.
func Load(args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %v", err)
	}

	port, err := envInt("PORT", 8080)
	if err != nil {
		return nil, err
	}
	tickInterval, err := envDuration("TICK_INTERVAL", 5*time.Millisecond)
	if err != nil {
		return nil, err
	}
	seed, err := envInt64("SEED", 0)
	if err != nil {
		return nil, err
	}
	queueSize, err := envInt("OUTBOUND_QUEUE_SIZE", 64)
	if err != nil {
		return nil, err
	}
	watchdogInterval, err := envDuration("WATCHDOG_INTERVAL", 10*time.Second)
	if err != nil {
		return nil, err
	}
	deadlockTimeout, err := envDuration("DEADLOCK_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.IntVar(&cfg.Port, "port", port, "Port for the WebSocket server")
	fs.StringVar(&cfg.LogLevel, "log-level", envString("LOG_LEVEL", "info"), "Log level (error, warn, info, debug, trace)")
	fs.StringVar(&cfg.LogFile, "log-file", envString("LOG_FILE", ""), "Rotate logs into this file instead of stdout")
	fs.StringVar(&cfg.Codec, "codec", envString("CODEC", "json"), "Wire codec (json, msgpack, flatbuffers)")
	fs.DurationVar(&cfg.TickInterval, "tick-interval", tickInterval, "Delay between game ticks")
	fs.Int64Var(&cfg.Seed, "seed", seed, "Random seed for mob spawning and AI (0 picks one from the clock)")
	fs.IntVar(&cfg.OutboundQueueSize, "outbound-queue-size", queueSize, "Frames buffered per client before dropping")
	fs.DurationVar(&cfg.WatchdogInterval, "watchdog-interval", watchdogInterval, "How often the tick watchdog reports")
	fs.DurationVar(&cfg.DeadlockTimeout, "deadlock-timeout", deadlockTimeout, "Report the game lock as deadlocked after this long (0 disables)")
	fs.StringVar(&cfg.TLSCertFile, "tls-cert", envString("TLS_CERT", ""), "TLS certificate file")
	fs.StringVar(&cfg.TLSKeyFile, "tls-key", envString("TLS_KEY", ""), "TLS key file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %s", c.TickInterval)
	}
	if c.OutboundQueueSize <= 0 {
		return fmt.Errorf("outbound queue size must be positive, got %d", c.OutboundQueueSize)
	}
	if c.WatchdogInterval <= 0 {
		return fmt.Errorf("watchdog interval must be positive, got %s", c.WatchdogInterval)
	}
	if c.DeadlockTimeout < 0 {
		return fmt.Errorf("deadlock timeout must not be negative, got %s", c.DeadlockTimeout)
	}
	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		return fmt.Errorf("both tls-cert and tls-key must be set to enable TLS")
	}
	return nil
}

// TLSEnabled reports whether a certificate and key were configured.
func (c *Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return fallback, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s%s: %v", EnvPrefix, key, err)
	}
	return i, nil
}

func envInt64(key string, fallback int64) (int64, error) {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return fallback, nil
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s%s: %v", EnvPrefix, key, err)
	}
	return i, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s%s: %v", EnvPrefix, key, err)
	}
	return d, nil
}
