package contract

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/gi/schema"
	"go.uber.org/zap/zapcore"
)

// Default values for configuration.
const (
	DefaultTimeResetDays = 7
	DefaultAPIURL        = "https://www.gitignore.io/api"
	DefaultHTTPTimeout   = 30 * time.Second
	DefaultLogLevel      = "error"
)

// TemplateWindow is the freshness window for a single template.
// It is fixed and independent of the configured catalog window.
const TemplateWindow = DefaultTimeResetDays * 24 * time.Hour

// Config holds the runtime configuration for gi.
// This struct is the "final, validated" config.
type Config struct {
	TimeResetDays int
	ListWindow    time.Duration

	APIURL      string
	HTTPTimeout time.Duration

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	Output     schema.OutputMode
	OutputFile string

	TargetDir string
	Action    schema.MergeAction // Empty means ask the user

	LogLevel  zapcore.Level
	UseColors bool // Enable colored status messages
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	TimeReset      string `mapstructure:"time-reset"`
	APIURL         string `mapstructure:"api-url"`
	HTTPTimeout    string `mapstructure:"http-timeout"`
	CacheBackend   string `mapstructure:"cache-backend"`
	CacheDBConnect string `mapstructure:"cache-db-connect"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Color          string `mapstructure:"color"`
	LogLevel       string `mapstructure:"log-level"`

	// --- Fields from addCmd.Flags() ---
	Dir    string `mapstructure:"dir"`
	Action string `mapstructure:"action"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// DaysToDuration converts a whole number of days to a duration.
func DaysToDuration(days int) time.Duration {
	return time.Duration(days) * 24 * time.Hour
}

// MaxTimeResetDays is the largest refresh period that fits in a time.Duration.
const MaxTimeResetDays = int(math.MaxInt64 / int64(24*time.Hour))

// ParseTimeResetDays parses the configured catalog refresh period in days.
// Empty, non-numeric and negative values fall back to DefaultTimeResetDays.
// Zero is accepted and means the catalog is always refetched.
// Larger values are capped at MaxTimeResetDays.
func ParseTimeResetDays(raw string) int {
	days, err := strconv.Atoi(strings.TrimSpace(raw))
	if errors.Is(err, strconv.ErrRange) && days > 0 {
		return MaxTimeResetDays
	}
	if err != nil || days < 0 {
		return DefaultTimeResetDays
	}
	return min(days, MaxTimeResetDays)
}

// ParseMergeAction parses a merge action case-insensitively.
// An empty string yields an empty action, which means the user is asked.
func ParseMergeAction(raw string) (schema.MergeAction, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return "", nil
	case "append":
		return schema.AppendAction, nil
	case "overwrite":
		return schema.OverwriteAction, nil
	default:
		return "", fmt.Errorf("invalid action '%s'. must be append or overwrite", raw)
	}
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateRemoteInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of connection strings
// for the networked backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.FileBackend, schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	case schema.RedisBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.HasPrefix(connStr, "redis://") && !strings.HasPrefix(connStr, "rediss://") {
			return fmt.Errorf("Redis connection string must start with 'redis://' or 'rediss://'")
		}
	}
	return nil
}

// validateBackendConfigs validates the cache backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if cfg.CacheBackend == "" {
		cfg.CacheBackend = schema.FileBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be file, sqlite, mysql, postgresql, redis, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	return ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect)
}

// validateRemoteInputs validates the remote catalog location and client timeout.
func validateRemoteInputs(cfg *Config, input *ConfigRawInput) error {
	apiURL := strings.TrimSuffix(strings.TrimSpace(input.APIURL), "/")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	parsed, err := url.Parse(apiURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("invalid api-url %q. must be an http or https URL", input.APIURL)
	}
	cfg.APIURL = apiURL

	cfg.HTTPTimeout = DefaultHTTPTimeout
	if input.HTTPTimeout != "" {
		timeout, err := time.ParseDuration(input.HTTPTimeout)
		if err != nil {
			return fmt.Errorf("invalid http-timeout %q: %w", input.HTTPTimeout, err)
		}
		if timeout <= 0 {
			return fmt.Errorf("http-timeout must be greater than 0 (received %s)", timeout)
		}
		cfg.HTTPTimeout = timeout
	}
	return nil
}

// validateSimpleInputs processes and validates the fields without external dependencies.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.TargetDir = input.Dir

	// --- 1. Refresh period never fails ---
	cfg.TimeResetDays = ParseTimeResetDays(input.TimeReset)
	cfg.ListWindow = DaysToDuration(cfg.TimeResetDays)

	// --- 2. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, json, csv", input.Output)
	}

	// --- 3. Color Validation ---
	colorStr := input.Color
	if colorStr == "" {
		colorStr = "yes"
	}
	colors, err := ParseBoolString(colorStr)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 4. Log Level Validation ---
	levelStr := input.LogLevel
	if levelStr == "" {
		levelStr = DefaultLogLevel
	}
	level, err := zapcore.ParseLevel(levelStr)
	if err != nil {
		return fmt.Errorf("invalid --log-level value: %w", err)
	}
	cfg.LogLevel = level

	// --- 5. Action Validation ---
	action, err := ParseMergeAction(input.Action)
	if err != nil {
		return err
	}
	cfg.Action = action

	return nil
}
