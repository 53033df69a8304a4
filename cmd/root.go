package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/huangsam/gi/core"
	"github.com/huangsam/gi/internal"
	"github.com/huangsam/gi/internal/contract"
	"github.com/huangsam/gi/internal/iocache"
	"github.com/huangsam/gi/internal/remote"
	"github.com/huangsam/gi/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// cacheManager is the global persistence manager instance.
var cacheManager contract.CacheManager

// logger is replaced by a console logger once the log level is known.
var logger = zap.NewNop()

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:   "gi",
	Short: "Add .gitignore templates from gitignore.io to your project.",
	Long: `gi fetches .gitignore templates from a gitignore.io compatible catalog,
caches them locally and appends them to (or overwrites) the .gitignore of your project.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig sets up config file lookup, ENV variables and defaults.
func initConfig() {
	// Set environment variable prefix
	viper.SetEnvPrefix("GI")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("time-reset", fmt.Sprint(contract.DefaultTimeResetDays))
	viper.SetDefault("api-url", contract.DefaultAPIURL)
	viper.SetDefault("http-timeout", contract.DefaultHTTPTimeout.String())
	viper.SetDefault("cache-backend", schema.FileBackend)
	viper.SetDefault("cache-db-connect", "")
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("color", "yes")
	viper.SetDefault("log-level", contract.DefaultLogLevel)
}

// loadConfigFile reads the config file if one is present.
func loadConfigFile() error {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".gi") // Name of config file (without extension)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}
	return nil
}

// loadConfig merges every config source and validates it into cfg.
func loadConfig() error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := loadConfigFile(); err != nil {
		return err
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	// 4. Build the diagnostic logger at the configured level.
	built, err := contract.NewLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	logger = built
	return nil
}

// sharedSetup loads config and initializes the cache for commands that resolve templates.
// A cache that cannot be opened only disables caching.
func sharedSetup(_ context.Context, _ *cobra.Command, _ []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	if err := iocache.InitCaching(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		logger.Warn("cache disabled", zap.String("backend", string(cfg.CacheBackend)), zap.Error(err))
		contract.LogWarn("Cache unavailable, continuing without it", err)
	}
	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// newNotifier returns the status notifier for console commands.
func newNotifier() contract.Notifier {
	return internal.NewConsoleNotifier(os.Stderr, cfg.UseColors)
}

// newResolver wires the remote catalog and the configured cache store.
func newResolver() (*core.Resolver, error) {
	fetcher, err := remote.NewHTTPFetcher(cfg.APIURL,
		remote.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		remote.WithUserAgent("gi-cli/"+version),
	)
	if err != nil {
		return nil, err
	}

	var store contract.CacheStore
	if cacheManager != nil {
		store = cacheManager.GetCacheStore()
	}
	return core.NewResolver(store, fetcher,
		core.WithLogger(logger),
		core.WithNotifier(newNotifier()),
	), nil
}

// Execute runs the root command with ctx as the root context.
func Execute(ctx context.Context) error {
	rootCtx = ctx
	return rootCmd.Execute()
}

// SetCacheManager sets the global cache manager.
func SetCacheManager(mgr contract.CacheManager) {
	cacheManager = mgr
}

// SyncLogger flushes buffered log entries.
func SyncLogger() {
	_ = logger.Sync()
}
