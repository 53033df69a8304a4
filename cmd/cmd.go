// Package cmd defines the command-line interface for gi.
package cmd

import (
	"github.com/huangsam/gi/internal/contract"
	"github.com/huangsam/gi/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheMigrateCmd)
	cacheCmd.AddCommand(cacheExportCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("time-reset", "7", "Days before the template catalog is fetched again")
	rootCmd.PersistentFlags().String("api-url", contract.DefaultAPIURL, "Base URL of the gitignore.io compatible API")
	rootCmd.PersistentFlags().String("http-timeout", contract.DefaultHTTPTimeout.String(), "Timeout for a single request to the API")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.FileBackend), "Cache backend: file or sqlite or mysql or postgresql or redis or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Cache location or connection string (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or json or csv")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored status messages (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("log-level", contract.DefaultLogLevel, "Diagnostic log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of addCmd to Viper
	addCmd.Flags().String("dir", "", "Directory holding the target .gitignore (defaults to the Git repository root)")
	addCmd.Flags().String("action", "", "Write action: append or overwrite (asks when empty)")
	if err := viper.BindPFlags(addCmd.Flags()); err != nil {
		contract.LogFatal("Error binding add flags", err)
	}

	// Bind all flags of cacheStatusCmd to Viper
	cacheStatusCmd.Flags().Bool("entries", false, "List every cached entry")
	if err := viper.BindPFlags(cacheStatusCmd.Flags()); err != nil {
		contract.LogFatal("Error binding cache status flags", err)
	}

	// Bind all flags of cacheMigrateCmd to Viper
	cacheMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(cacheMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding cache migrate flags", err)
	}
}
