package cmd

import (
	"github.com/huangsam/gi/internal"
	"github.com/huangsam/gi/internal/contract"
	"github.com/spf13/cobra"
)

// listCmd prints the template catalog.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show every template in the catalog.",
	Long: `Print the names of all templates offered by the catalog.

The catalog is cached and fetched again once it is older than --time-reset
days. A --time-reset of 0 always fetches it.

Examples:
  # Show the catalog in columns
  gi list

  # Export the catalog as JSON
  gi list --output json --output-file templates.json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		resolver, err := newResolver()
		if err != nil {
			contract.LogFatal("Cannot reach template catalog", err)
		}
		names, err := resolver.GetTemplateNames(rootCtx, cfg.ListWindow)
		if err != nil {
			contract.LogFatal("Cannot list templates", err)
		}
		if err := internal.WriteTemplateNames(names, cfg.Output, cfg.OutputFile); err != nil {
			contract.LogFatal("Cannot write templates", err)
		}
	},
}

// showCmd prints one template.
var showCmd = &cobra.Command{
	Use:   "show <template>",
	Short: "Print a template without touching .gitignore.",
	Long: `Print the body of a template exactly as the catalog returns it.

Combine templates with commas, e.g. go,node. Templates are cached for 7 days.

Examples:
  # Preview the Go template
  gi show go

  # Save a combined template to a file
  gi show go,node --output-file go-node.gitignore`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		resolver, err := newResolver()
		if err != nil {
			contract.LogFatal("Cannot reach template catalog", err)
		}
		content, err := resolver.GetTemplateContent(rootCtx, args[0])
		if err != nil {
			contract.LogFatal("Cannot show template", err)
		}
		if err := internal.WriteTemplateContent(content, cfg.OutputFile); err != nil {
			contract.LogFatal("Cannot write template", err)
		}
	},
}
