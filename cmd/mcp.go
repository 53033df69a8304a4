package cmd

import (
	"github.com/huangsam/gi/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the gi MCP server",
	Long: `Launch an MCP server over stdio so AI agents can list and read .gitignore templates.

Status messages and logs go to stderr; stdout carries the protocol.`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		resolver, err := newResolver()
		if err != nil {
			return err
		}
		return mcp.StartMCPServer(rootCtx, resolver, cfg.ListWindow, version)
	},
}
