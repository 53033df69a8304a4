// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"
	"time"

	"github.com/huangsam/gi/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the gi MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(resolver contract.TemplateResolver, listWindow time.Duration, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"gi Template Server",
		version,
		server.WithLogging(),
	)

	h := &toolHandler{
		resolver:   resolver,
		listWindow: listWindow,
	}

	// --- 1. Tool: list_templates ---
	s.AddTool(mcp.NewTool("list_templates",
		mcp.WithDescription("List the .gitignore templates available from the remote catalog."),
		mcp.WithString("filter", mcp.Description("Only return names containing this text (case-insensitive).")),
	), h.handleListTemplates)

	// --- 2. Tool: get_template ---
	s.AddTool(mcp.NewTool("get_template",
		mcp.WithDescription("Fetch the body of one .gitignore template, e.g. 'go' or 'go,node' for a combined template."),
		mcp.WithString("name", mcp.Description("Template name as listed by list_templates."), mcp.Required()),
	), h.handleGetTemplate)

	return s
}

// StartMCPServer serves the gi MCP server over stdio.
func StartMCPServer(_ context.Context, resolver contract.TemplateResolver, listWindow time.Duration, version string) error {
	s := NewMCPServer(resolver, listWindow, version)
	return server.ServeStdio(s)
}
