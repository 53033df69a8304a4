package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/gi/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	resolver   contract.TemplateResolver
	listWindow time.Duration
}

func (h *toolHandler) handleListTemplates(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names, err := h.resolver.GetTemplateNames(ctx, h.listWindow)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing templates failed: %v", err)), nil
	}

	if filter := strings.ToLower(strings.TrimSpace(request.GetString("filter", ""))); filter != "" {
		matched := make([]string, 0, len(names))
		for _, name := range names {
			if strings.Contains(strings.ToLower(name), filter) {
				matched = append(matched, name)
			}
		}
		names = matched
	}

	jsonData, _ := json.MarshalIndent(names, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetTemplate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := strings.TrimSpace(request.GetString("name", ""))
	if name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}

	content, err := h.resolver.GetTemplateContent(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetching template %q failed: %v", name, err)), nil
	}
	return mcp.NewToolResultText(content), nil
}
