package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const reportURI = "archguard://report"

// registerResources registers all archguard MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string) {
	// 1. archguard://report - full, unfiltered check report
	s.AddResource(
		mcplib.NewResource(
			reportURI,
			"Conformance Report",
			mcplib.WithResourceDescription("Every violation of the project's architecture rules, errors first"),
			mcplib.WithMIMEType("application/json"),
		),
		handleReportResource(projectPath),
	)
}

func handleReportResource(projectPath string) server.ResourceHandlerFunc {
	return func(ctx context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		res, err := newCheckService().Check(ctx, projectPath, "")
		if err != nil {
			return nil, fmt.Errorf("check failed: %w", err)
		}

		data, err := json.MarshalIndent(res.Report, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling report: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      reportURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
