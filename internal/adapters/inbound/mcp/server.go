package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewArchguardMCPServer creates a new MCP server with all archguard tools and
// resources registered. The projectPath is the root directory of the project
// to check.
func NewArchguardMCPServer(projectPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"archguard",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath)
	registerResources(s, projectPath)

	return s
}
