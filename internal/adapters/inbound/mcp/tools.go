package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/archguard/internal/adapters/outbound/config"
	"github.com/abdidvp/archguard/internal/adapters/outbound/extractor"
	"github.com/abdidvp/archguard/internal/application"
	"github.com/abdidvp/archguard/internal/domain"
	"github.com/abdidvp/archguard/internal/domain/report"
)

// registerTools registers all archguard MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string) {
	// 1. archguard_check
	s.AddTool(
		mcplib.NewTool("archguard_check",
			mcplib.WithDescription("Check the project against its architecture rules and return the violation report as JSON"),
			mcplib.WithString("config", mcplib.Description("Rule document path, relative to the project (default .archguard.yaml)")),
			mcplib.WithString("min_severity", mcplib.Description("Lowest severity to include: error or warning (default: warning)")),
		),
		handleCheck(projectPath),
	)

	// 2. archguard_cycles
	s.AddTool(
		mcplib.NewTool("archguard_cycles",
			mcplib.WithDescription("Return one representative dependency cycle per strongly connected group of modules"),
			mcplib.WithString("config", mcplib.Description("Rule document path, relative to the project (default .archguard.yaml)")),
		),
		handleCycles(projectPath),
	)

	// 3. archguard_rules
	s.AddTool(
		mcplib.NewTool("archguard_rules",
			mcplib.WithDescription("List the configured rules and whether each one is valid, without reading source files"),
			mcplib.WithString("config", mcplib.Description("Rule document path, relative to the project (default .archguard.yaml)")),
		),
		handleRules(projectPath),
	)
}

// newCheckService wires the source extractor and rule loader.
func newCheckService() *application.CheckService {
	return application.NewCheckService(extractor.New(), config.New())
}

// configPath resolves the optional config argument against projectPath.
func configPath(projectPath string, request mcplib.CallToolRequest) string {
	p, _ := request.GetArguments()["config"].(string)
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(projectPath, p)
}

func handleCheck(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		minSeverity := domain.SeverityWarning
		if v, _ := request.GetArguments()["min_severity"].(string); v != "" {
			sev, err := domain.ParseSeverity(v)
			if err != nil {
				return errorResult(err.Error()), nil
			}
			minSeverity = sev
		}

		res, err := newCheckService().Check(ctx, projectPath, configPath(projectPath, request))
		if err != nil {
			return errorResult(fmt.Sprintf("check failed: %v", err)), nil
		}
		return jsonResult(report.Filter(res.Report, minSeverity))
	}
}

func handleCycles(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		svc := newCheckService()
		cfg, err := svc.LoadConfig(projectPath, configPath(projectPath, request))
		if err != nil {
			return errorResult(err.Error()), nil
		}
		g, err := svc.BuildGraph(ctx, projectPath, cfg)
		if err != nil {
			return errorResult(fmt.Sprintf("building graph failed: %v", err)), nil
		}

		cycles := svc.Cycles(g)
		if cycles == nil {
			cycles = [][]string{}
		}
		return jsonResult(map[string]interface{}{
			"modules": g.ModuleCount(),
			"cycles":  cycles,
		})
	}
}

func handleRules(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		svc := newCheckService()
		cfg, err := svc.LoadConfig(projectPath, configPath(projectPath, request))
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(map[string]interface{}{
			"layers": cfg.LayerNames(),
			"rules":  svc.RuleStatuses(cfg),
		})
	}
}

// jsonResult marshals v as indented JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns an error content result.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
