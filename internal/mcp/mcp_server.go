// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/gradebook/internal/contract"
	"github.com/huangsam/gradebook/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the gradebook MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"Gradebook Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{baseCfg: baseCfg}

	// --- 1. Tool: list_courses ---
	s.AddTool(mcp.NewTool("list_courses",
		mcp.WithDescription("List the configured courses with their criteria, weight sums and whether the weights are balanced."),
	), h.handleListCourses)

	// --- 2. Tool: ingest_roster ---
	s.AddTool(mcp.NewTool("ingest_roster",
		mcp.WithDescription("Read a roster spreadsheet (.xlsx or .csv) and return the normalized table without grading."),
		mcp.WithString("path", mcp.Description("Path to the roster spreadsheet."), mcp.Required()),
		mcp.WithNumber("header_skip", mcp.Description("Rows above the header row. Defaults to the configured value.")),
		mcp.WithString("sheet", mcp.Description("Workbook sheet to read. Defaults to the first sheet.")),
	), h.handleIngestRoster)

	// --- 3. Tool: compute_grades ---
	s.AddTool(mcp.NewTool("compute_grades",
		mcp.WithDescription("Read a roster and compute performance score, average and pass/fail for a course."),
		mcp.WithString("path", mcp.Description("Path to the roster spreadsheet."), mcp.Required()),
		mcp.WithString("course", mcp.Description("Course whose criteria are used."), mcp.Required()),
		mcp.WithNumber("header_skip", mcp.Description("Rows above the header row. Defaults to the configured value.")),
		mcp.WithString("sheet", mcp.Description("Workbook sheet to read.")),
		mcp.WithString("sort", mcp.Description("Row order (id, average). Defaults to 'id'."), mcp.Enum(string(schema.SortByID), string(schema.SortByAverage))),
		mcp.WithNumber("limit", mcp.Description("Limit the number of rows returned.")),
	), h.handleComputeGrades)

	// --- 4. Tool: validate_settings ---
	s.AddTool(mcp.NewTool("validate_settings",
		mcp.WithDescription("Check the settings document and report validation errors, repaired keys and unbalanced criterion weights."),
	), h.handleValidateSettings)

	return s
}

// StartMCPServer starts the gradebook MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
