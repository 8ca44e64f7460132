package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/gradebook/core"
	"github.com/huangsam/gradebook/core/algo"
	"github.com/huangsam/gradebook/internal/contract"
	"github.com/huangsam/gradebook/internal/outwriter"
	"github.com/huangsam/gradebook/internal/settings"
	"github.com/huangsam/gradebook/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

// settingsReport is the validate_settings result.
type settingsReport struct {
	Path       string                     `json:"path"`
	Source     settings.Source            `json:"source"`
	Valid      bool                       `json:"valid"`
	Error      string                     `json:"error,omitempty"`
	Repaired   []string                   `json:"repaired,omitempty"`
	Deviations []settings.WeightDeviation `json:"deviations,omitempty"`
}

func (h *toolHandler) handleListCourses(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s := settings.Load(h.baseCfg.SettingsPath)
	return jsonResult(outwriter.NewCoursesDocument(s))
}

func (h *toolHandler) handleIngestRoster(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, errResult := h.rosterConfig(request)
	if errResult != nil {
		return errResult, nil
	}

	session, _ := core.NewSession(cfg.SettingsPath)
	report, err := session.LoadRoster(cfg.RosterPath, core.IngestOptions{HeaderSkip: cfg.HeaderSkip, Sheet: cfg.Sheet})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ingest failed: %v", err)), nil
	}

	doc := outwriter.NewRosterDocument(report.Table, "")
	doc.Warnings = report.Warnings
	return jsonResult(doc)
}

func (h *toolHandler) handleComputeGrades(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, errResult := h.rosterConfig(request)
	if errResult != nil {
		return errResult, nil
	}
	cfg.Course = request.GetString("course", "")
	if cfg.Course == "" {
		return mcp.NewToolResultError("course is required"), nil
	}
	sortKey := schema.SortKey(request.GetString("sort", string(schema.SortByID)))
	if !schema.ValidSortKeys[sortKey] {
		return mcp.NewToolResultError(fmt.Sprintf("invalid sort '%s'. must be id, average", sortKey)), nil
	}
	limit := request.GetInt("limit", 0)
	if limit < 0 || limit > contract.MaxResultLimit {
		return mcp.NewToolResultError(fmt.Sprintf("limit must be between 0 and %d", contract.MaxResultLimit)), nil
	}

	session, _ := core.NewSession(cfg.SettingsPath)
	report, err := session.LoadRoster(cfg.RosterPath, core.IngestOptions{HeaderSkip: cfg.HeaderSkip, Sheet: cfg.Sheet})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ingest failed: %v", err)), nil
	}
	if err := session.SelectCourse(cfg.Course); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("grading failed: %v", err)), nil
	}
	if err := session.Compute(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("grading failed: %v", err)), nil
	}

	view := session.Roster.Clone()
	if sortKey == schema.SortByAverage {
		view.Rows = algo.RankByAverage(view.Rows, limit)
	} else {
		view.Rows = algo.Limit(view.Rows, limit)
	}

	doc := outwriter.NewRosterDocument(view, session.Course)
	doc.Warnings = report.Warnings
	return jsonResult(doc)
}

func (h *toolHandler) handleValidateSettings(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s, load := settings.LoadWithReport(h.baseCfg.SettingsPath)
	report := settingsReport{
		Path:       h.baseCfg.SettingsPath,
		Source:     load.Source,
		Valid:      true,
		Repaired:   load.Repaired,
		Deviations: settings.CheckCriterionWeights(s),
	}
	if err := settings.Validate(s); err != nil {
		report.Valid = false
		report.Error = err.Error()
	}
	return jsonResult(report)
}

// rosterConfig applies the path, header_skip and sheet arguments to a copy of the base config.
func (h *toolHandler) rosterConfig(request mcp.CallToolRequest) (*contract.Config, *mcp.CallToolResult) {
	cfg := h.baseCfg.Clone()
	cfg.RosterPath = request.GetString("path", "")
	if cfg.RosterPath == "" {
		return nil, mcp.NewToolResultError("path is required")
	}
	cfg.HeaderSkip = request.GetInt("header_skip", cfg.HeaderSkip)
	if cfg.HeaderSkip < 0 {
		return nil, mcp.NewToolResultError(fmt.Sprintf("header_skip cannot be negative (received %d)", cfg.HeaderSkip))
	}
	if sheetName := request.GetString("sheet", ""); sheetName != "" {
		cfg.Sheet = sheetName
	}
	return cfg, nil
}

func jsonResult(data any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
