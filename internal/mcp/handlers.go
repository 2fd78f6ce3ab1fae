// ABOUTME: MCP tool handler implementations for the race engineer server
// ABOUTME: Failures become tool results so a live conversation never breaks
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/harper/race-engineer/internal/calc"
	"github.com/harper/race-engineer/internal/core"
	"github.com/harper/race-engineer/internal/logging"
)

// DefaultTireChangeSeconds is used when the caller omits the tire change time
const DefaultTireChangeSeconds = 2.5

const (
	searchPrefix   = "Based on the FIA F1 Regulations: "
	searchFallback = "I couldn't find specific information about that in the current FIA regulations. " +
		"Could you rephrase your question or ask about a different aspect of F1 regulations?"
)

// Regulations answers questions with text for the agent
type Regulations interface {
	GetContextForAgent(ctx context.Context, question string) string
}

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	regulations Regulations
	logger      *zap.Logger
}

// NewHandlers creates handlers backed by a ready retriever
func NewHandlers(regulations Regulations, logger *zap.Logger) *Handlers {
	return &Handlers{regulations: regulations, logger: logging.OrNop(logger)}
}

// SearchRegulations handles the search_f1_regulations tool
func (h *Handlers) SearchRegulations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil || strings.TrimSpace(query) == "" {
		return mcp.NewToolResultError("query argument is required and must be a non-empty string"), nil
	}

	h.logger.Info("searching regulations", zap.String("query", query))
	text := h.regulations.GetContextForAgent(ctx, query)

	switch {
	case strings.HasPrefix(text, core.ErrorTextPrefix):
		return mcp.NewToolResultText(text), nil
	case text == "" || strings.Contains(text, core.NoMatchSentinel):
		return mcp.NewToolResultText(searchFallback), nil
	}
	return mcp.NewToolResultText(searchPrefix + text), nil
}

// RacePoints handles the calculate_race_points tool
func (h *Handlers) RacePoints(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	position, err := request.RequireInt("position")
	if err != nil {
		return mcp.NewToolResultError("position argument is required and must be a number"), nil
	}
	fastestLap := request.GetBool("fastest_lap", false)
	sprint := request.GetBool("sprint", false)

	points := calc.RacePoints(position, fastestLap, sprint)
	h.logger.Debug("race points", zap.Int("position", position), zap.Bool("sprint", sprint), zap.Int("points", points))

	kind := "race"
	if sprint {
		kind = "sprint"
	}
	text := fmt.Sprintf("P%d in a %s scores %d points", position, kind, points)
	if fastestLap && !sprint && points > 0 {
		text += " including the fastest lap bonus"
	}
	return mcp.NewToolResultText(text + "."), nil
}

// PointsSwing handles the calculate_points_swing tool
func (h *Handlers) PointsSwing(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pos1, err := request.RequireInt("driver1_position")
	if err != nil {
		return mcp.NewToolResultError("driver1_position argument is required and must be a number"), nil
	}
	pos2, err := request.RequireInt("driver2_position")
	if err != nil {
		return mcp.NewToolResultError("driver2_position argument is required and must be a number"), nil
	}
	fl1 := request.GetBool("driver1_fastest_lap", false)
	fl2 := request.GetBool("driver2_fastest_lap", false)

	h.logger.Info("points swing", zap.Int("driver1_position", pos1), zap.Int("driver2_position", pos2))
	return mcp.NewToolResultText(calc.PointsSwing(pos1, fl1, pos2, fl2).Summary()), nil
}

// ChampionshipScenario handles the calculate_championship_scenario tool
func (h *Handlers) ChampionshipScenario(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p1, err := request.RequireInt("driver1_points")
	if err != nil {
		return mcp.NewToolResultError("driver1_points argument is required and must be a number"), nil
	}
	p2, err := request.RequireInt("driver2_points")
	if err != nil {
		return mcp.NewToolResultError("driver2_points argument is required and must be a number"), nil
	}
	races, err := request.RequireInt("races_remaining")
	if err != nil {
		return mcp.NewToolResultError("races_remaining argument is required and must be a number"), nil
	}
	sprints := request.GetInt("sprint_races", 0)

	h.logger.Info("championship scenario",
		zap.Int("driver1_points", p1),
		zap.Int("driver2_points", p2),
		zap.Int("races_remaining", races),
		zap.Int("sprint_races", sprints))
	return mcp.NewToolResultText(calc.ChampionshipScenario(p1, p2, races, sprints).Summary()), nil
}

// PitStopTimeLoss handles the calculate_pit_stop_time_loss tool
func (h *Handlers) PitStopTimeLoss(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	length, err := request.RequireFloat("pit_lane_length_meters")
	if err != nil {
		return mcp.NewToolResultError("pit_lane_length_meters argument is required and must be a number"), nil
	}
	limit, err := request.RequireFloat("pit_lane_speed_limit_kmh")
	if err != nil {
		return mcp.NewToolResultError("pit_lane_speed_limit_kmh argument is required and must be a number"), nil
	}
	if limit <= 0 {
		return mcp.NewToolResultError("pit_lane_speed_limit_kmh must be greater than zero"), nil
	}
	tireChange := request.GetFloat("tire_change_seconds", DefaultTireChangeSeconds)

	h.logger.Info("pit stop time loss",
		zap.Float64("pit_lane_length_meters", length),
		zap.Float64("pit_lane_speed_limit_kmh", limit),
		zap.Float64("tire_change_seconds", tireChange))
	return mcp.NewToolResultText(calc.PitStopTimeLoss(length, limit, tireChange).Summary()), nil
}
