// ABOUTME: MCP tool definitions and registration for the race engineer server
// ABOUTME: Exposes regulations search and the four race calculators as tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// Tool names
const (
	ToolSearchRegulations    = "search_f1_regulations"
	ToolRacePoints           = "calculate_race_points"
	ToolPointsSwing          = "calculate_points_swing"
	ToolChampionshipScenario = "calculate_championship_scenario"
	ToolPitStopTimeLoss      = "calculate_pit_stop_time_loss"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, regulations Regulations, logger *zap.Logger) *Handlers {
	handlers := NewHandlers(regulations, logger)

	// 1. search_f1_regulations - semantic search over the regulations index
	server.AddTool(mcp.Tool{
		Name:        ToolSearchRegulations,
		Description: "Search the FIA F1 Sporting and Technical Regulations for specific information about rules, procedures or technical requirements.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "The user's question about F1 regulations, rules, procedures, or technical requirements",
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchRegulations)

	// 2. calculate_race_points - points for one finishing position
	server.AddTool(mcp.Tool{
		Name:        ToolRacePoints,
		Description: "Calculate the points scored for a finishing position in a grand prix or sprint.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"position": map[string]interface{}{
					"type":        "number",
					"description": "Finishing position (1-20)",
				},
				"fastest_lap": map[string]interface{}{
					"type":        "boolean",
					"description": "Whether the driver set the fastest lap (grand prix only)",
					"default":     false,
				},
				"sprint": map[string]interface{}{
					"type":        "boolean",
					"description": "Whether this is a sprint race",
					"default":     false,
				},
			},
			Required: []string{"position"},
		},
	}, handlers.RacePoints)

	// 3. calculate_points_swing - points difference between two finishes
	server.AddTool(mcp.Tool{
		Name:        ToolPointsSwing,
		Description: "Calculate the points swing between two drivers in a single race.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"driver1_position": map[string]interface{}{
					"type":        "number",
					"description": "Driver 1 finishing position",
				},
				"driver2_position": map[string]interface{}{
					"type":        "number",
					"description": "Driver 2 finishing position",
				},
				"driver1_fastest_lap": map[string]interface{}{
					"type":        "boolean",
					"description": "Whether driver 1 set the fastest lap",
					"default":     false,
				},
				"driver2_fastest_lap": map[string]interface{}{
					"type":        "boolean",
					"description": "Whether driver 2 set the fastest lap",
					"default":     false,
				},
			},
			Required: []string{"driver1_position", "driver2_position"},
		},
	}, handlers.PointsSwing)

	// 4. calculate_championship_scenario - can the chaser still win the title
	server.AddTool(mcp.Tool{
		Name:        ToolChampionshipScenario,
		Description: "Calculate championship scenarios between two drivers: maximum points available and whether the title is still mathematically open.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"driver1_points": map[string]interface{}{
					"type":        "number",
					"description": "Current points for driver 1",
				},
				"driver2_points": map[string]interface{}{
					"type":        "number",
					"description": "Current points for driver 2",
				},
				"races_remaining": map[string]interface{}{
					"type":        "number",
					"description": "Number of grand prix races remaining",
				},
				"sprint_races": map[string]interface{}{
					"type":        "number",
					"description": "Number of sprint races remaining (default: 0)",
					"default":     0,
				},
			},
			Required: []string{"driver1_points", "driver2_points", "races_remaining"},
		},
	}, handlers.ChampionshipScenario)

	// 5. calculate_pit_stop_time_loss - time lost to a pit stop
	server.AddTool(mcp.Tool{
		Name:        ToolPitStopTimeLoss,
		Description: "Calculate the time lost during a pit stop compared to staying out at racing speed.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"pit_lane_length_meters": map[string]interface{}{
					"type":        "number",
					"description": "Length of the pit lane in meters",
				},
				"pit_lane_speed_limit_kmh": map[string]interface{}{
					"type":        "number",
					"description": "Pit lane speed limit in km/h",
				},
				"tire_change_seconds": map[string]interface{}{
					"type":        "number",
					"description": "Stationary time for the tire change (default: 2.5)",
					"default":     DefaultTireChangeSeconds,
				},
			},
			Required: []string{"pit_lane_length_meters", "pit_lane_speed_limit_kmh"},
		},
	}, handlers.PitStopTimeLoss)

	return handlers
}
