// Package mcp exposes the workout store and aggregation engine to AI
// assistants over the Model Context Protocol.
package mcp

import (
	"log/slog"

	"github.com/claude/trainlog/internal/workout"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(app *workout.App, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("trainlog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Personal workout log. Query training totals, body-part volume breakdowns, per-exercise progression and recent sessions. All data belongs to the single local user."),
	)

	h := &handlers{app: app, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolGetTrainingStats, Handler: h.getTrainingStats},
		server.ServerTool{Tool: toolGetBodyPartVolume, Handler: h.getBodyPartVolume},
		server.ServerTool{Tool: toolGetExerciseTimeSeries, Handler: h.getExerciseTimeSeries},
		server.ServerTool{Tool: toolGetRecentSessions, Handler: h.getRecentSessions},
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
	)

	s.AddResources(
		server.ServerResource{Resource: resDashboard, Handler: h.dashboard},
		server.ServerResource{Resource: resCatalog, Handler: h.catalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	app *workout.App
	log *slog.Logger
}
